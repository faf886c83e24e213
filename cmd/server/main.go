// Package main is the entry point for the FreightDesk API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freightdesk/internal/core/security"
	"freightdesk/internal/domain/auth"
	"freightdesk/internal/domain/quotation"
	"freightdesk/internal/domain/response"
	"freightdesk/internal/domain/tracking"
	v1 "freightdesk/internal/infrastructure/http/v1"
	"freightdesk/internal/infrastructure/numerator"
	"freightdesk/internal/infrastructure/storage/object"
	"freightdesk/internal/infrastructure/storage/postgres"
	"freightdesk/internal/infrastructure/storage/postgres/auth_repo"
	"freightdesk/internal/infrastructure/storage/postgres/quotation_repo"
	"freightdesk/internal/infrastructure/storage/postgres/response_repo"
	"freightdesk/internal/infrastructure/storage/postgres/tracking_repo"
	"freightdesk/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting freightdesk server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit trail ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Feature flags ---
	flags := security.NewInMemoryFlags()
	flags.SetFlag(security.FlagLegacyResponseFormat, getEnv("FLAG_LEGACY_RESPONSE_FORMAT", "true") == "true")
	flags.SetFlag(security.FlagExpandedResponseShape, getEnv("FLAG_EXPANDED_RESPONSE_SHAPE", "true") == "true")
	flags.SetFlag(security.FlagTrackingForceUpdates, getEnv("FLAG_TRACKING_FORCE_UPDATES", "false") == "true")

	// --- JWT Service ---
	jwtConfig := auth.DefaultJWTConfig(mustEnv("JWT_SECRET"))
	if ttl := getEnvDuration("JWT_ACCESS_TTL", 0); ttl > 0 {
		jwtConfig.AccessTokenTTL = ttl
	}
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Repositories ---
	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)
	quotationRepo := quotation_repo.NewRepo(txManager)
	responseRepo := response_repo.NewRepo(txManager)
	trackingRepo := tracking_repo.NewRepo(txManager)

	// --- Domain services ---
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())

	numeratorService := numerator.New(pool)
	quotationService := quotation.NewService(quotationRepo, numeratorService, txManager)
	responseService := response.NewService(responseRepo, quotationService, txManager, auditService, flags)
	trackingService := tracking.NewService(trackingRepo, flags)

	// --- Object storage (optional) ---
	var objectStorage *object.Service
	if endpoint := getEnv("MINIO_ENDPOINT", ""); endpoint != "" {
		objectStorage, err = object.NewService(ctx, object.Config{
			Endpoint:      endpoint,
			AccessKey:     mustEnv("MINIO_ACCESS_KEY"),
			SecretKey:     mustEnv("MINIO_SECRET_KEY"),
			UseSSL:        getEnv("MINIO_USE_SSL", "false") == "true",
			Bucket:        getEnv("MINIO_BUCKET", "freightdesk"),
			MaxFileSize:   int64(getEnvInt("MINIO_MAX_FILE_SIZE", 10<<20)),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
		})
		if err != nil {
			log.Fatalw("failed to initialize object storage", "error", err)
		}
		log.Infow("object storage initialized", "endpoint", endpoint)
	} else {
		log.Info("object storage disabled (MINIO_ENDPOINT not set)")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		AuthService:      authService,
		QuotationService: quotationService,
		ResponseService:  responseService,
		TrackingService:  trackingService,
		ObjectStorage:    objectStorage,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
