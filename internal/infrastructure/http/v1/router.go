// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"freightdesk/internal/domain/auth"
	"freightdesk/internal/domain/quotation"
	"freightdesk/internal/domain/response"
	"freightdesk/internal/domain/tracking"
	"freightdesk/internal/infrastructure/http/v1/handlers"
	"freightdesk/internal/infrastructure/http/v1/middleware"
	"freightdesk/internal/infrastructure/storage/object"
	"freightdesk/internal/infrastructure/storage/postgres"
	"freightdesk/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Domain services
	AuthService      *auth.Service
	QuotationService *quotation.Service
	ResponseService  *response.Service
	TrackingService  *tracking.Service

	// ObjectStorage for file uploads; nil disables upload routes
	ObjectStorage *object.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

		// Public auth endpoints
		public := v1.Group("/auth")
		{
			public.POST("/register", authHandler.Register)
			public.POST("/login", authHandler.Login)
			public.POST("/refresh", authHandler.Refresh)
		}

		// Everything else requires a valid token.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		registerQuotationRoutes(protected, base, cfg)
		registerTrackingRoutes(protected, base, cfg)

		if cfg.ObjectStorage != nil {
			uploadHandler := handlers.NewUploadHandler(base, cfg.ObjectStorage)
			protected.POST("/uploads/batch", uploadHandler.UploadBatch)
		}
	}

	return router
}

// registerQuotationRoutes wires quotation and response endpoints.
func registerQuotationRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	quotationHandler := handlers.NewQuotationHandler(base, cfg.QuotationService)
	responseHandler := handlers.NewResponseHandler(base, cfg.ResponseService)

	quotations := rg.Group("/quotations")
	{
		quotations.POST("", quotationHandler.Create)
		quotations.GET("/list", quotationHandler.List)
		quotations.GET("/:id", quotationHandler.Get)
		quotations.PATCH("/:id", quotationHandler.Update)

		// Status changes are administrator operations.
		admin := quotations.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.PATCH("/:id/status", quotationHandler.SetStatus)
		}
	}

	responses := rg.Group("/quotation-responses")
	{
		responses.GET("/list/:quotationId", responseHandler.List)
		responses.GET("/detail/:responseId", responseHandler.Get)
		responses.GET("/detail/:responseId/legacy", responseHandler.Legacy)

		// Submitting and updating responses is an administrator operation.
		admin := responses.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("/quotation/:quotationId/complete-response", responseHandler.Submit)
			admin.PATCH("/update-responses/:quotationId/:responseId", responseHandler.Update)
		}
	}
}

// registerTrackingRoutes wires inspection tracking endpoints.
func registerTrackingRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	trackingHandler := handlers.NewTrackingHandler(base, cfg.TrackingService)

	inspections := rg.Group("/inspections")
	{
		inspections.GET("/:id/tracking/route", trackingHandler.Route)

		admin := inspections.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.PUT("/:id/tracking/status", trackingHandler.UpdateStatus)
		}
	}
}
