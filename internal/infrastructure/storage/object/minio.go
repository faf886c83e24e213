// Package object provides MinIO-backed object storage for variant images and
// quotation attachments.
package object

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/pkg/logger"
)

// MaxBatchFiles is the hard limit on files per batch request.
const MaxBatchFiles = 10

// Config holds object storage configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool

	Bucket      string
	MaxFileSize int64 // bytes

	// PublicBaseURL is prepended to object keys to build stored URLs.
	PublicBaseURL string
}

// File is one object to upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Service uploads and serves quotation files.
type Service struct {
	client *minio.Client
	cfg    Config
}

// NewService creates a MinIO-backed storage service and ensures the bucket
// exists.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &Service{client: client, cfg: cfg}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

// Upload stores a single file under folder and returns its public URL.
func (s *Service) Upload(ctx context.Context, folder string, f File) (string, error) {
	if err := s.validate(f); err != nil {
		return "", err
	}

	key := s.objectKey(folder, f.Name)
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, f.Reader, f.Size, minio.PutObjectOptions{
		ContentType: f.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}

	return s.publicURL(key), nil
}

// UploadBatch stores up to MaxBatchFiles files and returns their public URLs
// in input order. Order matters: callers map returned URLs back to variants
// by index. A failed object aborts the batch; already uploaded objects are
// kept, the client retries the whole batch.
func (s *Service) UploadBatch(ctx context.Context, folder string, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, apperror.NewValidation("no files to upload")
	}
	if len(files) > MaxBatchFiles {
		return nil, apperror.NewValidation("too many files in batch").
			WithDetail("limit", MaxBatchFiles).
			WithDetail("got", len(files))
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		url, err := s.Upload(ctx, folder, f)
		if err != nil {
			return nil, fmt.Errorf("batch upload file %d: %w", i, err)
		}
		urls = append(urls, url)
	}

	logger.Debug(ctx, "uploaded batch",
		"folder", folder,
		"count", len(urls),
	)
	return urls, nil
}

// Download fetches an object by key. The caller closes the reader.
func (s *Service) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	return obj, nil
}

// Delete removes an object by key.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PresignedGet returns a temporary download URL for an object.
func (s *Service) PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *Service) validate(f File) error {
	if s.cfg.MaxFileSize > 0 && f.Size > s.cfg.MaxFileSize {
		return apperror.NewValidation("file too large").
			WithDetail("file", f.Name).
			WithDetail("max_bytes", s.cfg.MaxFileSize)
	}
	if f.ContentType != "" && !strings.HasPrefix(f.ContentType, "image/") &&
		f.ContentType != "application/pdf" {
		return apperror.NewValidation("unsupported content type").
			WithDetail("file", f.Name).
			WithDetail("content_type", f.ContentType)
	}
	return nil
}

// objectKey builds a collision-free key: folder/name_xxxxxxxx.ext.
func (s *Service) objectKey(folder, name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return path.Join(folder, fmt.Sprintf("%s_%s%s", base, id.New().String()[:8], ext))
}

func (s *Service) publicURL(key string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket)
	}
	return base + "/" + key
}
