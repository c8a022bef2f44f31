package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageService turns stored image references into links the dashboard can
// display. Absolute http(s) URLs are returned unchanged; anything else is
// treated as an object key in the configured bucket.
type ImageService struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// NewImageService returns a service without object storage when no MinIO
// endpoint is configured.
func NewImageService(cfg *config.Config) (*ImageService, error) {
	s := &ImageService{bucket: cfg.MinIOBucket, ttl: cfg.ImageURLTTL}
	if cfg.MinIOEndpoint == "" {
		return s, nil
	}
	if cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "" {
		return nil, fmt.Errorf("minio access key and secret key are required")
	}

	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	s.client = client
	return s, nil
}

// Link resolves ref. It returns "" when ref is empty or is an object key that
// cannot be signed because object storage is not configured.
func (s *ImageService) Link(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	if s == nil || s.client == nil {
		return "", nil
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, strings.TrimPrefix(ref, "/"), s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to sign image url: %w", err)
	}
	return u.String(), nil
}
