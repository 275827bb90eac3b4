package infra

// storage.go — presigned-URL issuance against the object store holding
// receipt and invoice images. Clients upload with a direct PUT to the signed
// URL (Content-Type must match); reads use a signed GET. The circuit breaker
// fast-fails when the storage endpoint is down.

import (
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"rapifarma/internal/config"
)

const (
	// Default expiries: reads 3600s, writes 600s
	DefaultGetExpiry = time.Hour
	DefaultPutExpiry = 10 * time.Minute
)

// Storage wraps the S3-compatible client for the comprobantes bucket.
type Storage struct {
	client *minio.Client
	bucket string
	cb     *CircuitBreaker
}

func NewStorage(cfg *config.Config, cb *CircuitBreaker) (*Storage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{client: client, bucket: cfg.S3Bucket, cb: cb}, nil
}

// PresignedGet signs a read URL for objectName.
func (s *Storage) PresignedGet(ctx context.Context, objectName string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultGetExpiry
	}
	var signed *url.URL
	err := s.cb.Execute(func() error {
		var err error
		signed, err = s.client.PresignedGetObject(ctx, s.bucket, objectName, expires, url.Values{})
		return err
	})
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

// PresignedPut signs a write URL for objectName.
func (s *Storage) PresignedPut(ctx context.Context, objectName string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPutExpiry
	}
	var signed *url.URL
	err := s.cb.Execute(func() error {
		var err error
		signed, err = s.client.PresignedPutObject(ctx, s.bucket, objectName, expires)
		return err
	})
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}
