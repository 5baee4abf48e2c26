/*
Package storage keeps post attachments in S3 compatible object storage.

Uploads pass through the server so the content type can be sniffed and the
size enforced; downloads are handed off to the bucket through short lived
presigned URLs.
*/
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"boardrtc/internal/configs"
)

var ErrObjectNotFound = errors.New("object not found")

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// ConfigFrom picks the storage settings out of the application config.
func ConfigFrom(cfg *configs.AppConfig) ServiceConfig {
	return ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	}
}

// StorageService defines the public interface for the file storage service.
type StorageService interface {
	// Upload streams body into the bucket under key.
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error

	// PresignDownload generates a pre-signed URL for downloading a file.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the file specified by the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService is the factory function for StorageService.
// Currently, only S3 compatible implementations are supported.
func NewStorageService(ctx context.Context, cfg ServiceConfig) (StorageService, error) {
	return newS3Client(ctx, cfg)
}
