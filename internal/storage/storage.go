// Package storage writes uploaded media blobs to a local directory or an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"endpage/internal/config"
)

// Driver names accepted in STORAGE_DRIVER.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Storage stores blobs under flat names.
type Storage interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, name string) error
}

// New builds the storage backend selected by the configuration.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case DriverLocal:
		return NewLocal(cfg.UploadDir)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// validName rejects anything that is not a single path element.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || path.Base(name) != name {
		return fmt.Errorf("invalid object name %q", name)
	}
	for _, r := range name {
		if r == '\\' || r == '/' {
			return fmt.Errorf("invalid object name %q", name)
		}
	}
	return nil
}
