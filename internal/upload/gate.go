// Package upload admits image uploads by size before handing them to the
// transport.
package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"itemsync/internal/logging"
	"itemsync/internal/service"
)

// MaxBytes is the largest accepted upload: 5 MiB.
const MaxBytes int64 = 5 * 1024 * 1024

// Gate rejects oversized payloads before any remote call. It never touches a
// draft: callers assign the returned URL themselves.
type Gate struct {
	svc    service.Service
	max    int64
	logger *log.Logger
}

// New creates a Gate with the MaxBytes ceiling.
func New(svc service.Service, logger *log.Logger) *Gate {
	return &Gate{svc: svc, max: MaxBytes, logger: logging.OrDiscard(logger)}
}

// Validate fails with service.ErrSizeExceeded when size is over the ceiling.
func (g *Gate) Validate(size int64) error {
	if size > g.max {
		return &service.ValidationError{
			Field: "image",
			Err:   fmt.Errorf("%w: %d bytes (max %d)", service.ErrSizeExceeded, size, g.max),
		}
	}
	return nil
}

// Upload validates data and uploads it, returning the reference URL.
func (g *Gate) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if err := g.Validate(int64(len(data))); err != nil {
		return "", err
	}
	url, err := g.svc.UploadBinary(ctx, data, filename)
	if err != nil {
		return "", err
	}
	g.logger.Printf("uploaded %s (%d bytes): %s", filename, len(data), url)
	return url, nil
}

// UploadFile checks the file size before reading it, then uploads it under
// its base name.
func (g *Gate) UploadFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &service.ValidationError{Field: "image", Err: err}
	}
	if info.IsDir() {
		return "", &service.ValidationError{Field: "image", Err: fmt.Errorf("%s is a directory", path)}
	}
	if err := g.Validate(info.Size()); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return g.Upload(ctx, data, filepath.Base(path))
}
