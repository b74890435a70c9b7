// Package service defines the backend-agnostic interface for item operations.
package service

import (
	"context"
	"strings"
)

const (
	// DefaultPage is the first page of the collection (1-based).
	DefaultPage = 1

	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 10
)

// Service defines the interface for the remote item collection.
// All remote calls go through this interface, scoped to a single tenant.
// Implementations never retry; failures surface as *NetworkError or
// *ApplicationError.
type Service interface {
	// List returns one page of items in server order.
	// page is 1-based.
	List(ctx context.Context, page, pageSize int) ([]Item, error)

	// Get returns a single item. Fails with ErrNotFound on a 404.
	Get(ctx context.Context, id int64) (Item, error)

	// Create creates an item with the given name; the server assigns the id.
	// An empty or whitespace-only name fails with ErrEmptyName before any
	// remote call.
	Create(ctx context.Context, name string) (Item, error)

	// Update applies a partial update and returns the server's item.
	Update(ctx context.Context, id int64, patch Patch) (Item, error)

	// Delete removes an item and returns the server's confirmation message.
	// Deleting an id that no longer exists fails with ErrNotFound.
	Delete(ctx context.Context, id int64) (string, error)

	// UploadBinary uploads an image and returns its reference URL.
	// Failures are wrapped in *UploadError.
	UploadBinary(ctx context.Context, data []byte, filename string) (string, error)
}

// ValidateName checks an item name before creation.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	return nil
}
