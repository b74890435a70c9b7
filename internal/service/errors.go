package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches an *ApplicationError carrying a 404 status.
	ErrNotFound = errors.New("not found")

	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyName is the cause of a ValidationError for a blank item name.
	ErrEmptyName = errors.New("name required")

	// ErrSizeExceeded is the cause of a ValidationError for an oversized upload.
	ErrSizeExceeded = errors.New("size exceeded")
)

// NetworkError is a failure where no response was received: connection
// errors, timeouts, cancelled contexts.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ApplicationError is a non-2xx response. Body is the response body verbatim.
type ApplicationError struct {
	Op     string
	Status int
	Body   string
}

func (e *ApplicationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %d: %s", e.Op, e.Status, e.Body)
}

// Is makes errors.Is(err, ErrNotFound) true for 404 responses.
func (e *ApplicationError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// UploadError wraps any failure of UploadBinary.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ValidationError is a client-side rejection raised before any remote call.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsRetryable reports whether err is a network-level failure, the only
// class that is always worth retrying. The core itself never retries.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsServerError reports whether err is a 5xx response. Callers may opt in to
// retrying these.
func IsServerError(err error) bool {
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Status >= 500
}

// IsClientError reports whether err is a 4xx response.
func IsClientError(err error) bool {
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Status >= 400 && appErr.Status < 500
}
