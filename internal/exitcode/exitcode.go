// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"itemsync/internal/draft"
	"itemsync/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error: bad args, validation failures,
	// invalid session state, 4xx responses.
	UserError = 1

	// ConfigError indicates missing or invalid configuration.
	ConfigError = 2

	// BackendError indicates a 5xx or otherwise unclassified backend error.
	BackendError = 3

	// NetworkError indicates no response was received.
	NetworkError = 4
)

// For maps an error from the core to an exit code.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrValidation), errors.Is(err, draft.ErrInvalidState):
		return UserError
	case service.IsRetryable(err):
		return NetworkError
	case service.IsClientError(err):
		return UserError
	default:
		return BackendError
	}
}
