package draft

import (
	"errors"
	"fmt"
)

// State is a Session's position in its edit/commit lifecycle.
type State int

const (
	// StateClean means the draft equals the baseline.
	StateClean State = iota

	// StateEditing means the draft has local changes not yet committed.
	StateEditing

	// StateSaving means a commit is in flight.
	StateSaving

	// StateError means the last commit failed; the draft is retained.
	StateError

	// StateDeleting means a delete is in flight.
	StateDeleting

	// StateClosed means the session was torn down.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	case StateDeleting:
		return "deleting"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrInvalidState matches every *SessionStateError.
	ErrInvalidState = errors.New("invalid session state")

	// ErrClosed matches a *SessionStateError raised on a torn-down session, and is
	// returned by operations whose session closed while they were in flight.
	ErrClosed = errors.New("session closed")
)

// SessionStateError reports an operation invoked in a state that does not allow it.
type SessionStateError struct {
	Op    string
	State State
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

// Is matches ErrInvalidState, and ErrClosed when the session is closed.
func (e *SessionStateError) Is(target error) bool {
	if target == ErrInvalidState {
		return true
	}
	return target == ErrClosed && e.State == StateClosed
}
