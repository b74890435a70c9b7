// Package draft implements per-item editing sessions that reconcile a local
// draft with the remote item through minimal partial updates.
package draft

import (
	"context"
	"fmt"
	"log"
	"sync"

	"itemsync/internal/logging"
	"itemsync/internal/service"
)

// Session edits one item. The baseline is the last server-confirmed snapshot;
// the draft holds candidate memo and imageUrl values. Commit sends only the
// fields that differ from the baseline.
//
// The state machine is the session's only concurrency guard. Operations that
// conflict with an in-flight commit or delete fail with a *SessionStateError rather
// than interleaving. Remote failures move the session to StateError (for
// commit) and are also returned and kept in Err.
type Session struct {
	svc    service.Service
	logger *log.Logger

	mu       sync.Mutex
	state    State
	baseline service.Item
	draft    Fields
	err      error
}

// Open fetches the item and starts a clean session on it.
func Open(ctx context.Context, svc service.Service, id int64, logger *log.Logger) (*Session, error) {
	item, err := svc.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("open item %d: %w", id, err)
	}
	return NewSession(svc, item, logger), nil
}

// NewSession starts a clean session with baseline as the confirmed state.
func NewSession(svc service.Service, baseline service.Item, logger *log.Logger) *Session {
	return &Session{
		svc:      svc,
		logger:   logging.OrDiscard(logger),
		state:    StateClean,
		baseline: baseline,
		draft:    FieldsOf(baseline),
	}
}

// ID returns the id of the item being edited.
func (s *Session) ID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline.ID
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Baseline returns the last confirmed server snapshot.
func (s *Session) Baseline() service.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline
}

// Draft returns the current candidate fields.
func (s *Session) Draft() Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Err returns the last remote failure, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Diff returns the patch a commit would send right now.
func (s *Session) Diff() service.Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Diff(s.baseline, s.draft)
}

// SetMemo replaces the draft memo.
func (s *Session) SetMemo(memo string) error {
	return s.edit("edit memo", func(f *Fields) { f.Memo = memo })
}

// SetImageURL replaces the draft image reference, typically with a URL
// returned by the upload gate.
func (s *Session) SetImageURL(url string) error {
	return s.edit("edit image", func(f *Fields) { f.ImageURL = url })
}

func (s *Session) edit(op string, apply func(*Fields)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.idleLocked() {
		return &SessionStateError{Op: op, State: s.state}
	}

	apply(&s.draft)
	s.err = nil
	if s.draft == FieldsOf(s.baseline) {
		s.state = StateClean
	} else {
		s.state = StateEditing
	}
	return nil
}

// Commit sends the diff between draft and baseline. An empty diff returns to
// StateClean without any remote call. On success the item is re-fetched and
// becomes the new baseline, even where the server stored a value other than
// the one proposed. On failure the session enters StateError with the draft
// untouched.
//
// If the session is closed while the commit is in flight, the response is
// dropped and ErrClosed is returned.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	if !s.idleLocked() {
		err := &SessionStateError{Op: "commit", State: s.state}
		s.mu.Unlock()
		return err
	}
	patch := Diff(s.baseline, s.draft)
	if patch.IsEmpty() {
		s.state = StateClean
		s.err = nil
		s.mu.Unlock()
		return nil
	}
	id := s.baseline.ID
	s.state = StateSaving
	s.mu.Unlock()

	s.logger.Printf("draft %d: commit fields=%v", id, patch.Fields())
	updated, err := s.svc.Update(ctx, id, patch)
	var fresh service.Item
	var refetchErr error
	if err == nil {
		fresh, refetchErr = s.svc.Get(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		s.logger.Printf("draft %d: session closed during commit, dropping response", id)
		return ErrClosed
	}
	if err != nil {
		s.state = StateError
		s.err = fmt.Errorf("commit item %d: %w", id, err)
		return s.err
	}
	if refetchErr != nil {
		// The update landed; its response is the newest confirmed state.
		s.baseline = updated
		s.state = StateError
		s.err = fmt.Errorf("refresh item %d after commit: %w", id, refetchErr)
		return s.err
	}

	s.baseline = fresh
	s.draft = FieldsOf(fresh)
	s.state = StateClean
	s.err = nil
	return nil
}

// Discard resets the draft to the baseline. It is rejected while a commit or
// delete is in flight.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.idleLocked() {
		return &SessionStateError{Op: "discard", State: s.state}
	}
	s.draft = FieldsOf(s.baseline)
	s.state = StateClean
	s.err = nil
	return nil
}

// Delete removes the item regardless of any pending draft. On success the
// session is closed. On failure the session returns to its prior state and
// the error is kept in Err.
func (s *Session) Delete(ctx context.Context) (string, error) {
	s.mu.Lock()
	if !s.idleLocked() {
		err := &SessionStateError{Op: "delete", State: s.state}
		s.mu.Unlock()
		return "", err
	}
	prior := s.state
	id := s.baseline.ID
	s.state = StateDeleting
	s.mu.Unlock()

	msg, err := s.svc.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		if err != nil {
			return "", fmt.Errorf("delete item %d: %w", id, err)
		}
		return msg, nil
	}
	if err != nil {
		s.state = prior
		s.err = fmt.Errorf("delete item %d: %w", id, err)
		return "", s.err
	}

	s.logger.Printf("draft %d: deleted", id)
	s.state = StateClosed
	s.draft = Fields{}
	s.err = nil
	return msg, nil
}

// Close tears the session down, discarding the draft. Responses of
// operations still in flight are dropped. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
	s.draft = Fields{}
}

// idleLocked reports whether no remote call is in flight and the session
// is still open.
func (s *Session) idleLocked() bool {
	switch s.state {
	case StateSaving, StateDeleting, StateClosed:
		return false
	}
	return true
}
