package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestApplicationError_IsNotFound(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ApplicationError{Op: "get", Status: 404})
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected 404 to match ErrNotFound")
	}
	if errors.Is(&ApplicationError{Op: "get", Status: 500}, ErrNotFound) {
		t.Error("500 must not match ErrNotFound")
	}
}

func TestApplicationError_Message(t *testing.T) {
	if got := (&ApplicationError{Op: "get", Status: 404, Body: "gone"}).Error(); got != "get: 404: gone" {
		t.Errorf("unexpected message %q", got)
	}
	if got := (&ApplicationError{Op: "get", Status: 503}).Error(); got != "get: 503 Service Unavailable" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRetryClassification(t *testing.T) {
	netErr := &NetworkError{Op: "list", Err: errors.New("refused")}
	clientErr := &ApplicationError{Op: "list", Status: 400}
	serverErr := &ApplicationError{Op: "list", Status: 500}

	if !IsRetryable(netErr) || IsRetryable(clientErr) || IsRetryable(serverErr) {
		t.Error("only network failures are retryable by default")
	}
	if !IsServerError(serverErr) || IsServerError(clientErr) || IsServerError(netErr) {
		t.Error("IsServerError misclassified")
	}
	if !IsClientError(clientErr) || IsClientError(serverErr) {
		t.Error("IsClientError misclassified")
	}
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("ok"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateName(" \t")
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected empty-name validation error, got %v", err)
	}
}

func TestUploadError_Unwrap(t *testing.T) {
	err := &UploadError{Err: &ApplicationError{Op: "upload", Status: 404}}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected UploadError to unwrap to the transport error")
	}
}

func TestPatch(t *testing.T) {
	p := Patch{Memo: String("m"), IsCompleted: Bool(false)}
	if p.IsEmpty() {
		t.Error("expected non-empty patch")
	}
	got := p.Apply(Item{ID: 1, Memo: "old", ImageURL: "keep", IsCompleted: true})
	want := Item{ID: 1, Memo: "m", ImageURL: "keep", IsCompleted: false}
	if got != want {
		t.Errorf("Apply: got %+v, want %+v", got, want)
	}
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
}
