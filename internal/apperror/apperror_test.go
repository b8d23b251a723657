package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := NotFound("blog", "abc123")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false, want true")
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("NotFound error should not match ErrValidation")
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("title", "title is required")

	if err.Field != "title" {
		t.Errorf("Field = %q, want %q", err.Field, "title")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, want true")
	}
}

func TestUnauthorized_MatchesSentinel(t *testing.T) {
	err := Unauthorized("token missing")

	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("errors.Is(err, ErrUnauthorized) = false, want true")
	}
}

// Wrapping an AppError with fmt.Errorf("%w") must keep the sentinel
// reachable — the handler layer relies on this when mapping to HTTP codes.
func TestWrappedError_StillMatches(t *testing.T) {
	inner := Forbidden("not the owner")
	wrapped := fmt.Errorf("deleting blog: %w", inner)

	if !errors.Is(wrapped, ErrForbidden) {
		t.Errorf("wrapped error lost ErrForbidden sentinel")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatalf("errors.As failed to recover *AppError from wrapped chain")
	}
	if appErr.Message != "not the owner" {
		t.Errorf("Message = %q, want %q", appErr.Message, "not the owner")
	}
}
