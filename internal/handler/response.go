package handler

// Shared JSON response helpers. Every error response has the same shape:
//
//	{"error": "not_found", "message": "blog not found with id abc"}
//
// so clients can parse failures uniformly regardless of status code, and
// internal error details never reach the wire.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/apperror"
)

// ErrorResponse is the standard error body for all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "not_found"
	Message string `json:"message"` // human-readable description
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before WriteHeader; the body encode comes last.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone out — nothing left to do but log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a domain error into an HTTP response.
//
// The service layer speaks in apperror sentinels; this is the single place
// they become status codes. Anything that isn't a recognised AppError is a
// 500 with a generic body — raw error strings can carry SQL or file paths
// and never belong in a response.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		kind := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			kind = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			kind = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			kind = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			kind = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			kind = "validation_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   kind,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
