package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/service"
)

// UserHandler serves the /api/users routes.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/users — 201 with the created user (password hash never
// serialised), 400 on validation failure or taken username.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleList returns all users with the ids of the blogs they own.
//
// HTTP: GET /api/users — public, always 200.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
