package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/service"
)

// AuthHandler serves the login route.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a bearer token.
//
// HTTP: POST /api/login — 200 with {token, username, name}, 401 for bad
// credentials (same response whether the username or the password was
// wrong).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
