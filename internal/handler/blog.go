// Package handler is the HTTP layer: it decodes requests, calls the
// services, and encodes responses. All authorization and validation
// decisions live in the service layer; handlers only parse and translate.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/service"
)

// BlogHandler serves the /api/blogs routes.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// HandleList returns all blogs with owner summaries.
//
// HTTP: GET /api/blogs — public, always 200 (empty array for an empty
// store).
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

// HandleCreate creates a blog owned by the authenticated caller.
//
// HTTP: POST /api/blogs — 201 on success, 400 on missing title/url, 401
// without a valid token.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	// nil when the request is anonymous; the service turns that into 401.
	caller, _ := auth.UserFromContext(r.Context())

	blog, err := h.blogs.Create(r.Context(), in, caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// HandleUpdate replaces a blog's mutable fields.
//
// HTTP: PUT /api/blogs/{id} — 200 with the updated blog, 404 for an unknown
// id. Deliberately requires no authentication (see BlogService.Update).
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in service.UpdateBlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	blog, err := h.blogs.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleDelete removes a blog. Only its owner may do so.
//
// HTTP: DELETE /api/blogs/{id} — 204 on success, 401 anonymous, 403 wrong
// owner, 404 unknown id.
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	caller, _ := auth.UserFromContext(r.Context())

	if err := h.blogs.Delete(r.Context(), id, caller); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
