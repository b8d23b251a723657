// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; this layer enforces validation and
// authorization rules and talks to the repositories through their
// interfaces. Nothing in this package knows about HTTP status codes or SQL —
// rules come out as apperror values that the handler layer translates.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// BlogService implements the blog lifecycle: list, create, update, delete.
type BlogService struct {
	blogs  repository.BlogRepository
	logger *slog.Logger
}

func NewBlogService(blogs repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		blogs:  blogs,
		logger: logger,
	}
}

// CreateBlogInput is the payload for creating a blog. Likes is a pointer so
// "omitted" (defaults to 0) is distinguishable from an explicit 0.
type CreateBlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogInput is the payload for updating a blog. Updates are full
// replacements: every mutable field is overwritten from this struct, and a
// field omitted from the request body is cleared to its zero value rather
// than preserved. Callers that want to keep a field must resend it.
type UpdateBlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// List returns every blog with its owner's public summary. Never fails on
// an empty store — the zero case is an empty slice.
func (s *BlogService) List(ctx context.Context) ([]model.BlogWithOwner, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

// Create validates and persists a new blog owned by caller.
//
// Rules, checked in order before any store write:
//   - caller must be authenticated (401 otherwise)
//   - title and url are required (400)
//   - likes must not be negative (400); omitted likes defaults to 0
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput, caller *model.User) (*model.Blog, error) {
	if caller == nil {
		return nil, apperror.Unauthorized("authentication required to create a blog")
	}

	title := strings.TrimSpace(in.Title)
	url := strings.TrimSpace(in.URL)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if url == "" {
		return nil, apperror.ValidationFailed("url", "url is required")
	}

	likes := 0
	if in.Likes != nil {
		if *in.Likes < 0 {
			return nil, apperror.ValidationFailed("likes", "likes must not be negative")
		}
		likes = *in.Likes
	}

	blog := &model.Blog{
		Title:  title,
		Author: strings.TrimSpace(in.Author),
		URL:    url,
		Likes:  likes,
		UserID: caller.ID,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("title", blog.Title),
		slog.String("userID", caller.ID),
	)

	return blog, nil
}

// Update replaces the mutable fields of an existing blog and returns the
// updated record. Returns NotFound if the id doesn't resolve.
//
// Known gap: unlike Delete, Update enforces no authentication or ownership
// check, so any caller may update any blog. Existing clients depend on
// unauthenticated like-count updates; tightening this breaks them.
func (s *BlogService) Update(ctx context.Context, id string, in UpdateBlogInput) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}
	// Same rule as Create: the likes count is a non-negative integer.
	if in.Likes < 0 {
		return nil, apperror.ValidationFailed("likes", "likes must not be negative")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Full replacement: omitted fields arrive as zero values and overwrite
	// whatever was stored. ID, UserID, and CreatedAt are untouched.
	blog.Title = in.Title
	blog.Author = in.Author
	blog.URL = in.URL
	blog.Likes = in.Likes

	if err := s.blogs.Update(ctx, blog); err != nil {
		s.logger.Error("failed to update blog",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating blog: %w", err)
	}

	s.logger.Info("blog updated", slog.String("id", blog.ID))

	return blog, nil
}

// Delete removes a blog. Only the owner may delete it:
//   - caller must be authenticated (401)
//   - the blog must exist (404)
//   - caller.ID must equal the blog's UserID (403 otherwise)
func (s *BlogService) Delete(ctx context.Context, id string, caller *model.User) error {
	if caller == nil {
		return apperror.Unauthorized("authentication required to delete a blog")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "blog ID is required")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != caller.ID {
		return apperror.Forbidden("only the owner can delete this blog")
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted",
		slog.String("id", id),
		slog.String("userID", caller.ID),
	)
	return nil
}
