// Package model defines the data structures shared across the application.
// Structs carry `json` tags for the API surface; persistence column mapping
// lives in the sqlite repository, not here.
package model

import "time"

// Blog represents a single blog post.
//
// Title and URL are required — the service layer rejects blogs without them
// before anything reaches the repository. Likes defaults to 0 on creation.
// UserID is the owning user's id, set once at creation and never reassigned.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerSummary is the slice of a User that is safe to embed in blog
// responses: id, username, and display name. Never the password hash.
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// BlogWithOwner is a Blog annotated with its owner's public summary,
// as returned by GET /api/blogs. Owner is nil if the owning user row is
// missing (should not happen with foreign keys on, but the API degrades
// gracefully rather than failing the whole listing).
type BlogWithOwner struct {
	Blog
	Owner *OwnerSummary `json:"user,omitempty"`
}
