package model

import "time"

// User represents a registered account that owns zero or more blogs.
//
// PasswordHash is tagged `json:"-"` so it can never leak through any handler
// that serialises a User — the "never exposed in any output" rule is enforced
// at the type level rather than by per-handler filtering.
//
// Blogs holds the ids of the blogs this user owns, ordered by creation time.
// It is a derived back-reference: the blog's UserID is the source of truth
// for ownership, and the repository fills this slice in when loading users.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Blogs        []string  `json:"blogs"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
