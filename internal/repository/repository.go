// Package repository defines the persistence interfaces the service layer
// programs against. The sqlite subpackage provides the concrete
// implementation; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/bloglist/internal/model"
)

// BlogRepository is CRUD over blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	// List returns all blogs, each annotated with its owner's public
	// summary (username and display name, never the password hash).
	List(ctx context.Context) ([]model.BlogWithOwner, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is CRUD over user accounts. Implementations populate
// User.Blogs (the owned-blog back-reference) on every read. Method names
// carry the User suffix so a single store type can satisfy this interface
// and BlogRepository at the same time.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}
