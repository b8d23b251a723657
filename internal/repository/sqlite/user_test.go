package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Username:     "mluukkai",
		Name:         "Matti Luukkainen",
		PasswordHash: "$2a$04$notarealhash",
	}

	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == "" {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.Blogs == nil {
		t.Error("CreateUser() should leave Blogs as an empty slice, not nil")
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	dup := &model.User{Username: "alice", PasswordHash: "$2a$04$other"}
	err := db.CreateUser(context.Background(), dup)

	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateUser() duplicate username error = %v, want ErrConflict", err)
	}
}

func TestUserGetByID_PopulatesBlogs(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	first := createTestBlog(t, db, user.ID, "first", 1)
	second := createTestBlog(t, db, user.ID, "second", 2)

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}

	if found.Username != "alice" {
		t.Errorf("Username = %q, want %q", found.Username, "alice")
	}
	if len(found.Blogs) != 2 {
		t.Fatalf("Blogs has %d ids, want 2", len(found.Blogs))
	}
	// Creation order is preserved in the back-reference.
	if found.Blogs[0] != first.ID || found.Blogs[1] != second.ID {
		t.Errorf("Blogs = %v, want [%s, %s]", found.Blogs, first.ID, second.ID)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByID(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "root")

	found, err := db.GetUserByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
	if found.PasswordHash == "" {
		t.Error("GetUserByUsername() must load the password hash for login verification")
	}
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByUsername() error = %v, want ErrNotFound", err)
	}
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestBlog(t, db, alice.ID, "alice blog", 5)

	users, err := db.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("ListUsers() returned %d users, want 2", len(users))
	}
	if users[0].Username != "alice" {
		t.Errorf("first user = %q, want %q (oldest first)", users[0].Username, "alice")
	}
	if len(users[0].Blogs) != 1 {
		t.Errorf("alice.Blogs has %d ids, want 1", len(users[0].Blogs))
	}
	if len(users[1].Blogs) != 0 {
		t.Errorf("bob.Blogs has %d ids, want 0", len(users[1].Blogs))
	}
}

// TestUserAndBlogMethodsShareOneDB exercises both repository roles on the
// same connection: a blog created through the BlogRepository side shows up
// in the UserRepository side's back-reference.
func TestUserAndBlogMethodsShareOneDB(t *testing.T) {
	db := newTestDB(t)

	var blogs repository.BlogRepository = db
	var users repository.UserRepository = db

	owner := createTestUser(t, db, "alice")
	blog := &model.Blog{Title: "shared", URL: "https://s", UserID: owner.ID}
	if err := blogs.Create(context.Background(), blog); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	reloaded, err := users.GetUserByID(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if len(reloaded.Blogs) != 1 || reloaded.Blogs[0] != blog.ID {
		t.Errorf("user.Blogs = %v, want [%s]", reloaded.Blogs, blog.ID)
	}
}
