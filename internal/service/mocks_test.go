package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/model"
)

// Hand-written in-memory mocks. They implement the repository interfaces so
// services can be tested with plain function calls — no database, no HTTP.

type mockBlogRepo struct {
	blogs  map[string]*model.Blog
	order  []string // insertion order, so List is deterministic
	owners map[string]model.OwnerSummary
	nextID int
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{
		blogs:  make(map[string]*model.Blog),
		owners: make(map[string]model.OwnerSummary),
	}
}

func (m *mockBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	m.nextID++
	blog.ID = fmt.Sprintf("blog-%d", m.nextID)
	stored := *blog
	m.blogs[blog.ID] = &stored
	m.order = append(m.order, blog.ID)
	return nil
}

func (m *mockBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	blog, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	result := *blog
	return &result, nil
}

func (m *mockBlogRepo) List(_ context.Context) ([]model.BlogWithOwner, error) {
	result := make([]model.BlogWithOwner, 0, len(m.order))
	for _, id := range m.order {
		b := model.BlogWithOwner{Blog: *m.blogs[id]}
		if owner, ok := m.owners[b.UserID]; ok {
			o := owner
			b.Owner = &o
		}
		result = append(result, b)
	}
	return result, nil
}

func (m *mockBlogRepo) Update(_ context.Context, blog *model.Blog) error {
	if _, ok := m.blogs[blog.ID]; !ok {
		return apperror.NotFound("blog", blog.ID)
	}
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.blogs[id]; !ok {
		return apperror.NotFound("blog", id)
	}
	delete(m.blogs, id)
	for i, bid := range m.order {
		if bid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type mockUserRepo struct {
	users  map[string]*model.User // by id
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict("username", user.Username)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	if user.Blogs == nil {
		user.Blogs = []string{}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for i := 1; i <= m.nextID; i++ {
		if u, ok := m.users[fmt.Sprintf("user-%d", i)]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// testLogger discards everything below Error so test output stays readable.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fastPasswords uses bcrypt.MinCost so service tests don't pay ~250ms per
// hash.
func fastPasswords(t *testing.T) *auth.PasswordService {
	t.Helper()
	return auth.NewPasswordServiceForTest(bcrypt.MinCost)
}
