package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user. A UNIQUE violation on username is
// translated to the domain Conflict error so the service can surface
// "username taken" instead of a raw driver message.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, name, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("username", user.Username)
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Username, err)
	}

	if user.Blogs == nil {
		user.Blogs = []string{}
	}
	return nil
}

// GetUserByID retrieves a user by internal id, with their owned blog ids
// populated.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetUserByUsername retrieves a user by username. Used by the login flow.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx, `WHERE username = ?`, username)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, name, password_hash, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprintf("%v", arg))
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", arg, err)
	}

	blogs, err := db.blogIDsForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Blogs = blogs

	return &u, nil
}

// ListUsers returns all users with their blog back-references, oldest
// first.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, name, password_hash, created_at, updated_at
		 FROM users
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Name, &u.PasswordHash,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	for i := range users {
		blogs, err := db.blogIDsForUser(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Blogs = blogs
	}

	return users, nil
}

// blogIDsForUser derives the owned-blog back-reference from the blogs
// table. blogs.user_id is the source of truth for ownership, so the list is
// always consistent — there is no separate back-reference column to drift.
func (db *DB) blogIDsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id FROM blogs WHERE user_id = ? ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs for user %s: %w", userID, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog ids: %w", err)
	}

	return ids, nil
}
