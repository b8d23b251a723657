package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// compile-time check that *DB implements repository.BlogRepository
var _ repository.BlogRepository = (*DB)(nil)

// Create inserts a new blog. The id (a sortable xid) and timestamps are
// assigned here, on the caller's struct, so the caller gets the persisted
// record back without a second query.
func (db *DB) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = xid.New().String()

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	return nil
}

// GetByID retrieves a single blog. sql.ErrNoRows is translated to the
// domain NotFound error so handlers can map it to 404.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var b model.Blog

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, author, url, likes, user_id, created_at, updated_at
		 FROM blogs
		 WHERE id = ?`,
		id,
	).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.URL,
		&b.Likes,
		&b.UserID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	return &b, nil
}

// List returns every blog joined with its owner's public fields.
//
// A LEFT JOIN keeps a blog visible even if its user row is somehow gone;
// in that case Owner stays nil rather than dropping the blog from the
// listing. Ordered oldest-first so the listing is stable across requests.
func (db *DB) List(ctx context.Context) ([]model.BlogWithOwner, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id,
		        b.created_at, b.updated_at,
		        u.id, u.username, u.name
		 FROM blogs b
		 LEFT JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at, b.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.BlogWithOwner, 0)

	for rows.Next() {
		var b model.BlogWithOwner
		var ownerID, ownerUsername, ownerName sql.NullString

		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID,
			&b.CreatedAt, &b.UpdatedAt,
			&ownerID, &ownerUsername, &ownerName,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}

		if ownerID.Valid {
			b.Owner = &model.OwnerSummary{
				ID:       ownerID.String,
				Username: ownerUsername.String,
				Name:     ownerName.String,
			}
		}

		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update overwrites the mutable fields (title, author, url, likes) of an
// existing blog. id, user_id, and created_at are immutable. RowsAffected
// tells us whether the id matched anything — zero rows means NotFound.
func (db *DB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, author = ?, url = ?, likes = ?, updated_at = ?
		 WHERE id = ?`,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %s: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}

// Delete removes a blog by id. Same RowsAffected pattern as Update.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
