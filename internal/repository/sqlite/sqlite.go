// Package sqlite implements the repository interfaces on SQLite.
//
// WHY SQLITE?
// The whole store is a single file inside the deployment — nothing to
// install or operate. modernc.org/sqlite is a pure-Go translation of the
// SQLite C sources, so builds need no C toolchain and cross-compile cleanly.
//
// The driver registers itself with database/sql under the name "sqlite" via
// the blank import below; everything else is plain database/sql.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB pool and implements repository.BlogRepository and
// repository.UserRepository. The server owns the lifecycle: New opens it,
// Close releases it on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// A single connection keeps ":memory:" databases coherent (each new
	// connection would otherwise get its own empty database) and matches
	// SQLite's one-writer-at-a-time model.
	conn.SetMaxOpenConns(1)

	// sql.Open is lazy; Ping forces a real connection so a bad path fails
	// here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — default SQLite
	// locking would serialise every request in the HTTP server.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. We want blogs.user_id to
	// actually reference users.id.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it runs unconditionally at startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS blogs (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			author     TEXT NOT NULL DEFAULT '',
			url        TEXT NOT NULL,
			likes      INTEGER NOT NULL DEFAULT 0,
			user_id    TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id);
		CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating blogs table: %w", err)
	}

	return nil
}
