package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the pure Go "sqlite" driver for database/sql
)

// SQLite is a Medium backed by the kv_entries table of a local SQLite file.
// It is the default medium: a single file next to the binary plays the role
// that localStorage played for the browser app.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
// SQLite allows one writer at a time, so the pool is capped at a single
// connection and a busy timeout absorbs short lock waits.
// The kv_entries table is created by the goose migrations, not here.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("kv.OpenSQLite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv.OpenSQLite: ping: %w", err)
	}
	return db, nil
}

// NewSQLite wraps an open SQLite handle whose schema is already migrated.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Get implements Medium.
func (s *SQLite) Get(ctx context.Context, key string) (Entry, bool, error) {
	const q = `SELECT value, revision FROM kv_entries WHERE key = ?`

	var (
		value string
		e     Entry
	)
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value, &e.Revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("kv.SQLite.Get: %w", err)
	}
	e.Value = []byte(value)
	return e, true, nil
}

// Put implements Medium.
func (s *SQLite) Put(ctx context.Context, key string, value []byte, expect int64) (int64, error) {
	var (
		q    string
		args []any
	)
	switch {
	case expect == AnyRevision:
		q = `
			INSERT INTO kv_entries (key, value, revision)
			VALUES (?, ?, 1)
			ON CONFLICT (key) DO UPDATE
			SET value      = excluded.value,
			    revision   = kv_entries.revision + 1,
			    updated_at = CURRENT_TIMESTAMP
			RETURNING revision`
		args = []any{key, string(value)}
	case expect == 0:
		q = `
			INSERT INTO kv_entries (key, value, revision)
			VALUES (?, ?, 1)
			ON CONFLICT (key) DO NOTHING
			RETURNING revision`
		args = []any{key, string(value)}
	default:
		q = `
			UPDATE kv_entries
			SET value      = ?,
			    revision   = revision + 1,
			    updated_at = CURRENT_TIMESTAMP
			WHERE key = ? AND revision = ?
			RETURNING revision`
		args = []any{string(value), key, expect}
	}

	var rev int64
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&rev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("kv.SQLite.Put: %w", ErrConflict)
		}
		return 0, fmt.Errorf("kv.SQLite.Put: %w", err)
	}
	return rev, nil
}
