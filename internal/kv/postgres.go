package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres is a Medium backed by the kv_entries table in PostgreSQL.
type Postgres struct {
	db db
}

// NewPostgres constructs a Postgres medium. In production pass *pgxpool.Pool;
// in tests pass a pgx.Tx for rollback isolation.
func NewPostgres(db db) *Postgres {
	return &Postgres{db: db}
}

// Get implements Medium.
func (p *Postgres) Get(ctx context.Context, key string) (Entry, bool, error) {
	const q = `SELECT value, revision FROM kv_entries WHERE key = @key`

	var (
		value string
		e     Entry
	)
	err := p.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value, &e.Revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("kv.Postgres.Get: %w", err)
	}
	e.Value = []byte(value)
	return e, true, nil
}

// Put implements Medium.
func (p *Postgres) Put(ctx context.Context, key string, value []byte, expect int64) (int64, error) {
	var q string
	switch {
	case expect == AnyRevision:
		q = `
			INSERT INTO kv_entries (key, value, revision)
			VALUES (@key, @value, 1)
			ON CONFLICT (key) DO UPDATE
			SET value      = EXCLUDED.value,
			    revision   = kv_entries.revision + 1,
			    updated_at = CURRENT_TIMESTAMP
			RETURNING revision`
	case expect == 0:
		q = `
			INSERT INTO kv_entries (key, value, revision)
			VALUES (@key, @value, 1)
			ON CONFLICT (key) DO NOTHING
			RETURNING revision`
	default:
		q = `
			UPDATE kv_entries
			SET value      = @value,
			    revision   = revision + 1,
			    updated_at = CURRENT_TIMESTAMP
			WHERE key = @key AND revision = @expect
			RETURNING revision`
	}

	args := pgx.NamedArgs{
		"key":    key,
		"value":  string(value),
		"expect": expect,
	}

	var rev int64
	if err := p.db.QueryRow(ctx, q, args).Scan(&rev); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("kv.Postgres.Put: %w", ErrConflict)
		}
		return 0, fmt.Errorf("kv.Postgres.Put: %w", err)
	}
	return rev, nil
}
