package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"github.com/pkordes/ecodrive/internal/config"
	"github.com/pkordes/ecodrive/internal/kv"
	"github.com/pkordes/ecodrive/internal/locate"
	"github.com/pkordes/ecodrive/migrations"
)

// openMedium connects the configured storage backend, applies pending
// migrations for the SQL backends and returns a cleanup func.
func openMedium(ctx context.Context, cfg config.Config, log *slog.Logger) (kv.Medium, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return kv.NewMemory(), func() {}, nil

	case config.BackendSQLite:
		db, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		n, err := migrations.Up(ctx, goose.DialectSQLite3, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("sqlite ready", "path", cfg.SQLitePath, "migrations_applied", n)
		return kv.NewSQLite(db), func() { db.Close() }, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect: %w", err)
		}
		// goose needs database/sql; share the pool's connections.
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, goose.DialectPostgres, db)
		db.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("database connection established", "migrations_applied", n)
		return kv.NewPostgres(pool), pool.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect: %w", err)
		}
		log.Info("redis connection established", "addr", cfg.RedisAddr)
		return kv.NewRedis(client, "ecodrive:"), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// newLocator builds the configured place/distance provider behind the
// request timeout and rate limit. A provider that cannot be built is
// replaced by one that reports why, so the rest of the app keeps working.
func newLocator(ctx context.Context, cfg config.Config, log *slog.Logger) (locate.Locator, func()) {
	var (
		inner   locate.Locator
		cleanup = func() {}
	)

	switch cfg.Locator {
	case config.LocatorMaps:
		client, err := maps.NewClient(maps.WithAPIKey(cfg.MapsAPIKey))
		if err != nil {
			log.Error("maps client unavailable", "error", err)
			inner = locate.Unconfigured{Reason: "Maps lookups are unavailable."}
			break
		}
		inner = locate.NewMaps(client, log)

	default:
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set; place and distance lookups are disabled")
			inner = locate.Unconfigured{Reason: "Place lookups are not configured (missing API key)."}
			break
		}
		g, err := locate.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			log.Error("gemini client unavailable", "error", err)
			inner = locate.Unconfigured{Reason: "Place lookups are unavailable."}
			break
		}
		inner = g
		cleanup = func() { g.Close() }
	}

	return locate.NewLimited(inner, cfg.LookupRatePerMinute, cfg.LookupTimeout, log), cleanup
}
