// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Location providers accepted in LOCATOR.
const (
	LocatorGemini = "gemini"
	LocatorMaps   = "maps"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string

	// StorageBackend selects where drivers, settings and trips are kept.
	// Defaults to "sqlite".
	StorageBackend string
	SQLitePath     string
	DatabaseURL    string // required when StorageBackend is postgres
	RedisAddr      string // required when StorageBackend is redis

	// Locator selects the place and distance provider. Defaults to "gemini".
	// A missing Gemini key is not an error: lookups then report that they
	// are not configured.
	Locator             string
	GeminiAPIKey        string
	GeminiModel         string
	MapsAPIKey          string // required when Locator is maps
	LookupTimeout       time.Duration
	LookupRatePerMinute int

	TimelineLength int
	MaxBodyBytes   int64

	// Seed holds the defaults used before anything has been saved, loaded
	// from SEED_FILE when set.
	Seed Seed
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first value that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		SQLitePath:     getEnv("SQLITE_PATH", "ecodrive.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		Locator:        strings.ToLower(getEnv("LOCATOR", LocatorGemini)),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		MapsAPIKey:     os.Getenv("MAPS_API_KEY"),
	}

	var err error
	if cfg.LookupTimeout, err = time.ParseDuration(getEnv("LOOKUP_TIMEOUT", "20s")); err != nil {
		return Config{}, fmt.Errorf("LOOKUP_TIMEOUT: %w", err)
	}
	if cfg.LookupRatePerMinute, err = getInt("LOOKUP_RATE_PER_MINUTE", 30); err != nil {
		return Config{}, err
	}
	if cfg.TimelineLength, err = getInt("TIMELINE_LENGTH", 10); err != nil {
		return Config{}, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	switch cfg.StorageBackend {
	case BackendSQLite, BackendPostgres, BackendRedis, BackendMemory:
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend)
	}
	switch cfg.Locator {
	case LocatorGemini, LocatorMaps:
	default:
		return Config{}, fmt.Errorf("LOCATOR: unknown locator %q", cfg.Locator)
	}

	var missing []string
	if cfg.StorageBackend == BackendPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.StorageBackend == BackendRedis && cfg.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if cfg.Locator == LocatorMaps && cfg.MapsAPIKey == "" {
		missing = append(missing, "MAPS_API_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg.Seed = DefaultSeed()
	if path := os.Getenv("SEED_FILE"); path != "" {
		if cfg.Seed, err = LoadSeed(path); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt is getEnv for integers.
func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
