// Package store is the persisted state of the fuel log: the drivers list, the
// settings object and the trips list, each a JSON document under its own key
// in a kv.Medium.
//
// Reads never fail: a missing or unreadable document is replaced by the
// configured default. Writes replace the whole document and report medium
// failures as domain.ErrStorageWrite. Trip mutations are read-modify-write
// cycles, serialized in-process and guarded across processes by the medium's
// revision check.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/kv"
)

// Keys of the three persisted documents. They match the localStorage keys of
// the browser app.
const (
	KeyDrivers  = "ecodrive_drivers"
	KeySettings = "ecodrive_settings"
	KeyTrips    = "ecodrive_trips"
)

// DefaultMaxAttempts bounds how often a trip mutation is retried after losing
// a revision race to another writer.
const DefaultMaxAttempts = 5

// Defaults are the values returned when nothing (or nothing readable) has
// been stored yet. Trips always default to an empty list.
type Defaults struct {
	Drivers  []domain.Driver
	Settings domain.Settings
}

// Option customizes a Store.
type Option func(*Store)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// Store reads and writes the persisted documents. It is safe for concurrent
// use.
type Store struct {
	medium      kv.Medium
	defaults    Defaults
	log         *slog.Logger
	maxAttempts int

	// mu serializes writes issued by this process.
	mu sync.Mutex
}

// New constructs a Store over medium.
func New(medium kv.Medium, defaults Defaults, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		medium:      medium,
		defaults:    defaults,
		log:         log,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---- drivers ---------------------------------------------------------------

// Drivers returns the stored driver list, or the default drivers.
func (s *Store) Drivers(ctx context.Context) []domain.Driver {
	return loadOrDefault(ctx, s, KeyDrivers, s.defaultDrivers)
}

// SaveDrivers replaces the stored driver list.
func (s *Store) SaveDrivers(ctx context.Context, drivers []domain.Driver) error {
	if drivers == nil {
		drivers = []domain.Driver{}
	}
	if err := s.replace(ctx, KeyDrivers, drivers); err != nil {
		return fmt.Errorf("store.Store.SaveDrivers: %w", err)
	}
	return nil
}

func (s *Store) defaultDrivers() []domain.Driver {
	return slices.Clone(s.defaults.Drivers)
}

// ---- settings --------------------------------------------------------------

// Settings returns the stored settings, or the default settings.
func (s *Store) Settings(ctx context.Context) domain.Settings {
	return loadOrDefault(ctx, s, KeySettings, s.defaultSettings)
}

// SaveSettings replaces the stored settings.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := s.replace(ctx, KeySettings, settings); err != nil {
		return fmt.Errorf("store.Store.SaveSettings: %w", err)
	}
	return nil
}

func (s *Store) defaultSettings() domain.Settings {
	return s.defaults.Settings
}

// ---- trips -----------------------------------------------------------------

// Trips returns the stored trips, newest first, or an empty list.
func (s *Store) Trips(ctx context.Context) []domain.Trip {
	return loadOrDefault(ctx, s, KeyTrips, emptyTrips)
}

// SaveTrips replaces the stored trip list.
func (s *Store) SaveTrips(ctx context.Context, trips []domain.Trip) error {
	if trips == nil {
		trips = []domain.Trip{}
	}
	if err := s.replace(ctx, KeyTrips, trips); err != nil {
		return fmt.Errorf("store.Store.SaveTrips: %w", err)
	}
	return nil
}

// AppendTrip inserts t at the front of the stored list and returns the list
// as written.
func (s *Store) AppendTrip(ctx context.Context, t domain.Trip) ([]domain.Trip, error) {
	trips, err := s.mutateTrips(ctx, func(current []domain.Trip) ([]domain.Trip, bool) {
		next := make([]domain.Trip, 0, len(current)+1)
		next = append(next, t)
		return append(next, current...), true
	})
	if err != nil {
		return nil, fmt.Errorf("store.Store.AppendTrip: %w", err)
	}
	return trips, nil
}

// DeleteTrip removes the trip with the given id and returns the resulting
// list. Deleting an id that is not stored is a no-op and writes nothing.
func (s *Store) DeleteTrip(ctx context.Context, id string) ([]domain.Trip, error) {
	trips, err := s.mutateTrips(ctx, func(current []domain.Trip) ([]domain.Trip, bool) {
		next := slices.DeleteFunc(slices.Clone(current), func(t domain.Trip) bool { return t.ID == id })
		return next, len(next) != len(current)
	})
	if err != nil {
		return nil, fmt.Errorf("store.Store.DeleteTrip: %w", err)
	}
	return trips, nil
}

func emptyTrips() []domain.Trip {
	return []domain.Trip{}
}

// mutateTrips runs fn against the current trip list and writes the result
// back at the revision it was read at. Losing the race to another writer
// re-reads and re-applies fn, up to maxAttempts times.
func (s *Store) mutateTrips(ctx context.Context, fn func([]domain.Trip) ([]domain.Trip, bool)) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		current, rev, err := fetch(ctx, s, KeyTrips, emptyTrips)
		if err != nil {
			// Writing on top of a document we could not read would drop it.
			return nil, fmt.Errorf("%w: read before write: %w", domain.ErrStorageWrite, err)
		}

		next, changed := fn(current)
		if !changed {
			return next, nil
		}

		err = s.write(ctx, KeyTrips, next, rev)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, kv.ErrConflict) {
			s.log.ErrorContext(ctx, "storage write failed", "key", KeyTrips, "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
		}

		lastErr = err
		s.log.DebugContext(ctx, "trip list changed concurrently, retrying",
			"key", KeyTrips, "attempt", attempt)
	}
	return nil, fmt.Errorf("%w: gave up after %d attempts: %w", domain.ErrStorageWrite, s.maxAttempts, lastErr)
}

// ---- shared plumbing -------------------------------------------------------

// loadOrDefault reads key and absorbs every failure into the default value.
func loadOrDefault[T any](ctx context.Context, s *Store, key string, fallback func() T) T {
	v, _, err := fetch(ctx, s, key, fallback)
	if err != nil {
		s.log.WarnContext(ctx, "storage read failed, using default", "key", key, "error", err)
	}
	return v
}

// fetch returns the document under key and the revision it was read at.
// A missing document yields fallback() at revision 0; an unreadable one
// yields fallback() at its stored revision, so the next write replaces it.
// Only medium errors are returned, together with fallback().
func fetch[T any](ctx context.Context, s *Store, key string, fallback func() T) (T, int64, error) {
	e, found, err := s.medium.Get(ctx, key)
	if err != nil {
		return fallback(), 0, err
	}
	if !found {
		return fallback(), 0, nil
	}

	v, err := decode[T](e.Value)
	if err != nil {
		s.log.WarnContext(ctx, "stored document unreadable, using default",
			"key", key, "revision", e.Revision, "error", err)
		return fallback(), e.Revision, nil
	}
	return v, e.Revision, nil
}

// replace writes value under key unconditionally.
func (s *Store) replace(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, key, value, kv.AnyRevision); err != nil {
		s.log.ErrorContext(ctx, "storage write failed", "key", key, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, key string, value any, expect int64) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}
	_, err = s.medium.Put(ctx, key, raw, expect)
	return err
}
