// Package service contains the business logic for the EcoDrive API.
// Services validate inputs, enforce business rules, and orchestrate the
// session, the calculator and the location lookups. No storage code lives
// here: the session depends on a Store interface, not an implementation.
package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pkordes/ecodrive/internal/domain"
)

// Store is the persistence the session writes through to.
// *store.Store satisfies it.
type Store interface {
	Drivers(ctx context.Context) []domain.Driver
	SaveDrivers(ctx context.Context, drivers []domain.Driver) error
	Settings(ctx context.Context) domain.Settings
	SaveSettings(ctx context.Context, settings domain.Settings) error
	Trips(ctx context.Context) []domain.Trip
	AppendTrip(ctx context.Context, t domain.Trip) ([]domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) ([]domain.Trip, error)
}

// Session holds the working copies of drivers, settings and trips.
// Every mutation is written to the store first; the working copy only
// changes once that write succeeded, so a failed save leaves both the store
// and the session as they were.
type Session struct {
	store Store

	mu       sync.RWMutex
	drivers  []domain.Driver
	settings domain.Settings
	trips    []domain.Trip
}

// OpenSession loads all three collections from st.
func OpenSession(ctx context.Context, st Store) *Session {
	return &Session{
		store:    st,
		drivers:  st.Drivers(ctx),
		settings: st.Settings(ctx),
		trips:    st.Trips(ctx),
	}
}

// Drivers returns a copy of the driver roster.
func (s *Session) Drivers() []domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.drivers)
}

// Settings returns the current settings.
func (s *Session) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Trips returns a copy of the trip history, newest first.
func (s *Session) Trips() []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trips)
}

// Snapshot returns consistent copies of trips and drivers taken under one lock.
func (s *Session) Snapshot() ([]domain.Trip, []domain.Driver) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trips), slices.Clone(s.drivers)
}

// UpdateDrivers applies fn to a copy of the roster and saves the result.
// fn returning changed=false skips the write. The roster is locked for the
// whole read-modify-write so concurrent edits are not lost.
func (s *Session) UpdateDrivers(ctx context.Context, fn func([]domain.Driver) ([]domain.Driver, bool, error)) ([]domain.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(slices.Clone(s.drivers))
	if err != nil {
		return nil, err
	}
	if !changed {
		return slices.Clone(s.drivers), nil
	}
	if next == nil {
		next = []domain.Driver{}
	}
	if err := s.store.SaveDrivers(ctx, next); err != nil {
		return nil, fmt.Errorf("service.Session.UpdateDrivers: %w", err)
	}
	s.drivers = next
	return slices.Clone(next), nil
}

// SetSettings saves settings and adopts them.
func (s *Session) SetSettings(ctx context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("service.Session.SetSettings: %w", err)
	}
	s.settings = settings
	return nil
}

// AppendTrip records t as the newest trip.
func (s *Session) AppendTrip(ctx context.Context, t domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.store.AppendTrip(ctx, t)
	if err != nil {
		return fmt.Errorf("service.Session.AppendTrip: %w", err)
	}
	s.trips = trips
	return nil
}

// DeleteTrip removes the trip with the given id. An unknown id is not an error.
func (s *Session) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.store.DeleteTrip(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Session.DeleteTrip: %w", err)
	}
	s.trips = trips
	return nil
}
