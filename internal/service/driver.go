package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/ecodrive/internal/domain"
)

// DriverService manages the household's driver roster.
// Removing a driver never touches recorded trips: they keep the name
// snapshot taken when they were submitted.
type DriverService struct {
	session *Session
	newID   func() string
}

// NewDriverService constructs a DriverService over the given session.
func NewDriverService(session *Session) *DriverService {
	return &DriverService{session: session, newID: uuid.NewString}
}

// List returns the current roster.
func (s *DriverService) List(_ context.Context) []domain.Driver {
	return s.session.Drivers()
}

// Add validates and appends a new driver with a fresh id.
// Returns domain.ErrValidation for a blank name or a non-positive consumption.
func (s *DriverService) Add(ctx context.Context, name string, avgConsumption float64) (domain.Driver, error) {
	d := domain.Driver{ID: s.newID(), Name: strings.TrimSpace(name), AvgConsumption: avgConsumption}
	if err := validateDriver(d); err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Add: %w", err)
	}

	_, err := s.session.UpdateDrivers(ctx, func(drivers []domain.Driver) ([]domain.Driver, bool, error) {
		return append(drivers, d), true, nil
	})
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.DriverService.Add: %w", err)
	}
	return d, nil
}

// Remove deletes the driver with the given id. Removing an unknown id
// succeeds without writing.
func (s *DriverService) Remove(ctx context.Context, id string) error {
	_, err := s.session.UpdateDrivers(ctx, func(drivers []domain.Driver) ([]domain.Driver, bool, error) {
		kept := drivers[:0]
		for _, d := range drivers {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		return kept, len(kept) != len(drivers), nil
	})
	if err != nil {
		return fmt.Errorf("service.DriverService.Remove: %w", err)
	}
	return nil
}

// Replace swaps the whole roster. Every entry is validated; entries without
// an id get a fresh one. Duplicate ids are rejected.
func (s *DriverService) Replace(ctx context.Context, drivers []domain.Driver) ([]domain.Driver, error) {
	next := make([]domain.Driver, 0, len(drivers))
	seen := make(map[string]bool, len(drivers))
	for i, d := range drivers {
		d.Name = strings.TrimSpace(d.Name)
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			d.ID = s.newID()
		}
		if err := validateDriver(d); err != nil {
			return nil, fmt.Errorf("service.DriverService.Replace: driver %d: %w", i, err)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("service.DriverService.Replace: %w: duplicate driver id %q", domain.ErrValidation, d.ID)
		}
		seen[d.ID] = true
		next = append(next, d)
	}

	saved, err := s.session.UpdateDrivers(ctx, func([]domain.Driver) ([]domain.Driver, bool, error) {
		return next, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.DriverService.Replace: %w", err)
	}
	return saved, nil
}

func validateDriver(d domain.Driver) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if math.IsNaN(d.AvgConsumption) || math.IsInf(d.AvgConsumption, 0) || d.AvgConsumption <= 0 {
		return fmt.Errorf("%w: avgConsumption must be greater than zero", domain.ErrValidation)
	}
	return nil
}
