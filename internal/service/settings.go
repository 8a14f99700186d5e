package service

import (
	"context"
	"fmt"
	"math"

	"github.com/pkordes/ecodrive/internal/domain"
)

// SettingsService reads and changes the household settings.
// A new fuel price only affects trips submitted afterwards.
type SettingsService struct {
	session *Session
}

// NewSettingsService constructs a SettingsService over the given session.
func NewSettingsService(session *Session) *SettingsService {
	return &SettingsService{session: session}
}

// Get returns the current settings.
func (s *SettingsService) Get(_ context.Context) domain.Settings {
	return s.session.Settings()
}

// Update validates and saves settings.
// Returns domain.ErrValidation unless FuelPrice is a positive number.
func (s *SettingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if math.IsNaN(settings.FuelPrice) || math.IsInf(settings.FuelPrice, 0) || settings.FuelPrice <= 0 {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Update: %w: fuelPrice must be greater than zero", domain.ErrValidation)
	}
	if err := s.session.SetSettings(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Update: %w", err)
	}
	return settings, nil
}
