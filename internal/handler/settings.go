package handler

import (
	"net/http"

	"github.com/pkordes/ecodrive/internal/domain"
)

// SettingsRequest is the body of PUT /settings.
type SettingsRequest struct {
	FuelPrice *float64 `json:"fuelPrice"`
}

// GetSettings handles GET /settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Get(r.Context()))
}

// UpdateSettings handles PUT /settings.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body SettingsRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.FuelPrice == nil {
		requestError(w, "fuelPrice is required")
		return
	}

	updated, err := s.settings.Update(r.Context(), domain.Settings{FuelPrice: *body.FuelPrice})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
