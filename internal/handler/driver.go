package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/ecodrive/internal/domain"
)

// DriverRequest is the body of POST /drivers and each entry of PUT /drivers.
// ID is ignored on POST and optional on PUT.
type DriverRequest struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	AvgConsumption float64 `json:"avgConsumption"`
}

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.drivers.List(r.Context()))
}

// CreateDriver handles POST /drivers.
func (s *Server) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var body DriverRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.drivers.Add(r.Context(), body.Name, body.AvgConsumption)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ReplaceDrivers handles PUT /drivers: the body is the complete new roster.
func (s *Server) ReplaceDrivers(w http.ResponseWriter, r *http.Request) {
	var body []DriverRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body == nil {
		requestError(w, "request body must be a JSON array")
		return
	}

	drivers := make([]domain.Driver, len(body))
	for i, d := range body {
		drivers[i] = domain.Driver{ID: d.ID, Name: d.Name, AvgConsumption: d.AvgConsumption}
	}

	saved, err := s.drivers.Replace(r.Context(), drivers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteDriver handles DELETE /drivers/{id}.
// Recorded trips keep their driver snapshot; an unknown id still answers 204.
func (s *Server) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := s.drivers.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
