package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/service"
)

// CreateTripRequest is the body of POST /trips. Distance and cost are never
// accepted from the client; they are computed from the lookup.
type CreateTripRequest struct {
	DriverID    string              `json:"driverId"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	IsRoundTrip bool                `json:"isRoundTrip"`
	Category    *string             `json:"category,omitempty"`
	Date        *openapi_types.Date `json:"date,omitempty"`
	Lat         *float64            `json:"lat,omitempty"`
	Lng         *float64            `json:"lng,omitempty"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripPage is the body of GET /trips.
type TripPage struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, err := requestToTrip(body)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.trips.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips, newest first.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := optionalInt(q, "page")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	limit, err := optionalInt(q, "limit")
	if err != nil {
		requestError(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total := s.trips.ListPaged(r.Context(), params)
	if trips == nil {
		trips = []domain.Trip{}
	}
	writeJSON(w, http.StatusOK, TripPage{
		Data: trips,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeleteTrip handles DELETE /trips/{id}. An unknown id still answers 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRecentLocations handles GET /trips/recent-locations?limit=.
func (s *Server) ListRecentLocations(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalInt(r.URL.Query(), "limit")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	writeJSON(w, http.StatusOK, s.trips.RecentLocations(r.Context(), n))
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a CreateTripRequest body into a service.TripRequest.
func requestToTrip(body CreateTripRequest) (service.TripRequest, error) {
	if err := checkCoord("lat", body.Lat, 90); err != nil {
		return service.TripRequest{}, err
	}
	if err := checkCoord("lng", body.Lng, 180); err != nil {
		return service.TripRequest{}, err
	}
	coords, err := pairCoords(body.Lat, body.Lng)
	if err != nil {
		return service.TripRequest{}, err
	}
	req := service.TripRequest{
		DriverID:    body.DriverID,
		Origin:      body.Origin,
		Destination: body.Destination,
		IsRoundTrip: body.IsRoundTrip,
		Coords:      coords,
	}
	if body.Category != nil {
		req.Category = domain.Category(*body.Category)
	}
	if body.Date != nil {
		d := body.Date.Time
		req.Date = &d
	}
	return req, nil
}
