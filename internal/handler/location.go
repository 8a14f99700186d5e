package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/pkordes/ecodrive/internal/domain"
)

// GetDistance handles GET /distance?origin=&destination=&lat=&lng=.
// It previews a driving distance without recording a trip.
func (s *Server) GetDistance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coords, err := coordsFromQuery(q)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	res, err := s.trips.EstimateDistance(r.Context(), q.Get("origin"), q.Get("destination"), coords)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SearchPlaces handles GET /places?q=&lat=&lng=.
// The lookup itself never fails: problems come back in the summary.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coords, err := coordsFromQuery(q)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.trips.SearchPlaces(r.Context(), q.Get("q"), coords))
}

// coordsFromQuery reads the optional lat/lng pair. Both or neither must be set.
func coordsFromQuery(q url.Values) (*domain.Coords, error) {
	lat, err := optionalCoord(q, "lat", 90)
	if err != nil {
		return nil, err
	}
	lng, err := optionalCoord(q, "lng", 180)
	if err != nil {
		return nil, err
	}
	return pairCoords(lat, lng)
}

func pairCoords(lat, lng *float64) (*domain.Coords, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil || lng == nil:
		return nil, errors.New("lat and lng must be given together")
	}
	return &domain.Coords{Lat: *lat, Lng: *lng}, nil
}
