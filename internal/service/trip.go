package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/ecodrive/internal/domain"
)

// DefaultRecentLocations is the number of recent locations returned when the
// caller does not ask for a specific count.
const DefaultRecentLocations = 5

// Locator is the location lookup the trip service depends on.
// *locate.Limited and the concrete locators satisfy it.
type Locator interface {
	SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse
	CalculateDistance(ctx context.Context, origin, destination string, coords *domain.Coords) (domain.DistanceResult, error)
}

// TripRequest is a trip submission before its distance and cost are known.
// Zero Category means Trabalho; nil Date means today (UTC).
type TripRequest struct {
	DriverID    string
	Origin      string
	Destination string
	IsRoundTrip bool
	Category    domain.Category
	Date        *time.Time
	Coords      *domain.Coords
}

// TripService records trips and answers questions about them.
type TripService struct {
	session *Session
	locator Locator
	log     *slog.Logger
	now     func() time.Time
	newID   func() string
}

// TripOption customizes a TripService.
type TripOption func(*TripService)

// WithClock replaces time.Now as the source of the default trip date.
func WithClock(now func() time.Time) TripOption {
	return func(s *TripService) { s.now = now }
}

// NewTripService constructs a TripService.
func NewTripService(session *Session, locator Locator, log *slog.Logger, opts ...TripOption) *TripService {
	s := &TripService{
		session: session,
		locator: locator,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit resolves the distance of a trip, prices it with the driver's
// consumption and the current fuel price, and records it as the newest trip.
//
// Errors, all wrapped:
//   - domain.ErrValidation for a missing driver, origin or destination, an
//     unknown driver or category;
//   - domain.ErrLookupUnavailable when the distance could not be looked up;
//   - domain.ErrRouteNotFound when the lookup found no route;
//   - domain.ErrDomain when the driver's consumption is unusable;
//   - domain.ErrStorageWrite when the trip could not be saved.
//
// Nothing is recorded on any error path.
func (s *TripService) Submit(ctx context.Context, req TripRequest) (domain.Trip, error) {
	req, err := s.normalize(req)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}

	driver, ok := domain.FindDriver(s.session.Drivers(), req.DriverID)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w: unknown driver %q", domain.ErrValidation, req.DriverID)
	}

	res, err := s.locator.CalculateDistance(ctx, req.Origin, req.Destination, req.Coords)
	if err != nil {
		s.log.InfoContext(ctx, "distance lookup failed",
			"origin", req.Origin, "destination", req.Destination, "error", err)
		if !errors.Is(err, domain.ErrLookupUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}
	if math.IsNaN(res.Km) || res.Km <= 0 {
		s.log.InfoContext(ctx, "no route between locations",
			"origin", req.Origin, "destination", req.Destination)
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w: %s to %s",
			domain.ErrRouteNotFound, req.Origin, req.Destination)
	}

	econ, err := domain.ComputeTrip(res.Km, req.IsRoundTrip, driver.AvgConsumption, s.session.Settings().FuelPrice)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}

	trip := domain.Trip{
		ID:            s.newID(),
		DriverID:      driver.ID,
		DriverName:    driver.Name,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Distance:      res.Km,
		IsRoundTrip:   req.IsRoundTrip,
		TotalDistance: econ.TotalDistance,
		Cost:          econ.Cost,
		Date:          *req.Date,
		Category:      req.Category,
	}
	if err := s.session.AppendTrip(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}
	return trip, nil
}

// normalize trims the request, applies defaults and checks required fields.
func (s *TripService) normalize(req TripRequest) (TripRequest, error) {
	req.DriverID = strings.TrimSpace(req.DriverID)
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)

	var missing []string
	if req.DriverID == "" {
		missing = append(missing, "driverId")
	}
	if req.Origin == "" {
		missing = append(missing, "origin")
	}
	if req.Destination == "" {
		missing = append(missing, "destination")
	}
	if len(missing) > 0 {
		return req, fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}

	if req.Category == "" {
		req.Category = domain.CategoryWork
	}
	if !req.Category.Valid() {
		return req, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, req.Category)
	}

	if req.Date == nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		req.Date = &today
	}
	return req, nil
}

// Delete removes the trip with the given id. An unknown id is not an error.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("service.TripService.Delete: %w: id is required", domain.ErrValidation)
	}
	if err := s.session.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// List returns every trip, newest first.
func (s *TripService) List(_ context.Context) []domain.Trip {
	return s.session.Trips()
}

// ListPaged returns one page of trips, newest first, and the total count.
func (s *TripService) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int) {
	trips := s.session.Trips()
	lo, hi := p.Window(len(trips))
	return trips[lo:hi], len(trips)
}

// RecentLocations returns up to limit distinct places from the most recent
// trips, origin before destination, newest trip first.
// limit <= 0 means DefaultRecentLocations.
func (s *TripService) RecentLocations(_ context.Context, limit int) []string {
	if limit <= 0 {
		limit = DefaultRecentLocations
	}
	out := []string{}
	seen := make(map[string]bool)
	for _, t := range s.session.Trips() {
		for _, loc := range []string{t.Origin, t.Destination} {
			if loc == "" || seen[loc] {
				continue
			}
			seen[loc] = true
			out = append(out, loc)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

// EstimateDistance previews the distance between two places without
// recording anything. It fails the same way Submit does when the lookup is
// unavailable or finds no route.
func (s *TripService) EstimateDistance(ctx context.Context, origin, destination string, coords *domain.Coords) (domain.DistanceResult, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return domain.DistanceResult{}, fmt.Errorf("service.TripService.EstimateDistance: %w: origin and destination are required", domain.ErrValidation)
	}

	res, err := s.locator.CalculateDistance(ctx, origin, destination, coords)
	if err != nil {
		if !errors.Is(err, domain.ErrLookupUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
		}
		return domain.DistanceResult{}, fmt.Errorf("service.TripService.EstimateDistance: %w", err)
	}
	if math.IsNaN(res.Km) || res.Km <= 0 {
		return domain.DistanceResult{}, fmt.Errorf("service.TripService.EstimateDistance: %w: %s to %s",
			domain.ErrRouteNotFound, origin, destination)
	}
	return res, nil
}

// SearchPlaces looks up candidate places for a free-text query.
// It never fails; a blank query gets an explanatory summary.
func (s *TripService) SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResponse{Summary: "Type a place to search for.", Places: []domain.Place{}}
	}
	resp := s.locator.SearchPlaces(ctx, query, coords)
	if resp.Places == nil {
		resp.Places = []domain.Place{}
	}
	return resp
}
