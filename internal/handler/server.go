// Package handler implements the HTTP handlers for the EcoDrive API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/service"
	"github.com/pkordes/ecodrive/internal/stats"
)

// DriverServicer defines the roster operations the driver handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without a session or a store.
type DriverServicer interface {
	List(ctx context.Context) []domain.Driver
	Add(ctx context.Context, name string, avgConsumption float64) (domain.Driver, error)
	Remove(ctx context.Context, id string) error
	Replace(ctx context.Context, drivers []domain.Driver) ([]domain.Driver, error)
}

// SettingsServicer defines the settings operations.
type SettingsServicer interface {
	Get(ctx context.Context) domain.Settings
	Update(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}

// TripServicer defines the trip and lookup operations.
type TripServicer interface {
	Submit(ctx context.Context, req service.TripRequest) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int)
	RecentLocations(ctx context.Context, limit int) []string
	EstimateDistance(ctx context.Context, origin, destination string, coords *domain.Coords) (domain.DistanceResult, error)
	SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse
}

// DashboardServicer defines the aggregate view.
type DashboardServicer interface {
	Stats(ctx context.Context) stats.Dashboard
}

// ExportServicer defines the flat trip export.
type ExportServicer interface {
	Export(ctx context.Context) []domain.ExportRow
}

// Server holds the services every handler calls.
// A nil service is allowed in tests that never reach its routes.
type Server struct {
	drivers   DriverServicer
	settings  SettingsServicer
	trips     TripServicer
	dashboard DashboardServicer
	export    ExportServicer
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	drivers DriverServicer,
	settings SettingsServicer,
	trips TripServicer,
	dashboard DashboardServicer,
	export ExportServicer,
	log *slog.Logger,
) *Server {
	return &Server{
		drivers:   drivers,
		settings:  settings,
		trips:     trips,
		dashboard: dashboard,
		export:    export,
		log:       log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil, slog.Default())
}

// Routes returns the API router. Mount it at "/".
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", s.ListDrivers)
		r.Post("/", s.CreateDriver)
		r.Put("/", s.ReplaceDrivers)
		r.Delete("/{id}", s.DeleteDriver)
	})

	r.Get("/settings", s.GetSettings)
	r.Put("/settings", s.UpdateSettings)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/recent-locations", s.ListRecentLocations)
		r.Delete("/{id}", s.DeleteTrip)
	})

	r.Get("/distance", s.GetDistance)
	r.Get("/places", s.SearchPlaces)
	r.Get("/dashboard", s.GetDashboard)
	r.Get("/export", s.GetExport)

	return r
}
