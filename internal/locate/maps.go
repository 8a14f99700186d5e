package locate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/pkordes/ecodrive/internal/domain"
)

// searchRadiusMeters bounds the location bias of a text search.
const searchRadiusMeters = 50_000

// maxPlaces caps the number of candidates returned by SearchPlaces.
const maxPlaces = 5

// Maps resolves places and distances with the Google Maps Directions and
// Places APIs. Unlike Gemini its distances come straight from a routed leg.
type Maps struct {
	client   *maps.Client
	language string
	region   string
	log      *slog.Logger
}

// NewMaps wraps an existing maps client. Use maps.NewClient(maps.WithAPIKey(key)).
func NewMaps(client *maps.Client, log *slog.Logger) *Maps {
	return &Maps{client: client, language: "pt-BR", region: "br", log: log}
}

// CalculateDistance implements Locator.
func (m *Maps) CalculateDistance(ctx context.Context, origin, destination string, _ *domain.Coords) (domain.DistanceResult, error) {
	routes, _, err := m.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    m.language,
		Region:      m.region,
	})
	if err != nil {
		if isNoResult(err) {
			return domain.DistanceResult{}, nil
		}
		return domain.DistanceResult{}, fmt.Errorf("locate.Maps.CalculateDistance: %w: %w", domain.ErrLookupUnavailable, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return domain.DistanceResult{}, nil
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return domain.DistanceResult{
		Km:        float64(meters) / 1000,
		SourceURI: directionsURL(origin, destination),
	}, nil
}

// SearchPlaces implements Locator.
func (m *Maps) SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse {
	req := &maps.TextSearchRequest{
		Query:    query,
		Language: m.language,
		Region:   m.region,
	}
	if coords != nil {
		req.Location = &maps.LatLng{Lat: coords.Lat, Lng: coords.Lng}
		req.Radius = searchRadiusMeters
	}

	resp, err := m.client.TextSearch(ctx, req)
	if err != nil {
		if isNoResult(err) {
			return failedSearch(fmt.Sprintf("No places found for %q.", query))
		}
		m.log.WarnContext(ctx, "maps text search failed", "query", query, "error", err)
		return failedSearch(SummaryUnavailable)
	}

	out := domain.SearchResponse{Places: []domain.Place{}}
	for _, r := range resp.Results {
		if len(out.Places) == maxPlaces {
			break
		}
		out.Places = append(out.Places, domain.Place{
			Name:    r.Name,
			Address: r.FormattedAddress,
			URI:     placeURL(r.Name, r.PlaceID),
		})
	}

	switch len(out.Places) {
	case 0:
		out.Summary = fmt.Sprintf("No places found for %q.", query)
	case 1:
		out.Summary = fmt.Sprintf("%s, %s", out.Places[0].Name, out.Places[0].Address)
	default:
		out.Summary = fmt.Sprintf("Found %d places for %q.", len(out.Places), query)
	}
	return out
}

// isNoResult reports whether err is the client's rendering of a ZERO_RESULTS
// or NOT_FOUND status, which are answers rather than failures.
func isNoResult(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "ZERO_RESULTS") || strings.Contains(msg, "NOT_FOUND")
}

func directionsURL(origin, destination string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("travelmode", "driving")
	return "https://www.google.com/maps/dir/?" + q.Encode()
}

func placeURL(name, placeID string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", name)
	if placeID != "" {
		q.Set("query_place_id", placeID)
	}
	return "https://www.google.com/maps/search/?" + q.Encode()
}
