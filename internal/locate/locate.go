// Package locate talks to the external services that turn free-text place
// names into candidate places and driving distances. Nothing here is trusted:
// provider answers are parsed defensively and every failure is mapped onto
// the two outcomes callers understand (an explanatory SearchResponse, or
// domain.ErrLookupUnavailable).
package locate

import (
	"context"

	"github.com/pkordes/ecodrive/internal/domain"
)

// Locator resolves places and distances.
type Locator interface {
	// SearchPlaces never fails: problems are reported in the summary and the
	// place list is left empty.
	SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse

	// CalculateDistance returns the one-way driving distance. A provider that
	// cannot be reached yields an error wrapping domain.ErrLookupUnavailable;
	// a provider that finds no route yields Km <= 0 and no error.
	CalculateDistance(ctx context.Context, origin, destination string, coords *domain.Coords) (domain.DistanceResult, error)
}

// Summaries shown when a search produced nothing usable.
const (
	SummaryUnavailable = "Lookup failed. Check your connection and try again."
	SummaryEmpty       = "No summary available."
	SummaryThrottled   = "Too many lookups right now. Try again in a moment."
)

func failedSearch(summary string) domain.SearchResponse {
	return domain.SearchResponse{Summary: summary, Places: []domain.Place{}}
}
