package locate

import (
	"context"
	"fmt"

	"github.com/pkordes/ecodrive/internal/domain"
)

// Unconfigured is the Locator used when no provider credentials are set.
// It keeps the API usable (drivers, settings, dashboard) while every lookup
// explains what is missing.
type Unconfigured struct {
	Reason string
}

// SearchPlaces implements Locator.
func (u Unconfigured) SearchPlaces(context.Context, string, *domain.Coords) domain.SearchResponse {
	return failedSearch(u.Reason)
}

// CalculateDistance implements Locator.
func (u Unconfigured) CalculateDistance(context.Context, string, string, *domain.Coords) (domain.DistanceResult, error) {
	return domain.DistanceResult{}, fmt.Errorf("locate.Unconfigured: %w: %s", domain.ErrLookupUnavailable, u.Reason)
}
