package locate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/pkordes/ecodrive/internal/domain"
)

// DefaultTimeout bounds a single lookup when none is configured.
const DefaultTimeout = 20 * time.Second

// Limited wraps a Locator with a request budget and a per-call deadline.
// Lookups that cannot get a token before the deadline are reported as
// unavailable instead of queueing indefinitely.
type Limited struct {
	inner   Locator
	limiter *rate.Limiter
	timeout time.Duration
	log     *slog.Logger
}

// NewLimited allows perMinute lookups per minute (unlimited when <= 0), each
// bounded by timeout (DefaultTimeout when <= 0).
func NewLimited(inner Locator, perMinute int, timeout time.Duration, log *slog.Logger) *Limited {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), min(perMinute, 5))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Limited{inner: inner, limiter: limiter, timeout: timeout, log: log}
}

// SearchPlaces implements Locator.
func (l *Limited) SearchPlaces(ctx context.Context, query string, coords *domain.Coords) domain.SearchResponse {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.limiter.Wait(ctx); err != nil {
		l.log.WarnContext(ctx, "place search throttled", "error", err)
		return failedSearch(SummaryThrottled)
	}
	return l.inner.SearchPlaces(ctx, query, coords)
}

// CalculateDistance implements Locator.
func (l *Limited) CalculateDistance(ctx context.Context, origin, destination string, coords *domain.Coords) (domain.DistanceResult, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.limiter.Wait(ctx); err != nil {
		return domain.DistanceResult{}, fmt.Errorf("locate.Limited.CalculateDistance: %w: %w", domain.ErrLookupUnavailable, err)
	}
	return l.inner.CalculateDistance(ctx, origin, destination, coords)
}
