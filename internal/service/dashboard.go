package service

import (
	"context"
	"time"

	"github.com/pkordes/ecodrive/internal/stats"
)

// DashboardService computes the dashboard aggregates from the session.
type DashboardService struct {
	session *Session
	opts    stats.Options
}

// NewDashboardService constructs a DashboardService. timelineLength <= 0
// means stats.DefaultTimelineLength; a nil loc renders dates in UTC.
func NewDashboardService(session *Session, timelineLength int, loc *time.Location) *DashboardService {
	return &DashboardService{
		session: session,
		opts:    stats.Options{TimelineLength: timelineLength, Location: loc},
	}
}

// Stats returns the dashboard over the current trips and drivers.
func (s *DashboardService) Stats(_ context.Context) stats.Dashboard {
	trips, drivers := s.session.Snapshot()
	return stats.Compute(trips, drivers, s.opts)
}
