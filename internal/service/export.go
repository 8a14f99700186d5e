package service

import (
	"context"

	"github.com/pkordes/ecodrive/internal/domain"
)

// ExportService flattens the trip history for download.
type ExportService struct {
	session *Session
}

// NewExportService constructs an ExportService over the given session.
func NewExportService(session *Session) *ExportService {
	return &ExportService{session: session}
}

// Export returns one ExportRow per trip, newest first.
// Always returns a non-nil slice.
func (s *ExportService) Export(_ context.Context) []domain.ExportRow {
	trips := s.session.Trips()
	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, domain.ExportRow{
			TripID:        t.ID,
			Date:          t.Date.UTC().Format("2006-01-02"),
			DriverID:      t.DriverID,
			DriverName:    t.DriverName,
			Origin:        t.Origin,
			Destination:   t.Destination,
			Category:      t.Category,
			IsRoundTrip:   t.IsRoundTrip,
			Distance:      t.Distance,
			TotalDistance: t.TotalDistance,
			Cost:          t.Cost,
		})
	}
	return rows
}
