package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/service"
)

func TestExportService_Export(t *testing.T) {
	st := newFakeStore()
	st.trips = []domain.Trip{
		tripAt("t1", day(2025, 6, 2), "Casa", "Mercado"),
		tripAt("t0", day(2025, 6, 1), "Casa", "Escola"),
	}
	st.trips[0].IsRoundTrip = true
	svc := service.NewExportService(service.OpenSession(context.Background(), st))

	rows := svc.Export(context.Background())

	require.Len(t, rows, 2)
	assert.Equal(t, domain.ExportRow{
		TripID:        "t1",
		Date:          "2025-06-02",
		DriverID:      "1",
		DriverName:    "Pai",
		Origin:        "Casa",
		Destination:   "Mercado",
		Category:      domain.CategoryWork,
		IsRoundTrip:   true,
		Distance:      10,
		TotalDistance: 10,
		Cost:          10.0 / 12 * 5.89,
	}, rows[0])
	assert.Equal(t, "t0", rows[1].TripID)
}

func TestExportService_Export_Empty(t *testing.T) {
	svc := service.NewExportService(service.OpenSession(context.Background(), newFakeStore()))

	rows := svc.Export(context.Background())

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
