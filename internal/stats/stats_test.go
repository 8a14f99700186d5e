package stats_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/domain"
	"github.com/pkordes/ecodrive/internal/stats"
)

// ---- helpers ---------------------------------------------------------------

func seededDrivers() []domain.Driver {
	return []domain.Driver{
		{ID: "1", Name: "Pai", AvgConsumption: 12},
		{ID: "2", Name: "Mãe", AvgConsumption: 10},
	}
}

func trip(id, driverID string, km, cost float64, cat domain.Category, day int) domain.Trip {
	return domain.Trip{
		ID:            id,
		DriverID:      driverID,
		TotalDistance: km,
		Distance:      km,
		Cost:          cost,
		Category:      cat,
		Date:          time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
	}
}

// ---- scenarios -------------------------------------------------------------

func TestCompute_NoTrips(t *testing.T) {
	got := stats.Compute(nil, seededDrivers(), stats.Options{})

	assert.Equal(t, 0, got.TotalTrips)
	assert.Zero(t, got.TotalSpent)
	assert.Zero(t, got.TotalDistance)
	assert.Zero(t, got.AvgCostPerKm)
	assert.Equal(t, stats.NoTopDriver, got.TopDriver)
	assert.Empty(t, got.Categories)
	assert.NotNil(t, got.Categories)
	assert.Empty(t, got.Drivers)
	assert.Empty(t, got.Timeline)
}

func TestCompute_SingleRoundTrip(t *testing.T) {
	econ, err := domain.ComputeTrip(50, true, 10, 5)
	require.NoError(t, err)
	trips := []domain.Trip{trip("t1", "2", econ.TotalDistance, econ.Cost, domain.CategoryWork, 1)}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	assert.InDelta(t, 50, got.TotalSpent, 1e-9)
	assert.InDelta(t, 100, got.TotalDistance, 1e-9)
	assert.InDelta(t, 0.5, got.AvgCostPerKm, 1e-9)
	require.Len(t, got.Drivers, 1)
	assert.Equal(t, stats.DriverRollup{DriverID: "2", Name: "Mãe", Spent: 50, Trips: 1, Km: 100}, got.Drivers[0])
	assert.Equal(t, []stats.CategoryTotal{{Name: "Trabalho", Value: 50}}, got.Categories)
	assert.Equal(t, "Mãe", got.TopDriver)
}

// ---- edge cases ------------------------------------------------------------

func TestCompute_ZeroDistanceGuardsAverage(t *testing.T) {
	trips := []domain.Trip{trip("t1", "1", 0, 0, domain.CategoryLeisure, 1)}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	assert.Equal(t, 0.0, got.AvgCostPerKm)
}

func TestCompute_DriversWithoutTripsExcluded(t *testing.T) {
	trips := []domain.Trip{trip("t1", "1", 10, 5, domain.CategoryWork, 1)}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	require.Len(t, got.Drivers, 1)
	assert.Equal(t, "1", got.Drivers[0].DriverID)
}

func TestCompute_DanglingDriverCountsInTotalsOnly(t *testing.T) {
	trips := []domain.Trip{
		trip("t2", "gone", 30, 15, domain.CategoryWork, 2),
		trip("t1", "1", 10, 5, domain.CategoryWork, 1),
	}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	assert.InDelta(t, 20, got.TotalSpent, 1e-9)
	assert.InDelta(t, 40, got.TotalDistance, 1e-9)
	require.Len(t, got.Drivers, 1)
	assert.Equal(t, "Pai", got.TopDriver)
}

func TestCompute_EmptyCategoryFallsBackToOther(t *testing.T) {
	trips := []domain.Trip{
		trip("t3", "1", 10, 3, "", 3),
		trip("t2", "1", 10, 4, domain.CategoryLeisure, 2),
		trip("t1", "1", 10, 5, domain.CategoryOther, 1),
	}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	assert.Equal(t, []stats.CategoryTotal{
		{Name: "Outros", Value: 8},
		{Name: "Lazer", Value: 4},
	}, got.Categories)
}

func TestCompute_TopDriverTieGoesToFirstListed(t *testing.T) {
	trips := []domain.Trip{
		trip("t2", "2", 40, 10, domain.CategoryWork, 2),
		trip("t1", "1", 40, 20, domain.CategoryWork, 1),
	}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	assert.Equal(t, "Pai", got.TopDriver)
}

func TestCompute_TopDriverByDistanceNotSpend(t *testing.T) {
	trips := []domain.Trip{
		trip("t2", "2", 90, 10, domain.CategoryWork, 2),
		trip("t1", "1", 40, 80, domain.CategoryWork, 1),
	}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	assert.Equal(t, "Mãe", got.TopDriver)
	// Rollups keep driver-collection order regardless of the ranking.
	assert.Equal(t, "1", got.Drivers[0].DriverID)
}

// ---- timeline --------------------------------------------------------------

func TestCompute_TimelineIsTrailingWindowOldestFirst(t *testing.T) {
	// 12 trips, newest first: day 12 down to day 1, cost == day.
	var trips []domain.Trip
	for day := 12; day >= 1; day-- {
		trips = append(trips, trip(fmt.Sprint(day), "1", 1, float64(day), domain.CategoryWork, day))
	}

	got := stats.Compute(trips, seededDrivers(), stats.Options{})

	require.Len(t, got.Timeline, stats.DefaultTimelineLength)
	assert.Equal(t, stats.TimelinePoint{Date: "03/06", Cost: 3}, got.Timeline[0])
	assert.Equal(t, stats.TimelinePoint{Date: "12/06", Cost: 12}, got.Timeline[9])
}

func TestCompute_TimelineShorterThanWindow(t *testing.T) {
	trips := []domain.Trip{
		trip("b", "1", 1, 2, domain.CategoryWork, 5),
		trip("a", "1", 1, 1, domain.CategoryWork, 4),
	}

	got := stats.Compute(trips, seededDrivers(), stats.Options{TimelineLength: 3})

	assert.Equal(t, []stats.TimelinePoint{{Date: "04/06", Cost: 1}, {Date: "05/06", Cost: 2}}, got.Timeline)
}

func TestCompute_TimelineUsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	trips := []domain.Trip{trip("a", "1", 1, 1, domain.CategoryWork, 4)}

	got := stats.Compute(trips, nil, stats.Options{Location: saoPaulo})

	assert.Equal(t, "03/06", got.Timeline[0].Date)
}

// ---- purity ----------------------------------------------------------------

func TestCompute_Idempotent(t *testing.T) {
	trips := []domain.Trip{
		trip("t3", "2", 25, 12.5, domain.CategoryEducation, 3),
		trip("t2", "1", 10, 4.9, "", 2),
		trip("t1", "1", 80, 39.2, domain.CategoryWork, 1),
	}
	drivers := seededDrivers()

	first := stats.Compute(trips, drivers, stats.Options{})
	second := stats.Compute(trips, drivers, stats.Options{})

	assert.Equal(t, first, second)
}
