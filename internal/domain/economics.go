package domain

import (
	"fmt"
	"math"
)

// TripEconomics is the result of ComputeTrip.
type TripEconomics struct {
	TotalDistance float64
	Cost          float64
}

// ComputeTrip returns the total distance and fuel cost of a trip.
//
//	totalDistance = distanceKm * 2 (round trip) or distanceKm
//	cost          = totalDistance / avgConsumption * fuelPrice
//
// avgConsumption must be positive; anything else fails with ErrDomain.
// A negative or non-finite distance or fuel price fails with ErrValidation.
func ComputeTrip(distanceKm float64, roundTrip bool, avgConsumption, fuelPrice float64) (TripEconomics, error) {
	if math.IsNaN(avgConsumption) || math.IsInf(avgConsumption, 0) || avgConsumption <= 0 {
		return TripEconomics{}, fmt.Errorf("%w: average consumption must be positive, got %v", ErrDomain, avgConsumption)
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return TripEconomics{}, fmt.Errorf("%w: distance must be a non-negative number, got %v", ErrValidation, distanceKm)
	}
	if math.IsNaN(fuelPrice) || math.IsInf(fuelPrice, 0) || fuelPrice < 0 {
		return TripEconomics{}, fmt.Errorf("%w: fuel price must be a non-negative number, got %v", ErrValidation, fuelPrice)
	}

	total := distanceKm
	if roundTrip {
		total *= 2
	}
	return TripEconomics{
		TotalDistance: total,
		Cost:          total / avgConsumption * fuelPrice,
	}, nil
}
