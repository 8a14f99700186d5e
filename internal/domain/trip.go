// Package domain contains the core data types for the EcoDrive fuel log.
// This package has no third-party dependencies and is imported by every other
// internal package (kv, store, stats, locate, service, handler).
package domain

import "time"

// Category classifies the purpose of a trip. The set is closed.
type Category string

const (
	CategoryWork      Category = "Trabalho"
	CategoryLeisure   Category = "Lazer"
	CategoryEssential Category = "Essencial"
	CategoryEducation Category = "Educação"
	CategoryOther     Category = "Outros"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryLeisure,
	CategoryEssential,
	CategoryEducation,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Trip is a single recorded journey.
//
// TotalDistance and Cost are computed once, when the trip is recorded, and are
// never recomputed: later fuel price or consumption changes do not touch past
// trips. DriverName is a snapshot of the driver's name at that moment and
// DriverID may point at a driver that has since been removed.
//
// JSON field names match the documents written by the browser app so
// exported localStorage data loads unchanged.
type Trip struct {
	ID            string    `json:"id"`
	DriverID      string    `json:"driverId"`
	DriverName    string    `json:"driverName"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Distance      float64   `json:"distance"` // one-way km
	IsRoundTrip   bool      `json:"isRoundTrip"`
	TotalDistance float64   `json:"totalDistance"`
	Cost          float64   `json:"cost"`
	Date          time.Time `json:"date"`
	Category      Category  `json:"category"`
}
