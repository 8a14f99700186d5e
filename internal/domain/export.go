package domain

// ExportRow is a single row in the trip export: one row per recorded trip,
// newest first, with the date rendered as "2006-01-02".
type ExportRow struct {
	TripID        string   `json:"tripId"`
	Date          string   `json:"date"`
	DriverID      string   `json:"driverId"`
	DriverName    string   `json:"driverName"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	Category      Category `json:"category"`
	IsRoundTrip   bool     `json:"isRoundTrip"`
	Distance      float64  `json:"distance"`
	TotalDistance float64  `json:"totalDistance"`
	Cost          float64  `json:"cost"`
}
