// Package stats computes the dashboard figures from the trip and driver
// collections. Compute is a pure function: it keeps no state between calls
// and the same input always yields the same Dashboard.
package stats

import (
	"sort"
	"time"

	"github.com/pkordes/ecodrive/internal/domain"
)

// DefaultTimelineLength is how many recent trips the cost timeline shows.
const DefaultTimelineLength = 10

// NoTopDriver is reported as TopDriver when no driver has any trip.
const NoTopDriver = "-"

// Options tunes Compute. The zero value is valid.
type Options struct {
	// TimelineLength is the number of trailing trips in Timeline.
	// Zero or negative means DefaultTimelineLength.
	TimelineLength int

	// Location is the time zone used to render timeline dates.
	// Nil means UTC.
	Location *time.Location
}

// DriverRollup aggregates the trips that reference one driver.
type DriverRollup struct {
	DriverID string  `json:"driverId"`
	Name     string  `json:"name"`
	Spent    float64 `json:"spent"`
	Trips    int     `json:"trips"`
	Km       float64 `json:"km"`
}

// CategoryTotal is the summed cost of one category.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TimelinePoint is one trip in the cost trend.
type TimelinePoint struct {
	Date string  `json:"date"` // dd/MM
	Cost float64 `json:"cost"`
}

// Dashboard is the full set of derived figures.
type Dashboard struct {
	TotalTrips    int             `json:"totalTrips"`
	TotalSpent    float64         `json:"totalSpent"`
	TotalDistance float64         `json:"totalDistance"`
	AvgCostPerKm  float64         `json:"avgCostPerKm"`
	TopDriver     string          `json:"topDriver"`
	Drivers       []DriverRollup  `json:"driverData"`
	Categories    []CategoryTotal `json:"categoryData"`
	Timeline      []TimelinePoint `json:"timelineData"`
}

// Compute derives the dashboard from trips (newest first, as stored) and the
// current drivers.
//
// Trips whose driver no longer exists still count towards the totals,
// categories and timeline, but have no driver rollup.
func Compute(trips []domain.Trip, drivers []domain.Driver, opts Options) Dashboard {
	d := Dashboard{
		TotalTrips: len(trips),
		TopDriver:  NoTopDriver,
		Drivers:    []DriverRollup{},
		Categories: []CategoryTotal{},
		Timeline:   []TimelinePoint{},
	}

	for _, t := range trips {
		d.TotalSpent += t.Cost
		d.TotalDistance += t.TotalDistance
	}
	if d.TotalDistance > 0 {
		d.AvgCostPerKm = d.TotalSpent / d.TotalDistance
	}

	d.Drivers = driverRollups(trips, drivers)
	d.Categories = categoryTotals(trips)
	if top, ok := topDriver(d.Drivers); ok {
		d.TopDriver = top
	}
	d.Timeline = timeline(trips, opts)

	return d
}

// driverRollups returns one entry per driver with at least one trip, in
// driver-collection order.
func driverRollups(trips []domain.Trip, drivers []domain.Driver) []DriverRollup {
	out := []DriverRollup{}
	for _, drv := range drivers {
		r := DriverRollup{DriverID: drv.ID, Name: drv.Name}
		for _, t := range trips {
			if t.DriverID != drv.ID {
				continue
			}
			r.Spent += t.Cost
			r.Km += t.TotalDistance
			r.Trips++
		}
		if r.Trips > 0 {
			out = append(out, r)
		}
	}
	return out
}

// categoryTotals sums cost per category in first-seen order.
// Trips stored without a category count as domain.CategoryOther.
func categoryTotals(trips []domain.Trip) []CategoryTotal {
	out := []CategoryTotal{}
	index := make(map[string]int)
	for _, t := range trips {
		name := string(t.Category)
		if name == "" {
			name = string(domain.CategoryOther)
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategoryTotal{Name: name})
		}
		out[i].Value += t.Cost
	}
	return out
}

// topDriver picks the rollup with the most kilometers. Ties go to the driver
// listed first.
func topDriver(rollups []DriverRollup) (string, bool) {
	if len(rollups) == 0 {
		return "", false
	}
	sorted := append([]DriverRollup(nil), rollups...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Km > sorted[j].Km })
	return sorted[0].Name, true
}

// timeline returns the most recent trips, oldest first.
func timeline(trips []domain.Trip, opts Options) []TimelinePoint {
	n := opts.TimelineLength
	if n <= 0 {
		n = DefaultTimelineLength
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	if n > len(trips) {
		n = len(trips)
	}
	out := make([]TimelinePoint, 0, n)
	// trips[0] is the newest, so walk the first n backwards.
	for i := n - 1; i >= 0; i-- {
		t := trips[i]
		out = append(out, TimelinePoint{
			Date: t.Date.In(loc).Format("02/01"),
			Cost: t.Cost,
		})
	}
	return out
}
