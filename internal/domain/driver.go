package domain

// Driver is a household member with a fuel-efficiency rate.
// AvgConsumption is kilometers traveled per unit of fuel and must be positive.
type Driver struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	AvgConsumption float64 `json:"avgConsumption"`
}

// Settings is the singleton household configuration.
// FuelPrice is the currency amount per unit of fuel.
type Settings struct {
	FuelPrice float64 `json:"fuelPrice"`
}

// FindDriver returns the driver with the given id, or false.
func FindDriver(drivers []Driver, id string) (Driver, bool) {
	for _, d := range drivers {
		if d.ID == id {
			return d, true
		}
	}
	return Driver{}, false
}
