package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pkordes/ecodrive/internal/domain"
)

// Seed is the household a fresh installation starts with.
//
//	fuel_price = 5.89
//
//	[[drivers]]
//	id = "1"
//	name = "Pai"
//	avg_consumption = 12
type Seed struct {
	FuelPrice float64      `toml:"fuel_price"`
	Drivers   []SeedDriver `toml:"drivers"`
}

// SeedDriver is one [[drivers]] table of a seed file.
type SeedDriver struct {
	ID             string  `toml:"id"`
	Name           string  `toml:"name"`
	AvgConsumption float64 `toml:"avg_consumption"`
}

// DefaultSeed returns the built-in household: two drivers with stable ids
// and a fuel price of 5.89.
func DefaultSeed() Seed {
	return Seed{
		FuelPrice: 5.89,
		Drivers: []SeedDriver{
			{ID: "1", Name: "Pai", AvgConsumption: 12},
			{ID: "2", Name: "Mãe", AvgConsumption: 10},
		},
	}
}

// LoadSeed reads a TOML seed file. Unknown keys, a non-positive fuel price or
// consumption, blank names and duplicate ids are rejected.
func LoadSeed(path string) (Seed, error) {
	var seed Seed
	md, err := toml.DecodeFile(path, &seed)
	if err != nil {
		return Seed{}, fmt.Errorf("config.LoadSeed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Seed{}, fmt.Errorf("config.LoadSeed: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := seed.validate(); err != nil {
		return Seed{}, fmt.Errorf("config.LoadSeed: %s: %w", path, err)
	}
	return seed, nil
}

func (s Seed) validate() error {
	if s.FuelPrice <= 0 {
		return fmt.Errorf("fuel_price must be greater than zero")
	}
	var ids []string
	for i, d := range s.Drivers {
		switch {
		case strings.TrimSpace(d.ID) == "":
			return fmt.Errorf("drivers[%d]: id is required", i)
		case strings.TrimSpace(d.Name) == "":
			return fmt.Errorf("drivers[%d]: name is required", i)
		case d.AvgConsumption <= 0:
			return fmt.Errorf("drivers[%d]: avg_consumption must be greater than zero", i)
		case slices.Contains(ids, d.ID):
			return fmt.Errorf("drivers[%d]: duplicate id %q", i, d.ID)
		}
		ids = append(ids, d.ID)
	}
	return nil
}

// Domain converts the seed into the values the store falls back to.
func (s Seed) Domain() ([]domain.Driver, domain.Settings) {
	drivers := make([]domain.Driver, len(s.Drivers))
	for i, d := range s.Drivers {
		drivers[i] = domain.Driver{ID: d.ID, Name: strings.TrimSpace(d.Name), AvgConsumption: d.AvgConsumption}
	}
	return drivers, domain.Settings{FuelPrice: s.FuelPrice}
}
