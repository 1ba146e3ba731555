// Package race holds pre-race planning records. Lap-by-lap simulation is not
// modeled.
package race

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/rating"
)

// Fuel load bounds in kilograms.
const (
	MinFuelLoad = 0.0
	MaxFuelLoad = 100.0
)

// Strategy is a team's race plan.
type Strategy struct {
	id               string
	pitStops         int
	startingCompound car.TireCompound
	fuelLoad         float64
}

// NewStrategy builds a plan. Fuel is clamped to 0..100 kg, negative pit stops to zero.
func NewStrategy(id string, pitStops int, compound car.TireCompound, fuelLoad float64) *Strategy {
	s := &Strategy{id: id, startingCompound: compound}
	s.SetPitStops(pitStops)
	s.SetFuelLoad(fuelLoad)
	return s
}

// ID returns the plan identifier.
func (s *Strategy) ID() string { return s.id }

// PitStops returns the planned number of stops.
func (s *Strategy) PitStops() int { return s.pitStops }

// StartingCompound returns the tire compound for the first stint.
func (s *Strategy) StartingCompound() car.TireCompound { return s.startingCompound }

// FuelLoad returns the starting fuel load in 0..100.
func (s *Strategy) FuelLoad() float64 { return s.fuelLoad }

// SetPitStops stores n, treating negatives as zero.
func (s *Strategy) SetPitStops(n int) {
	if n < 0 {
		n = 0
	}
	s.pitStops = n
}

// SetStartingCompound changes the starting tires.
func (s *Strategy) SetStartingCompound(c car.TireCompound) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", car.ErrUnknownCompound, c)
	}
	s.startingCompound = c
	return nil
}

// SetFuelLoad stores kg clamped to the fuel range.
func (s *Strategy) SetFuelLoad(kg float64) {
	s.fuelLoad = rating.ClampFloat(kg, MinFuelLoad, MaxFuelLoad)
}

func (s *Strategy) String() string {
	return fmt.Sprintf("Strategy{pitStops=%d startingTires=%s fuelLoad=%.1fkg}", s.pitStops, s.startingCompound, s.fuelLoad)
}
