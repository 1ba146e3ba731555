// Package types contains the read shapes shared by the service and its transports.
package types

import (
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/driver"
	"github.com/okian/paddock/internal/domain/race"
	"github.com/okian/paddock/internal/domain/team"
)

// Entry represents a standings row.
type Entry struct {
	Rank     int     `json:"rank"`
	TeamID   string  `json:"team_id"`
	TeamName string  `json:"team_name"`
	Rating   float64 `json:"rating"`
}

// Driver is the public view of a driver.
type Driver struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Skill int    `json:"skill"`
}

// SkillUpdate reports the outcome of a skill change.
type SkillUpdate struct {
	Driver  Driver `json:"driver"`
	Input   int    `json:"input"`
	Clamped bool   `json:"clamped"`
}

// Component is the public view of a part, with its weighted share when installed.
type Component struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	Performance  int     `json:"performance"`
	Compound     string  `json:"compound,omitempty"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Vehicle is the public view of a vehicle and its occupied slots.
type Vehicle struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Rating     float64     `json:"rating"`
	Complete   bool        `json:"complete"`
	Components []Component `json:"components"`
}

// Team is the public view of a team.
type Team struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Strategy string   `json:"strategy,omitempty"`
	Drivers  []Driver `json:"drivers"`
	Vehicle  *Vehicle `json:"vehicle,omitempty"`
	Rating   float64  `json:"rating"`
}

// RaceStrategy is the race plan a team has filed.
type RaceStrategy struct {
	TeamID           string  `json:"team_id"`
	PitStops         int     `json:"pit_stops"`
	StartingCompound string  `json:"starting_compound"`
	FuelLoad         float64 `json:"fuel_load"`
}

// FromDriver converts a driver.
func FromDriver(d *driver.Driver) Driver {
	return Driver{ID: d.ID(), Name: d.Name(), Skill: d.Skill()}
}

// FromComponent converts an uninstalled part; Contribution is left at zero.
func FromComponent(c *car.Component) Component {
	return Component{
		ID:          c.ID(),
		Name:        c.Name(),
		Kind:        c.Kind().String(),
		Performance: c.Performance(),
		Compound:    string(c.Compound()),
		Weight:      c.Weight(),
	}
}

// FromVehicle converts a vehicle, listing occupied slots in kind order.
func FromVehicle(v *car.Vehicle) *Vehicle {
	if v == nil {
		return nil
	}
	out := &Vehicle{
		ID:         v.ID(),
		Name:       v.Name(),
		Rating:     v.OverallPerformance(),
		Complete:   v.Complete(),
		Components: make([]Component, 0, v.Installed()),
	}
	for _, entry := range v.Breakdown() {
		if entry.ComponentID == "" {
			continue
		}
		view := FromComponent(v.Component(entry.Kind))
		view.Contribution = entry.Value
		out.Components = append(out.Components, view)
	}
	return out
}

// FromTeam converts a team with its roster and vehicle.
func FromTeam(t *team.Team) Team {
	out := Team{
		ID:       t.ID(),
		Name:     t.Name(),
		Strategy: string(t.Strategy()),
		Drivers:  make([]Driver, 0, t.Len()),
		Vehicle:  FromVehicle(t.Vehicle()),
		Rating:   t.PerformanceRating(),
	}
	for _, d := range t.Drivers() {
		out.Drivers = append(out.Drivers, FromDriver(d))
	}
	return out
}

// FromRaceStrategy converts the plan filed by teamID.
func FromRaceStrategy(teamID string, s *race.Strategy) RaceStrategy {
	return RaceStrategy{
		TeamID:           teamID,
		PitStops:         s.PitStops(),
		StartingCompound: string(s.StartingCompound()),
		FuelLoad:         s.FuelLoad(),
	}
}
