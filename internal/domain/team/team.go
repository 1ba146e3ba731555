// Package team models a racing team: an ordered roster of at most two
// drivers, an optional vehicle and an optional AI strategy tag.
package team

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/driver"
)

// MaxDrivers is the roster cap.
const MaxDrivers = 2

// Team holds the roster. Drivers are identified by id: adding a driver whose
// id is already on the roster fails, and removal matches by id.
type Team struct {
	id       string
	name     string
	drivers  []*driver.Driver
	vehicle  *car.Vehicle
	strategy Strategy
}

// Option applies a configuration option to a Team.
type Option func(*Team)

// WithVehicle associates a vehicle with the team.
func WithVehicle(v *car.Vehicle) Option {
	return func(t *Team) {
		t.vehicle = v
	}
}

// WithStrategy marks the team as computer-controlled. Unknown strategies are ignored.
func WithStrategy(s Strategy) Option {
	return func(t *Team) {
		if s.Valid() {
			t.strategy = s
		}
	}
}

// New builds a team with an empty roster.
func New(id, name string, opts ...Option) *Team {
	t := &Team{
		id:      id,
		name:    name,
		drivers: make([]*driver.Driver, 0, MaxDrivers),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the team identifier.
func (t *Team) ID() string { return t.id }

// Name returns the display name.
func (t *Team) Name() string { return t.name }

// SetName renames the team.
func (t *Team) SetName(name string) { t.name = name }

// AddDriver appends d when the roster has room and d is not already on it.
// It reports whether d was added; a rejected call leaves the roster unchanged.
func (t *Team) AddDriver(d *driver.Driver) bool {
	return t.TryAddDriver(d) == nil
}

// TryAddDriver is AddDriver returning the rejection reason.
func (t *Team) TryAddDriver(d *driver.Driver) error {
	if d == nil {
		return ErrNilDriver
	}
	if t.HasDriver(d.ID()) {
		return fmt.Errorf("%w: %s", ErrDuplicateDriver, d.ID())
	}
	if len(t.drivers) >= MaxDrivers {
		return fmt.Errorf("%w: %d of %d", ErrRosterFull, len(t.drivers), MaxDrivers)
	}
	t.drivers = append(t.drivers, d)
	return nil
}

// RemoveDriver removes the driver with d's id and reports whether one was removed.
func (t *Team) RemoveDriver(d *driver.Driver) bool {
	if d == nil {
		return false
	}
	_, ok := t.RemoveDriverByID(d.ID())
	return ok
}

// RemoveDriverByID removes and returns the driver with id, keeping the order of the rest.
func (t *Team) RemoveDriverByID(id string) (*driver.Driver, bool) {
	for i, d := range t.drivers {
		if d.ID() == id {
			t.drivers = append(t.drivers[:i], t.drivers[i+1:]...)
			return d, true
		}
	}
	return nil, false
}

// HasDriver reports whether a driver with id is on the roster.
func (t *Team) HasDriver(id string) bool {
	for _, d := range t.drivers {
		if d.ID() == id {
			return true
		}
	}
	return false
}

// Drivers returns a copy of the roster in insertion order.
func (t *Team) Drivers() []*driver.Driver {
	out := make([]*driver.Driver, len(t.drivers))
	copy(out, t.drivers)
	return out
}

// Len returns the roster size.
func (t *Team) Len() int { return len(t.drivers) }

// Full reports whether the roster is at the cap.
func (t *Team) Full() bool { return len(t.drivers) >= MaxDrivers }

// SetDrivers replaces the roster. It fails without changes when ds exceeds the
// cap, repeats an id or holds nil.
func (t *Team) SetDrivers(ds []*driver.Driver) error {
	if len(ds) > MaxDrivers {
		return fmt.Errorf("%w: %d of %d", ErrRosterFull, len(ds), MaxDrivers)
	}
	next := New(t.id, t.name)
	for _, d := range ds {
		if err := next.TryAddDriver(d); err != nil {
			return err
		}
	}
	t.drivers = next.drivers
	return nil
}

// Vehicle returns the team's vehicle, or nil.
func (t *Team) Vehicle() *car.Vehicle { return t.vehicle }

// SetVehicle replaces the team's vehicle; nil detaches it.
func (t *Team) SetVehicle(v *car.Vehicle) { t.vehicle = v }

// PerformanceRating is the rating of the team's vehicle, 0 without one.
func (t *Team) PerformanceRating() float64 {
	if t.vehicle == nil {
		return 0
	}
	return t.vehicle.PerformanceRating()
}

// Strategy returns the AI strategy tag; StrategyNone marks a user-driven team.
func (t *Team) Strategy() Strategy { return t.strategy }

// SetStrategy changes the AI strategy; StrategyNone hands the team back to a user.
func (t *Team) SetStrategy(s Strategy) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	t.strategy = s
	return nil
}

// IsAI reports whether the team is computer-controlled.
func (t *Team) IsAI() bool { return t.strategy != StrategyNone }

func (t *Team) String() string {
	if t.IsAI() {
		return fmt.Sprintf("Team{id=%s name=%q drivers=%d strategy=%s}", t.id, t.name, len(t.drivers), t.strategy)
	}
	return fmt.Sprintf("Team{id=%s name=%q drivers=%d}", t.id, t.name, len(t.drivers))
}
