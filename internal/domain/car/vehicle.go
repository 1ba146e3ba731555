package car

import "fmt"

// Contribution is the weighted share of one slot in a vehicle rating.
type Contribution struct {
	Kind        Kind
	ComponentID string
	Performance int
	Weight      float64
	Value       float64
}

// Vehicle holds at most one component per kind. Unset slots contribute zero.
// A Vehicle is not safe for concurrent mutation; callers that share one must
// synchronize externally.
type Vehicle struct {
	id    string
	name  string
	slots [numKinds]*Component
}

// NewVehicle returns a vehicle with every slot empty.
func NewVehicle(id, name string) *Vehicle {
	return &Vehicle{id: id, name: name}
}

// ID returns the vehicle identifier.
func (v *Vehicle) ID() string { return v.id }

// Name returns the display name.
func (v *Vehicle) Name() string { return v.name }

// SetName renames the vehicle.
func (v *Vehicle) SetName(name string) { v.name = name }

// Assign places c in the slot for kind and returns the component it replaced.
func (v *Vehicle) Assign(kind Kind, c *Component) (*Component, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if c == nil {
		return nil, ErrNilComponent
	}
	if c.kind != kind {
		return nil, fmt.Errorf("%w: %s into %s slot", ErrKindMismatch, c.kind, kind)
	}
	prev := v.slots[kind]
	v.slots[kind] = c
	return prev, nil
}

// Install places c in the slot matching its own kind.
func (v *Vehicle) Install(c *Component) (*Component, error) {
	if c == nil {
		return nil, ErrNilComponent
	}
	return v.Assign(c.kind, c)
}

// Remove clears the slot for kind and returns what it held. The component
// itself is left untouched for the caller to keep or reuse.
func (v *Vehicle) Remove(kind Kind) *Component {
	if !kind.Valid() {
		return nil
	}
	prev := v.slots[kind]
	v.slots[kind] = nil
	return prev
}

// Component returns the component in the slot for kind, or nil.
func (v *Vehicle) Component(kind Kind) *Component {
	if v == nil || !kind.Valid() {
		return nil
	}
	return v.slots[kind]
}

// Engine returns the engine slot, or nil.
func (v *Vehicle) Engine() *Component { return v.slots[Engine] }

// Aerodynamics returns the aerodynamics slot, or nil.
func (v *Vehicle) Aerodynamics() *Component { return v.slots[Aerodynamics] }

// Tires returns the tires slot, or nil.
func (v *Vehicle) Tires() *Component { return v.slots[Tires] }

// Suspension returns the suspension slot, or nil.
func (v *Vehicle) Suspension() *Component { return v.slots[Suspension] }

// Gearbox returns the gearbox slot, or nil.
func (v *Vehicle) Gearbox() *Component { return v.slots[Gearbox] }

// SetEngine fills the engine slot; nil clears it.
func (v *Vehicle) SetEngine(c *Component) error { return v.set(Engine, c) }

// SetAerodynamics fills the aerodynamics slot; nil clears it.
func (v *Vehicle) SetAerodynamics(c *Component) error { return v.set(Aerodynamics, c) }

// SetTires fills the tires slot; nil clears it.
func (v *Vehicle) SetTires(c *Component) error { return v.set(Tires, c) }

// SetSuspension fills the suspension slot; nil clears it.
func (v *Vehicle) SetSuspension(c *Component) error { return v.set(Suspension, c) }

// SetGearbox fills the gearbox slot; nil clears it.
func (v *Vehicle) SetGearbox(c *Component) error { return v.set(Gearbox, c) }

// set assigns c to kind; a nil c clears the slot.
func (v *Vehicle) set(kind Kind, c *Component) error {
	if c == nil {
		v.Remove(kind)
		return nil
	}
	_, err := v.Assign(kind, c)
	return err
}

// Installed returns the number of occupied slots. A nil vehicle has none.
func (v *Vehicle) Installed() int {
	if v == nil {
		return 0
	}
	n := 0
	for _, c := range v.slots {
		if c != nil {
			n++
		}
	}
	return n
}

// Complete reports whether every slot is occupied.
func (v *Vehicle) Complete() bool { return v.Installed() == int(numKinds) }

// Contribution returns performance times weight for the slot, 0 when empty or
// when v is nil.
func (v *Vehicle) Contribution(kind Kind) float64 {
	if v == nil {
		return 0
	}
	c := v.Component(kind)
	if c == nil {
		return 0
	}
	return float64(c.performance) * kind.Weight()
}

// Breakdown lists the contribution of every slot in kind order. A nil vehicle
// yields all-empty entries.
func (v *Vehicle) Breakdown() []Contribution {
	out := make([]Contribution, 0, numKinds)
	for _, k := range Kinds() {
		entry := Contribution{Kind: k, Weight: k.Weight()}
		if c := v.Component(k); c != nil {
			entry.ComponentID = c.id
			entry.Performance = c.performance
			entry.Value = v.Contribution(k)
		}
		out = append(out, entry)
	}
	return out
}

// OverallPerformance is the weighted sum over occupied slots. Nothing is
// cached, so the result always reflects the current slots. A nil vehicle rates 0.
func (v *Vehicle) OverallPerformance() float64 {
	if v == nil {
		return 0
	}
	total := 0.0
	for k := range v.slots {
		total += v.Contribution(Kind(k))
	}
	return total
}

// PerformanceRating equals OverallPerformance.
func (v *Vehicle) PerformanceRating() float64 { return v.OverallPerformance() }

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{id=%s name=%q components=%d performance=%.1f}", v.id, v.name, v.Installed(), v.OverallPerformance())
}
