// Package car models vehicle components and the vehicle that aggregates them.
//
// A component carries a 1..100 performance value and a kind; the kind fixes
// the weight the component contributes once installed in a vehicle. The
// vehicle rating is the weighted sum over occupied slots and is always
// computed on demand.
package car

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/performance"
	"github.com/okian/paddock/internal/domain/rating"
)

// FieldPerformance names the ranged field reported on clamping.
const FieldPerformance = "performance"

var (
	_ performance.Performer = (*Component)(nil)
	_ performance.Performer = (*Vehicle)(nil)
)

// Component is one replaceable part of a vehicle.
type Component struct {
	id          string
	name        string
	kind        Kind
	performance int
	compound    TireCompound
	reporter    rating.Reporter
}

// Option applies a configuration option to a Component.
type Option func(*Component)

// WithReporter sets where out-of-range performance inputs are reported.
func WithReporter(r rating.Reporter) Option {
	return func(c *Component) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithCompound sets the tire compound. Ignored for kinds other than Tires.
func WithCompound(compound TireCompound) Option {
	return func(c *Component) {
		if c.kind == Tires && compound.Valid() {
			c.compound = compound
		}
	}
}

// New builds a component of the given kind. Performance outside 1..100 is
// clamped and reported.
func New(kind Kind, id, name string, perf int, opts ...Option) (*Component, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	c := &Component{
		id:       id,
		name:     name,
		kind:     kind,
		reporter: rating.Discard,
	}
	if kind == Tires {
		c.compound = CompoundMedium
	}
	for _, opt := range opts {
		opt(c)
	}
	c.performance = rating.Apply(rating.Standard, perf, FieldPerformance, id, c.reporter)
	return c, nil
}

func mustNew(kind Kind, id, name string, perf int, opts []Option) *Component {
	c, err := New(kind, id, name, perf, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewEngine builds an engine.
func NewEngine(id, name string, perf int, opts ...Option) *Component {
	return mustNew(Engine, id, name, perf, opts)
}

// NewAerodynamics builds an aerodynamics package.
func NewAerodynamics(id, name string, perf int, opts ...Option) *Component {
	return mustNew(Aerodynamics, id, name, perf, opts)
}

// NewTires builds a tire set with the given compound.
func NewTires(id, name string, perf int, compound TireCompound, opts ...Option) *Component {
	return mustNew(Tires, id, name, perf, append([]Option{WithCompound(compound)}, opts...))
}

// NewSuspension builds a suspension.
func NewSuspension(id, name string, perf int, opts ...Option) *Component {
	return mustNew(Suspension, id, name, perf, opts)
}

// NewGearbox builds a gearbox.
func NewGearbox(id, name string, perf int, opts ...Option) *Component {
	return mustNew(Gearbox, id, name, perf, opts)
}

// ID returns the component identifier.
func (c *Component) ID() string { return c.id }

// Name returns the display name.
func (c *Component) Name() string { return c.name }

// Kind returns the slot kind the component fits.
func (c *Component) Kind() Kind { return c.kind }

// Weight returns the vehicle weight of the component's kind.
func (c *Component) Weight() float64 { return c.kind.Weight() }

// Performance returns the stored 1..100 performance.
func (c *Component) Performance() int { return c.performance }

// SetName renames the component.
func (c *Component) SetName(name string) { c.name = name }

// SetPerformance stores perf clamped to 1..100, reporting inputs that needed clamping.
func (c *Component) SetPerformance(perf int) {
	c.performance = rating.Apply(rating.Standard, perf, FieldPerformance, c.id, c.reporter)
}

// SetReporter replaces the reporter used by SetPerformance.
func (c *Component) SetReporter(r rating.Reporter) {
	if r == nil {
		r = rating.Discard
	}
	c.reporter = r
}

// Compound returns the tire compound; empty for non-tire kinds.
func (c *Component) Compound() TireCompound { return c.compound }

// SetCompound changes the tire compound.
func (c *Component) SetCompound(compound TireCompound) error {
	if c.kind != Tires {
		return ErrNotTires
	}
	if !compound.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCompound, compound)
	}
	c.compound = compound
	return nil
}

// PerformanceRating is the raw performance value; weighting is applied only by
// a Vehicle. A nil component rates 0.
func (c *Component) PerformanceRating() float64 {
	if c == nil {
		return 0
	}
	return float64(c.performance)
}

func (c *Component) String() string {
	if c.kind == Tires {
		return fmt.Sprintf("%s{id=%s name=%q performance=%d compound=%s}", c.kind, c.id, c.name, c.performance, c.compound)
	}
	return fmt.Sprintf("%s{id=%s name=%q performance=%d}", c.kind, c.id, c.name, c.performance)
}
