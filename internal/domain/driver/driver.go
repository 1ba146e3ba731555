// Package driver models a racing driver with a ranged skill value.
package driver

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/rating"
)

// FieldSkill names the ranged field reported on clamping.
const FieldSkill = "skill"

// Driver is a driver with a 1..100 skill.
type Driver struct {
	id       string
	name     string
	skill    int
	reporter rating.Reporter
}

// Option applies a configuration option to a Driver.
type Option func(*Driver)

// WithReporter sets where out-of-range skill inputs are reported.
func WithReporter(r rating.Reporter) Option {
	return func(d *Driver) {
		if r != nil {
			d.reporter = r
		}
	}
}

// New builds a driver. A skill outside 1..100 is clamped and reported.
func New(id, name string, skill int, opts ...Option) *Driver {
	d := &Driver{id: id, name: name, reporter: rating.Discard}
	for _, opt := range opts {
		opt(d)
	}
	d.skill = rating.Apply(rating.Standard, skill, FieldSkill, id, d.reporter)
	return d
}

// ID returns the driver identifier.
func (d *Driver) ID() string { return d.id }

// Name returns the display name.
func (d *Driver) Name() string { return d.name }

// Skill returns the stored 1..100 skill.
func (d *Driver) Skill() int { return d.skill }

// SetName renames the driver.
func (d *Driver) SetName(name string) { d.name = name }

// SetSkill validates skill against 1..100. An invalid input is reported and
// the clamped value stored; the caller never sees a failure.
func (d *Driver) SetSkill(skill int) {
	d.skill = rating.Apply(rating.Standard, skill, FieldSkill, d.id, d.reporter)
}

// SetReporter replaces the reporter used by SetSkill.
func (d *Driver) SetReporter(r rating.Reporter) {
	if r == nil {
		r = rating.Discard
	}
	d.reporter = r
}

// Equal reports whether both drivers have the same id.
func (d *Driver) Equal(other *Driver) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.id == other.id
}

func (d *Driver) String() string {
	return fmt.Sprintf("Driver{id=%s name=%q skill=%d}", d.id, d.name, d.skill)
}
