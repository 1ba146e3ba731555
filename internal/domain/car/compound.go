package car

import (
	"fmt"
	"strings"
)

// TireCompound tags a set of tires. It is informational and does not change
// the tire weighting.
type TireCompound string

// Tire compounds.
const (
	CompoundSoft   TireCompound = "SOFT"
	CompoundMedium TireCompound = "MEDIUM"
	CompoundHard   TireCompound = "HARD"
)

// Valid reports whether c is a known compound.
func (c TireCompound) Valid() bool {
	switch c {
	case CompoundSoft, CompoundMedium, CompoundHard:
		return true
	}
	return false
}

// ParseCompound resolves a compound name case-insensitively.
func ParseCompound(s string) (TireCompound, error) {
	c := TireCompound(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCompound, s)
	}
	return c, nil
}
