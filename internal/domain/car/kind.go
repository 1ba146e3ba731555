package car

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies one of the five component slots of a vehicle.
type Kind int

// Component kinds. The order is the order slots are evaluated and listed in.
const (
	Engine Kind = iota
	Aerodynamics
	Tires
	Suspension
	Gearbox

	numKinds
)

// weightTolerance bounds float drift when checking the weight table.
const weightTolerance = 1e-9

var kindNames = [numKinds]string{
	Engine:       "engine",
	Aerodynamics: "aerodynamics",
	Tires:        "tires",
	Suspension:   "suspension",
	Gearbox:      "gearbox",
}

// weights is the share each kind contributes to a vehicle rating.
// Adding a kind means adding an entry here; the table must keep summing to 1.
var weights = [numKinds]float64{
	Engine:       0.35,
	Aerodynamics: 0.25,
	Tires:        0.20,
	Suspension:   0.10,
	Gearbox:      0.10,
}

// Kinds returns all kinds in slot order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

// Weight returns the fixed weighting coefficient of k, or 0 for an invalid kind.
func (k Kind) Weight() float64 {
	if !k.Valid() {
		return 0
	}
	return weights[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a kind name case-insensitively. "aero" and "tyres" are accepted aliases.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "aero":
		return Aerodynamics, nil
	case "tyres":
		return Tires, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// WeightSum returns the sum of all kind weights.
func WeightSum() float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	return sum
}

// ValidateWeights checks that the weight table sums to 1 and holds no negative entry.
func ValidateWeights() error {
	for k, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %f for %s", ErrWeights, w, Kind(k))
		}
	}
	if sum := WeightSum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: got %.6f", ErrWeights, sum)
	}
	return nil
}
