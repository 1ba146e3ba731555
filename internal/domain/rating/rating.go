// Package rating implements the ranged numeric policy shared by driver skill
// and component performance: inputs are clamped into a closed range, and an
// input that had to be clamped is reported but never rejected.
package rating

import (
	"fmt"
	"math"
)

// Bounds of the standard 1..100 scale.
const (
	Min = 1
	Max = 100
)

// Range is a closed integer interval [Min, Max].
type Range struct {
	Min int
	Max int
}

// Standard is the 1..100 range used for skill and performance.
var Standard = Range{Min: Min, Max: Max}

// Clamp returns v limited to [lo, hi]. Swapped bounds are normalized first so
// the function is total.
func Clamp(v, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat is Clamp for real values. NaN maps to lo.
func ClampFloat(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Clamp limits v to the range.
func (r Range) Clamp(v int) int { return Clamp(v, r.Min, r.Max) }

// Contains reports whether v lies inside the range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

func (r Range) String() string { return fmt.Sprintf("[%d,%d]", r.Min, r.Max) }

// Result is the outcome of validating one input against a range. Value is
// always safe to store; Err is non-nil only when Input had to be clamped.
type Result struct {
	Input int
	Value int
	Err   error
}

// OK reports whether the input was already in range.
func (res Result) OK() bool { return res.Err == nil }

// Validate checks v against the range without side effects.
func (r Range) Validate(v int) Result {
	if r.Contains(v) {
		return Result{Input: v, Value: v}
	}
	return Result{
		Input: v,
		Value: r.Clamp(v),
		Err:   fmt.Errorf("%w: got %d, want %s", ErrOutOfRange, v, r),
	}
}

// Reporter receives results whose input had to be clamped.
type Reporter interface {
	Report(field, entityID string, res Result)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(field, entityID string, res Result)

// Report calls f.
func (f ReporterFunc) Report(field, entityID string, res Result) { f(field, entityID, res) }

// Discard is a Reporter that drops every result.
var Discard Reporter = ReporterFunc(func(string, string, Result) {})

// Apply validates v, hands a failed result to rep and returns the value to store.
// A nil rep behaves like Discard.
func Apply(r Range, v int, field, entityID string, rep Reporter) int {
	res := r.Validate(v)
	if !res.OK() && rep != nil {
		rep.Report(field, entityID, res)
	}
	return res.Value
}
