// Package performance defines the capability shared by anything that yields a
// performance rating: a single car component or a fully assembled vehicle.
package performance

// Performer produces a non-negative performance rating. Implementations
// backed by pointers rate a nil receiver as 0.
type Performer interface {
	PerformanceRating() float64
}

// Of returns p's rating, or 0 for a nil Performer.
func Of(p Performer) float64 {
	if p == nil {
		return 0
	}
	return p.PerformanceRating()
}
