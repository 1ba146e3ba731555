package repository

import "math/rand/v2"

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithMetrics toggles Prometheus reporting of the standings size and latencies.
func WithMetrics(enabled bool) Option {
	return func(s *TreapStore) {
		s.metrics = enabled
	}
}

// WithSeed fixes the source of node priorities, making tree shapes repeatable.
func WithSeed(seed uint64) Option {
	return func(s *TreapStore) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}
