package service

// WithWeightCheck replaces the component weight check run by Start.
func WithWeightCheck(fn func() error) Option {
	return func(s *Service) {
		s.checkWeights = fn
	}
}
