// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/performance"
	"github.com/okian/paddock/internal/domain/rating"
	"github.com/okian/paddock/internal/domain/team"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// Service implements the API dependencies for the garage: rosters, vehicle
// assembly, ratings and standings.
type Service struct {
	mu sync.RWMutex

	// Core components
	garage    *repository.Garage
	standings repository.Store

	// Configuration
	maxStandingsLimit int
	newID             func() string
	checkWeights      func() error

	// State
	started bool

	// Logging
	logger logger.Logger
}

var _ rating.Reporter = (*Service)(nil)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGarage sets the entity registry.
func WithGarage(g *repository.Garage) Option {
	return func(s *Service) {
		if g != nil {
			s.garage = g
		}
	}
}

// WithStandings sets the standings store.
func WithStandings(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.standings = store
		}
	}
}

// WithMaxStandingsLimit caps the number of rows TopN returns.
func WithMaxStandingsLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxStandingsLimit = n
		}
	}
}

// WithIDGenerator sets how ids are minted for entities created without one.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxStandingsLimit: 100,
		newID:             uuid.NewString,
		checkWeights:      car.ValidateWeights,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.garage == nil {
		s.garage = repository.NewGarage()
	}
	if s.standings == nil {
		s.standings = repository.NewTreapStore()
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Start checks the component weight table and publishes the rating of every
// registered team to the standings.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting garage service...")

	if err := s.checkWeights(); err != nil {
		s.logger.Error(ctx, "component weights rejected", logger.Error(err))
		return err
	}

	err := s.garage.Update(func(tx *repository.Tx) error {
		for _, t := range tx.Teams() {
			if err := s.rerate(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.started = true
	counts := s.garage.Counts()
	s.logger.Info(ctx, "garage service started",
		logger.Int("teams", counts[repository.EntityTeams]),
		logger.Int("drivers", counts[repository.EntityDrivers]),
		logger.Int("parts", counts[repository.EntityParts]),
	)
	return nil
}

// Stop marks the service stopped. State is kept in memory only.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "garage service stopped")
}

// Report implements rating.Reporter: a clamped input is logged as a warning
// and counted, never returned to the caller.
func (s *Service) Report(field, entityID string, res rating.Result) {
	s.logger.Warn(context.Background(), "rating out of range, clamped",
		logger.String("field", field),
		logger.String("entity_id", entityID),
		logger.Int("input", res.Input),
		logger.Int("stored", res.Value),
	)
	metrics.RecordRatingClamp(field)
}

// rerate publishes the current rating of t. Callers hold the garage lock.
func (s *Service) rerate(ctx context.Context, t *team.Team) error {
	r := performance.Of(t)
	if err := s.standings.Set(ctx, t.ID(), t.Name(), r); err != nil {
		return err
	}
	metrics.ObserveVehicleRating(r)
	s.logger.Debug(ctx, "team rated",
		logger.String("team_id", t.ID()),
		logger.Float64("rating", r),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":           started,
		"maxStandingsLimit": s.maxStandingsLimit,
		"rankedTeams":       s.standings.Count(ctx),
	}
	for entity, n := range s.garage.Counts() {
		stats[entity] = n
	}

	weights := make(map[string]float64, len(car.Kinds()))
	for _, k := range car.Kinds() {
		weights[k.String()] = k.Weight()
	}
	stats["weights"] = weights
	return stats
}
