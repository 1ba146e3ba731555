package service

import (
	"context"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/types"
)

// TopN returns the top N standings rows. Limits above the configured maximum
// are capped.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if n > s.maxStandingsLimit {
		n = s.maxStandingsLimit
	}
	entries, err := s.standings.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[i] = toEntry(e)
	}
	return out, nil
}

// Rank returns the rank and rating of a team.
func (s *Service) Rank(ctx context.Context, teamID string) (types.Entry, error) {
	e, err := s.standings.Rank(ctx, teamID)
	if err != nil {
		return types.Entry{}, err
	}
	return toEntry(e), nil
}

// Tracks lists the circuits ordered by id.
func (s *Service) Tracks(ctx context.Context) []model.Track {
	var out []model.Track
	_ = s.garage.View(func(tx *repository.Tx) error {
		out = tx.Tracks()
		return nil
	})
	return out
}

// Track returns one circuit.
func (s *Service) Track(ctx context.Context, id string) (model.Track, error) {
	var out model.Track
	err := s.garage.View(func(tx *repository.Tx) error {
		var err error
		out, err = tx.Track(id)
		return err
	})
	return out, err
}

func toEntry(e repository.Entry) types.Entry {
	return types.Entry{
		Rank:     e.Rank,
		TeamID:   e.TeamID,
		TeamName: e.TeamName,
		Rating:   e.Rating,
	}
}
