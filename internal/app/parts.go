package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/types"
	"github.com/okian/paddock/pkg/logger"
)

// CreatePart registers a loose component under a fresh id. Compound is only
// read for tires and defaults to MEDIUM.
func (s *Service) CreatePart(ctx context.Context, kind car.Kind, name string, performance int, compound string) (types.Component, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Component{}, fmt.Errorf("%w: part name is required", ErrInvalidArgument)
	}
	opts := []car.Option{car.WithReporter(s)}
	if kind == car.Tires && compound != "" {
		c, err := car.ParseCompound(compound)
		if err != nil {
			return types.Component{}, err
		}
		opts = append(opts, car.WithCompound(c))
	}

	c, err := car.New(kind, s.newID(), name, performance, opts...)
	if err != nil {
		return types.Component{}, err
	}
	if err := s.garage.Update(func(tx *repository.Tx) error { return tx.AddPart(c) }); err != nil {
		return types.Component{}, err
	}
	s.logger.Info(ctx, "part created",
		logger.String("part_id", c.ID()),
		logger.String("kind", kind.String()),
		logger.Int("performance", c.Performance()),
	)
	return types.FromComponent(c), nil
}

// Part returns one component.
func (s *Service) Part(ctx context.Context, id string) (types.Component, error) {
	var out types.Component
	err := s.garage.View(func(tx *repository.Tx) error {
		c, err := tx.Part(id)
		if err != nil {
			return err
		}
		out = types.FromComponent(c)
		return nil
	})
	return out, err
}

// Parts lists every registered component ordered by id.
func (s *Service) Parts(ctx context.Context) []types.Component {
	var out []types.Component
	_ = s.garage.View(func(tx *repository.Tx) error {
		cs := tx.Parts()
		out = make([]types.Component, 0, len(cs))
		for _, c := range cs {
			out = append(out, types.FromComponent(c))
		}
		return nil
	})
	return out
}

// SetPartPerformance changes a component's performance with the
// clamp-and-report policy. When the part is installed, the owning team's
// standing is updated before the call returns.
func (s *Service) SetPartPerformance(ctx context.Context, id string, performance int) (types.Component, error) {
	var out types.Component
	err := s.garage.Update(func(tx *repository.Tx) error {
		c, err := tx.Part(id)
		if err != nil {
			return err
		}
		c.SetPerformance(performance)
		out = types.FromComponent(c)

		owner, ok := tx.TeamOfPart(id)
		if !ok {
			return nil
		}
		t, err := tx.Team(owner)
		if err != nil {
			return err
		}
		out.Contribution = t.Vehicle().Contribution(c.Kind())
		return s.rerate(ctx, t)
	})
	return out, err
}
