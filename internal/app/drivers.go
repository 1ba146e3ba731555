package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/domain/driver"
	"github.com/okian/paddock/internal/domain/rating"
	"github.com/okian/paddock/internal/domain/types"
	"github.com/okian/paddock/pkg/logger"
)

// CreateDriver registers a free agent under a fresh id. A skill outside
// 1..100 is clamped and reported, not rejected.
func (s *Service) CreateDriver(ctx context.Context, name string, skill int) (types.SkillUpdate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.SkillUpdate{}, fmt.Errorf("%w: driver name is required", ErrInvalidArgument)
	}

	d := driver.New(s.newID(), name, skill, driver.WithReporter(s))
	if err := s.garage.Update(func(tx *repository.Tx) error { return tx.AddDriver(d) }); err != nil {
		return types.SkillUpdate{}, err
	}

	s.logger.Info(ctx, "driver created", logger.String("driver_id", d.ID()), logger.Int("skill", d.Skill()))
	return skillUpdate(d, skill), nil
}

// Driver returns one driver.
func (s *Service) Driver(ctx context.Context, id string) (types.Driver, error) {
	var out types.Driver
	err := s.garage.View(func(tx *repository.Tx) error {
		d, err := tx.Driver(id)
		if err != nil {
			return err
		}
		out = types.FromDriver(d)
		return nil
	})
	return out, err
}

// Drivers lists every registered driver ordered by id.
func (s *Service) Drivers(ctx context.Context) []types.Driver {
	var out []types.Driver
	_ = s.garage.View(func(tx *repository.Tx) error {
		ds := tx.Drivers()
		out = make([]types.Driver, 0, len(ds))
		for _, d := range ds {
			out = append(out, types.FromDriver(d))
		}
		return nil
	})
	return out
}

// SetDriverSkill changes a driver's skill with the clamp-and-report policy.
func (s *Service) SetDriverSkill(ctx context.Context, id string, skill int) (types.SkillUpdate, error) {
	var out types.SkillUpdate
	err := s.garage.Update(func(tx *repository.Tx) error {
		d, err := tx.Driver(id)
		if err != nil {
			return err
		}
		d.SetSkill(skill)
		out = skillUpdate(d, skill)
		return nil
	})
	return out, err
}

// UpdateDriver renames a driver and/or changes its skill. A nil argument
// leaves that attribute alone; at least one must be set. The skill follows
// the clamp-and-report policy of SetDriverSkill.
func (s *Service) UpdateDriver(ctx context.Context, id string, name *string, skill *int) (types.SkillUpdate, error) {
	if name == nil && skill == nil {
		return types.SkillUpdate{}, fmt.Errorf("%w: name or skill is required", ErrInvalidArgument)
	}
	var newName string
	if name != nil {
		newName = strings.TrimSpace(*name)
		if newName == "" {
			return types.SkillUpdate{}, fmt.Errorf("%w: driver name is required", ErrInvalidArgument)
		}
	}

	var out types.SkillUpdate
	err := s.garage.Update(func(tx *repository.Tx) error {
		d, err := tx.Driver(id)
		if err != nil {
			return err
		}
		if name != nil {
			d.SetName(newName)
		}
		input := d.Skill()
		if skill != nil {
			input = *skill
			d.SetSkill(input)
		}
		out = skillUpdate(d, input)
		return nil
	})
	if err != nil {
		return types.SkillUpdate{}, err
	}

	s.logger.Info(ctx, "driver updated", logger.String("driver_id", id), logger.String("name", out.Driver.Name))
	return out, nil
}

// DeleteDriver unregisters a driver that is not signed to any team.
func (s *Service) DeleteDriver(ctx context.Context, id string) error {
	err := s.garage.Update(func(tx *repository.Tx) error { return tx.DeleteDriver(id) })
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "driver deleted", logger.String("driver_id", id))
	return nil
}

func skillUpdate(d *driver.Driver, input int) types.SkillUpdate {
	return types.SkillUpdate{
		Driver:  types.FromDriver(d),
		Input:   input,
		Clamped: !rating.Standard.Contains(input),
	}
}
