package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/race"
	"github.com/okian/paddock/internal/domain/team"
	"github.com/okian/paddock/internal/domain/types"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// Roster rejection reasons used as metric labels.
const (
	reasonRosterFull   = "roster_full"
	reasonDuplicate    = "duplicate"
	reasonDriverSigned = "signed_elsewhere"
)

// Team returns one team with its roster and vehicle.
func (s *Service) Team(ctx context.Context, id string) (types.Team, error) {
	var out types.Team
	err := s.garage.View(func(tx *repository.Tx) error {
		t, err := tx.Team(id)
		if err != nil {
			return err
		}
		out = types.FromTeam(t)
		return nil
	})
	return out, err
}

// Teams lists every team ordered by id.
func (s *Service) Teams(ctx context.Context) []types.Team {
	var out []types.Team
	_ = s.garage.View(func(tx *repository.Tx) error {
		ts := tx.Teams()
		out = make([]types.Team, 0, len(ts))
		for _, t := range ts {
			out = append(out, types.FromTeam(t))
		}
		return nil
	})
	return out
}

// CreateTeam registers an empty team. An empty id gets a fresh one.
func (s *Service) CreateTeam(ctx context.Context, id, name, strategy string) (types.Team, error) {
	if name == "" {
		return types.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidArgument)
	}
	st, err := team.ParseStrategy(strategy)
	if err != nil {
		return types.Team{}, err
	}
	if id == "" {
		id = s.newID()
	}

	t := team.New(id, name, team.WithStrategy(st))
	var out types.Team
	err = s.garage.Update(func(tx *repository.Tx) error {
		if err := tx.AddTeam(t); err != nil {
			return err
		}
		out = types.FromTeam(t)
		return s.rerate(ctx, t)
	})
	if err != nil {
		return types.Team{}, err
	}
	s.logger.Info(ctx, "team created", logger.String("team_id", id), logger.String("strategy", string(st)))
	return out, nil
}

// SetTeamStrategy hands a team to the AI with the given strategy, or back to
// a user with an empty one.
func (s *Service) SetTeamStrategy(ctx context.Context, teamID, strategy string) (types.Team, error) {
	st, err := team.ParseStrategy(strategy)
	if err != nil {
		return types.Team{}, err
	}
	return s.updateTeam(ctx, teamID, func(_ *repository.Tx, t *team.Team) error {
		return t.SetStrategy(st)
	})
}

// AddDriverToTeam signs a registered driver. It fails with team.ErrRosterFull
// when the roster already has two drivers, team.ErrDuplicateDriver when the
// driver is already on it and repository.ErrDriverSigned when another team
// holds the driver.
func (s *Service) AddDriverToTeam(ctx context.Context, teamID, driverID string) (types.Team, error) {
	out, err := s.updateTeam(ctx, teamID, func(tx *repository.Tx, t *team.Team) error {
		d, err := tx.Driver(driverID)
		if err != nil {
			return err
		}
		if owner, ok := tx.TeamOfDriver(driverID); ok && owner != teamID {
			return fmt.Errorf("driver %q on %q: %w", driverID, owner, repository.ErrDriverSigned)
		}
		return t.TryAddDriver(d)
	})
	if err != nil {
		s.recordRosterRejection(ctx, teamID, driverID, err)
		return types.Team{}, err
	}
	s.logger.Info(ctx, "driver signed", logger.String("team_id", teamID), logger.String("driver_id", driverID))
	return out, nil
}

// RemoveDriverFromTeam releases a driver. A driver not on the roster is
// reported as repository.ErrNotFound.
func (s *Service) RemoveDriverFromTeam(ctx context.Context, teamID, driverID string) (types.Team, error) {
	out, err := s.updateTeam(ctx, teamID, func(_ *repository.Tx, t *team.Team) error {
		if _, ok := t.RemoveDriverByID(driverID); !ok {
			return fmt.Errorf("driver %q on team %q: %w", driverID, teamID, repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return types.Team{}, err
	}
	s.logger.Info(ctx, "driver released", logger.String("team_id", teamID), logger.String("driver_id", driverID))
	return out, nil
}

// InstallPart places a registered part into the matching slot of the team's
// vehicle, creating the vehicle on first use. A part already installed on
// another team fails with repository.ErrPartInUse; the displaced part becomes
// free again.
func (s *Service) InstallPart(ctx context.Context, teamID string, kind car.Kind, partID string) (types.Team, error) {
	out, err := s.updateTeam(ctx, teamID, func(tx *repository.Tx, t *team.Team) error {
		c, err := tx.Part(partID)
		if err != nil {
			return err
		}
		if owner, ok := tx.TeamOfPart(partID); ok && owner != teamID {
			return fmt.Errorf("part %q on %q: %w", partID, owner, repository.ErrPartInUse)
		}
		v := t.Vehicle()
		if v == nil {
			v = car.NewVehicle(teamID+"-car", t.Name())
		}
		if _, err := v.Assign(kind, c); err != nil {
			return err
		}
		t.SetVehicle(v)
		return nil
	})
	if err != nil {
		metrics.RecordErrorByComponent("service", "install_part")
		return types.Team{}, err
	}
	metrics.RecordComponentInstall(kind.String())
	s.logger.Info(ctx, "part installed",
		logger.String("team_id", teamID),
		logger.String("kind", kind.String()),
		logger.String("part_id", partID),
		logger.Float64("rating", out.Rating),
	)
	return out, nil
}

// RemovePart clears a slot of the team's vehicle and returns the team.
func (s *Service) RemovePart(ctx context.Context, teamID string, kind car.Kind) (types.Team, error) {
	var removed string
	out, err := s.updateTeam(ctx, teamID, func(_ *repository.Tx, t *team.Team) error {
		if !kind.Valid() {
			return fmt.Errorf("%w: %d", car.ErrUnknownKind, int(kind))
		}
		v := t.Vehicle()
		if v == nil || v.Component(kind) == nil {
			return fmt.Errorf("%w: %s on %q", ErrSlotEmpty, kind, teamID)
		}
		removed = v.Remove(kind).ID()
		return nil
	})
	if err != nil {
		return types.Team{}, err
	}
	metrics.RecordComponentRemoval(kind.String())
	s.logger.Info(ctx, "part removed",
		logger.String("team_id", teamID),
		logger.String("kind", kind.String()),
		logger.String("part_id", removed),
		logger.Float64("rating", out.Rating),
	)
	return out, nil
}

// RaceStrategy returns the race plan filed by a team.
func (s *Service) RaceStrategy(ctx context.Context, teamID string) (types.RaceStrategy, error) {
	var out types.RaceStrategy
	err := s.garage.View(func(tx *repository.Tx) error {
		plan, err := tx.RaceStrategy(teamID)
		if err != nil {
			return err
		}
		out = types.FromRaceStrategy(teamID, plan)
		return nil
	})
	return out, err
}

// SetRaceStrategy files a race plan for a team. Fuel outside 0..100 kg is
// clamped and negative pit stops count as none.
func (s *Service) SetRaceStrategy(ctx context.Context, teamID string, pitStops int, compound string, fuelLoad float64) (types.RaceStrategy, error) {
	c, err := car.ParseCompound(compound)
	if err != nil {
		return types.RaceStrategy{}, err
	}
	plan := race.NewStrategy(teamID+"-plan", pitStops, c, fuelLoad)
	err = s.garage.Update(func(tx *repository.Tx) error {
		return tx.SetRaceStrategy(teamID, plan)
	})
	if err != nil {
		return types.RaceStrategy{}, err
	}
	s.logger.Info(ctx, "race strategy filed", logger.String("team_id", teamID), logger.String("strategy", plan.String()))
	return types.FromRaceStrategy(teamID, plan), nil
}

// updateTeam runs fn on a team under the garage write lock and republishes
// its rating when fn succeeds.
func (s *Service) updateTeam(ctx context.Context, teamID string, fn func(tx *repository.Tx, t *team.Team) error) (types.Team, error) {
	var out types.Team
	err := s.garage.Update(func(tx *repository.Tx) error {
		t, err := tx.Team(teamID)
		if err != nil {
			return err
		}
		if err := fn(tx, t); err != nil {
			return err
		}
		out = types.FromTeam(t)
		return s.rerate(ctx, t)
	})
	return out, err
}

func (s *Service) recordRosterRejection(ctx context.Context, teamID, driverID string, err error) {
	var reason string
	switch {
	case errors.Is(err, team.ErrRosterFull):
		reason = reasonRosterFull
	case errors.Is(err, team.ErrDuplicateDriver):
		reason = reasonDuplicate
	case errors.Is(err, repository.ErrDriverSigned):
		reason = reasonDriverSigned
	default:
		return
	}
	metrics.RecordRosterRejection(reason)
	s.logger.Warn(ctx, "roster change rejected",
		logger.String("team_id", teamID),
		logger.String("driver_id", driverID),
		logger.String("reason", reason),
	)
}
