package service

import (
	"context"
	"fmt"

	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/adapters/seed"
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/driver"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/race"
	"github.com/okian/paddock/internal/domain/team"
	"github.com/okian/paddock/pkg/logger"
)

// built is a seed converted into domain entities, ready to register.
type built struct {
	drivers []*driver.Driver
	parts   []*car.Component
	tracks  []model.Track
	teams   []*team.Team
	plans   map[string]*race.Strategy
	users   []*model.User
}

// LoadSeed registers every entity of sd. Entities are built and checked
// against the registry before anything is added, so a rejected seed leaves
// the garage and the standings untouched.
func (s *Service) LoadSeed(ctx context.Context, sd *seed.Seed) error {
	if err := sd.Validate(); err != nil {
		return err
	}
	b, err := s.build(sd)
	if err != nil {
		return err
	}

	err = s.garage.Update(func(tx *repository.Tx) error {
		if err := b.conflicts(tx); err != nil {
			return err
		}
		for _, d := range b.drivers {
			if err := tx.AddDriver(d); err != nil {
				return err
			}
		}
		for _, c := range b.parts {
			if err := tx.AddPart(c); err != nil {
				return err
			}
		}
		for _, tr := range b.tracks {
			if err := tx.AddTrack(tr); err != nil {
				return err
			}
		}
		for _, t := range b.teams {
			if err := tx.AddTeam(t); err != nil {
				return err
			}
			if plan, ok := b.plans[t.ID()]; ok {
				if err := tx.SetRaceStrategy(t.ID(), plan); err != nil {
					return err
				}
			}
		}
		for _, u := range b.users {
			if err := tx.AddUser(u); err != nil {
				return err
			}
		}
		for _, t := range b.teams {
			if err := s.rerate(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", seed.ErrInvalidSeed, err)
	}

	s.logger.Info(ctx, "seed loaded",
		logger.Int("teams", len(b.teams)),
		logger.Int("drivers", len(b.drivers)),
		logger.Int("parts", len(b.parts)),
		logger.Int("tracks", len(b.tracks)),
		logger.Int("users", len(b.users)),
	)
	return nil
}

// conflicts reports the first entity of b whose id or username is already
// registered. Seed drivers and parts are new, so once no id collides no
// registered team can already hold them.
func (b *built) conflicts(tx *repository.Tx) error {
	for _, d := range b.drivers {
		if _, err := tx.Driver(d.ID()); err == nil {
			return fmt.Errorf("driver %q: %w", d.ID(), repository.ErrAlreadyExists)
		}
	}
	for _, c := range b.parts {
		if _, err := tx.Part(c.ID()); err == nil {
			return fmt.Errorf("part %q: %w", c.ID(), repository.ErrAlreadyExists)
		}
	}
	for _, tr := range b.tracks {
		if _, err := tx.Track(tr.ID); err == nil {
			return fmt.Errorf("track %q: %w", tr.ID, repository.ErrAlreadyExists)
		}
	}
	for _, t := range b.teams {
		if _, err := tx.Team(t.ID()); err == nil {
			return fmt.Errorf("team %q: %w", t.ID(), repository.ErrAlreadyExists)
		}
	}
	for _, u := range b.users {
		if _, err := tx.User(u.ID); err == nil {
			return fmt.Errorf("user %q: %w", u.ID, repository.ErrAlreadyExists)
		}
		if _, err := tx.UserByName(u.Username); err == nil {
			return fmt.Errorf("user %q: %w", u.Username, repository.ErrAlreadyExists)
		}
	}
	return nil
}

func (s *Service) build(sd *seed.Seed) (*built, error) {
	b := &built{plans: make(map[string]*race.Strategy)}
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", seed.ErrInvalidSeed, fmt.Sprintf(format, args...))
	}

	drivers := make(map[string]*driver.Driver, len(sd.Drivers))
	for _, d := range sd.Drivers {
		nd := driver.New(d.ID, d.Name, d.Skill, driver.WithReporter(s))
		drivers[d.ID] = nd
		b.drivers = append(b.drivers, nd)
	}

	parts := make(map[string]*car.Component, len(sd.Parts))
	for _, p := range sd.Parts {
		kind, err := car.ParseKind(p.Kind)
		if err != nil {
			return nil, invalid("part %q: %v", p.ID, err)
		}
		opts := []car.Option{car.WithReporter(s)}
		if p.Compound != "" {
			if kind != car.Tires {
				return nil, invalid("part %q: %v", p.ID, car.ErrNotTires)
			}
			c, err := car.ParseCompound(p.Compound)
			if err != nil {
				return nil, invalid("part %q: %v", p.ID, err)
			}
			opts = append(opts, car.WithCompound(c))
		}
		c, err := car.New(kind, p.ID, p.Name, p.Performance, opts...)
		if err != nil {
			return nil, invalid("part %q: %v", p.ID, err)
		}
		parts[p.ID] = c
		b.parts = append(b.parts, c)
	}

	for _, tr := range sd.Tracks {
		ch, err := model.ParseCharacteristic(tr.Characteristic)
		if err != nil {
			return nil, invalid("track %q: %v", tr.ID, err)
		}
		b.tracks = append(b.tracks, model.Track{ID: tr.ID, Name: tr.Name, Laps: tr.Laps, Characteristic: ch})
	}

	for _, st := range sd.Teams {
		t, err := buildTeam(st, drivers, parts)
		if err != nil {
			return nil, invalid("team %q: %v", st.ID, err)
		}
		b.teams = append(b.teams, t)

		if rs := st.RaceStrategy; rs != nil {
			c, err := car.ParseCompound(rs.StartingCompound)
			if err != nil {
				return nil, invalid("team %q race strategy: %v", st.ID, err)
			}
			b.plans[st.ID] = race.NewStrategy(st.ID+"-plan", rs.PitStops, c, rs.FuelLoad)
		}
	}

	for _, su := range sd.Users {
		u, err := model.NewUser(su.ID, su.Username, su.Password, model.ParseRole(su.Role), su.ManagedTeam)
		if err != nil {
			return nil, invalid("user %q: %v", su.ID, err)
		}
		b.users = append(b.users, u)
	}
	return b, nil
}

func buildTeam(st seed.Team, drivers map[string]*driver.Driver, parts map[string]*car.Component) (*team.Team, error) {
	strategy, err := team.ParseStrategy(st.Strategy)
	if err != nil {
		return nil, err
	}
	t := team.New(st.ID, st.Name, team.WithStrategy(strategy))

	for _, id := range st.Drivers {
		if err := t.TryAddDriver(drivers[id]); err != nil {
			return nil, err
		}
	}

	if len(st.Parts) == 0 && st.Vehicle == "" {
		return t, nil
	}
	name := st.Vehicle
	if name == "" {
		name = st.Name
	}
	v := car.NewVehicle(st.ID+"-car", name)
	for _, id := range st.Parts {
		c := parts[id]
		if v.Component(c.Kind()) != nil {
			return nil, fmt.Errorf("second %s %q", c.Kind(), id)
		}
		if _, err := v.Install(c); err != nil {
			return nil, err
		}
	}
	t.SetVehicle(v)
	return t, nil
}
