// Package seed loads the startup dataset of a garage from a YAML file.
package seed

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Sentinel errors for seed loading.
var (
	ErrLoadSeed    = errors.New("load seed failed")
	ErrInvalidSeed = errors.New("invalid seed")
)

// Seed is the raw dataset. Values are validated by Validate; ranged values are
// left as written so the service can clamp and report them.
type Seed struct {
	Drivers []Driver `koanf:"drivers"`
	Parts   []Part   `koanf:"parts"`
	Teams   []Team   `koanf:"teams"`
	Tracks  []Track  `koanf:"tracks"`
	Users   []User   `koanf:"users"`
}

// Driver is a seeded driver.
type Driver struct {
	ID    string `koanf:"id"`
	Name  string `koanf:"name"`
	Skill int    `koanf:"skill"`
}

// Part is a seeded component. Compound applies to tires only.
type Part struct {
	ID          string `koanf:"id"`
	Name        string `koanf:"name"`
	Kind        string `koanf:"kind"`
	Performance int    `koanf:"performance"`
	Compound    string `koanf:"compound"`
}

// Team is a seeded team. Drivers and Parts reference seeded ids.
type Team struct {
	ID           string        `koanf:"id"`
	Name         string        `koanf:"name"`
	Strategy     string        `koanf:"strategy"`
	Vehicle      string        `koanf:"vehicle"`
	Drivers      []string      `koanf:"drivers"`
	Parts        []string      `koanf:"parts"`
	RaceStrategy *RaceStrategy `koanf:"race_strategy"`
}

// RaceStrategy is a seeded race plan.
type RaceStrategy struct {
	PitStops         int     `koanf:"pit_stops"`
	StartingCompound string  `koanf:"starting_compound"`
	FuelLoad         float64 `koanf:"fuel_load"`
}

// Track is a seeded circuit.
type Track struct {
	ID             string `koanf:"id"`
	Name           string `koanf:"name"`
	Laps           int    `koanf:"laps"`
	Characteristic string `koanf:"characteristic"`
}

// User is a seeded account; Password is hashed on load and never kept.
type User struct {
	ID          string `koanf:"id"`
	Username    string `koanf:"username"`
	Password    string `koanf:"password"`
	Role        string `koanf:"role"`
	ManagedTeam string `koanf:"managed_team"`
}

// Load reads and validates the seed file at path.
func Load(path string) (*Seed, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}

	var s Seed
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks ids are present and unique per entity, that usernames are
// unique, that team references resolve and that no driver or part is listed
// by two teams. Kinds, compounds and strategies are checked when the seed is
// applied.
func (s *Seed) Validate() error {
	drivers, err := uniqueIDs("driver", len(s.Drivers), func(i int) string { return s.Drivers[i].ID })
	if err != nil {
		return err
	}
	parts, err := uniqueIDs("part", len(s.Parts), func(i int) string { return s.Parts[i].ID })
	if err != nil {
		return err
	}
	teams, err := uniqueIDs("team", len(s.Teams), func(i int) string { return s.Teams[i].ID })
	if err != nil {
		return err
	}
	if _, err := uniqueIDs("track", len(s.Tracks), func(i int) string { return s.Tracks[i].ID }); err != nil {
		return err
	}
	if _, err := uniqueIDs("user", len(s.Users), func(i int) string { return s.Users[i].ID }); err != nil {
		return err
	}
	if _, err := uniqueIDs("username", len(s.Users), func(i int) string { return s.Users[i].Username }); err != nil {
		return err
	}

	driverOwner := make(map[string]string, len(s.Drivers))
	partOwner := make(map[string]string, len(s.Parts))
	for _, t := range s.Teams {
		for _, id := range t.Drivers {
			if !drivers[id] {
				return fmt.Errorf("%w: team %q references unknown driver %q", ErrInvalidSeed, t.ID, id)
			}
			if owner, ok := driverOwner[id]; ok && owner != t.ID {
				return fmt.Errorf("%w: driver %q listed by %q and %q", ErrInvalidSeed, id, owner, t.ID)
			}
			driverOwner[id] = t.ID
		}
		for _, id := range t.Parts {
			if !parts[id] {
				return fmt.Errorf("%w: team %q references unknown part %q", ErrInvalidSeed, t.ID, id)
			}
			if owner, ok := partOwner[id]; ok && owner != t.ID {
				return fmt.Errorf("%w: part %q listed by %q and %q", ErrInvalidSeed, id, owner, t.ID)
			}
			partOwner[id] = t.ID
		}
	}
	for _, u := range s.Users {
		if u.ManagedTeam != "" && !teams[u.ManagedTeam] {
			return fmt.Errorf("%w: user %q manages unknown team %q", ErrInvalidSeed, u.ID, u.ManagedTeam)
		}
	}
	return nil
}

func uniqueIDs(entity string, n int, id func(int) string) (map[string]bool, error) {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			return nil, fmt.Errorf("%w: %s #%d has no id", ErrInvalidSeed, entity, i+1)
		}
		if seen[v] {
			return nil, fmt.Errorf("%w: duplicate %s id %q", ErrInvalidSeed, entity, v)
		}
		seen[v] = true
	}
	return seen, nil
}
