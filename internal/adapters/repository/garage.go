package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/driver"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/race"
	"github.com/okian/paddock/internal/domain/team"
	"github.com/okian/paddock/pkg/metrics"
)

// Entity names used for registry counts.
const (
	EntityTeams   = "teams"
	EntityDrivers = "drivers"
	EntityParts   = "parts"
	EntityTracks  = "tracks"
	EntityUsers   = "users"
)

// Garage is the registry of every team, driver, part, track and user, plus
// the race strategy each team has filed.
// Domain entities are not safe for concurrent mutation, so all access goes
// through View or Update, which hold the garage lock for the whole callback.
type Garage struct {
	mu      sync.RWMutex
	teams   map[string]*team.Team
	drivers map[string]*driver.Driver
	parts   map[string]*car.Component
	tracks  map[string]model.Track
	users   map[string]*model.User
	plans   map[string]*race.Strategy
}

// NewGarage returns an empty registry.
func NewGarage() *Garage {
	return &Garage{
		teams:   make(map[string]*team.Team),
		drivers: make(map[string]*driver.Driver),
		parts:   make(map[string]*car.Component),
		tracks:  make(map[string]model.Track),
		users:   make(map[string]*model.User),
		plans:   make(map[string]*race.Strategy),
	}
}

// Tx is a view of the garage valid only inside a View or Update callback.
type Tx struct {
	g        *Garage
	writable bool
}

// View runs fn under the read lock. fn must not mutate any entity it reads.
func (g *Garage) View(fn func(tx *Tx) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn(&Tx{g: g})
}

// Update runs fn under the write lock. Registry gauges are refreshed afterwards.
func (g *Garage) Update(fn func(tx *Tx) error) error {
	g.mu.Lock()
	err := fn(&Tx{g: g, writable: true})
	counts := g.countsLocked()
	g.mu.Unlock()

	for entity, n := range counts {
		metrics.UpdateRegistryEntities(entity, n)
	}
	return err
}

// Counts returns the number of entities of each kind.
func (g *Garage) Counts() map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.countsLocked()
}

func (g *Garage) countsLocked() map[string]int {
	return map[string]int{
		EntityTeams:   len(g.teams),
		EntityDrivers: len(g.drivers),
		EntityParts:   len(g.parts),
		EntityTracks:  len(g.tracks),
		EntityUsers:   len(g.users),
	}
}

func (tx *Tx) mustWrite() {
	if !tx.writable {
		panic("repository: write in read-only transaction")
	}
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", strings.TrimSuffix(entity, "s"), id, ErrNotFound)
}

func exists(entity, id string) error {
	return fmt.Errorf("%s %q: %w", strings.TrimSuffix(entity, "s"), id, ErrAlreadyExists)
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Team returns the team with id.
func (tx *Tx) Team(id string) (*team.Team, error) {
	t, ok := tx.g.teams[id]
	if !ok {
		return nil, notFound(EntityTeams, id)
	}
	return t, nil
}

// Teams returns every team ordered by id.
func (tx *Tx) Teams() []*team.Team {
	out := make([]*team.Team, 0, len(tx.g.teams))
	for _, id := range sortedKeys(tx.g.teams) {
		out = append(out, tx.g.teams[id])
	}
	return out
}

// AddTeam registers t. Its drivers and installed parts must already be
// registered and must not belong to another team.
func (tx *Tx) AddTeam(t *team.Team) error {
	tx.mustWrite()
	if _, ok := tx.g.teams[t.ID()]; ok {
		return exists(EntityTeams, t.ID())
	}
	for _, d := range t.Drivers() {
		if _, err := tx.Driver(d.ID()); err != nil {
			return err
		}
		if owner, ok := tx.TeamOfDriver(d.ID()); ok {
			return fmt.Errorf("driver %q on %q: %w", d.ID(), owner, ErrDriverSigned)
		}
	}
	if v := t.Vehicle(); v != nil {
		for _, k := range car.Kinds() {
			c := v.Component(k)
			if c == nil {
				continue
			}
			if _, err := tx.Part(c.ID()); err != nil {
				return err
			}
			if owner, ok := tx.TeamOfPart(c.ID()); ok {
				return fmt.Errorf("part %q on %q: %w", c.ID(), owner, ErrPartInUse)
			}
		}
	}
	tx.g.teams[t.ID()] = t
	return nil
}

// Driver returns the driver with id.
func (tx *Tx) Driver(id string) (*driver.Driver, error) {
	d, ok := tx.g.drivers[id]
	if !ok {
		return nil, notFound(EntityDrivers, id)
	}
	return d, nil
}

// Drivers returns every driver ordered by id.
func (tx *Tx) Drivers() []*driver.Driver {
	out := make([]*driver.Driver, 0, len(tx.g.drivers))
	for _, id := range sortedKeys(tx.g.drivers) {
		out = append(out, tx.g.drivers[id])
	}
	return out
}

// AddDriver registers d.
func (tx *Tx) AddDriver(d *driver.Driver) error {
	tx.mustWrite()
	if _, ok := tx.g.drivers[d.ID()]; ok {
		return exists(EntityDrivers, d.ID())
	}
	tx.g.drivers[d.ID()] = d
	return nil
}

// DeleteDriver unregisters a driver that is not on any roster.
func (tx *Tx) DeleteDriver(id string) error {
	tx.mustWrite()
	if _, err := tx.Driver(id); err != nil {
		return err
	}
	if owner, ok := tx.TeamOfDriver(id); ok {
		return fmt.Errorf("driver %q on %q: %w", id, owner, ErrDriverSigned)
	}
	delete(tx.g.drivers, id)
	return nil
}

// TeamOfDriver returns the id of the team whose roster holds the driver.
func (tx *Tx) TeamOfDriver(driverID string) (string, bool) {
	for id, t := range tx.g.teams {
		if t.HasDriver(driverID) {
			return id, true
		}
	}
	return "", false
}

// Part returns the component with id.
func (tx *Tx) Part(id string) (*car.Component, error) {
	c, ok := tx.g.parts[id]
	if !ok {
		return nil, notFound(EntityParts, id)
	}
	return c, nil
}

// Parts returns every component ordered by id.
func (tx *Tx) Parts() []*car.Component {
	out := make([]*car.Component, 0, len(tx.g.parts))
	for _, id := range sortedKeys(tx.g.parts) {
		out = append(out, tx.g.parts[id])
	}
	return out
}

// AddPart registers c.
func (tx *Tx) AddPart(c *car.Component) error {
	tx.mustWrite()
	if _, ok := tx.g.parts[c.ID()]; ok {
		return exists(EntityParts, c.ID())
	}
	tx.g.parts[c.ID()] = c
	return nil
}

// TeamOfPart returns the id of the team whose vehicle holds the part.
func (tx *Tx) TeamOfPart(partID string) (string, bool) {
	for id, t := range tx.g.teams {
		v := t.Vehicle()
		if v == nil {
			continue
		}
		for _, k := range car.Kinds() {
			if c := v.Component(k); c != nil && c.ID() == partID {
				return id, true
			}
		}
	}
	return "", false
}

// Track returns the track with id.
func (tx *Tx) Track(id string) (model.Track, error) {
	tr, ok := tx.g.tracks[id]
	if !ok {
		return model.Track{}, notFound(EntityTracks, id)
	}
	return tr, nil
}

// Tracks returns every track ordered by id.
func (tx *Tx) Tracks() []model.Track {
	out := make([]model.Track, 0, len(tx.g.tracks))
	for _, id := range sortedKeys(tx.g.tracks) {
		out = append(out, tx.g.tracks[id])
	}
	return out
}

// AddTrack registers tr.
func (tx *Tx) AddTrack(tr model.Track) error {
	tx.mustWrite()
	if _, ok := tx.g.tracks[tr.ID]; ok {
		return exists(EntityTracks, tr.ID)
	}
	tx.g.tracks[tr.ID] = tr
	return nil
}

// User returns the user with id.
func (tx *Tx) User(id string) (*model.User, error) {
	u, ok := tx.g.users[id]
	if !ok {
		return nil, notFound(EntityUsers, id)
	}
	return u, nil
}

// UserByName returns the user with the given username.
func (tx *Tx) UserByName(username string) (*model.User, error) {
	for _, u := range tx.g.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, notFound(EntityUsers, username)
}

// AddUser registers u. Usernames are unique.
func (tx *Tx) AddUser(u *model.User) error {
	tx.mustWrite()
	if _, ok := tx.g.users[u.ID]; ok {
		return exists(EntityUsers, u.ID)
	}
	if _, err := tx.UserByName(u.Username); err == nil {
		return exists(EntityUsers, u.Username)
	}
	tx.g.users[u.ID] = u
	return nil
}

// RaceStrategy returns the race strategy filed by a team.
func (tx *Tx) RaceStrategy(teamID string) (*race.Strategy, error) {
	if _, err := tx.Team(teamID); err != nil {
		return nil, err
	}
	s, ok := tx.g.plans[teamID]
	if !ok {
		return nil, fmt.Errorf("race strategy for %q: %w", teamID, ErrNotFound)
	}
	return s, nil
}

// SetRaceStrategy files s for a registered team, replacing any previous one.
func (tx *Tx) SetRaceStrategy(teamID string, s *race.Strategy) error {
	tx.mustWrite()
	if _, err := tx.Team(teamID); err != nil {
		return err
	}
	tx.g.plans[teamID] = s
	return nil
}
