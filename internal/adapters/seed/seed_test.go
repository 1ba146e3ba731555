package seed_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/paddock/internal/adapters/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func writeSeed(content string) string {
	dir, err := os.MkdirTemp("", "paddock-seed-*")
	So(err, ShouldBeNil)
	path := filepath.Join(dir, "seed.yaml")
	So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
	return path
}

const validSeed = `
drivers:
  - { id: d1, name: Lando Norris, skill: 140 }
  - { id: d2, name: Oscar Piastri, skill: 93 }
parts:
  - { id: e1, name: Mercedes M16, kind: engine, performance: 80 }
  - { id: t1, name: Pirelli C4, kind: tires, performance: 70, compound: SOFT }
teams:
  - id: mclaren
    name: McLaren
    vehicle: MCL39
    drivers: [d1, d2]
    parts: [e1, t1]
    race_strategy: { pit_stops: 2, starting_compound: SOFT, fuel_load: 95.5 }
tracks:
  - { id: monza, name: Monza, laps: 53, characteristic: speed }
users:
  - { id: u1, username: stella, password: secret, role: ADMIN, managed_team: mclaren }
`

func TestLoad(t *testing.T) {
	Convey("Given a valid seed file", t, func() {
		path := writeSeed(validSeed)
		defer os.RemoveAll(filepath.Dir(path))

		s, err := seed.Load(path)

		Convey("Then every section is decoded", func() {
			So(err, ShouldBeNil)
			So(s.Drivers, ShouldHaveLength, 2)
			So(s.Drivers[0], ShouldResemble, seed.Driver{ID: "d1", Name: "Lando Norris", Skill: 140})
			So(s.Parts[1].Compound, ShouldEqual, "SOFT")
			So(s.Teams, ShouldHaveLength, 1)
			So(s.Teams[0].Drivers, ShouldResemble, []string{"d1", "d2"})
			So(s.Teams[0].Parts, ShouldResemble, []string{"e1", "t1"})
			So(s.Teams[0].RaceStrategy, ShouldNotBeNil)
			So(s.Teams[0].RaceStrategy.FuelLoad, ShouldEqual, 95.5)
			So(s.Tracks[0].Characteristic, ShouldEqual, "speed")
			So(s.Users[0].ManagedTeam, ShouldEqual, "mclaren")
		})
	})

	Convey("Given the bundled starter grid", t, func() {
		s, err := seed.Load(filepath.Join("..", "..", "..", "configs", "seed.yaml"))

		Convey("Then it loads and validates", func() {
			So(err, ShouldBeNil)
			So(len(s.Teams), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := seed.Load("/nonexistent/seed.yaml")

		Convey("Then a load error is returned", func() {
			So(errors.Is(err, seed.ErrLoadSeed), ShouldBeTrue)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given seeds with broken references", t, func() {
		cases := map[string]*seed.Seed{
			"duplicate driver": {Drivers: []seed.Driver{{ID: "d1"}, {ID: "d1"}}},
			"missing part id":  {Parts: []seed.Part{{Name: "anonymous"}}},
			"unknown driver":   {Teams: []seed.Team{{ID: "t", Drivers: []string{"ghost"}}}},
			"unknown part":     {Teams: []seed.Team{{ID: "t", Parts: []string{"ghost"}}}},
			"unknown team":     {Users: []seed.User{{ID: "u", Username: "u", ManagedTeam: "ghost"}}},
			"duplicate username": {Users: []seed.User{
				{ID: "u1", Username: "stella"}, {ID: "u2", Username: "stella"},
			}},
			"driver on two teams": {
				Drivers: []seed.Driver{{ID: "d1"}},
				Teams:   []seed.Team{{ID: "a", Drivers: []string{"d1"}}, {ID: "b", Drivers: []string{"d1"}}},
			},
			"part on two teams": {
				Parts: []seed.Part{{ID: "e1", Kind: "engine"}},
				Teams: []seed.Team{{ID: "a", Parts: []string{"e1"}}, {ID: "b", Parts: []string{"e1"}}},
			},
		}
		for name, s := range cases {
			Convey("Then "+name+" is rejected", func() {
				So(errors.Is(s.Validate(), seed.ErrInvalidSeed), ShouldBeTrue)
			})
		}
	})

	Convey("Given an empty seed", t, func() {
		Convey("Then it is valid", func() {
			So((&seed.Seed{}).Validate(), ShouldBeNil)
		})
	})
}
