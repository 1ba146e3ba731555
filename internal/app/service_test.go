package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	service "github.com/okian/paddock/internal/app"
	"github.com/okian/paddock/internal/adapters/repository"
	"github.com/okian/paddock/internal/adapters/seed"
	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/team"
	"github.com/okian/paddock/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// grid is a small dataset: two teams, four drivers and a few loose parts.
func grid() *seed.Seed {
	return &seed.Seed{
		Drivers: []seed.Driver{
			{ID: "nor", Name: "Lando Norris", Skill: 94},
			{ID: "pia", Name: "Oscar Piastri", Skill: 93},
			{ID: "lec", Name: "Charles Leclerc", Skill: 93},
			{ID: "bea", Name: "Oliver Bearman", Skill: 150},
		},
		Parts: []seed.Part{
			{ID: "e1", Name: "Mercedes M16", Kind: "engine", Performance: 80},
			{ID: "e2", Name: "Ferrari 067", Kind: "engine", Performance: 90},
			{ID: "a1", Name: "MCL39 floor", Kind: "aero", Performance: 60},
			{ID: "t1", Name: "Pirelli C4", Kind: "tires", Performance: 70, Compound: "soft"},
		},
		Teams: []seed.Team{
			{ID: "mclaren", Name: "McLaren", Drivers: []string{"nor", "pia"}},
			{ID: "ferrari", Name: "Ferrari", Drivers: []string{"lec"}, Parts: []string{"e2"}},
		},
		Tracks: []seed.Track{
			{ID: "monza", Name: "Monza", Laps: 53, Characteristic: "SPEED"},
			{ID: "silverstone", Name: "Silverstone", Laps: 52},
		},
	}
}

func newSeededService(opts ...service.Option) *service.Service {
	svc := service.New(append([]service.Option{service.WithIDGenerator(sequentialIDs("id"))}, opts...)...)
	So(svc.LoadSeed(context.Background(), grid()), ShouldBeNil)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should be marked as started", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["rankedTeams"], ShouldEqual, 0)
				So(stats["weights"], ShouldResemble, map[string]float64{
					"engine": 0.35, "aerodynamics": 0.25, "tires": 0.20, "suspension": 0.10, "gearbox": 0.10,
				})
			})

			Convey("And starting twice is harmless", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When stopping before start", func() {
			Convey("Then nothing happens", func() {
				So(svc.Stop, ShouldNotPanic)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a weight table that does not sum to one", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithWeightCheck(func() error { return fmt.Errorf("%w: got 0.95", car.ErrWeights) }),
		)

		Convey("Then start fails and the service stays stopped", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, car.ErrWeights), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Seed(t *testing.T) {
	Convey("Given a seeded service", t, func() {
		ctx := context.Background()
		svc := newSeededService()

		Convey("Then teams are registered and rated", func() {
			ferrari, err := svc.Team(ctx, "ferrari")
			So(err, ShouldBeNil)
			So(ferrari.Rating, ShouldAlmostEqual, 31.5, 1e-9)
			So(ferrari.Vehicle.Name, ShouldEqual, "Ferrari")

			top, err := svc.TopN(ctx, 10)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 2)
			So(top[0].TeamID, ShouldEqual, "ferrari")
			So(top[1].TeamID, ShouldEqual, "mclaren")
			So(top[1].Rating, ShouldEqual, 0)
		})

		Convey("Then out-of-range seed values are clamped", func() {
			d, err := svc.Driver(ctx, "bea")
			So(err, ShouldBeNil)
			So(d.Skill, ShouldEqual, 100)
		})

		Convey("Then tracks default to balanced", func() {
			tr, err := svc.Track(ctx, "silverstone")
			So(err, ShouldBeNil)
			So(string(tr.Characteristic), ShouldEqual, "BALANCED")
			So(svc.Tracks(ctx), ShouldHaveLength, 2)
		})

		Convey("Then loading the same seed again conflicts", func() {
			err := svc.LoadSeed(ctx, grid())
			So(errors.Is(err, seed.ErrInvalidSeed), ShouldBeTrue)
			So(errors.Is(err, repository.ErrAlreadyExists), ShouldBeTrue)
		})

		Convey("Then a seed colliding late leaves nothing behind", func() {
			before := svc.GetStats()
			sd := &seed.Seed{
				Drivers: []seed.Driver{{ID: "alb", Name: "Alex Albon", Skill: 88}},
				Parts:   []seed.Part{{ID: "e9", Name: "Mercedes M16", Kind: "engine", Performance: 80}},
				Teams:   []seed.Team{{ID: "williams", Name: "Williams", Drivers: []string{"alb"}, Parts: []string{"e9"}}},
				Tracks:  []seed.Track{{ID: "monza", Name: "Monza", Laps: 53}},
			}
			err := svc.LoadSeed(ctx, sd)
			So(errors.Is(err, repository.ErrAlreadyExists), ShouldBeTrue)

			after := svc.GetStats()
			for _, entity := range []string{repository.EntityTeams, repository.EntityDrivers, repository.EntityParts, repository.EntityTracks} {
				So(after[entity], ShouldEqual, before[entity])
			}
			So(after["rankedTeams"], ShouldEqual, before["rankedTeams"])
			_, err = svc.Driver(ctx, "alb")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a seed whose teams share a driver", t, func() {
		ctx := context.Background()
		sd := &seed.Seed{
			Drivers: []seed.Driver{{ID: "d1", Name: "Lando Norris", Skill: 94}},
			Parts:   []seed.Part{{ID: "e1", Name: "Mercedes M16", Kind: "engine", Performance: 80}},
			Teams: []seed.Team{
				{ID: "a", Name: "A", Drivers: []string{"d1"}, Parts: []string{"e1"}},
				{ID: "b", Name: "B", Drivers: []string{"d1"}},
			},
		}
		svc := service.New()

		Convey("Then the load is rejected and the garage stays empty", func() {
			err := svc.LoadSeed(ctx, sd)
			So(errors.Is(err, seed.ErrInvalidSeed), ShouldBeTrue)

			stats := svc.GetStats()
			So(stats[repository.EntityTeams], ShouldEqual, 0)
			So(stats[repository.EntityDrivers], ShouldEqual, 0)
			So(stats[repository.EntityParts], ShouldEqual, 0)
			So(stats["rankedTeams"], ShouldEqual, 0)
			top, err := svc.TopN(ctx, 10)
			So(err, ShouldBeNil)
			So(top, ShouldBeEmpty)
		})
	})

	Convey("Given seeds that cannot be built", t, func() {
		ctx := context.Background()
		cases := map[string]func(*seed.Seed){
			"unknown kind":       func(s *seed.Seed) { s.Parts[0].Kind = "brakes" },
			"compound on engine": func(s *seed.Seed) { s.Parts[0].Compound = "SOFT" },
			"unknown strategy":   func(s *seed.Seed) { s.Teams[0].Strategy = "RECKLESS" },
			"three drivers":      func(s *seed.Seed) { s.Teams[0].Drivers = []string{"nor", "pia", "bea"} },
			"two engines":        func(s *seed.Seed) { s.Teams[1].Parts = []string{"e1", "e2"} },
			"shared driver":      func(s *seed.Seed) { s.Teams[1].Drivers = []string{"nor"} },
			"bumpy track":        func(s *seed.Seed) { s.Tracks[0].Characteristic = "BUMPY" },
		}
		for name, mutate := range cases {
			Convey("Then "+name+" is rejected", func() {
				sd := grid()
				mutate(sd)
				err := service.New().LoadSeed(ctx, sd)
				So(errors.Is(err, seed.ErrInvalidSeed), ShouldBeTrue)
			})
		}
	})
}

func TestService_Drivers(t *testing.T) {
	Convey("Given a seeded service", t, func() {
		ctx := context.Background()
		svc := newSeededService()

		Convey("When creating a driver with an out-of-range skill", func() {
			res, err := svc.CreateDriver(ctx, "Isack Hadjar", 150)

			Convey("Then the skill is stored clamped and flagged", func() {
				So(err, ShouldBeNil)
				So(res.Driver.ID, ShouldEqual, "id-1")
				So(res.Driver.Skill, ShouldEqual, 100)
				So(res.Input, ShouldEqual, 150)
				So(res.Clamped, ShouldBeTrue)
			})
		})

		Convey("When creating a driver without a name", func() {
			_, err := svc.CreateDriver(ctx, "  ", 50)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrInvalidArgument), ShouldBeTrue)
			})
		})

		Convey("When updating skills", func() {
			low, err := svc.SetDriverSkill(ctx, "lec", -10)
			So(err, ShouldBeNil)
			ok, err := svc.SetDriverSkill(ctx, "pia", 77)
			So(err, ShouldBeNil)
			_, missing := svc.SetDriverSkill(ctx, "ghost", 50)

			Convey("Then values are clamped into 1..100", func() {
				So(low.Driver.Skill, ShouldEqual, 1)
				So(low.Clamped, ShouldBeTrue)
				So(ok.Driver.Skill, ShouldEqual, 77)
				So(ok.Clamped, ShouldBeFalse)
				So(errors.Is(missing, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When updating a driver's name and skill", func() {
			name, skill := "  Charles Marc Hervé Leclerc ", 120
			res, err := svc.UpdateDriver(ctx, "lec", &name, &skill)
			So(err, ShouldBeNil)

			Convey("Then the name is trimmed and the skill clamped", func() {
				So(res.Driver.Name, ShouldEqual, "Charles Marc Hervé Leclerc")
				So(res.Driver.Skill, ShouldEqual, 100)
				So(res.Input, ShouldEqual, 120)
				So(res.Clamped, ShouldBeTrue)
			})

			Convey("Then a rename alone keeps the skill", func() {
				short := "Leclerc"
				res, err := svc.UpdateDriver(ctx, "lec", &short, nil)
				So(err, ShouldBeNil)
				So(res.Driver.Name, ShouldEqual, "Leclerc")
				So(res.Driver.Skill, ShouldEqual, 100)
				So(res.Clamped, ShouldBeFalse)
			})
		})

		Convey("When an update carries nothing usable", func() {
			blank := " "
			_, none := svc.UpdateDriver(ctx, "lec", nil, nil)
			_, empty := svc.UpdateDriver(ctx, "lec", &blank, nil)
			_, missing := svc.UpdateDriver(ctx, "ghost", nil, new(int))

			Convey("Then it is rejected and the driver is unchanged", func() {
				So(errors.Is(none, service.ErrInvalidArgument), ShouldBeTrue)
				So(errors.Is(empty, service.ErrInvalidArgument), ShouldBeTrue)
				So(errors.Is(missing, repository.ErrNotFound), ShouldBeTrue)
				d, err := svc.Driver(ctx, "lec")
				So(err, ShouldBeNil)
				So(d.Name, ShouldEqual, "Charles Leclerc")
			})
		})

		Convey("When deleting drivers", func() {
			Convey("Then a signed driver is protected", func() {
				So(errors.Is(svc.DeleteDriver(ctx, "nor"), repository.ErrDriverSigned), ShouldBeTrue)
			})

			Convey("Then a free agent is removed", func() {
				So(svc.DeleteDriver(ctx, "bea"), ShouldBeNil)
				So(svc.Drivers(ctx), ShouldHaveLength, 3)
			})
		})
	})
}

func TestService_Roster(t *testing.T) {
	Convey("Given a seeded service", t, func() {
		ctx := context.Background()
		svc := newSeededService()

		Convey("When a third driver joins a full team", func() {
			_, err := svc.AddDriverToTeam(ctx, "mclaren", "bea")

			Convey("Then the roster cap rejects it and the roster is unchanged", func() {
				So(errors.Is(err, team.ErrRosterFull), ShouldBeTrue)
				tm, _ := svc.Team(ctx, "mclaren")
				So(tm.Drivers, ShouldHaveLength, 2)
			})
		})

		Convey("When a driver signed elsewhere joins", func() {
			_, err := svc.AddDriverToTeam(ctx, "ferrari", "nor")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, repository.ErrDriverSigned), ShouldBeTrue)
			})
		})

		Convey("When a driver joins the same team twice", func() {
			_, err := svc.AddDriverToTeam(ctx, "ferrari", "lec")

			Convey("Then it is rejected as a duplicate", func() {
				So(errors.Is(err, team.ErrDuplicateDriver), ShouldBeTrue)
			})
		})

		Convey("When a free agent joins a team with a seat", func() {
			tm, err := svc.AddDriverToTeam(ctx, "ferrari", "bea")

			Convey("Then the roster grows in insertion order", func() {
				So(err, ShouldBeNil)
				So(tm.Drivers, ShouldHaveLength, 2)
				So(tm.Drivers[1].ID, ShouldEqual, "bea")
			})
		})

		Convey("When a member is released", func() {
			tm, err := svc.RemoveDriverFromTeam(ctx, "mclaren", "nor")

			Convey("Then a seat opens and the driver is free", func() {
				So(err, ShouldBeNil)
				So(tm.Drivers, ShouldHaveLength, 1)
				_, err = svc.AddDriverToTeam(ctx, "ferrari", "nor")
				So(err, ShouldBeNil)
			})
		})

		Convey("When a non-member is released", func() {
			_, err := svc.RemoveDriverFromTeam(ctx, "mclaren", "lec")

			Convey("Then it is not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the team is unknown", func() {
			_, err := svc.AddDriverToTeam(ctx, "ghost", "bea")

			Convey("Then it is not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Vehicle(t *testing.T) {
	Convey("Given a seeded service", t, func() {
		ctx := context.Background()
		svc := newSeededService()

		Convey("When an engine of 80 is the only part installed", func() {
			tm, err := svc.InstallPart(ctx, "mclaren", car.Engine, "e1")

			Convey("Then the team rating is 28.0 and standings follow", func() {
				So(err, ShouldBeNil)
				So(tm.Rating, ShouldAlmostEqual, 28.0, 1e-9)
				So(tm.Vehicle.ID, ShouldEqual, "mclaren-car")
				entry, err := svc.Rank(ctx, "mclaren")
				So(err, ShouldBeNil)
				So(entry.Rank, ShouldEqual, 2)
				So(entry.Rating, ShouldAlmostEqual, 28.0, 1e-9)
			})

			Convey("And adding aero and tires overtakes Ferrari", func() {
				_, err := svc.InstallPart(ctx, "mclaren", car.Aerodynamics, "a1")
				So(err, ShouldBeNil)
				tm, err := svc.InstallPart(ctx, "mclaren", car.Tires, "t1")
				So(err, ShouldBeNil)
				So(tm.Rating, ShouldAlmostEqual, 28+15+14, 1e-9)
				entry, _ := svc.Rank(ctx, "mclaren")
				So(entry.Rank, ShouldEqual, 1)
			})

			Convey("And removing it drops exactly its share", func() {
				tm, err := svc.RemovePart(ctx, "mclaren", car.Engine)
				So(err, ShouldBeNil)
				So(tm.Rating, ShouldEqual, 0)
				_, err = svc.RemovePart(ctx, "mclaren", car.Engine)
				So(errors.Is(err, service.ErrSlotEmpty), ShouldBeTrue)
			})

			Convey("And the part's performance change is reflected at once", func() {
				part, err := svc.SetPartPerformance(ctx, "e1", 100)
				So(err, ShouldBeNil)
				So(part.Contribution, ShouldAlmostEqual, 35.0, 1e-9)
				entry, _ := svc.Rank(ctx, "mclaren")
				So(entry.Rating, ShouldAlmostEqual, 35.0, 1e-9)
				So(entry.Rank, ShouldEqual, 1)
			})
		})

		Convey("When a part goes into another kind's slot", func() {
			_, err := svc.InstallPart(ctx, "mclaren", car.Gearbox, "e1")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, car.ErrKindMismatch), ShouldBeTrue)
			})
		})

		Convey("When a part installed on another team is claimed", func() {
			_, err := svc.InstallPart(ctx, "mclaren", car.Engine, "e2")

			Convey("Then it is in use", func() {
				So(errors.Is(err, repository.ErrPartInUse), ShouldBeTrue)
			})
		})

		Convey("When a loose part's performance changes", func() {
			part, err := svc.SetPartPerformance(ctx, "a1", 0)

			Convey("Then it is clamped and no standing moves", func() {
				So(err, ShouldBeNil)
				So(part.Performance, ShouldEqual, 1)
				So(part.Contribution, ShouldEqual, 0)
			})
		})

		Convey("When creating parts", func() {
			tires, err := svc.CreatePart(ctx, car.Tires, "Pirelli C1", 101, "hard")
			So(err, ShouldBeNil)
			gearbox, err := svc.CreatePart(ctx, car.Gearbox, "Xtrac", 60, "")
			So(err, ShouldBeNil)
			_, badCompound := svc.CreatePart(ctx, car.Tires, "Pirelli", 60, "slick")

			Convey("Then they are registered with clamped values", func() {
				So(tires.Performance, ShouldEqual, 100)
				So(tires.Compound, ShouldEqual, "HARD")
				So(gearbox.Compound, ShouldEqual, "")
				So(errors.Is(badCompound, car.ErrUnknownCompound), ShouldBeTrue)
				So(svc.Parts(ctx), ShouldHaveLength, 6)
			})
		})
	})
}

func TestService_StrategiesAndStandings(t *testing.T) {
	Convey("Given a seeded service with a small standings cap", t, func() {
		ctx := context.Background()
		svc := newSeededService(service.WithMaxStandingsLimit(1))

		Convey("Then TopN is capped", func() {
			top, err := svc.TopN(ctx, 50)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 1)
			_, err = svc.TopN(ctx, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("Then AI strategies can be set and cleared", func() {
			tm, err := svc.SetTeamStrategy(ctx, "ferrari", "aggressive")
			So(err, ShouldBeNil)
			So(tm.Strategy, ShouldEqual, "AGGRESSIVE")
			tm, err = svc.SetTeamStrategy(ctx, "ferrari", "")
			So(err, ShouldBeNil)
			So(tm.Strategy, ShouldEqual, "")
			_, err = svc.SetTeamStrategy(ctx, "ferrari", "wild")
			So(errors.Is(err, team.ErrUnknownStrategy), ShouldBeTrue)
		})

		Convey("Then race strategies are filed with clamped fuel", func() {
			_, err := svc.RaceStrategy(ctx, "ferrari")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			plan, err := svc.SetRaceStrategy(ctx, "ferrari", 2, "soft", 130)
			So(err, ShouldBeNil)
			So(plan.FuelLoad, ShouldEqual, 100)
			So(plan.StartingCompound, ShouldEqual, "SOFT")
			got, err := svc.RaceStrategy(ctx, "ferrari")
			So(err, ShouldBeNil)
			So(got, ShouldResemble, plan)
		})

		Convey("Then new teams join the standings at zero", func() {
			tm, err := svc.CreateTeam(ctx, "", "Cadillac", "")
			So(err, ShouldBeNil)
			So(tm.ID, ShouldEqual, "id-1")
			entry, err := svc.Rank(ctx, "id-1")
			So(err, ShouldBeNil)
			So(entry.Rank, ShouldEqual, 2)
		})
	})
}

func TestService_ClampReporting(t *testing.T) {
	Convey("Given a service logging into a buffer", t, func() {
		var buf bytes.Buffer
		svc := service.New(service.WithLogger(logger.New(&buf)))

		Convey("When a driver is created with skill 150", func() {
			res, err := svc.CreateDriver(context.Background(), "Max Verstappen", 150)
			So(err, ShouldBeNil)

			Convey("Then a warning names the entity and both values", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "level=WARN")
				So(out, ShouldContainSubstring, "entity_id="+res.Driver.ID)
				So(out, ShouldContainSubstring, "field=skill")
				So(out, ShouldContainSubstring, "input=150")
				So(out, ShouldContainSubstring, "stored=100")
			})
		})
	})
}

func TestService_Authorization(t *testing.T) {
	Convey("Given a service with three accounts", t, func() {
		ctx := context.Background()
		sd := grid()
		sd.Users = []seed.User{
			{ID: "u1", Username: "fia", Password: "pw-root", Role: "ADMIN"},
			{ID: "u2", Username: "stella", Password: "pw-mcl", Role: "admin", ManagedTeam: "mclaren"},
			{ID: "u3", Username: "fan", Password: "pw-fan", Role: "VIEWER"},
		}
		svc := service.New()
		So(svc.LoadSeed(ctx, sd), ShouldBeNil)
		So(svc.UserCount(), ShouldEqual, 3)

		Convey("An unbound admin may change every team and the shared pools", func() {
			_, err := svc.Authorize(ctx, "fia", "pw-root", "ferrari")
			So(err, ShouldBeNil)
			_, err = svc.Authorize(ctx, "fia", "pw-root", "")
			So(err, ShouldBeNil)
		})

		Convey("A team principal may change only their own team", func() {
			u, err := svc.Authorize(ctx, "stella", "pw-mcl", "mclaren")
			So(err, ShouldBeNil)
			So(u.ManagedTeamID, ShouldEqual, "mclaren")
			_, err = svc.Authorize(ctx, "stella", "pw-mcl", "ferrari")
			So(errors.Is(err, service.ErrForbidden), ShouldBeTrue)
		})

		Convey("A viewer may change nothing", func() {
			_, err := svc.Authorize(ctx, "fan", "pw-fan", "mclaren")
			So(errors.Is(err, service.ErrForbidden), ShouldBeTrue)
		})

		Convey("Bad credentials are unauthorized", func() {
			_, err := svc.Authorize(ctx, "fia", "wrong", "ferrari")
			So(errors.Is(err, service.ErrUnauthorized), ShouldBeTrue)
			_, err = svc.Authenticate(ctx, "nobody", "pw")
			So(errors.Is(err, service.ErrUnauthorized), ShouldBeTrue)
		})
	})
}
