package team_test

import (
	"errors"
	"testing"

	"github.com/okian/paddock/internal/domain/car"
	"github.com/okian/paddock/internal/domain/driver"
	"github.com/okian/paddock/internal/domain/team"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRosterCap(t *testing.T) {
	Convey("Given an empty team", t, func() {
		tm := team.New("mclaren", "McLaren")
		norris := driver.New("d1", "Lando Norris", 90)
		piastri := driver.New("d2", "Oscar Piastri", 89)
		reserve := driver.New("d3", "Pato O'Ward", 75)

		Convey("Adding to an empty or one-member roster succeeds and grows it by one", func() {
			So(tm.AddDriver(norris), ShouldBeTrue)
			So(tm.Len(), ShouldEqual, 1)
			So(tm.AddDriver(piastri), ShouldBeTrue)
			So(tm.Len(), ShouldEqual, 2)
			So(tm.Full(), ShouldBeTrue)

			Convey("A third driver is rejected and the roster stays at two", func() {
				So(tm.AddDriver(reserve), ShouldBeFalse)
				So(tm.Len(), ShouldEqual, 2)
				err := tm.TryAddDriver(reserve)
				So(errors.Is(err, team.ErrRosterFull), ShouldBeTrue)
				So(tm.HasDriver("d3"), ShouldBeFalse)
			})
		})

		Convey("Insertion order is preserved", func() {
			tm.AddDriver(piastri)
			tm.AddDriver(norris)
			ds := tm.Drivers()
			So(ds[0].ID(), ShouldEqual, "d2")
			So(ds[1].ID(), ShouldEqual, "d1")
		})

		Convey("The same driver id cannot be added twice", func() {
			So(tm.AddDriver(norris), ShouldBeTrue)
			So(tm.AddDriver(driver.New("d1", "Lando again", 10)), ShouldBeFalse)
			So(errors.Is(tm.TryAddDriver(norris), team.ErrDuplicateDriver), ShouldBeTrue)
			So(tm.Len(), ShouldEqual, 1)
		})

		Convey("A nil driver is rejected", func() {
			So(tm.TryAddDriver(nil), ShouldEqual, team.ErrNilDriver)
			So(tm.RemoveDriver(nil), ShouldBeFalse)
		})

		Convey("Drivers returns a copy", func() {
			tm.AddDriver(norris)
			ds := tm.Drivers()
			ds[0] = reserve
			So(tm.Drivers()[0].ID(), ShouldEqual, "d1")
		})
	})
}

func TestRosterRemoval(t *testing.T) {
	Convey("Given a full team", t, func() {
		tm := team.New("ferrari", "Ferrari")
		leclerc := driver.New("d1", "Charles Leclerc", 92)
		hamilton := driver.New("d2", "Lewis Hamilton", 91)
		tm.AddDriver(leclerc)
		tm.AddDriver(hamilton)

		Convey("Removing a member by id reports success and frees a seat", func() {
			So(tm.RemoveDriver(driver.New("d1", "another instance", 1)), ShouldBeTrue)
			So(tm.Len(), ShouldEqual, 1)
			So(tm.Drivers()[0].ID(), ShouldEqual, "d2")
			So(tm.AddDriver(driver.New("d3", "Oliver Bearman", 70)), ShouldBeTrue)
		})

		Convey("Removing a non-member reports failure", func() {
			So(tm.RemoveDriver(driver.New("d9", "Nobody", 50)), ShouldBeFalse)
			So(tm.Len(), ShouldEqual, 2)
		})

		Convey("RemoveDriverByID returns the removed driver", func() {
			d, ok := tm.RemoveDriverByID("d2")
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, hamilton)
			_, ok = tm.RemoveDriverByID("d2")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSetDrivers(t *testing.T) {
	Convey("Given a team", t, func() {
		tm := team.New("williams", "Williams")
		a := driver.New("d1", "Alex Albon", 85)
		b := driver.New("d2", "Carlos Sainz", 88)
		c := driver.New("d3", "Reserve", 60)

		Convey("Replacing with at most two drivers succeeds", func() {
			So(tm.SetDrivers([]*driver.Driver{a, b}), ShouldBeNil)
			So(tm.Len(), ShouldEqual, 2)
		})

		Convey("Lists over the cap or with repeats fail without changes", func() {
			So(tm.SetDrivers([]*driver.Driver{a}), ShouldBeNil)
			So(errors.Is(tm.SetDrivers([]*driver.Driver{a, b, c}), team.ErrRosterFull), ShouldBeTrue)
			So(errors.Is(tm.SetDrivers([]*driver.Driver{b, b}), team.ErrDuplicateDriver), ShouldBeTrue)
			So(tm.Len(), ShouldEqual, 1)
			So(tm.Drivers()[0].ID(), ShouldEqual, "d1")
		})
	})
}

func TestVehicleAndStrategy(t *testing.T) {
	Convey("Given a team without a vehicle", t, func() {
		tm := team.New("haas", "Haas")
		So(tm.PerformanceRating(), ShouldEqual, 0)
		So(tm.IsAI(), ShouldBeFalse)

		Convey("Its rating follows the associated vehicle", func() {
			v := car.NewVehicle("vf-25", "VF-25")
			_, _ = v.Install(car.NewEngine("e1", "Ferrari", 80))
			tm.SetVehicle(v)
			So(tm.Vehicle(), ShouldEqual, v)
			So(tm.PerformanceRating(), ShouldAlmostEqual, 28.0, 0.01)
		})
	})

	Convey("Given an AI team", t, func() {
		tm := team.New("sauber", "Sauber", team.WithStrategy(team.StrategyAdaptive), team.WithVehicle(car.NewVehicle("c45", "C45")))
		So(tm.IsAI(), ShouldBeTrue)
		So(tm.Strategy(), ShouldEqual, team.StrategyAdaptive)
		So(tm.Vehicle(), ShouldNotBeNil)
		So(tm.String(), ShouldEqual, `Team{id=sauber name="Sauber" drivers=0 strategy=ADAPTIVE}`)

		Convey("Strategy changes are validated", func() {
			So(tm.SetStrategy(team.StrategyAggressive), ShouldBeNil)
			So(errors.Is(tm.SetStrategy("RECKLESS"), team.ErrUnknownStrategy), ShouldBeTrue)
			So(tm.SetStrategy(team.StrategyNone), ShouldBeNil)
			So(tm.IsAI(), ShouldBeFalse)
			So(tm.String(), ShouldEqual, `Team{id=sauber name="Sauber" drivers=0}`)
		})
	})

	Convey("Strategies parse case-insensitively", t, func() {
		s, err := team.ParseStrategy("conservative")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, team.StrategyConservative)
		s, err = team.ParseStrategy("")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, team.StrategyNone)
		_, err = team.ParseStrategy("wild")
		So(err, ShouldNotBeNil)
	})
}
