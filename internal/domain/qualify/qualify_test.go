package qualify_test

import (
	"testing"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/qualify"
	. "github.com/smartystreets/goconvey/convey"
)

func ran(s model.Score) model.DayResult {
	return model.ResultOf(model.CanonicalRow{Score: s, ScoreOriginal: s.String()})
}

func rider(key string, sat, sun model.DayResult) *model.RiderRecord {
	return &model.RiderRecord{Key: key, Saturday: sat, Sunday: sun, Tiebreak: model.NoResult()}
}

func TestEvaluate(t *testing.T) {
	Convey("Given riders with different runs", t, func() {
		clean := rider("clean", ran(model.Numeric(4)), ran(model.Numeric(0)))
		noSat := rider("nosat", model.NoResult(), ran(model.Numeric(0)))
		noSun := rider("nosun", ran(model.Numeric(0)), model.NoResult())
		elim := rider("elim", ran(model.Numeric(0)), ran(model.Eliminated(model.CodeRET)))

		Convey("When Sunday was held", func() {
			So(qualify.Evaluate(clean, true), ShouldEqual, qualify.None)
			So(qualify.Evaluate(noSat, true), ShouldEqual, qualify.MissedSaturday)
			So(qualify.Evaluate(noSun, true), ShouldEqual, qualify.MissedSunday)
			So(qualify.Evaluate(elim, true), ShouldEqual, qualify.Eliminated)
		})

		Convey("When Sunday has not been held yet", func() {
			So(qualify.Evaluate(noSun, false), ShouldEqual, qualify.None)
			So(qualify.Evaluate(noSat, false), ShouldEqual, qualify.MissedSaturday)
		})

		Convey("When filtering", func() {
			kept, dropped := qualify.Partition([]*model.RiderRecord{clean, noSat, noSun, elim}, true)

			Convey("Then only clean riders remain, in order", func() {
				So(kept, ShouldHaveLength, 1)
				So(kept[0].Key, ShouldEqual, "clean")
				So(dropped[qualify.Eliminated], ShouldEqual, 1)
				So(dropped[qualify.MissedSunday], ShouldEqual, 1)
				So(qualify.Filter([]*model.RiderRecord{noSun, clean}, false), ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given the summary elimination limit", t, func() {
		So(qualify.WithinEliminationLimit(1, 2), ShouldBeTrue)
		So(qualify.WithinEliminationLimit(2, 2), ShouldBeFalse)
		So(qualify.WithinEliminationLimit(2, 0), ShouldBeFalse)
	})
}
