package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRawRow(t *testing.T) {
	convey.Convey("Given a raw row built from a header", t, func() {
		row := model.NewRawRow([]string{"Jinete", "Puntos", "Reg", "Reg"}, []any{"Ane", 4.0, "a", "b"})

		convey.Convey("Then keys keep sheet order and repeated headers collapse", func() {
			convey.So(row.Keys(), convey.ShouldResemble, []string{"Jinete", "Puntos", "Reg"})
			convey.So(row.Text("Reg"), convey.ShouldEqual, "b")
			convey.So(row.Text("Puntos"), convey.ShouldEqual, "4")
			convey.So(row.Text("Nope"), convey.ShouldEqual, "")
		})

		convey.Convey("When marshalled and unmarshalled", func() {
			data, err := json.Marshal(row)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldEqual, `{"Jinete":"Ane","Puntos":4,"Reg":"b"}`)

			var back model.RawRow
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)

			convey.Convey("Then order and values survive", func() {
				convey.So(back.Keys(), convey.ShouldResemble, row.Keys())
				v, ok := back.Get("Puntos")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, 4.0)
			})
		})

		convey.Convey("When unmarshalling something that is not an object", func() {
			var back model.RawRow
			convey.So(json.Unmarshal([]byte(`[1,2]`), &back), convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given rows with and without content", t, func() {
		convey.So(model.RowOf("A", "", "B", nil, "C", "  ").IsBlank(), convey.ShouldBeTrue)
		convey.So(model.RowOf("A", "", "B", 0.0).IsBlank(), convey.ShouldBeFalse)
		convey.So(model.RawRow{}.IsBlank(), convey.ShouldBeTrue)
	})
}

func TestScore(t *testing.T) {
	convey.Convey("Given the elimination vocabulary", t, func() {
		for _, s := range []string{"EL", " e ", "r", "Eli", "RET", "nc"} {
			convey.So(model.IsEliminationMarker(s), convey.ShouldBeTrue)
		}
		convey.So(model.IsEliminationMarker("ELIM"), convey.ShouldBeFalse)
		convey.So(model.IsEliminationMarker(""), convey.ShouldBeFalse)
		convey.So(model.CodeNC.Label(), convey.ShouldEqual, "does not continue")
		convey.So(model.CodeRET.Label(), convey.ShouldEqual, "eliminated")
	})

	convey.Convey("Given scores of each kind", t, func() {
		convey.So(model.Numeric(4.5).String(), convey.ShouldEqual, "4.5")
		convey.So(model.Eliminated(model.CodeEL).String(), convey.ShouldEqual, "EL")
		convey.So(model.Absent().String(), convey.ShouldEqual, "-")

		convey.Convey("Then JSON keeps numbers numeric", func() {
			data, _ := json.Marshal([]model.Score{model.Numeric(8), model.Eliminated(model.CodeR), model.Absent()})
			convey.So(string(data), convey.ShouldEqual, `[8,"R","-"]`)

			var back []model.Score
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)
			convey.So(back[0], convey.ShouldResemble, model.Numeric(8))
			convey.So(back[1], convey.ShouldResemble, model.Eliminated(model.CodeR))
			convey.So(back[2].IsAbsent(), convey.ShouldBeTrue)
		})
	})
}

func TestDayResult(t *testing.T) {
	convey.Convey("Given a row with blanks", t, func() {
		d := model.ResultOf(model.CanonicalRow{License: "1", Score: model.Numeric(0)})

		convey.Convey("Then blanks become placeholders", func() {
			convey.So(d.Present, convey.ShouldBeTrue)
			convey.So(d.Time, convey.ShouldEqual, "-")
			convey.So(d.Horse, convey.ShouldEqual, "-")
			convey.So(d.Rank, convey.ShouldEqual, "-")
			convey.So(d.Eliminated(), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given the missing-run placeholder", t, func() {
		d := model.NoResult()
		convey.So(d.Present, convey.ShouldBeFalse)
		convey.So(d.Score.IsAbsent(), convey.ShouldBeTrue)
		_, ok := d.Code()
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestSnapshot(t *testing.T) {
	convey.Convey("Given a snapshot with two categories", t, func() {
		satA := model.FileKey{Competition: "SEDE", Day: model.Saturday, Category: "A"}
		sunA := model.FileKey{Competition: "SEDE", Day: model.Sunday, Category: "A"}
		satB := model.FileKey{Competition: "SEDE", Day: model.Saturday, Category: "B"}
		snap := &model.Snapshot{
			ID: "one",
			Files: map[model.FileKey]*model.FileData{
				satA: {Key: satA, Rows: []model.CanonicalRow{{License: "1"}}},
				sunA: {Key: sunA},
				satB: {Key: satB, Rows: []model.CanonicalRow{{License: "2"}, {License: "3"}}},
			},
			Missing: []model.FileKey{{Competition: "SEDE", Day: model.Sunday, Category: "B"}},
		}

		convey.So(snap.Competitions(), convey.ShouldResemble, []string{"SEDE"})
		convey.So(snap.Categories("SEDE"), convey.ShouldResemble, []string{"A", "B"})
		convey.So(snap.RowCount(), convey.ShouldEqual, 3)
		convey.So(satA.BaseName(), convey.ShouldEqual, "SABADOA")

		convey.Convey("Then an empty Sunday file hides ranks", func() {
			cf := snap.Category("SEDE", "A")
			convey.So(cf.HasData(model.Saturday), convey.ShouldBeTrue)
			convey.So(cf.HasData(model.Sunday), convey.ShouldBeFalse)
			convey.So(cf.ShowRank(), convey.ShouldBeFalse)
			convey.So(cf.Rows(model.Tiebreak), convey.ShouldBeNil)
		})

		convey.Convey("When a file is swapped in", func() {
			sunB := model.FileKey{Competition: "SEDE", Day: model.Sunday, Category: "B"}
			next := snap.WithFile("two", time.Now(), &model.FileData{Key: sunB, Rows: []model.CanonicalRow{{License: "2"}}})

			convey.Convey("Then only that key changes", func() {
				convey.So(next.ID, convey.ShouldEqual, "two")
				convey.So(next.Files[satA], convey.ShouldEqual, snap.Files[satA])
				convey.So(next.Missing, convey.ShouldBeEmpty)
				convey.So(snap.Missing, convey.ShouldHaveLength, 1)
				_, ok := snap.File(sunB)
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(next.Category("SEDE", "B").ShowRank(), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given category names", t, func() {
		convey.So(model.ModeFor("b2", []string{"A2", "B2"}), convey.ShouldEqual, model.ModeTimeOnly)
		convey.So(model.ModeFor("B", []string{"A2", "B2"}), convey.ShouldEqual, model.ModePointsTime)
		d, ok := model.ParseDay("sunday")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(d, convey.ShouldEqual, model.Sunday)
		_, ok = model.ParseDay("monday")
		convey.So(ok, convey.ShouldBeFalse)
	})
}
