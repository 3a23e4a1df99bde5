package search_test

import (
	"fmt"
	"testing"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/search"
	. "github.com/smartystreets/goconvey/convey"
)

func files() []*model.FileData {
	sat := model.FileKey{Competition: "SEDE", Day: model.Saturday, Category: "A"}
	sun := model.FileKey{Competition: "SEDE", Day: model.Sunday, Category: "A"}
	return []*model.FileData{
		{Key: sat, Rows: []model.CanonicalRow{
			{License: "10", RiderName: "Maite Etxeberria", HorseName: "Itsaso", Club: "Zarautz", Score: model.Numeric(4), Time: "41.2"},
			{RiderName: "Maialen Goikoetxea", HorseName: "Mendi", Score: model.Numeric(0), Time: "-"},
		}},
		{Key: sun, Rows: []model.CanonicalRow{
			{License: "10", RiderName: "Maite Etxeberria", HorseName: "Itsaso", Score: model.Eliminated(model.CodeEL), Time: "-", Total: "24"},
			{License: "11", RiderName: "Jon", HorseName: "Maika", Score: model.Numeric(0), Time: "39"},
		}},
	}
}

func TestSuggest(t *testing.T) {
	Convey("Given a term matching riders and horses", t, func() {
		got := search.Suggest(files(), "MAI", 0)

		Convey("Then each rider and horse is suggested once", func() {
			So(got, ShouldHaveLength, 3)
			So(got[0].Kind, ShouldEqual, search.KindRider)
			So(got[0].Label, ShouldEqual, "Maite Etxeberria (10)")
			So(got[1].Label, ShouldEqual, "Maialen Goikoetxea")
			So(got[2].Kind, ShouldEqual, search.KindHorse)
			So(got[2].Horse, ShouldEqual, "Maika")
		})
	})

	Convey("Given a blank term", t, func() {
		So(search.Suggest(files(), "  ", 10), ShouldBeNil)
	})

	Convey("Given more matches than the limit", t, func() {
		var rows []model.CanonicalRow
		for i := 0; i < 25; i++ {
			rows = append(rows, model.CanonicalRow{License: fmt.Sprint(i), RiderName: "Ane"})
		}
		got := search.Suggest([]*model.FileData{{Rows: rows}}, "ane", search.DefaultLimit)
		So(got, ShouldHaveLength, search.DefaultLimit)
	})
}

func TestResults(t *testing.T) {
	Convey("Given a rider suggestion with a license", t, func() {
		got := search.Results(files(), search.Suggestion{Kind: search.KindRider, License: "10"})

		Convey("Then every run of that license is listed", func() {
			So(got, ShouldHaveLength, 2)
			So(got[0].Day, ShouldEqual, "SABADO")
			So(got[0].Score, ShouldEqual, "4")
			So(got[0].Total, ShouldEqual, "-")
			So(got[1].Score, ShouldEqual, "EL")
			So(got[1].Total, ShouldEqual, "24")
			So(got[1].Club, ShouldEqual, "-")
		})
	})

	Convey("Given a rider without a license", t, func() {
		got := search.Results(files(), search.Suggestion{Kind: search.KindRider, Name: "Maialen Goikoetxea"})
		So(got, ShouldHaveLength, 1)
		So(got[0].License, ShouldEqual, "-")
	})

	Convey("Given a horse suggestion", t, func() {
		got := search.Results(files(), search.Suggestion{Kind: search.KindHorse, Horse: "Maika"})
		So(got, ShouldHaveLength, 1)
		So(got[0].Name, ShouldEqual, "Jon")
	})
}
