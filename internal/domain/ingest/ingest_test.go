package ingest_test

import (
	"testing"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/admission"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ingest"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFile(t *testing.T) {
	key := model.FileKey{Competition: "SEDE", Day: model.Saturday, Category: "A"}
	raws := []model.RawRow{
		model.RowOf("Licencia", "1", "Lac", "H1", "Jinete", "Ane", "Puntos", 4.0),
		model.RowOf("Licencia", "", "Jinete", ""),
		model.RowOf("Licencia", "2", "Lac", "H2", "Jinete", "Iker", "Puntos", "EL"),
		model.RowOf("Licencia", "3", "Lac", "H9", "Jinete", "Jon", "Puntos", 0.0),
		model.RowOf("Puntos", 8.0),
	}

	convey.Convey("Given a file without an admission list", t, func() {
		fd, st := ingest.File(key, "SABADOA.xlsx", raws)

		convey.Convey("Then only blank rows are dropped", func() {
			convey.So(st.Read, convey.ShouldEqual, 5)
			convey.So(st.Blank, convey.ShouldEqual, 1)
			convey.So(st.Kept, convey.ShouldEqual, 4)
			convey.So(st.NoKey, convey.ShouldEqual, 1)
			convey.So(fd.Raw, convey.ShouldHaveLength, 4)
			convey.So(fd.Source, convey.ShouldEqual, "SABADOA.xlsx")
		})

		convey.Convey("Then eliminations carry the file penalty", func() {
			convey.So(fd.Rows[1].Score.IsEliminated(), convey.ShouldBeTrue)
			convey.So(fd.Rows[1].Penalty, convey.ShouldEqual, 28)
		})
	})

	convey.Convey("Given an admission list and a custom penalty", t, func() {
		list := admission.New([2]string{"1", "H1"}, [2]string{"2", "H2"})
		fd, st := ingest.File(key, "", raws, ingest.WithAdmissions(list), ingest.WithPenalty(10))

		convey.Convey("Then rows outside the list never reach normalization", func() {
			convey.So(st.NotAdmitted, convey.ShouldEqual, 2)
			convey.So(fd.Rows, convey.ShouldHaveLength, 2)
			convey.So(fd.Rows[1].Penalty, convey.ShouldEqual, 14)
		})
	})

	convey.Convey("Given no rows", t, func() {
		fd, _ := ingest.File(key, "", nil)
		convey.So(fd.Empty(), convey.ShouldBeTrue)
	})
}
