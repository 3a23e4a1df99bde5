package export

import (
	"strconv"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/classify"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ranking"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/summary"
)

// Sheet names and headers of the generated workbooks.
var (
	ClassificationSheet = "Clasificación" //nolint:gochecknoglobals // sheet name

	DayTemplateHeaders      = []string{"Posicion", "No. caballo", "Reg", "Jinete", "Reg", "Caballo", "Faltas", "Tiempo"} //nolint:gochecknoglobals // template layout
	CategoryTemplateHeaders = []string{"Clas", "Jinete", "Club", "Total", "Sábado", "Domingo"}                            //nolint:gochecknoglobals // template layout
)

// DaySheet names the sheet of a day file, e.g. SABADO-A2.
func DaySheet(day model.Day, category string) string { return string(day) + "-" + category }

// CategorySheet names the summary sheet of a category, e.g. CAT-A2.
func CategorySheet(category string) string { return "CAT-" + category }

// RawTable lists rows with their own column names, ordered by Columns.
func RawTable(name string, rows []model.RawRow) Table {
	t := Table{Name: name, Headers: Columns(rows)}
	for _, r := range rows {
		cells := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			cells[i] = r.Text(h)
		}
		t.Append(cells...)
	}
	return t
}

// FileTable is the raw export of one results file.
func FileTable(f *model.FileData) Table {
	return RawTable(DaySheet(f.Key.Day, f.Key.Category), f.Raw)
}

// ClassificationTable is the individual classification of a category. The
// runoff columns are left out for time-only categories.
func ClassificationTable(res ranking.Result) Table {
	timeOnly := res.Mode == model.ModeTimeOnly
	t := Table{Name: ClassificationSheet, Headers: []string{
		"Clasificación", "Jinete", "Caballo", "Club", "Total",
		"Sábado Puntos", "Sábado Tiempo", "Sábado Caballo",
		"Domingo", "Domingo Tiempo", "Domingo Caballo",
	}}
	if !timeOnly {
		t.Headers = append(t.Headers, "Desempate Puntos", "Desempate Tiempo", "Desempate Caballo", "Desempate Formateado")
	}

	for _, e := range res.Entries {
		sunday := e.Sunday.Score.String()
		if timeOnly {
			sunday = classify.SundayLabel(e.Sunday, res.Mode)
		}
		row := []string{
			e.RankLabel(), e.RiderName, e.HorseName, e.Club, number(e.Total),
			e.Saturday.Score.String(), e.Saturday.Time, e.Saturday.Horse,
			sunday, e.Sunday.Time, e.Sunday.Horse,
		}
		if !timeOnly {
			row = append(row, e.Tiebreak.Score.String(), e.Tiebreak.Time, e.Tiebreak.Horse, classify.TiebreakLabel(e.Tiebreak, res.Mode))
		}
		t.Append(row...)
	}
	return t
}

// SummaryTable is the category summary sheet.
func SummaryTable(category string, entries []summary.Entry) Table {
	t := Table{Name: CategorySheet(category), Headers: append([]string(nil), CategoryTemplateHeaders...)}
	for _, e := range entries {
		t.Append(strconv.Itoa(e.Position), e.RiderName, e.Club, number(e.Total), e.Saturday, e.Sunday)
	}
	return t
}

// DayTemplate is an empty day results sheet for judges to fill in.
func DayTemplate(day model.Day, category string) Table {
	return Table{Name: DaySheet(day, category), Headers: append([]string(nil), DayTemplateHeaders...)}
}

// CategoryTemplate is an empty category summary sheet.
func CategoryTemplate(category string) Table {
	return Table{Name: CategorySheet(category), Headers: append([]string(nil), CategoryTemplateHeaders...)}
}

func number(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
