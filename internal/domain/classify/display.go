package classify

import "github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"

// SundayLabel renders the Sunday run. Time-only categories show points/time.
func SundayLabel(d model.DayResult, mode model.Mode) string {
	if !d.Present || d.Score.IsAbsent() {
		return model.Missing
	}
	if c, ok := d.Code(); ok {
		return c.Label()
	}
	if mode == model.ModeTimeOnly {
		return d.Score.String() + "/" + d.Time
	}
	return d.Score.String()
}

// TiebreakLabel renders the runoff. Time-only categories show only the time.
func TiebreakLabel(d model.DayResult, mode model.Mode) string {
	if mode == model.ModeTimeOnly {
		return d.Time
	}
	if c, ok := d.Code(); ok {
		return c.Label()
	}
	return d.Score.String() + "/" + d.Time
}

// HasRunoff reports whether the runoff slot holds something worth showing.
func HasRunoff(d model.DayResult, mode model.Mode) bool {
	if mode == model.ModeTimeOnly {
		return d.Time != "" && d.Time != model.Missing
	}
	return !d.Score.IsAbsent()
}
