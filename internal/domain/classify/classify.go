// Package classify ranks qualified riders of a category.
//
// Riders are ordered by total faults over the mandatory days. Riders on the
// same total are separated by the category's tie-break: the Sunday time for
// time-only categories, and the runoff score then runoff time otherwise.
package classify

import (
	"sort"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/normalize"
)

// Sort keys for runoff scores that are not numbers.
const (
	NoRunoffKey         = 999999
	EliminatedRunoffKey = 999998
)

// Totals sums the numeric scores of the mandatory days and counts them.
func Totals(rec *model.RiderRecord) (float64, int) {
	var total float64
	valid := 0
	for _, d := range model.MandatoryDays {
		s := rec.Result(d).Score
		if s.IsNumeric() {
			total += s.Value
			valid++
		}
	}
	return total, valid
}

// Classify orders records and assigns classification numbers. Records are
// copied; the input is not modified.
func Classify(records []*model.RiderRecord, mode model.Mode, showRank bool) []model.ClassificationEntry {
	entries := make([]model.ClassificationEntry, len(records))
	for i, rec := range records {
		e := model.ClassificationEntry{RiderRecord: *rec, ShowRank: showRank}
		e.Total, e.ValidResults = Totals(rec)
		if mode == model.ModeTimeOnly && e.Sunday.Present {
			e.Tiebreak.Time = e.Sunday.Time
			e.Tiebreak.Horse = e.Sunday.Horse
		}
		entries[i] = e
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Total < entries[j].Total })

	for start := 0; start < len(entries); {
		end := start + 1
		for end < len(entries) && entries[end].Total == entries[start].Total {
			end++
		}
		if end-start > 1 {
			breakTie(entries[start:end], mode)
		}
		start = end
	}

	for i := range entries {
		if i > 0 && sameStanding(entries[i-1], entries[i], mode) {
			entries[i].Classification = entries[i-1].Classification
			continue
		}
		entries[i].Classification = i + 1
	}
	return entries
}

func breakTie(group []model.ClassificationEntry, mode model.Mode) {
	if mode == model.ModeTimeOnly {
		sort.SliceStable(group, func(i, j int) bool {
			return TiebreakSeconds(group[i], mode) < TiebreakSeconds(group[j], mode)
		})
		return
	}
	sort.SliceStable(group, func(i, j int) bool {
		a, b := RunoffKey(group[i].Tiebreak), RunoffKey(group[j].Tiebreak)
		if a != b {
			return a < b
		}
		return TiebreakSeconds(group[i], mode) < TiebreakSeconds(group[j], mode)
	})
}

func sameStanding(prev, cur model.ClassificationEntry, mode model.Mode) bool {
	if prev.Total != cur.Total {
		return false
	}
	if mode != model.ModeTimeOnly && RunoffKey(prev.Tiebreak) != RunoffKey(cur.Tiebreak) {
		return false
	}
	return TiebreakSeconds(prev, mode) == TiebreakSeconds(cur, mode)
}

// RunoffKey maps a runoff result to its sort key: the points, then
// eliminations, then no runoff at all.
func RunoffKey(d model.DayResult) float64 {
	switch {
	case d.Score.IsNumeric():
		return d.Score.Value
	case d.Eliminated():
		return EliminatedRunoffKey
	default:
		return NoRunoffKey
	}
}

// TiebreakSeconds is the time used to separate tied riders.
func TiebreakSeconds(e model.ClassificationEntry, mode model.Mode) float64 {
	if mode == model.ModeTimeOnly {
		return normalize.Seconds(e.Sunday.Time)
	}
	return normalize.Seconds(e.Tiebreak.Time)
}
