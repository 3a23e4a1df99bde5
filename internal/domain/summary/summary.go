// Package summary builds the per-category summary sheet.
//
// The summary is looser than the leaderboard: eliminated runs are counted at
// their penalty value and a rider only drops out after reaching the
// elimination limit on the mandatory days.
package summary

import (
	"sort"
	"strconv"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/aggregate"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/normalize"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/qualify"
)

// topTieWindow is how many leading riders are checked for a tie.
const topTieWindow = 3

// Entry is one line of the summary.
type Entry struct {
	Position         int     `json:"position"`
	License          string  `json:"license"`
	RiderName        string  `json:"rider_name"`
	Club             string  `json:"club"`
	Total            float64 `json:"total"`
	Saturday         string  `json:"saturday"`
	Sunday           string  `json:"sunday"`
	EliminationCount int     `json:"elimination_count"`
	RunoffSeconds    float64 `json:"runoff_seconds,omitempty"`
	HasRunoff        bool    `json:"has_runoff"`
}

type options struct {
	limit int
}

// Option configures Build.
type Option func(*options)

// WithEliminationLimit sets the elimination count that removes a rider.
func WithEliminationLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// Build computes the summary of a category.
func Build(files model.CategoryFiles, opts ...Option) []Entry {
	o := &options{limit: qualify.DefaultEliminationLimit}
	for _, opt := range opts {
		opt(o)
	}

	sat := aggregate.Day(files.Rows(model.Saturday))
	sun := aggregate.Day(files.Rows(model.Sunday))
	runoff := runoffTimes(files.Rows(model.Tiebreak))

	var entries []Entry
	seen := make(map[string]*Entry)
	var order []string
	add := func(idx *aggregate.DayIndex, day model.Day) {
		for _, key := range idx.Keys() {
			row, _ := idx.Get(key)
			e, ok := seen[key]
			if !ok {
				e = &Entry{License: row.License, RiderName: row.RiderName, Club: row.Club, Saturday: model.Missing, Sunday: model.Missing}
				seen[key] = e
				order = append(order, key)
			}
			if e.RiderName == "" {
				e.RiderName = row.RiderName
			}
			if e.Club == "" {
				e.Club = row.Club
			}
			value := strconv.FormatFloat(row.Penalty, 'f', -1, 64)
			if row.Score.IsAbsent() {
				value = model.Missing
			}
			if day == model.Saturday {
				e.Saturday = value
			} else {
				e.Sunday = value
			}
			e.Total += row.Penalty
			if row.Score.IsEliminated() || model.IsEliminationMarker(row.ScoreOriginal) {
				e.EliminationCount++
			}
		}
	}
	add(sat, model.Saturday)
	add(sun, model.Sunday)

	for _, key := range order {
		e := seen[key]
		if !qualify.WithinEliminationLimit(e.EliminationCount, o.limit) {
			continue
		}
		if secs, ok := runoff[key]; ok {
			e.RunoffSeconds, e.HasRunoff = secs, true
		}
		entries = append(entries, *e)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Total < entries[j].Total })

	if len(runoff) > 0 && topTied(entries) {
		leader := entries[0].Total
		var tied, rest []Entry
		for _, e := range entries {
			if e.Total == leader {
				tied = append(tied, e)
			} else {
				rest = append(rest, e)
			}
		}
		sort.SliceStable(tied, func(i, j int) bool { return runoffKey(tied[i]) < runoffKey(tied[j]) })
		entries = append(tied, rest...)
	}

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

func topTied(entries []Entry) bool {
	n := len(entries)
	if n > topTieWindow {
		n = topTieWindow
	}
	totals := make(map[float64]struct{}, n)
	for _, e := range entries[:n] {
		totals[e.Total] = struct{}{}
	}
	return n > 1 && len(totals) < n
}

func runoffKey(e Entry) float64 {
	if !e.HasRunoff {
		return normalize.MissingTime
	}
	return e.RunoffSeconds
}

func runoffTimes(rows []model.CanonicalRow) map[string]float64 {
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		key := r.Key()
		if key == "" {
			continue
		}
		secs := normalize.Seconds(r.Time)
		if secs <= 0 {
			secs = normalize.MissingTime
		}
		out[key] = secs
	}
	return out
}
