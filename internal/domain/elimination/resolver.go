// Package elimination assigns a numeric fallback to eliminated runs.
//
// An eliminated run is worth the worst numeric score of the same file plus a
// fixed penalty. The value only feeds the category summary; the leaderboard
// disqualifies eliminated riders instead.
package elimination

import "github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"

// DefaultPenalty is added to the worst score of the file.
const DefaultPenalty = 20

// Option configures a Resolver.
type Option func(*Resolver)

// WithPenalty overrides the points added to the worst score.
func WithPenalty(p float64) Option {
	return func(r *Resolver) {
		if p >= 0 {
			r.penalty = p
		}
	}
}

// Resolver computes penalties for the rows of one file. Every eliminated run
// of the file gets the same value.
type Resolver struct {
	worst   float64
	penalty float64
}

// NewResolver scans rows for the worst numeric score.
func NewResolver(rows []model.CanonicalRow, opts ...Option) *Resolver {
	r := &Resolver{penalty: DefaultPenalty}
	for _, opt := range opts {
		opt(r)
	}
	r.worst, _ = WorstScore(rows)
	return r
}

// Penalty is the value of an eliminated run in this file.
func (r *Resolver) Penalty() float64 { return r.worst + r.penalty }

// Resolve returns the numeric value of row.
func (r *Resolver) Resolve(row model.CanonicalRow) float64 {
	switch row.Score.Kind {
	case model.ScoreNumeric:
		return row.Score.Value
	case model.ScoreEliminated:
		return r.Penalty()
	default:
		return 0
	}
}

// Apply returns a copy of rows with Penalty filled in. Each call is isolated
// to the rows it receives.
func Apply(rows []model.CanonicalRow, opts ...Option) []model.CanonicalRow {
	r := NewResolver(rows, opts...)
	out := make([]model.CanonicalRow, len(rows))
	for i, row := range rows {
		row.Penalty = r.Resolve(row)
		out[i] = row
	}
	return out
}

// WorstScore is the highest numeric, non-eliminated score in rows.
func WorstScore(rows []model.CanonicalRow) (float64, bool) {
	var worst float64
	found := false
	for _, row := range rows {
		if !row.Score.IsNumeric() || model.IsEliminationMarker(row.ScoreOriginal) {
			continue
		}
		if !found || row.Score.Value > worst {
			worst = row.Score.Value
			found = true
		}
	}
	return worst, found
}
