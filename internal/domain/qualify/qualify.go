// Package qualify decides which riders may be classified.
package qualify

import "github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"

// Reason explains why a rider was left out.
type Reason string

// Exclusion reasons.
const (
	None           Reason = ""
	MissedSaturday Reason = "missed_saturday"
	MissedSunday   Reason = "missed_sunday"
	Eliminated     Reason = "eliminated"
)

// DefaultEliminationLimit is the elimination count at which the category
// summary drops a rider.
const DefaultEliminationLimit = 2

// Evaluate applies the leaderboard rule to one rider. sundayHeld is true when
// the category has a non-empty Sunday file.
func Evaluate(rec *model.RiderRecord, sundayHeld bool) Reason {
	if !rec.Saturday.Present {
		return MissedSaturday
	}
	if sundayHeld && !rec.Sunday.Present {
		return MissedSunday
	}
	for _, d := range model.MandatoryDays {
		if rec.Result(d).Eliminated() {
			return Eliminated
		}
	}
	return None
}

// Filter keeps the riders that pass Evaluate, in input order.
func Filter(records []*model.RiderRecord, sundayHeld bool) []*model.RiderRecord {
	kept, _ := Partition(records, sundayHeld)
	return kept
}

// Partition splits records into kept riders and the reasons of the others.
func Partition(records []*model.RiderRecord, sundayHeld bool) ([]*model.RiderRecord, map[Reason]int) {
	kept := make([]*model.RiderRecord, 0, len(records))
	dropped := make(map[Reason]int)
	for _, rec := range records {
		if r := Evaluate(rec, sundayHeld); r != None {
			dropped[r]++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, dropped
}

// WithinEliminationLimit is the looser category-summary rule: a rider stays
// while the number of eliminations is below limit.
func WithinEliminationLimit(count, limit int) bool {
	if limit <= 0 {
		limit = DefaultEliminationLimit
	}
	return count < limit
}
