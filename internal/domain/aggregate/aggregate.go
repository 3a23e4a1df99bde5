// Package aggregate picks one run per rider per day and merges the days into
// rider records.
package aggregate

import "github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"

// DayIndex holds the chosen row of each rider for one day, in first-seen order.
type DayIndex struct {
	order []string
	rows  map[string]model.CanonicalRow
}

// Day groups rows by rider key and keeps the row with the lowest running
// order. Earlier rows win ties. Rows with neither license nor name are
// dropped.
func Day(rows []model.CanonicalRow) *DayIndex {
	idx := &DayIndex{rows: make(map[string]model.CanonicalRow)}
	for _, r := range rows {
		key := r.Key()
		if key == "" {
			continue
		}
		cur, ok := idx.rows[key]
		if !ok {
			idx.order = append(idx.order, key)
			idx.rows[key] = r
			continue
		}
		if r.RunningOrder < cur.RunningOrder {
			idx.rows[key] = r
		}
	}
	return idx
}

// Get returns the chosen row of key.
func (d *DayIndex) Get(key string) (model.CanonicalRow, bool) {
	if d == nil {
		return model.CanonicalRow{}, false
	}
	r, ok := d.rows[key]
	return r, ok
}

// Keys returns rider keys in first-seen order.
func (d *DayIndex) Keys() []string {
	if d == nil {
		return nil
	}
	return d.order
}

// Rows returns the chosen rows in first-seen order.
func (d *DayIndex) Rows() []model.CanonicalRow {
	if d == nil {
		return nil
	}
	out := make([]model.CanonicalRow, len(d.order))
	for i, k := range d.order {
		out[i] = d.rows[k]
	}
	return out
}

// Len is the number of riders.
func (d *DayIndex) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Merge builds one record per rider across days. Riders appear in the order
// they are first seen walking Saturday, Sunday and the tiebreak. Identity
// comes from the first chosen row; days without a run hold NoResult.
func Merge(days map[model.Day]*DayIndex) []*model.RiderRecord {
	var out []*model.RiderRecord
	byKey := make(map[string]*model.RiderRecord)
	for _, day := range model.Days {
		idx := days[day]
		for _, key := range idx.Keys() {
			row, _ := idx.Get(key)
			rec, ok := byKey[key]
			if !ok {
				rec = model.NewRiderRecord(row)
				byKey[key] = rec
				out = append(out, rec)
			}
			fillIdentity(rec, row)
			rec.SetResult(day, model.ResultOf(row))
			if day.Mandatory() && rec.Result(day).Eliminated() {
				rec.EliminationCount++
			}
		}
	}
	return out
}

func fillIdentity(rec *model.RiderRecord, row model.CanonicalRow) {
	if rec.License == "" {
		rec.License = row.License
	}
	if rec.RiderName == "" {
		rec.RiderName = row.RiderName
	}
	if rec.HorseName == "" {
		rec.HorseName = row.HorseName
	}
	if rec.Club == "" {
		rec.Club = row.Club
	}
}

// Records indexes each day's rows and merges them.
func Records(rows map[model.Day][]model.CanonicalRow) []*model.RiderRecord {
	days := make(map[model.Day]*DayIndex, len(rows))
	for d, r := range rows {
		days[d] = Day(r)
	}
	return Merge(days)
}
