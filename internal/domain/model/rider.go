package model

import "strconv"

// DefaultRunningOrder is used when a row carries no running order.
const DefaultRunningOrder = 9999

// CanonicalRow is a results row after column aliasing and value cleanup.
type CanonicalRow struct {
	License          string  `json:"license"`
	SecondaryLicense string  `json:"secondary_license,omitempty"`
	RiderName        string  `json:"rider_name"`
	HorseName        string  `json:"horse_name"`
	Club             string  `json:"club"`
	Bib              string  `json:"bib,omitempty"`
	RunningOrder     int     `json:"running_order"`
	Rank             string  `json:"rank"`
	Score            Score   `json:"score"`
	Time             string  `json:"time"`
	ScoreOriginal    string  `json:"score_original"`
	Penalty          float64 `json:"penalty"`
	Total            string  `json:"total,omitempty"`
	Raw              RawRow  `json:"-"`
}

// Key identifies the rider of the row: the license, else the rider name.
func (r CanonicalRow) Key() string {
	if r.License != "" {
		return r.License
	}
	return r.RiderName
}

// DayResult is the run a rider counts for one day of a category.
type DayResult struct {
	Present       bool   `json:"present"`
	Score         Score  `json:"score"`
	ScoreOriginal string `json:"score_original,omitempty"`
	Time          string `json:"time"`
	Horse         string `json:"horse"`
	Rank          string `json:"rank"`
}

// NoResult is the placeholder for a day the rider did not run.
func NoResult() DayResult {
	return DayResult{Score: Absent(), Time: Missing, Horse: Missing, Rank: Missing}
}

// ResultOf projects a row into a DayResult.
func ResultOf(row CanonicalRow) DayResult {
	d := DayResult{
		Present:       true,
		Score:         row.Score,
		ScoreOriginal: row.ScoreOriginal,
		Time:          orMissing(row.Time),
		Horse:         orMissing(row.HorseName),
		Rank:          orMissing(row.Rank),
	}
	return d
}

// Eliminated reports whether the run ended with an elimination code.
func (d DayResult) Eliminated() bool {
	return d.Score.IsEliminated() || IsEliminationMarker(d.ScoreOriginal)
}

// Code returns the elimination code of the run, if any.
func (d DayResult) Code() (EliminationCode, bool) {
	if d.Score.IsEliminated() {
		return d.Score.Code, true
	}
	return ParseEliminationCode(d.ScoreOriginal)
}

func orMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}

// RiderRecord collects one rider's runs within a category.
type RiderRecord struct {
	Key              string    `json:"key"`
	License          string    `json:"license"`
	RiderName        string    `json:"rider_name"`
	HorseName        string    `json:"horse_name"`
	Club             string    `json:"club"`
	Saturday         DayResult `json:"saturday"`
	Sunday           DayResult `json:"sunday"`
	Tiebreak         DayResult `json:"tiebreak"`
	Total            float64   `json:"total"`
	ValidResults     int       `json:"valid_results"`
	EliminationCount int       `json:"elimination_count"`
}

// NewRiderRecord starts a record from the first row seen for the rider.
func NewRiderRecord(row CanonicalRow) *RiderRecord {
	return &RiderRecord{
		Key:       row.Key(),
		License:   row.License,
		RiderName: row.RiderName,
		HorseName: row.HorseName,
		Club:      row.Club,
		Saturday:  NoResult(),
		Sunday:    NoResult(),
		Tiebreak:  NoResult(),
	}
}

// Result returns the rider's run on day.
func (r *RiderRecord) Result(day Day) DayResult {
	switch day {
	case Saturday:
		return r.Saturday
	case Sunday:
		return r.Sunday
	case Tiebreak:
		return r.Tiebreak
	default:
		return NoResult()
	}
}

// SetResult replaces the rider's run on day.
func (r *RiderRecord) SetResult(day Day, d DayResult) {
	switch day {
	case Saturday:
		r.Saturday = d
	case Sunday:
		r.Sunday = d
	case Tiebreak:
		r.Tiebreak = d
	}
}

// ClassificationEntry is a ranked rider.
type ClassificationEntry struct {
	RiderRecord
	Classification int  `json:"classification"`
	ShowRank       bool `json:"show_rank"`
}

// RankLabel is the classification number as shown, blank while ranks are hidden.
func (e ClassificationEntry) RankLabel() string {
	if !e.ShowRank {
		return ""
	}
	return strconv.Itoa(e.Classification)
}
