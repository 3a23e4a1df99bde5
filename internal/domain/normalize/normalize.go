// Package normalize maps heterogeneous result-sheet rows onto CanonicalRow.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// MissingTime is the number of seconds assigned to an absent or unreadable time.
const MissingTime = 999999

var leadingDigits = regexp.MustCompile(`^\d+`)

// Row normalizes one raw row. It never fails: unreadable values fall back to
// their placeholders.
func Row(raw model.RawRow) model.CanonicalRow {
	row := model.CanonicalRow{
		License:          text(raw, LicenseAliases),
		SecondaryLicense: text(raw, SecondaryLicenseAliases),
		RiderName:        text(raw, RiderAliases),
		HorseName:        text(raw, HorseAliases),
		Club:             text(raw, ClubAliases),
		Bib:              text(raw, BibAliases),
		Total:            text(raw, TotalAliases),
		RunningOrder:     model.DefaultRunningOrder,
		Rank:             model.Missing,
		Time:             model.Missing,
		Raw:              raw,
	}

	if v, ok := First(raw, RunningOrderAliases); ok {
		if n, ok := LeadingInt(v); ok {
			row.RunningOrder = n
		}
	}
	if rank := text(raw, RankAliases); rank != "" {
		row.Rank = rank
	}
	if t := text(raw, TimeAliases); t != "" {
		row.Time = t
	}

	v, ok := First(raw, ScoreAliases)
	if ok {
		row.ScoreOriginal = strings.TrimSpace(model.ValueText(v))
	}
	row.Score = ParseScore(v, ok)
	if row.Score.IsEliminated() {
		row.Rank = string(row.Score.Code)
	}
	return row
}

// Rows normalizes a slice of raw rows.
func Rows(raws []model.RawRow) []model.CanonicalRow {
	out := make([]model.CanonicalRow, len(raws))
	for i, r := range raws {
		out[i] = Row(r)
	}
	return out
}

// ParseScore classifies a score cell. present is false when no alias had a
// value.
func ParseScore(v any, present bool) model.Score {
	if !present {
		return model.Absent()
	}
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return model.Numeric(0)
		}
		return model.Numeric(t)
	case int:
		return model.Numeric(float64(t))
	}
	s := strings.TrimSpace(model.ValueText(v))
	if c, ok := model.ParseEliminationCode(s); ok {
		return model.Eliminated(c)
	}
	if n, ok := LeadingInt(s); ok {
		return model.Numeric(float64(n))
	}
	return model.Numeric(0)
}

// First returns the first non-empty value among aliases.
func First(raw model.RawRow, aliases []string) (any, bool) {
	for _, a := range aliases {
		v, ok := raw.Get(a)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func text(raw model.RawRow, aliases []string) string {
	v, ok := First(raw, aliases)
	if !ok {
		return ""
	}
	return strings.TrimSpace(model.ValueText(v))
}

// LeadingInt parses the leading run of digits of v. Numbers are truncated.
func LeadingInt(v any) (int, bool) {
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	}
	m := leadingDigits.FindString(strings.TrimSpace(model.ValueText(v)))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Seconds converts a run time to seconds. Accepts "m:ss.s" and plain seconds
// with a dot or comma decimal separator; anything else is MissingTime.
func Seconds(t string) float64 {
	t = strings.TrimSpace(t)
	if t == "" || t == model.Missing {
		return MissingTime
	}
	t = strings.ReplaceAll(t, ",", ".")
	if strings.Contains(t, ":") {
		parts := strings.SplitN(t, ":", 2)
		mins, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		secs, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return MissingTime
		}
		return mins*60 + secs
	}
	f, err := strconv.ParseFloat(leadingNumber(t), 64)
	if err != nil || math.IsNaN(f) {
		return MissingTime
	}
	return f
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

// leadingNumber mimics lenient float parsing: "45.2s" reads as 45.2.
func leadingNumber(s string) string {
	return leadingFloat.FindString(s)
}
