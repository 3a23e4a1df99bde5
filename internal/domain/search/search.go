// Package search finds riders and horses across every loaded results file.
package search

import (
	"strings"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// DefaultLimit caps the number of suggestions.
const DefaultLimit = 10

// Kind is what a suggestion points at.
type Kind string

// Suggestion kinds.
const (
	KindRider Kind = "rider"
	KindHorse Kind = "horse"
)

// Suggestion is a search hit to pick from.
type Suggestion struct {
	Kind    Kind   `json:"kind"`
	Label   string `json:"label"`
	Name    string `json:"name"`
	Horse   string `json:"horse"`
	License string `json:"license,omitempty"`
}

// Result is one run of the selected rider or horse.
type Result struct {
	Competition      string `json:"competition"`
	Day              string `json:"day"`
	Category         string `json:"category"`
	Time             string `json:"time"`
	Score            string `json:"score"`
	Total            string `json:"total"`
	SecondaryLicense string `json:"secondary_license"`
	Horse            string `json:"horse"`
	Club             string `json:"club"`
	Name             string `json:"name"`
	License          string `json:"license"`
}

// Suggest returns up to limit riders and horses whose names contain term,
// ignoring case. Riders are keyed by license when they have one.
func Suggest(files []*model.FileData, term string, limit int) []Suggestion {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[string]struct{})
	var out []Suggestion
	add := func(key string, s Suggestion) bool {
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		out = append(out, s)
		return len(out) >= limit
	}

	for _, f := range files {
		for _, r := range f.Rows {
			if r.RiderName != "" && strings.Contains(strings.ToLower(r.RiderName), term) {
				key, label := "rider:"+r.RiderName, r.RiderName
				if r.License != "" {
					key = "rider:" + r.License
					label = r.RiderName + " (" + r.License + ")"
				}
				if add(key, Suggestion{Kind: KindRider, Label: label, Name: r.RiderName, Horse: r.HorseName, License: r.License}) {
					return out
				}
			}
			if r.HorseName != "" && strings.Contains(strings.ToLower(r.HorseName), term) {
				if add("horse:"+r.HorseName, Suggestion{Kind: KindHorse, Label: r.HorseName, Name: r.RiderName, Horse: r.HorseName, License: r.License}) {
					return out
				}
			}
		}
	}
	return out
}

// Results lists every run matching the suggestion: riders by license (or name
// when there is none), horses by exact name.
func Results(files []*model.FileData, s Suggestion) []Result {
	var out []Result
	for _, f := range files {
		for _, r := range f.Rows {
			if !matches(r, s) {
				continue
			}
			out = append(out, Result{
				Competition:      f.Key.Competition,
				Day:              string(f.Key.Day),
				Category:         f.Key.Category,
				Time:             r.Time,
				Score:            r.Score.String(),
				Total:            orMissing(r.Total),
				SecondaryLicense: orMissing(r.SecondaryLicense),
				Horse:            orMissing(r.HorseName),
				Club:             orMissing(r.Club),
				Name:             orMissing(r.RiderName),
				License:          orMissing(r.License),
			})
		}
	}
	return out
}

func matches(r model.CanonicalRow, s Suggestion) bool {
	switch s.Kind {
	case KindRider:
		if s.License != "" {
			return r.License == s.License
		}
		return r.RiderName != "" && r.RiderName == s.Name
	case KindHorse:
		return r.HorseName != "" && r.HorseName == s.Horse
	default:
		return false
	}
}

func orMissing(s string) string {
	if s == "" {
		return model.Missing
	}
	return s
}
