// Package ranking runs the classification pipeline for one category:
// aggregate the day files, drop riders who do not qualify, classify the rest.
package ranking

import (
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/aggregate"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/classify"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/qualify"
)

// Result is the ranking of a category together with what was left out.
type Result struct {
	Competition string                      `json:"competition"`
	Category    string                      `json:"category"`
	Mode        model.Mode                  `json:"mode"`
	ShowRank    bool                        `json:"show_rank"`
	Entries     []model.ClassificationEntry `json:"entries"`
	Excluded    map[qualify.Reason]int      `json:"excluded,omitempty"`
}

// Run classifies a category from its day files.
func Run(files model.CategoryFiles, mode model.Mode) Result {
	rows := make(map[model.Day][]model.CanonicalRow, len(model.Days))
	for _, d := range model.Days {
		rows[d] = files.Rows(d)
	}
	records := aggregate.Records(rows)
	kept, excluded := qualify.Partition(records, files.HasData(model.Sunday))
	show := files.ShowRank()

	return Result{
		Competition: files.Competition,
		Category:    files.Category,
		Mode:        mode,
		ShowRank:    show,
		Entries:     classify.Classify(kept, mode, show),
		Excluded:    excluded,
	}
}
