// Package ingest turns the raw rows of one results file into FileData.
package ingest

import (
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/admission"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/elimination"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/normalize"
)

// Stats counts what happened to the rows of a file.
type Stats struct {
	Read        int
	Blank       int
	NotAdmitted int
	NoKey       int
	Kept        int
}

type options struct {
	admissions *admission.List
	penalty    []elimination.Option
}

// Option configures File.
type Option func(*options)

// WithAdmissions drops rows whose license pair is not on the list.
func WithAdmissions(l *admission.List) Option {
	return func(o *options) { o.admissions = l }
}

// WithPenalty sets the points added to the worst score for eliminations.
func WithPenalty(p float64) Option {
	return func(o *options) { o.penalty = append(o.penalty, elimination.WithPenalty(p)) }
}

// File drops blank and non-admitted rows, normalizes the rest and resolves
// elimination penalties within the file.
func File(key model.FileKey, source string, raws []model.RawRow, opts ...Option) (*model.FileData, Stats) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	st := Stats{Read: len(raws)}
	kept := make([]model.RawRow, 0, len(raws))
	for _, r := range raws {
		if r.IsBlank() {
			st.Blank++
			continue
		}
		if !o.admissions.AllowsRow(r) {
			st.NotAdmitted++
			continue
		}
		kept = append(kept, r)
	}

	rows := elimination.Apply(normalize.Rows(kept), o.penalty...)
	for _, r := range rows {
		if r.Key() == "" {
			st.NoKey++
		}
	}
	st.Kept = len(kept)

	return &model.FileData{Key: key, Source: source, Raw: kept, Rows: rows}, st
}
