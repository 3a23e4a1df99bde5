package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/export"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ranking"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/summary"
)

// ClassificationDependencies lists what the ranking endpoints need.
type ClassificationDependencies interface {
	Classification(ctx context.Context, competition, category string) (ranking.Result, error)
	Summary(ctx context.Context, competition, category string) ([]summary.Entry, error)
}

// ClassificationHandler serves category rankings and summaries.
type ClassificationHandler struct {
	deps ClassificationDependencies
	now  func() time.Time
}

// NewClassificationHandler creates a new classification handler.
func NewClassificationHandler(deps ClassificationDependencies) *ClassificationHandler {
	return &ClassificationHandler{deps: deps, now: time.Now}
}

// HandleClassification handles GET /competitions/{competition}/classification/{category}.
func (h *ClassificationHandler) HandleClassification(w http.ResponseWriter, r *http.Request) {
	const op = "api.classification"
	comp, cat := chi.URLParam(r, "competition"), chi.URLParam(r, "category")
	format, download, err := formatParam(r, "")
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Classification(r.Context(), comp, cat)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	if !download {
		writeJSON(w, http.StatusOK, res)
		return
	}
	name := export.FileName(format, "Clasificacion", cat, h.now().Format("2006-01-02"))
	if err := writeDownload(w, "classification", format, name, export.ClassificationTable(res)); err != nil {
		fail(w, Wrap(op, err))
	}
}

// HandleSummary handles GET /competitions/{competition}/summary/{category}.
func (h *ClassificationHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.summary"
	comp, cat := chi.URLParam(r, "competition"), chi.URLParam(r, "category")
	format, download, err := formatParam(r, "")
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	entries, err := h.deps.Summary(r.Context(), comp, cat)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	if !download {
		writeJSON(w, http.StatusOK, map[string]any{"competition": comp, "category": cat, "entries": entries})
		return
	}
	name := export.FileName(format, "CATEGORIA", comp, cat)
	if err := writeDownload(w, "summary", format, name, export.SummaryTable(cat, entries)); err != nil {
		fail(w, Wrap(op, err))
	}
}
