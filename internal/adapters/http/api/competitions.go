package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// CompetitionsDependencies lists what the competition browser needs.
type CompetitionsDependencies interface {
	Competitions(ctx context.Context) ([]string, error)
	Categories(ctx context.Context, competition string) ([]string, error)
	Missing(ctx context.Context, competition string) ([]model.FileKey, error)
}

// CompetitionsHandler lists competitions, categories and missing files.
type CompetitionsHandler struct {
	deps CompetitionsDependencies
}

// NewCompetitionsHandler creates a new competitions handler.
func NewCompetitionsHandler(deps CompetitionsDependencies) *CompetitionsHandler {
	return &CompetitionsHandler{deps: deps}
}

// HandleList handles GET /competitions.
func (h *CompetitionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.competitions"
	comps, err := h.deps.Competitions(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"competitions": comps})
}

// HandleCategories handles GET /competitions/{competition}/categories.
func (h *CompetitionsHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	const op = "api.categories"
	comp := chi.URLParam(r, "competition")
	cats, err := h.deps.Categories(r.Context(), comp)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"competition": comp, "categories": cats})
}

// HandleMissing handles GET /competitions/{competition}/missing.
func (h *CompetitionsHandler) HandleMissing(w http.ResponseWriter, r *http.Request) {
	const op = "api.missing"
	comp := chi.URLParam(r, "competition")
	missing, err := h.deps.Missing(r.Context(), comp)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	files := make([]string, len(missing))
	for i, k := range missing {
		files[i] = k.BaseName()
	}
	writeJSON(w, http.StatusOK, map[string]any{"competition": comp, "missing": files})
}
