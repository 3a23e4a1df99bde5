package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/search"
)

// SearchDependencies lists what the search endpoints need.
type SearchDependencies interface {
	Search(ctx context.Context, term string, limit int) ([]search.Suggestion, error)
	SearchResults(ctx context.Context, sel search.Suggestion) ([]search.Result, error)
}

// SearchHandler finds riders and horses across every loaded file.
type SearchHandler struct {
	deps SearchDependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSuggest handles GET /search?q=&limit=.
func (h *SearchHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	const op = "api.search"
	q := r.URL.Query()
	limit := search.DefaultLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fail(w, WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		limit = n
	}

	hits, err := h.deps.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": q.Get("q"), "suggestions": hits})
}

// HandleResults handles GET /search/results?type=rider|horse&license=&name=&horse=.
func (h *SearchHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_results"
	q := r.URL.Query()
	sel := search.Suggestion{
		Kind:    search.Kind(q.Get("type")),
		Name:    q.Get("name"),
		Horse:   q.Get("horse"),
		License: q.Get("license"),
	}

	results, err := h.deps.SearchResults(r.Context(), sel)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selection": sel, "results": results})
}
