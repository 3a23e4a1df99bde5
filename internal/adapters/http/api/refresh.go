package api

import (
	"context"
	"net/http"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// RefreshDependencies lists what a reload needs.
type RefreshDependencies interface {
	Refresh(ctx context.Context) (*model.Snapshot, error)
}

// RefreshHandler reloads every results file from the source.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /refresh.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh"
	snap, err := h.deps.Refresh(r.Context())
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	missing := make([]string, len(snap.Missing))
	for i, k := range snap.Missing {
		missing[i] = k.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshot":  snap.ID,
		"loaded_at": snap.LoadedAt,
		"files":     len(snap.Files),
		"missing":   missing,
	})
}
