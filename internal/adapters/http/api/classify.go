package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ranking"
)

// ClassifyDependencies lists what ad-hoc classification needs.
type ClassifyDependencies interface {
	ClassifyRows(ctx context.Context, category string, days map[model.Day][]model.RawRow) (ranking.Result, error)
}

// ClassifyHandler ranks rows posted by the client.
type ClassifyHandler struct {
	deps ClassifyDependencies
}

// NewClassifyHandler creates a new classify handler.
func NewClassifyHandler(deps ClassifyDependencies) *ClassifyHandler {
	return &ClassifyHandler{deps: deps}
}

type classifyRequest struct {
	Category string         `json:"category"`
	Saturday []model.RawRow `json:"saturday"`
	Sunday   []model.RawRow `json:"sunday"`
	Tiebreak []model.RawRow `json:"tiebreak"`
}

// HandleClassify handles POST /classify.
func (h *ClassifyHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	const op = "api.classify"
	var req classifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxUploadBytes)).Decode(&req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.ClassifyRows(r.Context(), req.Category, map[model.Day][]model.RawRow{
		model.Saturday: req.Saturday,
		model.Sunday:   req.Sunday,
		model.Tiebreak: req.Tiebreak,
	})
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
