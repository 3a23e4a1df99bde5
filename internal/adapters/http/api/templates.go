package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/export"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// TemplatesHandler serves blank spreadsheets for the results team.
type TemplatesHandler struct{}

// NewTemplatesHandler creates a new templates handler.
func NewTemplatesHandler() *TemplatesHandler {
	return &TemplatesHandler{}
}

// HandleDay handles GET /templates/day?day=&category=&format=.
func (h *TemplatesHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	const op = "api.template_day"
	q := r.URL.Query()
	day, ok := model.ParseDay(q.Get("day"))
	if !ok {
		fail(w, WrapKind(op, ErrBadRequest, errors.New("unknown day "+q.Get("day"))))
		return
	}
	category := strings.TrimSpace(q.Get("category"))
	if category == "" {
		fail(w, WrapKind(op, ErrBadRequest, errors.New("category is required")))
		return
	}
	format, _, err := formatParam(r, export.FormatXLSX)
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	name := export.FileName(format, string(day)+category)
	if err := writeDownload(w, "template_day", format, name, export.DayTemplate(day, category)); err != nil {
		fail(w, Wrap(op, err))
	}
}

// HandleCategory handles GET /templates/category?category=&format=.
func (h *TemplatesHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	const op = "api.template_category"
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		fail(w, WrapKind(op, ErrBadRequest, errors.New("category is required")))
		return
	}
	format, _, err := formatParam(r, export.FormatXLSX)
	if err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	name := export.FileName(format, "CATEGORIA", category)
	if err := writeDownload(w, "template_category", format, name, export.CategoryTemplate(category)); err != nil {
		fail(w, Wrap(op, err))
	}
}
