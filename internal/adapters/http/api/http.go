// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ranking"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/search"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/summary"
)

// Dependencies is everything the handlers need from the service.
type Dependencies interface {
	Competitions(ctx context.Context) ([]string, error)
	Categories(ctx context.Context, competition string) ([]string, error)
	Missing(ctx context.Context, competition string) ([]model.FileKey, error)

	Classification(ctx context.Context, competition, category string) (ranking.Result, error)
	Summary(ctx context.Context, competition, category string) ([]summary.Entry, error)
	ClassifyRows(ctx context.Context, category string, days map[model.Day][]model.RawRow) (ranking.Result, error)

	File(ctx context.Context, key model.FileKey) (*model.FileData, error)
	ReplaceFile(ctx context.Context, key model.FileKey, name string, data []byte) (*model.FileData, error)

	Search(ctx context.Context, term string, limit int) ([]search.Suggestion, error)
	SearchResults(ctx context.Context, sel search.Suggestion) ([]search.Result, error)

	Refresh(ctx context.Context) (*model.Snapshot, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler         *HealthHandler
	statsHandler          *StatsHandler
	competitionsHandler   *CompetitionsHandler
	classificationHandler *ClassificationHandler
	filesHandler          *FilesHandler
	templatesHandler      *TemplatesHandler
	searchHandler         *SearchHandler
	classifyHandler       *ClassifyHandler
	refreshHandler        *RefreshHandler
	refreshLimiter        *IPRateLimiter
}

// ServerOption configures NewServer.
type ServerOption func(*Server)

// WithRefreshLimiter sets the limiter guarding POST /refresh.
func WithRefreshLimiter(l *IPRateLimiter) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.refreshLimiter = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:         NewHealthHandler(),
		statsHandler:          NewStatsHandler(statsProvider),
		competitionsHandler:   NewCompetitionsHandler(deps),
		classificationHandler: NewClassificationHandler(deps),
		filesHandler:          NewFilesHandler(deps),
		templatesHandler:      NewTemplatesHandler(),
		searchHandler:         NewSearchHandler(deps),
		classifyHandler:       NewClassifyHandler(deps),
		refreshHandler:        NewRefreshHandler(deps),
		refreshLimiter:        NewIPRateLimiter(DefaultRefreshRate, DefaultRefreshBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/competitions", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.competitionsHandler.HandleList, "competitions"))
		r.Route("/{competition}", func(r chi.Router) {
			r.Get("/categories", MetricsMiddleware(s.competitionsHandler.HandleCategories, "categories"))
			r.Get("/missing", MetricsMiddleware(s.competitionsHandler.HandleMissing, "missing"))
			r.Get("/classification/{category}", MetricsMiddleware(s.classificationHandler.HandleClassification, "classification"))
			r.Get("/summary/{category}", MetricsMiddleware(s.classificationHandler.HandleSummary, "summary"))
			r.Get("/files/{day}/{category}", MetricsMiddleware(s.filesHandler.HandleGet, "file_get"))
			r.Put("/files/{day}/{category}", MetricsMiddleware(s.filesHandler.HandlePut, "file_put"))
		})
	})

	r.Get("/templates/day", MetricsMiddleware(s.templatesHandler.HandleDay, "template_day"))
	r.Get("/templates/category", MetricsMiddleware(s.templatesHandler.HandleCategory, "template_category"))

	r.Get("/search", MetricsMiddleware(s.searchHandler.HandleSuggest, "search"))
	r.Get("/search/results", MetricsMiddleware(s.searchHandler.HandleResults, "search_results"))

	r.Post("/classify", MetricsMiddleware(s.classifyHandler.HandleClassify, "classify"))
	r.With(RateLimitMiddleware(s.refreshLimiter)).
		Post("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
}

// Router returns a chi router with every route registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
