// Package service loads competition results and answers classification
// queries for the HTTP API and the command line.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/repository"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/source"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/admission"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/elimination"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ingest"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/qualify"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ranking"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/search"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/summary"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/logger"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/metrics"
)

// Service owns the loaded results and answers queries over them.
type Service struct {
	mu sync.RWMutex

	// Configuration
	dataDir        string
	admissionsFile string
	competitions   []string
	categories     []string
	timeOnly       []string
	penalty        float64
	summaryLimit   int
	loadWorkers    int

	// Components
	fetcher source.Fetcher
	loader  *source.Loader
	store   repository.Store

	// State
	admissions *admission.List
	started    bool
	lastError  error

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:        "assets/data",
		admissionsFile: "admitidos",
		competitions:   []string{"SEDE"},
		categories:     []string{"A", "A2", "B", "B2", "C", "C2"},
		timeOnly:       []string{"A2", "B2", "C2"},
		penalty:        elimination.DefaultPenalty,
		summaryLimit:   qualify.DefaultEliminationLimit,
		loadWorkers:    runtime.NumCPU(),
		admissions:     admission.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the components and performs the first load.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.fetcher == nil {
		s.fetcher = source.NewDirFetcher(s.dataDir, s.admissionsFile)
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore(ctx)
	}
	s.loader = source.NewLoader(s.fetcher, source.WithWorkers(s.loadWorkers), source.WithLogger(s.logger.Named("loader")))
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting championship service",
		logger.Strings("competitions", s.competitions),
		logger.Strings("categories", s.categories),
		logger.Int("workers", s.loadWorkers),
	)
	if _, err := s.Load(ctx); err != nil {
		return err
	}
	return nil
}

// Stop releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "championship service stopped")
}

// Load fetches every configured file and publishes a new snapshot. The
// previous snapshot stays in place when the load fails.
func (s *Service) Load(ctx context.Context) (*model.Snapshot, error) {
	if !s.isStarted() {
		return nil, ErrNotReady
	}
	start := time.Now()
	snap, err := s.load(ctx)
	ms := float64(time.Since(start).Milliseconds())

	s.mu.Lock()
	s.lastError = err
	s.mu.Unlock()

	if err != nil {
		metrics.RecordSnapshotLoad("failed", ms)
		metrics.RecordErrorByComponent("service", "load_failed")
		s.logger.Error(ctx, "load failed", logger.Error(err))
		return nil, err
	}
	metrics.RecordSnapshotLoad("ok", ms)
	s.logger.Info(ctx, "snapshot published",
		logger.String("id", snap.ID),
		logger.Int("files", len(snap.Files)),
		logger.Int("missing", len(snap.Missing)),
		logger.Int("rows", snap.RowCount()),
		logger.Float64("ms", ms),
	)
	return snap, nil
}

// Refresh reloads every file.
func (s *Service) Refresh(ctx context.Context) (*model.Snapshot, error) {
	return s.Load(ctx)
}

func (s *Service) load(ctx context.Context) (*model.Snapshot, error) {
	adm, err := s.loader.Admissions(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.loader.Load(ctx, source.Keys(s.competitions, s.categories),
		ingest.WithAdmissions(adm), ingest.WithPenalty(s.penalty))
	if err != nil {
		return nil, err
	}
	if len(res.Files) == 0 {
		return nil, ErrNoData
	}

	snap := &model.Snapshot{ID: uuid.NewString(), LoadedAt: time.Now(), Files: res.Files, Missing: res.Missing}
	if err := s.store.Replace(ctx, snap); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.admissions = adm
	s.mu.Unlock()
	return snap, nil
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) snapshot(ctx context.Context) (*model.Snapshot, error) {
	if !s.isStarted() {
		return nil, ErrNotReady
	}
	snap, err := s.store.Current(ctx)
	if errors.Is(err, repository.ErrNoSnapshot) {
		return nil, ErrNotReady
	}
	return snap, err
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot(ctx context.Context) (*model.Snapshot, error) { return s.snapshot(ctx) }

// Competitions lists the loaded competitions.
func (s *Service) Competitions(ctx context.Context) ([]string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Competitions(), nil
}

// Categories lists the categories with data in competition.
func (s *Service) Categories(ctx context.Context, competition string) ([]string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	cats := snap.Categories(competition)
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: competition %q", ErrNotFound, competition)
	}
	return cats, nil
}

// Missing lists the files of competition that were not found. An empty
// competition lists them all.
func (s *Service) Missing(ctx context.Context, competition string) ([]model.FileKey, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FileKey, 0, len(snap.Missing))
	for _, k := range snap.Missing {
		if competition == "" || k.Competition == competition {
			out = append(out, k)
		}
	}
	return out, nil
}

// Mode returns the ranking mode of category.
func (s *Service) Mode(category string) model.Mode { return model.ModeFor(category, s.timeOnly) }

// Classification ranks one category of a competition.
func (s *Service) Classification(ctx context.Context, competition, category string) (ranking.Result, error) {
	files, err := s.categoryFiles(ctx, competition, category)
	if err != nil {
		return ranking.Result{}, err
	}
	return s.rank(files), nil
}

// Summary builds the category summary of a competition.
func (s *Service) Summary(ctx context.Context, competition, category string) ([]summary.Entry, error) {
	files, err := s.categoryFiles(ctx, competition, category)
	if err != nil {
		return nil, err
	}
	return summary.Build(files, summary.WithEliminationLimit(s.summaryLimit)), nil
}

func (s *Service) categoryFiles(ctx context.Context, competition, category string) (model.CategoryFiles, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return model.CategoryFiles{}, err
	}
	files := snap.Category(competition, category)
	if files.Saturday == nil && files.Sunday == nil && files.Tiebreak == nil {
		return files, fmt.Errorf("%w: %s/%s", ErrNotFound, competition, category)
	}
	return files, nil
}

func (s *Service) rank(files model.CategoryFiles) ranking.Result {
	start := time.Now()
	mode := s.Mode(files.Category)
	res := ranking.Run(files, mode)
	metrics.RecordClassification(string(mode), float64(time.Since(start).Milliseconds()))
	for reason, n := range res.Excluded {
		metrics.RecordRidersExcluded(string(reason), n)
	}
	return res
}

// File returns one loaded results file.
func (s *Service) File(ctx context.Context, key model.FileKey) (*model.FileData, error) {
	if _, err := s.snapshot(ctx); err != nil {
		return nil, err
	}
	f, err := s.store.File(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return f, err
}

// ReplaceFile parses data as the file of key and publishes it. The other
// files of the snapshot are kept.
func (s *Service) ReplaceFile(ctx context.Context, key model.FileKey, name string, data []byte) (*model.FileData, error) {
	if strings.TrimSpace(key.Competition) == "" || strings.TrimSpace(key.Category) == "" {
		return nil, fmt.Errorf("%w: competition and category are required", ErrInvalidInput)
	}
	if _, ok := model.ParseDay(string(key.Day)); !ok {
		return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, key.Day)
	}
	if !s.isStarted() {
		return nil, ErrNotReady
	}
	rows, err := source.Parse(name, data)
	if err != nil && !errors.Is(err, source.ErrEmptySheet) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.RLock()
	adm := s.admissions
	s.mu.RUnlock()

	f, st := source.Ingest(key, source.Document{Name: name, Rows: rows}, ingest.WithAdmissions(adm), ingest.WithPenalty(s.penalty))
	snap, err := s.store.Upsert(ctx, uuid.NewString(), f)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "file replaced",
		logger.String("file", key.String()),
		logger.String("snapshot", snap.ID),
		logger.Int("rows", st.Kept),
	)
	return f, nil
}

// Search suggests riders and horses whose name contains term.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]search.Suggestion, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return []search.Suggestion{}, nil
	}
	return search.Suggest(snap.SortedFiles(), term, limit), nil
}

// SearchResults lists every run of the chosen rider or horse.
func (s *Service) SearchResults(ctx context.Context, sel search.Suggestion) ([]search.Result, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if sel.Kind != search.KindRider && sel.Kind != search.KindHorse {
		return nil, fmt.Errorf("%w: unknown search type %q", ErrInvalidInput, sel.Kind)
	}
	return search.Results(snap.SortedFiles(), sel), nil
}

// ClassifyRows ranks rows handed over directly, without touching the
// loaded snapshot. Days without rows are treated as not held.
func (s *Service) ClassifyRows(_ context.Context, category string, days map[model.Day][]model.RawRow) (ranking.Result, error) {
	if strings.TrimSpace(category) == "" {
		return ranking.Result{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	files := model.CategoryFiles{Category: category}
	for day, rows := range days {
		if len(rows) == 0 {
			continue
		}
		key := model.FileKey{Day: day, Category: category}
		f, _ := ingest.File(key, "request", rows, ingest.WithPenalty(s.penalty))
		switch day {
		case model.Saturday:
			files.Saturday = f
		case model.Sunday:
			files.Sunday = f
		case model.Tiebreak:
			files.Tiebreak = f
		default:
			return ranking.Result{}, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, day)
		}
	}
	return s.rank(files), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	stats := map[string]interface{}{
		"started":      s.started,
		"competitions": s.competitions,
		"categories":   s.categories,
		"loadWorkers":  s.loadWorkers,
		"admitted":     s.admissions.Len(),
	}
	if s.lastError != nil {
		stats["lastError"] = s.lastError.Error()
	}
	s.mu.RUnlock()

	snap, err := s.snapshot(context.Background())
	if err != nil {
		return stats
	}
	stats["snapshotId"] = snap.ID
	stats["loadedAt"] = snap.LoadedAt
	stats["files"] = len(snap.Files)
	stats["missing"] = len(snap.Missing)
	stats["rows"] = snap.RowCount()
	return stats
}
