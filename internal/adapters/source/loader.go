package source

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/admission"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/ingest"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/logger"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/metrics"
)

// Result is everything fetched by one Load.
type Result struct {
	Files   map[model.FileKey]*model.FileData
	Missing []model.FileKey
	Stats   ingest.Stats
}

// Loader fetches many files through a bounded pool of workers.
type Loader struct {
	fetcher Fetcher
	workers int
	logger  logger.Logger
}

// NewLoader creates a loader over fetcher.
func NewLoader(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher: fetcher,
		workers: runtime.NumCPU(),
		logger:  logger.Get().Named("loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Keys expands competitions x days x categories into file keys.
func Keys(competitions, categories []string) []model.FileKey {
	keys := make([]model.FileKey, 0, len(competitions)*len(categories)*len(model.Days))
	for _, c := range competitions {
		for _, cat := range categories {
			for _, d := range model.Days {
				keys = append(keys, model.FileKey{Competition: c, Day: d, Category: cat})
			}
		}
	}
	return keys
}

// Admissions reads the admitted entries. A missing sheet admits everybody.
func (l *Loader) Admissions(ctx context.Context) (*admission.List, error) {
	doc, err := l.fetcher.Admissions(ctx)
	if errors.Is(err, ErrNotFound) {
		return admission.New(), nil
	}
	if err != nil {
		metrics.RecordErrorByComponent("loader", "admissions_failed")
		return nil, fmt.Errorf("admissions: %w", err)
	}
	list := admission.FromRows(doc.Rows)
	l.logger.Info(ctx, "admissions loaded", logger.String("file", doc.Name), logger.Int("entries", list.Len()))
	return list, nil
}

type outcome struct {
	file    *model.FileData
	stats   ingest.Stats
	missing bool
}

// Load fetches and ingests every key. Files that do not exist are reported in
// Result.Missing. Any other failure cancels the remaining fetches and Load
// returns the first error with no partial result.
func (l *Loader) Load(ctx context.Context, keys []model.FileKey, opts ...ingest.Option) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(l.workers, len(keys))
	metrics.UpdateLoaderWorkers(workers)

	jobs := make(chan int)
	outcomes := make([]outcome, len(keys))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			lg := l.logger.Named(name)
			for i := range jobs {
				o, err := l.fetch(ctx, keys[i], opts)
				if err != nil {
					lg.Error(ctx, "fetch failed", logger.String("file", keys[i].String()), logger.Error(err))
					fail(err)
					continue
				}
				outcomes[i] = o
			}
		}("worker-" + strconv.Itoa(w))
	}

feed:
	for i := range keys {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Files: make(map[model.FileKey]*model.FileData, len(keys))}
	for i, o := range outcomes {
		if o.missing {
			res.Missing = append(res.Missing, keys[i])
			continue
		}
		res.Files[keys[i]] = o.file
		res.Stats.Read += o.stats.Read
		res.Stats.Blank += o.stats.Blank
		res.Stats.NotAdmitted += o.stats.NotAdmitted
		res.Stats.NoKey += o.stats.NoKey
		res.Stats.Kept += o.stats.Kept
	}
	return res, nil
}

func (l *Loader) fetch(ctx context.Context, key model.FileKey, opts []ingest.Option) (outcome, error) {
	start := time.Now()
	doc, err := l.fetcher.Fetch(ctx, key)
	metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))

	if errors.Is(err, ErrNotFound) {
		metrics.RecordFileMissing(string(key.Day))
		l.logger.Debug(ctx, "file not found", logger.String("file", key.String()))
		return outcome{missing: true}, nil
	}
	if err != nil {
		metrics.RecordErrorByComponent("loader", "fetch_failed")
		metrics.RecordErrorByType("fetch_failed", "high")
		return outcome{}, fmt.Errorf("%s: %w", key, err)
	}

	f, st := Ingest(key, doc, opts...)
	l.logger.Debug(ctx, "file loaded",
		logger.String("file", key.String()),
		logger.String("source", doc.Name),
		logger.Int("rows", st.Kept),
	)
	return outcome{file: f, stats: st}, nil
}

// Ingest turns a parsed document into FileData and records ingestion metrics.
func Ingest(key model.FileKey, doc Document, opts ...ingest.Option) (*model.FileData, ingest.Stats) {
	f, st := ingest.File(key, doc.Name, doc.Rows, opts...)
	metrics.RecordFileLoaded(string(key.Day))
	metrics.RecordRowsIngested(st.Kept)
	metrics.RecordRowsRejected("blank", st.Blank)
	metrics.RecordRowsRejected("not_admitted", st.NotAdmitted)
	metrics.RecordRowsRejected("no_key", st.NoKey)
	return f, st
}
