package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/metrics"
)

// SnapshotStore keeps the current snapshot behind an atomic pointer.
type SnapshotStore struct {
	current atomic.Pointer[model.Snapshot]

	// mu serializes writers so two uploads never lose each other's file.
	mu sync.Mutex

	metricsUpdateInterval time.Duration
	now                   func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*SnapshotStore)(nil)

// NewSnapshotStore constructs an empty store and starts its metrics updater.
func NewSnapshotStore(ctx context.Context, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		metricsUpdateInterval: 5 * time.Second,
		now:                   time.Now,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Current implements Store.
func (s *SnapshotStore) Current(_ context.Context) (*model.Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Replace implements Store.
func (s *SnapshotStore) Replace(_ context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return ErrNilInput
	}
	s.mu.Lock()
	s.current.Store(snap)
	s.mu.Unlock()
	s.updateMetrics()
	return nil
}

// File implements Store.
func (s *SnapshotStore) File(ctx context.Context, key model.FileKey) (*model.FileData, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := snap.File(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return f, nil
}

// Upsert implements Store.
func (s *SnapshotStore) Upsert(_ context.Context, id string, f *model.FileData) (*model.Snapshot, error) {
	if f == nil {
		return nil, ErrNilInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if prev == nil {
		prev = &model.Snapshot{}
	}
	next := prev.WithFile(id, s.now(), f)
	s.current.Store(next)
	s.updateMetrics()
	return next, nil
}

// Close stops the metrics updater.
func (s *SnapshotStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func (s *SnapshotStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *SnapshotStore) updateMetrics() {
	snap := s.current.Load()
	if snap == nil {
		return
	}
	metrics.UpdateSnapshot(snap.LoadedAt.Unix(), len(snap.Files), snap.RowCount())
}
