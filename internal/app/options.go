package service

import (
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/repository"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/source"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/config"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig copies the competition settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		s.dataDir = cfg.DataDir
		s.admissionsFile = cfg.AdmissionsFile
		s.competitions = append([]string(nil), cfg.Competitions...)
		s.categories = append([]string(nil), cfg.Categories...)
		s.timeOnly = append([]string(nil), cfg.TimeOnlyCategories...)
		s.penalty = cfg.EliminationPenalty
		if cfg.SummaryEliminationLimit > 0 {
			s.summaryLimit = cfg.SummaryEliminationLimit
		}
		if cfg.LoadWorkers > 0 {
			s.loadWorkers = cfg.LoadWorkers
		}
	}
}

// WithDataDir sets the directory read by the default fetcher.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithCompetitions sets the competitions loaded by Load.
func WithCompetitions(names ...string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.competitions = names
		}
	}
}

// WithCategories sets the categories loaded for every competition.
func WithCategories(names ...string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.categories = names
		}
	}
}

// WithTimeOnlyCategories sets the categories ranked by Sunday time.
func WithTimeOnlyCategories(names ...string) Option {
	return func(s *Service) { s.timeOnly = names }
}

// WithPenalty sets the points added to the worst score of a day for eliminations.
func WithPenalty(p float64) Option {
	return func(s *Service) {
		if p >= 0 {
			s.penalty = p
		}
	}
}

// WithLoadWorkers sets how many files are fetched at once.
func WithLoadWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.loadWorkers = n
		}
	}
}

// WithFetcher replaces the directory fetcher.
func WithFetcher(f source.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithStore replaces the in-memory snapshot store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
