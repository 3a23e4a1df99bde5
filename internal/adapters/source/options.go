package source

import (
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithWorkers sets how many files are fetched at once.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}
