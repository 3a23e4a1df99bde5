// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the root holding one folder of results files per competition.
	DataDir string `koanf:"data_dir"`

	// Competitions lists the venues loaded at startup.
	Competitions []string `koanf:"competitions"`

	// Categories lists the category codes loaded for every competition.
	Categories []string `koanf:"categories"`

	// TimeOnlyCategories are ranked by total then Sunday time.
	TimeOnlyCategories []string `koanf:"time_only_categories"`

	// AdmissionsFile is the base name, under DataDir, of the admitted riders list.
	// Empty disables admission filtering.
	AdmissionsFile string `koanf:"admissions_file"`

	// EliminationPenalty is added to the worst numeric score of a day for eliminated riders.
	EliminationPenalty float64 `koanf:"elimination_penalty"`

	// SummaryEliminationLimit is the elimination count on the mandatory days
	// that drops a rider from the category summary.
	SummaryEliminationLimit int `koanf:"summary_elimination_limit"`

	// LoadWorkers bounds concurrent file fetches during a load.
	LoadWorkers int `koanf:"load_workers"`

	// RefreshRatePerMinute and RefreshBurst limit POST /refresh per client.
	RefreshRatePerMinute int `koanf:"refresh_rate_per_minute"`
	RefreshBurst         int `koanf:"refresh_burst"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":9080",
		DataDir:                 "assets/data",
		Competitions:            []string{"SEDE"},
		Categories:              []string{"A", "A2", "B", "B2", "C", "C2"},
		TimeOnlyCategories:      []string{"A2", "B2", "C2"},
		AdmissionsFile:          "admitidos",
		EliminationPenalty:      20,
		SummaryEliminationLimit: 2,
		LoadWorkers:             runtime.NumCPU(),
		RefreshRatePerMinute:    6,
		RefreshBurst:            2,
	}
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case len(c.Competitions) == 0:
		return fmt.Errorf("%w: at least one competition is required", ErrInvalidConfig)
	case len(c.Categories) == 0:
		return fmt.Errorf("%w: at least one category is required", ErrInvalidConfig)
	case c.EliminationPenalty < 0:
		return fmt.Errorf("%w: elimination_penalty must not be negative", ErrInvalidConfig)
	case c.SummaryEliminationLimit <= 0:
		return fmt.Errorf("%w: summary_elimination_limit must be positive", ErrInvalidConfig)
	case c.LoadWorkers <= 0:
		return fmt.Errorf("%w: load_workers must be positive", ErrInvalidConfig)
	case c.RefreshRatePerMinute <= 0 || c.RefreshBurst <= 0:
		return fmt.Errorf("%w: refresh limits must be positive", ErrInvalidConfig)
	}
	return nil
}
