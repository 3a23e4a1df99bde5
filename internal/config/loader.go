package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "PONIS_"
	envConfig  = "PONIS_CONFIG"
	listSep    = ","
	keyDelimit = "."
)

// listKeys are read from env as comma separated values.
var listKeys = map[string]bool{ //nolint:gochecknoglobals // fixed lookup table
	"competitions":         true,
	"categories":           true,
	"time_only_categories": true,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PONIS_CONFIG is set
//  3. env (prefix PONIS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(keyDelimit)

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PONIS_DATA_DIR -> data_dir, PONIS_CATEGORIES=A,B -> categories [A B].
	envProvider := env.ProviderWithValue(envPrefix, keyDelimit, func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "config" {
			return "", nil
		}
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	// Lists are decoded into nil slices so a shorter override never keeps default tails.
	cfg := *base
	cfg.Competitions, cfg.Categories, cfg.TimeOnlyCategories = nil, nil, nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if cfg.Competitions == nil {
		cfg.Competitions = base.Competitions
	}
	if cfg.Categories == nil {
		cfg.Categories = base.Categories
	}
	if cfg.TimeOnlyCategories == nil && !k.Exists("time_only_categories") {
		cfg.TimeOnlyCategories = base.TimeOnlyCategories
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, listSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
