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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GMRANK_CONFIG is set
//  3. env (prefix GMRANK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GMRANK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GMRANK_CATALOG_PATH, GMRANK_MATCH_CUTOFF, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("GMRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "gmrank_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MatchCutoff <= 0 || c.MatchCutoff > 1 {
		return fmt.Errorf("%w: match_cutoff %v outside (0, 1]", ErrInvalidConfig, c.MatchCutoff)
	}
	switch c.CatalogDuplicatePolicy {
	case DuplicateLastWins, DuplicateReject:
	default:
		return fmt.Errorf("%w: unknown catalog_duplicate_policy %q", ErrInvalidConfig, c.CatalogDuplicatePolicy)
	}
	return nil
}
