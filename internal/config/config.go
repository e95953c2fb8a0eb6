// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions follow the rest of the project: defaults come from New, the
// loader layers an optional YAML file and environment variables on top, and
// external errors are wrapped via this package's sentinels.
package config

import "github.com/shirafune/gmrank/internal/domain/resolver"

// Duplicate-name policy values for CatalogDuplicatePolicy.
const (
	DuplicateLastWins = "last-wins"
	DuplicateReject   = "reject"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CatalogPath points at the song list file (JSON or YAML).
	CatalogPath string `koanf:"catalog_path"`

	// SubmissionsPath points at the raw submission sheet CSV.
	SubmissionsPath string `koanf:"submissions_path"`

	// OutputDir receives per-song and GrandMaster CSVs.
	OutputDir string `koanf:"output_dir"`

	// MatchCutoff is the resolver's similarity acceptance threshold.
	// Deliberately low by default: wrong merges cost less than fragmenting a
	// song's ranking across spelling variants.
	MatchCutoff float64 `koanf:"match_cutoff"`

	// CatalogDuplicatePolicy is "last-wins" or "reject".
	CatalogDuplicatePolicy string `koanf:"catalog_duplicate_policy"`

	// MetricsAddr, when set, serves Prometheus metrics during the run.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		CatalogPath:            "input/song_list.json",
		SubmissionsPath:        "input/result_summary.csv",
		OutputDir:              "Result",
		MatchCutoff:            resolver.DefaultCutoff,
		CatalogDuplicatePolicy: DuplicateLastWins,
	}
}
