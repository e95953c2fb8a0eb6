// Package app wires the pipeline together for one run: load the catalog,
// ingest the submission sheet, reconcile, and write every output table.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/shirafune/gmrank/internal/adapters/csvio"
	"github.com/shirafune/gmrank/internal/adapters/songlist"
	"github.com/shirafune/gmrank/internal/config"
	"github.com/shirafune/gmrank/internal/domain/catalog"
	"github.com/shirafune/gmrank/internal/domain/composite"
	"github.com/shirafune/gmrank/internal/domain/dedupe"
	"github.com/shirafune/gmrank/internal/domain/reconcile"
	"github.com/shirafune/gmrank/internal/domain/resolver"
	"github.com/shirafune/gmrank/pkg/logger"
	"github.com/shirafune/gmrank/pkg/metrics"
)

const timestampLayout = "20060102150405"

// Summary reports what one pipeline run produced.
type Summary struct {
	RunID   string
	Songs   int
	Players int
	Stats   reconcile.Stats
	Outputs []string
}

// Service runs the full pipeline once. Each run builds fresh reconciliation
// state; nothing is shared across runs.
type Service struct {
	catalogPath     string
	submissionsPath string
	outputDir       string
	matchCutoff     float64
	duplicatePolicy string

	runID string
	log   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig applies the loaded process configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		s.catalogPath = cfg.CatalogPath
		s.submissionsPath = cfg.SubmissionsPath
		s.outputDir = cfg.OutputDir
		s.matchCutoff = cfg.MatchCutoff
		s.duplicatePolicy = cfg.CatalogDuplicatePolicy
	}
}

// WithPaths overrides the catalog, submissions, and output locations.
func WithPaths(catalogPath, submissionsPath, outputDir string) Option {
	return func(s *Service) {
		if catalogPath != "" {
			s.catalogPath = catalogPath
		}
		if submissionsPath != "" {
			s.submissionsPath = submissionsPath
		}
		if outputDir != "" {
			s.outputDir = outputDir
		}
	}
}

// WithMatchCutoff overrides the resolver's similarity cutoff.
func WithMatchCutoff(cutoff float64) Option {
	return func(s *Service) {
		if cutoff > 0 && cutoff <= 1 {
			s.matchCutoff = cutoff
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service from defaults plus options.
func New(opts ...Option) *Service {
	defaults := config.New()
	s := &Service{
		catalogPath:     defaults.CatalogPath,
		submissionsPath: defaults.SubmissionsPath,
		outputDir:       defaults.OutputDir,
		matchCutoff:     defaults.MatchCutoff,
		duplicatePolicy: defaults.CatalogDuplicatePolicy,
		runID:           uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full pipeline pass and returns its summary. Only a
// malformed catalog or an I/O failure aborts the run; per-row data problems
// are handled inside the fold.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	s.info(ctx, "starting ranking run",
		logger.String("run_id", s.runID),
		logger.String("catalog", s.catalogPath),
		logger.String("submissions", s.submissionsPath),
	)

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return Summary{}, err
	}

	subs, err := csvio.ReadSubmissions(s.submissionsPath)
	if err != nil {
		return Summary{}, err
	}

	engine := reconcile.New(cat,
		reconcile.WithResolver(resolver.New(resolver.WithCutoff(s.matchCutoff))),
		reconcile.WithDeduper(dedupe.NewInMemoryDeduper(dedupe.WithCapacityHint(len(subs)))),
		reconcile.WithLogger(s.log),
	)
	engine.Fold(ctx, subs)

	outputs, err := s.writeOutputs(ctx, cat, engine)
	if err != nil {
		return Summary{}, err
	}

	metrics.RecordRun(time.Since(start))
	summary := Summary{
		RunID:   s.runID,
		Songs:   len(engine.Songs(ctx)),
		Players: len(engine.Players(ctx)),
		Stats:   engine.Stats(),
		Outputs: outputs,
	}
	s.info(ctx, "ranking run complete",
		logger.String("run_id", s.runID),
		logger.Int("rows", summary.Stats.Read),
		logger.Int("songs", summary.Songs),
		logger.Int("players", summary.Players),
		logger.Int("excluded", summary.Stats.Excluded),
		logger.Int("unresolved", summary.Stats.Unresolved),
		logger.Int("outputs", len(outputs)),
	)
	return summary, nil
}

func (s *Service) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	entries, err := songlist.Load(s.catalogPath)
	if err != nil {
		return nil, err
	}
	policy := catalog.LastWins
	if s.duplicatePolicy == config.DuplicateReject {
		policy = catalog.RejectDuplicates
	}
	cat, err := catalog.New(ctx, entries,
		catalog.WithDuplicatePolicy(policy),
		catalog.WithLogger(s.log),
	)
	if err != nil {
		return nil, err
	}
	s.info(ctx, "catalog loaded", logger.Int("songs", cat.Len()))
	return cat, nil
}

func (s *Service) writeOutputs(ctx context.Context, cat *catalog.Catalog, engine *reconcile.Engine) ([]string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var outputs []string
	for _, song := range engine.Songs(ctx) {
		path, err := csvio.WriteSongRanking(s.outputDir, song, engine.Rankings(ctx, song))
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, path)

		path, err = csvio.WriteSongHistory(s.outputDir, song, engine.History(ctx, song))
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, path)
	}

	builder := composite.New(cat)
	stamp := time.Now().Format(timestampLayout)

	gmPath := filepath.Join(s.outputDir, "GrandMaster_"+stamp+".csv")
	if err := csvio.WriteComposite(gmPath, cat.Ordinals(), builder.Leaderboard(ctx, engine)); err != nil {
		return nil, err
	}
	outputs = append(outputs, gmPath)

	historyPath := filepath.Join(s.outputDir, "GrandMaster_history_"+stamp+".csv")
	if err := csvio.WriteCompositeHistory(historyPath, cat.Ordinals(), builder.History(ctx, engine)); err != nil {
		return nil, err
	}
	outputs = append(outputs, historyPath)

	return outputs, nil
}

func (s *Service) info(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Info(ctx, msg, fields...)
	}
}
