package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirafune/gmrank/internal/app"
	"github.com/shirafune/gmrank/internal/config"
	"github.com/shirafune/gmrank/pkg/logger"
	"github.com/shirafune/gmrank/pkg/metrics"
)

const metricsReadHeaderTimeout = 5 * time.Second

func newRunCmd() *cobra.Command {
	var (
		catalogPath     string
		submissionsPath string
		outputDir       string
		cutoff          float64
		metricsAddr     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the submission sheet into ranking CSVs",
		Example: `  # Run with paths from config/env
  gmrank run

  # Explicit inputs and a stricter fuzzy-match cutoff
  gmrank run --catalog input/song_list.json --submissions input/result_summary.csv --out Result --cutoff 0.4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := logger.Init(); err != nil {
				return err
			}
			log := logger.Get()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				log.Warn(ctx, "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			if metricsAddr == "" {
				metricsAddr = cfg.MetricsAddr
			}
			if metricsAddr != "" {
				srv := serveMetrics(ctx, log, metricsAddr)
				defer func() { _ = srv.Shutdown(context.Background()) }()
			}

			svc := app.New(
				app.WithConfig(cfg),
				app.WithPaths(catalogPath, submissionsPath, outputDir),
				app.WithMatchCutoff(cutoff),
				app.WithLogger(log),
			)
			_, err = svc.Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "song list file (JSON or YAML)")
	cmd.Flags().StringVar(&submissionsPath, "submissions", "", "submission sheet CSV")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory for ranking CSVs")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "similarity cutoff for song-name matching, in (0, 1]")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")

	return cmd
}

func serveMetrics(ctx context.Context, log logger.Logger, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		log.Info(ctx, "serving metrics", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()
	return srv
}
