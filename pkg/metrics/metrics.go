// Package metrics provides Prometheus metrics for the gmrank pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds all Prometheus metrics for a pipeline process.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	// Throughput
	submissionsRead prometheus.Counter
	rowsExcluded    prometheus.Counter
	runsTotal       prometheus.Counter
	runDuration     prometheus.Histogram

	// Data quality
	unresolvedTitles    prometheus.Counter
	optionTokenWarnings prometheus.Counter
	duplicateHistory    prometheus.Counter

	// Run state
	songsTracked   prometheus.Gauge
	playersTracked prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithRegistry overrides the Prometheus registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// NewManager creates a metrics manager with its own registry so that default
// Go collector metrics never pollute the pipeline's series.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "gmrank",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)
	m.submissionsRead = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "pipeline", Name: "submissions_read_total",
		Help: "Submission rows read from the source.",
	})
	m.rowsExcluded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "pipeline", Name: "rows_excluded_total",
		Help: "Rows excluded for missing player or song keys.",
	})
	m.runsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "pipeline", Name: "runs_total",
		Help: "Completed pipeline runs.",
	})
	m.runDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "pipeline", Name: "run_duration_seconds",
		Help: "Wall time of a full pipeline run.", Buckets: prometheus.DefBuckets,
	})
	m.unresolvedTitles = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "quality", Name: "unresolved_titles_total",
		Help: "Submitted titles that did not match any catalog song.",
	})
	m.optionTokenWarnings = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "quality", Name: "option_token_warnings_total",
		Help: "Side-modifier tokens sanitized to empty.",
	})
	m.duplicateHistory = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "quality", Name: "duplicate_history_keys_total",
		Help: "Submission events dropped from history as identity-key duplicates.",
	})
	m.songsTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "run", Name: "songs_tracked",
		Help: "Distinct song keys in the current run.",
	})
	m.playersTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "run", Name: "players_tracked",
		Help: "Distinct players in the current run.",
	})
	return m
}

// Handler exposes the manager's registry over HTTP.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Global manager instance; package-level helpers delegate to it.
var globalManager = NewManager() //nolint:gochecknoglobals // singleton metrics manager

// Handler exposes the global registry over HTTP.
func Handler() http.Handler { return globalManager.Handler() }

// RecordSubmissionRead counts one ingested submission row.
func RecordSubmissionRead() { globalManager.submissionsRead.Inc() }

// RecordRowExcluded counts a row excluded from aggregation and history.
func RecordRowExcluded() { globalManager.rowsExcluded.Inc() }

// RecordRun counts a completed run and its duration.
func RecordRun(d time.Duration) {
	globalManager.runsTotal.Inc()
	globalManager.runDuration.Observe(d.Seconds())
}

// RecordUnresolvedTitle counts a title that passed through unresolved.
func RecordUnresolvedTitle() { globalManager.unresolvedTitles.Inc() }

// RecordOptionTokenWarning counts a sanitized side-modifier token.
func RecordOptionTokenWarning() { globalManager.optionTokenWarnings.Inc() }

// RecordDuplicateHistory counts a history entry dropped as a duplicate.
func RecordDuplicateHistory() { globalManager.duplicateHistory.Inc() }

// UpdateSongsTracked sets the distinct-song gauge.
func UpdateSongsTracked(n int) { globalManager.songsTracked.Set(float64(n)) }

// UpdatePlayersTracked sets the distinct-player gauge.
func UpdatePlayersTracked(n int) { globalManager.playersTracked.Set(float64(n)) }
