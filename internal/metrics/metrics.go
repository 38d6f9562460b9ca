// Package metrics exports build statistics in the Prometheus text format so
// that node_exporter's textfile collector can pick them up.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatumaykin/crondir/internal/constants"
)

// Build status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds the collectors of one crondir invocation.
type Metrics struct {
	registry       *prometheus.Registry
	snippets       prometheus.Gauge
	crontabBytes   prometheus.Gauge
	lastBuild      prometheus.Gauge
	buildsTotal    *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	backupsWritten prometheus.Counter
	backupsPruned  prometheus.Counter
}

// New creates the collectors on a private registry.
func New() *Metrics {
	namespace := constants.MetricsNamespace
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		snippets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snippets",
				Help:      "Number of snippets in the managed block",
			},
		),
		crontabBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "crontab_bytes",
				Help:      "Size of the installed crontab",
			},
		),
		lastBuild: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_build_timestamp_seconds",
				Help:      "Unix time of the last successful build",
			},
		),
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Builds attempted by this invocation",
			},
			[]string{"status"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Duration of read, merge and install",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5},
			},
		),
		backupsWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backups_written_total",
				Help:      "Backup files written by this invocation",
			},
		),
	}

	m.backupsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_pruned_total",
			Help:      "Backup files removed by the retention policy",
		},
	)

	m.registry.MustRegister(
		m.snippets,
		m.crontabBytes,
		m.lastBuild,
		m.buildsTotal,
		m.buildDuration,
		m.backupsWritten,
		m.backupsPruned,
	)

	return m
}

// RecordBuild records a finished build.
func (m *Metrics) RecordBuild(snippets, crontabBytes int, started time.Time, err error) {
	m.buildDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		m.buildsTotal.WithLabelValues(StatusFailure).Inc()
		return
	}
	m.buildsTotal.WithLabelValues(StatusSuccess).Inc()
	m.snippets.Set(float64(snippets))
	m.crontabBytes.Set(float64(crontabBytes))
	m.lastBuild.Set(float64(time.Now().Unix()))
}

// RecordBackup counts a written backup file.
func (m *Metrics) RecordBackup() {
	m.backupsWritten.Inc()
}

// RecordPrune counts backups removed by retention.
func (m *Metrics) RecordPrune(deleted int) {
	m.backupsPruned.Add(float64(deleted))
}

// Gatherer exposes the registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes all metrics to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
