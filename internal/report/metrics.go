// Package report records benchmark outcomes: counters for the exposition
// endpoint and JSON result files for later analysis.
package report

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/fnbench/fnbench/internal/suite"
	"github.com/fnbench/fnbench/pkg/models"
)

// Metrics keeps boring counters on a private registry. Every counter is a
// projection of a single run record or suite result, nothing derived.
type Metrics struct {
	registry *prometheus.Registry

	runsStarted   prometheus.Counter
	runsCompleted prometheus.Counter
	runsFailed    prometheus.Counter
	checksPassed  prometheus.Counter
	checksFailed  prometheus.Counter
	bestSeconds   prometheus.Gauge
}

// NewMetrics creates a metrics set on its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		runsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fnbench_runs_started_total",
			Help: "Benchmark runs started",
		}),
		runsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fnbench_runs_completed_total",
			Help: "Benchmark runs completed successfully",
		}),
		runsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fnbench_runs_failed_total",
			Help: "Benchmark runs that failed",
		}),
		checksPassed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fnbench_suite_checks_passed_total",
			Help: "Conformance suite checks that passed",
		}),
		checksFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fnbench_suite_checks_failed_total",
			Help: "Conformance suite checks that failed",
		}),
		bestSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fnbench_last_best_seconds",
			Help: "Best per-loop time of the most recent run",
		}),
	}
}

var globalMetrics = NewMetrics()

// Global returns the process-wide metrics instance
func Global() *Metrics {
	return globalMetrics
}

// Registry exposes the backing registry for HTTP exposition
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// IncrStarted counts a run attempt
func (m *Metrics) IncrStarted() {
	m.runsStarted.Inc()
}

// RecordRun updates counters from one completed run result
func (m *Metrics) RecordRun(res *models.RunResult) {
	m.runsCompleted.Inc()
	m.bestSeconds.Set(res.Best)
}

// RecordRunFailure counts a failed run
func (m *Metrics) RecordRunFailure() {
	m.runsFailed.Inc()
}

// RecordSuite updates check counters from one suite result
func (m *Metrics) RecordSuite(result *suite.Result) {
	for _, c := range result.Checks {
		if c.Pass {
			m.checksPassed.Inc()
		} else {
			m.checksFailed.Inc()
		}
	}
}

// Export renders the registry in Prometheus text exposition format
func (m *Metrics) Export() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
