// Package prometheus instruments the engine's extraction and coverage paths.
// The embedding application decides whether and where to expose the registry;
// the engine only records.  All recording methods are safe on a nil receiver,
// so components never guard metric calls.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultCoverageBuckets spans the [0,1] coverage score range.
var DefaultCoverageBuckets = []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}

// DefaultDurationBuckets covers extraction latencies from fast fallbacks to
// slow external strategies.
var DefaultDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

// EngineMetrics holds the engine's Prometheus instruments.
type EngineMetrics struct {
	extractionsTotal   *prometheus.CounterVec
	strategyFailures   *prometheus.CounterVec
	cacheHitsTotal     prometheus.Counter
	cacheMissesTotal   prometheus.Counter
	extractionDuration *prometheus.HistogramVec
	coverageScore      *prometheus.HistogramVec
	clausesExtracted   prometheus.Histogram
}

// NewEngineMetrics registers the engine's metrics on reg under the given
// namespace and returns the handle.  Passing prometheus.DefaultRegisterer is
// typical; tests pass a fresh prometheus.NewRegistry().
func NewEngineMetrics(namespace string, reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		extractionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Clause extractions by result source (external, fallback, cache).",
		}, []string{"source"}),
		strategyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_failures_total",
			Help:      "External strategy attempts that fell back, by failure code.",
		}, []string{"code"}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clause_cache_hits_total",
			Help:      "Clause cache hits.",
		}),
		cacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clause_cache_misses_total",
			Help:      "Clause cache misses.",
		}),
		extractionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "End-to-end clause extraction duration.",
			Buckets:   DefaultDurationBuckets,
		}, []string{"source"}),
		coverageScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "coverage_score",
			Help:      "Coverage scores produced per playbook.",
			Buckets:   DefaultCoverageBuckets,
		}, []string{"playbook"}),
		clausesExtracted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clauses_extracted",
			Help:      "Clause count per extraction.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}

	reg.MustRegister(
		m.extractionsTotal,
		m.strategyFailures,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
		m.extractionDuration,
		m.coverageScore,
		m.clausesExtracted,
	)
	return m
}

// ObserveExtraction records one completed extraction.
func (m *EngineMetrics) ObserveExtraction(source string, seconds float64, clauseCount int) {
	if m == nil {
		return
	}
	m.extractionsTotal.WithLabelValues(source).Inc()
	m.extractionDuration.WithLabelValues(source).Observe(seconds)
	m.clausesExtracted.Observe(float64(clauseCount))
}

// ObserveStrategyFailure records an external strategy attempt that fell back.
func (m *EngineMetrics) ObserveStrategyFailure(code string) {
	if m == nil {
		return
	}
	m.strategyFailures.WithLabelValues(code).Inc()
}

// ObserveCacheHit records a clause cache hit.
func (m *EngineMetrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHitsTotal.Inc()
}

// ObserveCacheMiss records a clause cache miss.
func (m *EngineMetrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMissesTotal.Inc()
}

// ObserveCoverage records a coverage score for a playbook.
func (m *EngineMetrics) ObserveCoverage(playbookKey string, score float64) {
	if m == nil {
		return
	}
	m.coverageScore.WithLabelValues(playbookKey).Observe(score)
}
