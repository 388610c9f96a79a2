package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"integrity-gateway/internal/model"
)

// Prometheus metrics for the ingestion pipeline
var (
	runsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "integrity_runs_total",
			Help: "Total number of pipeline runs",
		},
	)
	sourcesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integrity_sources_total",
			Help: "Sources seen by the dispatcher, by outcome",
		},
		[]string{"outcome"},
	)
	unifiedRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "integrity_unified_rows_total",
			Help: "Rows emitted by the table unifier",
		},
	)
	databaseRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "integrity_database_rows_total",
			Help: "Rows fetched from the relational collaborator",
		},
	)
	overallIntegrityScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "integrity_overall_score",
			Help: "Overall integrity percentage of the most recent run",
		},
	)
)

// recordRun updates pipeline metrics after a completed run.
func recordRun(sourceCount, parsed, skipped int, unified *model.Table, metrics model.IntegrityMetrics) {
	unsupported := sourceCount - parsed - skipped
	if unsupported < 0 {
		unsupported = 0
	}

	runsTotal.Inc()
	sourcesTotal.WithLabelValues("parsed").Add(float64(parsed))
	sourcesTotal.WithLabelValues("skipped").Add(float64(skipped))
	sourcesTotal.WithLabelValues("unsupported").Add(float64(unsupported))
	unifiedRowsTotal.Add(float64(unified.NumRows()))
	overallIntegrityScore.Set(metrics.OverallIntegrity)
}

// recordDatabaseRows tracks rows contributed by the relational source.
func recordDatabaseRows(rows int) {
	databaseRowsTotal.Add(float64(rows))
}
