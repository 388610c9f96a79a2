package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"integrity-gateway/internal/dispatch"
	"integrity-gateway/internal/model"
	"integrity-gateway/internal/parser"
	"integrity-gateway/internal/quality"
	"integrity-gateway/internal/relational"
	"integrity-gateway/internal/unify"
)

// SkipReport describes one source skipped during a run.
type SkipReport struct {
	Source  string           `json:"source"`
	Kind    model.SourceKind `json:"kind"`
	Message string           `json:"message"`
}

// RunResult is the outcome of one pipeline run. A run always completes;
// partial ingestion failures surface only through the Skipped reports.
type RunResult struct {
	RunID       string                 `json:"run_id"`
	Metrics     model.IntegrityMetrics `json:"metrics"`
	RowCount    int                    `json:"row_count"`
	ColumnCount int                    `json:"column_count"`
	Skipped     []SkipReport           `json:"skipped"`
	Duration    time.Duration          `json:"duration_ns"`
}

// IntegrityService runs the ingestion-normalization-scoring pipeline:
// dispatcher, unifier and metrics engine execute sequentially per run.
// Runs share no mutable state and may execute concurrently.
type IntegrityService struct {
	registry   *parser.Registry
	relational relational.Collaborator
}

// NewIntegrityService creates the pipeline service. relationalSource may be
// nil when no database is configured.
func NewIntegrityService(registry *parser.Registry, relationalSource relational.Collaborator) *IntegrityService {
	return &IntegrityService{
		registry:   registry,
		relational: relationalSource,
	}
}

// Run ingests the given sources (plus the relational snapshot when
// includeDatabase is set), unifies them and scores the result. It always
// returns a result; an empty input yields the all-zero metrics record.
func (s *IntegrityService) Run(ctx context.Context, sources []model.Source, includeDatabase bool) *RunResult {
	start := time.Now()
	sink := newRunSink()

	dispatcher := dispatch.NewDispatcher(s.registry, sink)
	tables := dispatcher.Dispatch(ctx, sources)
	parsed := len(tables)

	if includeDatabase {
		if s.relational != nil {
			dbTable := s.relational.FetchTable(ctx, sink)
			recordDatabaseRows(dbTable.NumRows())
			tables = append(tables, dbTable)
		} else {
			sink.ReportSkip("database", model.KindRelationalRows, "no relational source is configured")
		}
	}

	unified := unify.Unify(tables)
	metrics := quality.Score(unified)

	skipped := sink.reports()
	fileSkips := 0
	for _, report := range skipped {
		if report.Kind != model.KindRelationalRows {
			fileSkips++
		}
	}
	recordRun(len(sources), parsed, fileSkips, unified, metrics)

	return &RunResult{
		RunID:       uuid.New().String(),
		Metrics:     metrics,
		RowCount:    unified.NumRows(),
		ColumnCount: unified.NumColumns(),
		Skipped:     skipped,
		Duration:    time.Since(start),
	}
}

// SupportedKinds exposes the registry's kinds for the formats endpoint.
func (s *IntegrityService) SupportedKinds() []model.SourceKind {
	return s.registry.SupportedKinds()
}

// runSink collects skip reports for one run and logs them as they arrive.
// Dispatch may report from parallel parse workers.
type runSink struct {
	mutex sync.Mutex
	skips []SkipReport
}

func newRunSink() *runSink {
	return &runSink{skips: []SkipReport{}}
}

// ReportSkip records one skipped source.
func (rs *runSink) ReportSkip(source string, kind model.SourceKind, message string) {
	log.Printf("Skipping %s source %q: %s", kind, source, message)

	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	rs.skips = append(rs.skips, SkipReport{
		Source:  source,
		Kind:    kind,
		Message: message,
	})
}

func (rs *runSink) reports() []SkipReport {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	return append([]SkipReport{}, rs.skips...)
}
