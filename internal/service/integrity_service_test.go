package service

import (
	"context"
	"testing"

	"integrity-gateway/internal/dispatch"
	"integrity-gateway/internal/model"
	"integrity-gateway/internal/parser"
)

// stubCollaborator returns a fixed relational snapshot, or reports a
// connectivity failure and returns an empty table.
type stubCollaborator struct {
	table *model.Table
	fail  bool
}

func (s *stubCollaborator) FetchTable(ctx context.Context, sink dispatch.ErrorSink) *model.Table {
	if s.fail {
		sink.ReportSkip("database", model.KindRelationalRows, "connection refused")
		return model.NewTable()
	}
	return s.table
}

func newTestService(collab *stubCollaborator) *IntegrityService {
	if collab == nil {
		return NewIntegrityService(parser.NewRegistry(), nil)
	}
	return NewIntegrityService(parser.NewRegistry(), collab)
}

func TestRunEmptyInputYieldsZeroMetrics(t *testing.T) {
	result := newTestService(nil).Run(context.Background(), nil, false)

	if result.Metrics != (model.IntegrityMetrics{}) {
		t.Errorf("Expected all-zero metrics, got %+v", result.Metrics)
	}
	if result.RowCount != 0 || result.ColumnCount != 0 {
		t.Errorf("Expected empty unified table, got %d rows, %d columns", result.RowCount, result.ColumnCount)
	}
	if result.RunID == "" {
		t.Errorf("Expected a run ID")
	}
	if len(result.Skipped) != 0 {
		t.Errorf("Expected no skip reports, got %v", result.Skipped)
	}
}

func TestRunCombinesUploadsAndSkipsBadSources(t *testing.T) {
	sources := []model.Source{
		model.NewFileSource("one.csv", []byte("a,b\n1,2\n")),
		model.NewFileSource("two.csv", []byte("b,c\n3,4\n")),
		model.NewFileSource("broken.csv", []byte("a\n1,2\n")),
		model.NewFileSource("ignored.unknown", []byte("whatever")),
	}

	result := newTestService(nil).Run(context.Background(), sources, false)

	if result.RowCount != 2 {
		t.Errorf("Expected 2 unified rows, got %d", result.RowCount)
	}
	if result.ColumnCount != 3 {
		t.Errorf("Expected 3 unified columns, got %d", result.ColumnCount)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("Expected 1 skip report, got %v", result.Skipped)
	}
	if result.Skipped[0].Source != "broken.csv" {
		t.Errorf("Expected broken.csv to be skipped, got %s", result.Skipped[0].Source)
	}

	// Half the cells are null after unification: columns a, b, c over rows
	// {a,b} and {b,c} give fractions 0.5, 1.0, 0.5.
	if result.Metrics.Completeness != 66.67 {
		t.Errorf("Expected completeness 66.67, got %v", result.Metrics.Completeness)
	}
}

func TestRunIncludesRelationalSnapshot(t *testing.T) {
	dbTable := model.NewTable("a", "d")
	dbTable.Append(model.Row{"a": "db", "d": int64(7)})

	sources := []model.Source{
		model.NewFileSource("one.csv", []byte("a,b\n1,2\n")),
	}

	result := newTestService(&stubCollaborator{table: dbTable}).Run(context.Background(), sources, true)

	if result.RowCount != 2 {
		t.Errorf("Expected 2 unified rows, got %d", result.RowCount)
	}
	if result.ColumnCount != 3 {
		t.Errorf("Expected columns [a b d], got %d columns", result.ColumnCount)
	}
}

func TestRunDatabaseFailureDegradesToEmptySnapshot(t *testing.T) {
	sources := []model.Source{
		model.NewFileSource("one.csv", []byte("a\n1\n")),
	}

	result := newTestService(&stubCollaborator{fail: true}).Run(context.Background(), sources, true)

	if result.RowCount != 1 {
		t.Errorf("Expected the upload row only, got %d rows", result.RowCount)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("Expected 1 skip report, got %v", result.Skipped)
	}
	if result.Skipped[0].Kind != model.KindRelationalRows {
		t.Errorf("Expected a relational skip report, got %+v", result.Skipped[0])
	}
}

func TestRunWithoutCollaboratorReportsMissingDatabase(t *testing.T) {
	result := newTestService(nil).Run(context.Background(), nil, true)

	if len(result.Skipped) != 1 {
		t.Fatalf("Expected 1 skip report, got %v", result.Skipped)
	}
	if result.Metrics != (model.IntegrityMetrics{}) {
		t.Errorf("Expected all-zero metrics, got %+v", result.Metrics)
	}
}
