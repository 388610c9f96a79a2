package quality

import (
	"fmt"
	"testing"

	"integrity-gateway/internal/model"
)

func TestScoreEmptyTableIsAllZero(t *testing.T) {
	metrics := Score(model.NewTable())

	if metrics != (model.IntegrityMetrics{}) {
		t.Errorf("Expected all-zero metrics, got %+v", metrics)
	}
}

func TestScoreCompletenessAveragesPerColumnFractions(t *testing.T) {
	// Column a fully populated, column b half populated: (1 + 0.5)/2 = 75%.
	table := model.NewTable("a", "b")
	table.Append(model.Row{"a": "1", "b": "2"})
	table.Append(model.Row{"a": "1", "b": nil})

	metrics := Score(table)
	if metrics.Completeness != 75.00 {
		t.Errorf("Expected completeness 75.00, got %v", metrics.Completeness)
	}
}

func TestScoreDuplicatesLowerConsistency(t *testing.T) {
	// 10 rows, 2 exact duplicates, no nulls, no validity column.
	table := model.NewTable("id", "name")
	for i := 0; i < 8; i++ {
		table.Append(model.Row{"id": fmt.Sprintf("%d", i), "name": "row"})
	}
	table.Append(model.Row{"id": "0", "name": "row"})
	table.Append(model.Row{"id": "1", "name": "row"})

	metrics := Score(table)
	if metrics.Completeness != 100.00 {
		t.Errorf("Expected completeness 100.00, got %v", metrics.Completeness)
	}
	if metrics.Consistency != 80.00 {
		t.Errorf("Expected consistency 80.00, got %v", metrics.Consistency)
	}
	if metrics.OverallIntegrity != 92.00 {
		t.Errorf("Expected overall integrity 92.00, got %v", metrics.OverallIntegrity)
	}
	if metrics.ValidRecords != 9 {
		t.Errorf("Expected 9 valid records, got %d", metrics.ValidRecords)
	}
	if metrics.InvalidRecords != 1 {
		t.Errorf("Expected 1 invalid record, got %d", metrics.InvalidRecords)
	}
}

func TestScoreNoDuplicatesIsFullyConsistent(t *testing.T) {
	table := model.NewTable("id")
	for i := 0; i < 5; i++ {
		table.Append(model.Row{"id": fmt.Sprintf("%d", i)})
	}

	metrics := Score(table)
	if metrics.Consistency != 100.00 {
		t.Errorf("Expected consistency 100.00, got %v", metrics.Consistency)
	}
}

func TestScoreDuplicateDetectionDistinguishesTypes(t *testing.T) {
	// The string "1" and the number 1 are different cell values.
	table := model.NewTable("v")
	table.Append(model.Row{"v": "1"})
	table.Append(model.Row{"v": 1.0})

	metrics := Score(table)
	if metrics.Consistency != 100.00 {
		t.Errorf("Expected consistency 100.00, got %v", metrics.Consistency)
	}
}

func TestScoreNullRowsAreComparable(t *testing.T) {
	// Two all-null rows are exact duplicates of each other.
	table := model.NewTable("a", "b")
	table.Append(model.Row{"a": nil, "b": nil})
	table.Append(model.Row{"a": nil, "b": nil})

	metrics := Score(table)
	if metrics.Consistency != 50.00 {
		t.Errorf("Expected consistency 50.00, got %v", metrics.Consistency)
	}
}

func TestScoreValidColumnCountsTruthyValues(t *testing.T) {
	table := model.NewTable("valid")
	table.Append(model.Row{"valid": true})
	table.Append(model.Row{"valid": false})
	table.Append(model.Row{"valid": 1.0})
	table.Append(model.Row{"valid": 0.0})
	table.Append(model.Row{"valid": "yes"})
	table.Append(model.Row{"valid": nil})

	metrics := Score(table)
	if metrics.ValidRecords != 3 {
		t.Errorf("Expected 3 valid records, got %d", metrics.ValidRecords)
	}
	if metrics.InvalidRecords != 3 {
		t.Errorf("Expected 3 invalid records, got %d", metrics.InvalidRecords)
	}
}

func TestScoreValidPlusInvalidEqualsRowCount(t *testing.T) {
	for _, n := range []int{1, 3, 9, 10, 11} {
		table := model.NewTable("id")
		for i := 0; i < n; i++ {
			table.Append(model.Row{"id": fmt.Sprintf("%d", i)})
		}
		metrics := Score(table)
		if metrics.ValidRecords+metrics.InvalidRecords != n {
			t.Errorf("n=%d: valid %d + invalid %d != %d", n, metrics.ValidRecords, metrics.InvalidRecords, n)
		}
		if metrics.ValidRecords != int(0.9*float64(n)) {
			t.Errorf("n=%d: expected placeholder valid count %d, got %d", n, int(0.9*float64(n)), metrics.ValidRecords)
		}
	}
}

func TestScoreRoundsToTwoDecimals(t *testing.T) {
	// One of three cells null: completeness 66.666... rounds to 66.67.
	table := model.NewTable("a")
	table.Append(model.Row{"a": "1"})
	table.Append(model.Row{"a": "2"})
	table.Append(model.Row{"a": nil})

	metrics := Score(table)
	if metrics.Completeness != 66.67 {
		t.Errorf("Expected completeness 66.67, got %v", metrics.Completeness)
	}
}
