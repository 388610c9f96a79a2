package quality

import (
	"fmt"
	"math"
	"strings"

	"integrity-gateway/internal/model"
)

// Fixed metric weights. Policy constants, not derived.
const (
	completenessWeight = 0.6
	consistencyWeight  = 0.4
)

// ValidColumn is the column consulted for per-row validity when present.
const ValidColumn = "valid"

// assumedValidShare is the fallback when no validity column exists. It is a
// placeholder, not a real validity rule; see the open questions in DESIGN.md.
const assumedValidShare = 0.9

// Score computes the integrity metrics of a unified table. A table with zero
// rows yields the all-zero record; there is no failure path.
func Score(table *model.Table) model.IntegrityMetrics {
	n := table.NumRows()
	if n == 0 {
		return model.IntegrityMetrics{}
	}

	// Rounding happens only at record creation; the weighted overall score
	// is derived from the unrounded components.
	completeness := completeness(table)
	consistency := consistency(table)
	overall := completenessWeight*completeness + consistencyWeight*consistency

	valid := validRecords(table)
	return model.IntegrityMetrics{
		Completeness:     round2(completeness),
		Consistency:      round2(consistency),
		OverallIntegrity: round2(overall),
		ValidRecords:     valid,
		InvalidRecords:   n - valid,
	}
}

// completeness averages, across columns, the fraction of non-null cells per
// column, expressed as a percentage.
func completeness(table *model.Table) float64 {
	if table.NumColumns() == 0 {
		return 0
	}

	var sum float64
	n := float64(table.NumRows())
	for _, column := range table.Columns {
		nonNull := 0
		for _, row := range table.Rows {
			if row[column] != nil {
				nonNull++
			}
		}
		sum += float64(nonNull) / n
	}
	return sum / float64(table.NumColumns()) * 100
}

// consistency is 100 minus the percentage of rows that exactly duplicate an
// earlier row across all columns, nulls included.
func consistency(table *model.Table) float64 {
	seen := make(map[string]struct{}, table.NumRows())
	duplicates := 0
	for _, row := range table.Rows {
		key := fingerprint(table.Columns, row)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return 100 - float64(duplicates)/float64(table.NumRows())*100
}

// fingerprint builds a duplicate-detection key from the row's cells in column
// order. Cell type is part of the key so the string "1" and the number 1
// never collide.
func fingerprint(columns []string, row model.Row) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		v := row[column]
		if v == nil {
			parts[i] = "\x00"
			continue
		}
		parts[i] = fmt.Sprintf("%T=%v", v, v)
	}
	return strings.Join(parts, "\x1f")
}

// validRecords counts truthy values of the validity column when present,
// falling back to the assumed-share placeholder otherwise.
func validRecords(table *model.Table) int {
	if !table.HasColumn(ValidColumn) {
		return int(math.Floor(assumedValidShare * float64(table.NumRows())))
	}

	valid := 0
	for _, row := range table.Rows {
		if truthy(row[ValidColumn]) {
			valid++
		}
	}
	return valid
}

// truthy reports whether a cell counts as valid: non-null, non-zero and
// non-false. Strings count unless empty.
func truthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case float64:
		return value != 0
	case int64:
		return value != 0
	case int:
		return value != 0
	case string:
		return value != ""
	default:
		return true
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
