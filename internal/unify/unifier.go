package unify

import (
	"integrity-gateway/internal/model"
)

// Unify concatenates tables into one. The output column set is the union of
// every input's columns, in first-seen order across inputs in arrival order.
// Every output row carries an entry for every union column, null where the
// source table had no such column. Row order is inter-table arrival order,
// then original row order within each table. An empty input yields an empty
// table, not an error.
func Unify(tables []*model.Table) *model.Table {
	unified := model.NewTable()

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, column := range t.Columns {
			unified.EnsureColumn(column)
		}
	}

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.Rows {
			out := make(model.Row, unified.NumColumns())
			for _, column := range unified.Columns {
				// Absent keys materialize as explicit nulls.
				out[column] = row[column]
			}
			unified.Append(out)
		}
	}

	return unified
}
