package relational

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"integrity-gateway/internal/dispatch"
	"integrity-gateway/internal/model"
)

// sourceName identifies the relational source in skip reports
const sourceName = "database"

// Collaborator supplies already-materialized relational rows as a table.
// Implementations never propagate connectivity failures: any such failure is
// reported through the sink and converted into an empty table.
type Collaborator interface {
	FetchTable(ctx context.Context, sink dispatch.ErrorSink) *model.Table
}

// MySQLCollaborator reads one configured table from MySQL with a full scan.
// Column order follows the result set, so the unified table keeps the schema
// order of the backing table.
type MySQLCollaborator struct {
	db    *gorm.DB
	table string
}

// NewMySQLCollaborator creates a collaborator over an established GORM
// connection. db may be nil when the database is disabled or unreachable at
// startup; fetches then degrade to empty results.
func NewMySQLCollaborator(db *gorm.DB, table string) *MySQLCollaborator {
	return &MySQLCollaborator{
		db:    db,
		table: table,
	}
}

// FetchTable reads all rows of the configured table. On any failure it
// reports through the sink and returns an empty table.
func (c *MySQLCollaborator) FetchTable(ctx context.Context, sink dispatch.ErrorSink) *model.Table {
	if c.db == nil {
		c.report(sink, "database connection is not configured")
		return model.NewTable()
	}

	rows, err := c.db.WithContext(ctx).Raw(fmt.Sprintf("SELECT * FROM `%s`", c.table)).Rows()
	if err != nil {
		c.report(sink, fmt.Sprintf("query failed: %v", err))
		return model.NewTable()
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		c.report(sink, fmt.Sprintf("failed to read result columns: %v", err))
		return model.NewTable()
	}

	table := model.NewTable(columns...)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			c.report(sink, fmt.Sprintf("row scan failed: %v", err))
			return model.NewTable()
		}

		row := make(model.Row, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		table.Append(row)
	}
	if err := rows.Err(); err != nil {
		c.report(sink, fmt.Sprintf("row iteration failed: %v", err))
		return model.NewTable()
	}

	return table
}

func (c *MySQLCollaborator) report(sink dispatch.ErrorSink, message string) {
	if sink != nil {
		sink.ReportSkip(sourceName, model.KindRelationalRows, message)
	}
}

// normalizeValue maps driver values onto the pipeline's scalar set. The MySQL
// driver returns text columns as []byte.
func normalizeValue(v interface{}) interface{} {
	switch value := v.(type) {
	case []byte:
		return string(value)
	default:
		return value
	}
}
