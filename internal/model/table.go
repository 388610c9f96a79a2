package model

// Row maps column names to scalar cell values. Cells are restricted to
// string, float64, int64, bool or nil.
type Row map[string]interface{}

// Table is an ordered sequence of rows with an explicit column order.
// Columns appear in first-seen order. Rows may be ragged until the table
// passes through unification, which materializes every column on every row.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`

	seen map[string]struct{}
}

// NewTable creates a table with the given columns in order.
func NewTable(columns ...string) *Table {
	t := &Table{
		Columns: make([]string, 0, len(columns)),
		Rows:    []Row{},
		seen:    make(map[string]struct{}, len(columns)),
	}
	for _, name := range columns {
		t.EnsureColumn(name)
	}
	return t
}

// EnsureColumn adds a column if it has not been seen yet, preserving
// first-seen order.
func (t *Table) EnsureColumn(name string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[name]; ok {
		return
	}
	t.seen[name] = struct{}{}
	t.Columns = append(t.Columns, name)
}

// HasColumn reports whether the table's column set contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.seen[name]
	return ok
}

// Append adds a row. The row's keys are expected to be a subset of the
// table's column set.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}
