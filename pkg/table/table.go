// Package table holds the in-memory tabular model shared by the codec and
// the reconciliation engine: inferred cell values, positional rows, and
// name-addressed record views.
package table

import (
	"fmt"
	"slices"
)

// Row is one positional record. Its length always equals the owning
// table's column count.
type Row []Value

// Table is an ordered set of named columns over positional rows.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New allocates a table with the given columns and exactly n rows, every
// cell Null. All cells share one backing array.
func New(columns []string, n int) *Table {
	t := &Table{columns: slices.Clone(columns)}
	t.reindex()

	width := len(columns)
	cells := make([]Value, n*width)
	t.rows = make([]Row, n)
	for i := range t.rows {
		t.rows[i] = cells[i*width : (i+1)*width : (i+1)*width]
	}
	return t
}

// Build creates a table from literal rows. Short rows are padded with
// Null; long rows are an error.
func Build(columns []string, rows ...[]Value) (*Table, error) {
	t := New(columns, len(rows))
	for i, r := range rows {
		if len(r) > len(columns) {
			return nil, fmt.Errorf("row %d has %d values for %d columns", i, len(r), len(columns))
		}
		copy(t.rows[i], r)
	}
	return t, nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.columns) }

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Index returns the position of a column.
func (t *Table) Index(column string) (int, bool) {
	i, ok := t.index[column]
	return i, ok
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Row returns row i. The returned slice aliases the table.
func (t *Table) Row(i int) Row { return t.rows[i] }

// SetRow copies r into row i.
func (t *Table) SetRow(i int, r Row) {
	copy(t.rows[i], r)
}

// Get returns the cell at row i, column name.
func (t *Table) Get(i int, column string) (Value, bool) {
	j, ok := t.index[column]
	if !ok {
		return Value{}, false
	}
	return t.rows[i][j], true
}

// Set writes the cell at row i, column name. It reports false when the
// column does not exist.
func (t *Table) Set(i int, column string, v Value) bool {
	j, ok := t.index[column]
	if !ok {
		return false
	}
	t.rows[i][j] = v
	return true
}

// Record returns a name-addressed view of row i.
func (t *Table) Record(i int) Record {
	return Record{table: t, row: i}
}

// DropColumn removes a column and its cells. It reports whether the
// column existed.
func (t *Table) DropColumn(column string) bool {
	j, ok := t.index[column]
	if !ok {
		return false
	}
	t.columns = slices.Delete(t.columns, j, j+1)
	for i, r := range t.rows {
		t.rows[i] = slices.Delete(r, j, j+1)
	}
	t.reindex()
	return true
}

// RenameColumn changes a column header in place. Renaming onto a
// different existing column is refused.
func (t *Table) RenameColumn(from, to string) error {
	j, ok := t.index[from]
	if !ok {
		return fmt.Errorf("column %q not found", from)
	}
	if k, exists := t.index[to]; exists && k != j {
		return fmt.Errorf("column %q already exists", to)
	}
	t.columns[j] = to
	t.reindex()
	return nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.columns, len(t.rows))
	for i, r := range t.rows {
		copy(c.rows[i], r)
	}
	return c
}
