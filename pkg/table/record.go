package table

// Record is a name-addressed view over one table row.
type Record struct {
	table *Table
	row   int
}

// Each calls fn for every field in column order.
func (r Record) Each(fn func(column string, v Value)) {
	row := r.table.rows[r.row]
	for j, c := range r.table.columns {
		fn(c, row[j])
	}
}

