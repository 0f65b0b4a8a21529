package reconciler

import (
	"github.com/agentstation/paramconv/pkg/schema"
	"github.com/agentstation/paramconv/pkg/table"
)

// Align maps one input record onto the schema. Every schema column starts
// at def; input fields whose name exactly matches a schema column overwrite
// it; all other input fields are discarded.
func Align(rec table.Record, s schema.Schema, def table.Value) table.Row {
	row := make(table.Row, s.Len())
	for i := range row {
		row[i] = def
	}
	rec.Each(func(column string, v table.Value) {
		if j, ok := s.Index(column); ok {
			row[j] = v
		}
	})
	return row
}

// alignment is the column mapping between one input table and a schema,
// computed once and reused for every row.
type alignment struct {
	pairs     [][2]int // input index, schema index
	matched   []string
	discarded []string
	defaulted []string
}

func newAlignment(inputColumns []string, s schema.Schema) *alignment {
	a := &alignment{}
	seen := make(map[string]bool, len(inputColumns))
	for i, c := range inputColumns {
		j, ok := s.Index(c)
		if !ok {
			a.discarded = append(a.discarded, c)
			continue
		}
		a.pairs = append(a.pairs, [2]int{i, j})
		if !seen[c] {
			a.matched = append(a.matched, c)
			seen[c] = true
		}
	}
	for _, c := range s.Columns() {
		if !seen[c] {
			a.defaulted = append(a.defaulted, c)
		}
	}
	return a
}

// into fills dst, which must have the schema's width, from src.
func (a *alignment) into(dst, src table.Row, def table.Value) {
	for i := range dst {
		dst[i] = def
	}
	for _, p := range a.pairs {
		dst[p[1]] = src[p[0]]
	}
}
