// Package schema defines the authoritative output shape: the ordered,
// unique column names taken from a template table's header.
package schema

import (
	"slices"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/table"
)

// Schema is an immutable ordered list of unique column names.
// The zero value has no columns and is rejected by the engine.
type Schema struct {
	name    string
	columns []string
	index   map[string]int
}

// New builds a schema from column names.
func New(columns ...string) (Schema, error) {
	return build("", columns)
}

// FromTemplate derives a schema from a template table's header. The name
// identifies the template in errors.
func FromTemplate(name string, template *table.Table) (Schema, error) {
	if template == nil {
		return Schema{}, errors.NewSchemaError(name, "", "template table is nil")
	}
	return build(name, template.Columns())
}

func build(name string, columns []string) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, errors.NewSchemaError(name, "", "template has no columns")
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c == "" {
			return Schema{}, errors.NewSchemaError(name, "", "empty column name")
		}
		if _, dup := index[c]; dup {
			return Schema{}, errors.NewSchemaError(name, c, "duplicate column name")
		}
		index[c] = i
	}
	return Schema{name: name, columns: slices.Clone(columns), index: index}, nil
}

// Name returns the template name the schema was derived from, if any.
func (s Schema) Name() string { return s.name }

// Columns returns a copy of the column names in order.
func (s Schema) Columns() []string { return slices.Clone(s.columns) }

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// IsZero reports whether the schema was never built.
func (s Schema) IsZero() bool { return len(s.columns) == 0 }

// Index returns the position of a column.
func (s Schema) Index(column string) (int, bool) {
	i, ok := s.index[column]
	return i, ok
}

// Has reports whether the column is part of the schema.
func (s Schema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}
