// Package rules defines the declarative, per-kind override rules applied
// after schema alignment. A RuleSet is pure data: it is loaded from YAML,
// validated once, and never mutated by the engine.
package rules

import (
	"fmt"
	"maps"
	"slices"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/table"
)

// DefaultSentinel fills sentinel columns when a rule set names columns but
// no sentinel value.
var DefaultSentinel = table.Int(-1)

// Transfer copies an input column into a differently named output column.
type Transfer struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Cleanup replaces leftover default values after the fill passes.
type Cleanup struct {
	// Replacement is written over every cell equal to the default value.
	Replacement table.Value `yaml:"replacement" json:"replacement"`

	// Except lists columns that keep the default value, in addition to
	// sentinel and padding columns which are always exempt.
	Except []string `yaml:"except,omitempty" json:"except,omitempty"`
}

// RuleSet is the bundle of override rules for one template kind.
type RuleSet struct {
	DefaultValue    table.Value            `yaml:"default_value" json:"default_value"`
	Constants       map[string]table.Value `yaml:"constants,omitempty" json:"constants,omitempty"`
	Sentinel        table.Value            `yaml:"sentinel" json:"sentinel"`
	SentinelColumns []string               `yaml:"sentinel_columns,omitempty" json:"sentinel_columns,omitempty"`
	Padding         map[string]string      `yaml:"padding,omitempty" json:"padding,omitempty"`
	Transfers       []Transfer             `yaml:"transfers,omitempty" json:"transfers,omitempty"`
	Cleanup         *Cleanup               `yaml:"cleanup,omitempty" json:"cleanup,omitempty"`
	Drop            []string               `yaml:"drop,omitempty" json:"drop,omitempty"`
	Rename          map[string]string      `yaml:"rename,omitempty" json:"rename,omitempty"`
}

// Rename is one old to new header change.
type Rename struct {
	From string
	To   string
}

// SentinelValue returns the configured sentinel or DefaultSentinel.
func (rs *RuleSet) SentinelValue() table.Value {
	if rs.Sentinel.IsNull() {
		return DefaultSentinel
	}
	return rs.Sentinel
}

// ConstantColumns returns the constant override columns, sorted.
func (rs *RuleSet) ConstantColumns() []string {
	return slices.Sorted(maps.Keys(rs.Constants))
}

// PaddingColumns returns the padding literal columns, sorted.
func (rs *RuleSet) PaddingColumns() []string {
	return slices.Sorted(maps.Keys(rs.Padding))
}

// Renames returns the rename pairs ordered by source column.
func (rs *RuleSet) Renames() []Rename {
	out := make([]Rename, 0, len(rs.Rename))
	for _, from := range slices.Sorted(maps.Keys(rs.Rename)) {
		out = append(out, Rename{From: from, To: rs.Rename[from]})
	}
	return out
}

// Exceptions returns the columns the cleanup pass leaves alone: the
// declared exceptions plus every sentinel and padding column.
func (rs *RuleSet) Exceptions() map[string]struct{} {
	out := make(map[string]struct{})
	if rs.Cleanup != nil {
		for _, c := range rs.Cleanup.Except {
			out[c] = struct{}{}
		}
	}
	for _, c := range rs.SentinelColumns {
		out[c] = struct{}{}
	}
	for c := range rs.Padding {
		out[c] = struct{}{}
	}
	return out
}

// Columns returns every column the rule set mentions, sorted and unique.
func (rs *RuleSet) Columns() []string {
	seen := make(map[string]struct{})
	add := func(cols ...string) {
		for _, c := range cols {
			seen[c] = struct{}{}
		}
	}
	add(rs.ConstantColumns()...)
	add(rs.SentinelColumns...)
	add(rs.PaddingColumns()...)
	for _, t := range rs.Transfers {
		add(t.Target)
	}
	if rs.Cleanup != nil {
		add(rs.Cleanup.Except...)
	}
	add(rs.Drop...)
	for from := range rs.Rename {
		add(from)
	}
	return slices.Sorted(maps.Keys(seen))
}

// Overlap is a column written by more than one value rule category.
type Overlap struct {
	Column     string
	Categories []string
}

// Overlaps lists columns that more than one value-writing category
// touches. Such sets are legal (the later step wins) but usually a
// mistake in a definition.
func (rs *RuleSet) Overlaps() []Overlap {
	cats := make(map[string][]string)
	for _, t := range rs.Transfers {
		cats[t.Target] = appendOnce(cats[t.Target], "transfer")
	}
	for _, c := range rs.SentinelColumns {
		cats[c] = appendOnce(cats[c], "sentinel")
	}
	for c := range rs.Constants {
		cats[c] = appendOnce(cats[c], "constant")
	}
	for c := range rs.Padding {
		cats[c] = appendOnce(cats[c], "padding")
	}

	var out []Overlap
	for _, c := range slices.Sorted(maps.Keys(cats)) {
		if len(cats[c]) > 1 {
			out = append(out, Overlap{Column: c, Categories: cats[c]})
		}
	}
	return out
}

func appendOnce(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}

// Validate checks the rule set for structural mistakes.
func (rs *RuleSet) Validate() error {
	if rs == nil {
		return &errors.ValidationError{Message: "rule set is nil"}
	}

	var errs []error
	empty := func(field string) {
		errs = append(errs, errors.NewValidationError(field, "", "column name cannot be empty"))
	}

	if rs.DefaultValue.IsNull() {
		errs = append(errs, errors.NewValidationError("default_value", nil, "is required"))
	}
	for c := range rs.Constants {
		if c == "" {
			empty("constants")
		}
	}
	for i, c := range rs.SentinelColumns {
		if c == "" {
			empty(fmt.Sprintf("sentinel_columns[%d]", i))
		}
	}
	if !rs.Sentinel.IsNull() && len(rs.SentinelColumns) == 0 {
		errs = append(errs, errors.NewValidationError("sentinel", rs.Sentinel.String(), "sentinel value set without sentinel_columns"))
	}
	for c := range rs.Padding {
		if c == "" {
			empty("padding")
		}
	}
	for i, t := range rs.Transfers {
		if t.Source == "" {
			empty(fmt.Sprintf("transfers[%d].source", i))
		}
		if t.Target == "" {
			empty(fmt.Sprintf("transfers[%d].target", i))
		}
	}
	if rs.Cleanup != nil && rs.Cleanup.Replacement.IsNull() {
		errs = append(errs, errors.NewValidationError("cleanup.replacement", nil, "replacement value is required"))
	}
	for i, c := range rs.Drop {
		if c == "" {
			empty(fmt.Sprintf("drop[%d]", i))
		}
	}

	targets := make(map[string]string, len(rs.Rename))
	for _, r := range rs.Renames() {
		if r.From == "" || r.To == "" {
			empty("rename")
			continue
		}
		if prev, dup := targets[r.To]; dup {
			errs = append(errs, errors.NewValidationError("rename", r.To,
				fmt.Sprintf("columns %q and %q both rename to %q", prev, r.From, r.To)))
		}
		targets[r.To] = r.From
	}

	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (rs *RuleSet) Clone() *RuleSet {
	c := *rs
	c.Constants = maps.Clone(rs.Constants)
	c.SentinelColumns = slices.Clone(rs.SentinelColumns)
	c.Padding = maps.Clone(rs.Padding)
	c.Transfers = slices.Clone(rs.Transfers)
	c.Drop = slices.Clone(rs.Drop)
	c.Rename = maps.Clone(rs.Rename)
	if rs.Cleanup != nil {
		cl := *rs.Cleanup
		cl.Except = slices.Clone(rs.Cleanup.Except)
		c.Cleanup = &cl
	}
	return &c
}
