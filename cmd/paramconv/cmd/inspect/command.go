// Package inspect implements the inspect command.
package inspect

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/paramconv/cmd/application"
	"github.com/agentstation/paramconv/internal/cmd/output"
	"github.com/agentstation/paramconv/pkg/reconciler"
	"github.com/agentstation/paramconv/pkg/registry"
	"github.com/agentstation/paramconv/pkg/rules"
)

// Step is one override pass as shown by inspect.
type Step struct {
	Order       int             `json:"order" yaml:"order"`
	Name        reconciler.Step `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
}

// Column is one template column and the rules that touch it.
type Column struct {
	Position int      `json:"position" yaml:"position"`
	Name     string   `json:"name" yaml:"name"`
	Rules    []string `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Report is the structured output of inspect.
type Report struct {
	Definition *registry.Definition `json:"definition" yaml:"definition"`
	Steps      []Step               `json:"steps" yaml:"steps"`
	Columns    []Column             `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	var columns bool
	cmd := &cobra.Command{
		Use:     "inspect <kind>",
		GroupID: "core",
		Short:   "Show the rule set of a template kind",
		Args:    cobra.ExactArgs(1),
		Example: `  paramconv inspect NpcThink
  paramconv inspect atk --columns`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			def, err := reg.Definition(args[0])
			if err != nil {
				return err
			}

			report := &Report{Definition: def, Steps: steps()}
			if columns {
				s, err := reg.Schema(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				report.Columns = annotate(s.Columns(), def.Rules)
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = report
			if format == output.FormatTable {
				data = toTables(report)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().BoolVar(&columns, "columns", false, "load the template and list its columns")
	return cmd
}

func steps() []Step {
	out := make([]Step, 0, len(reconciler.Steps()))
	for i, s := range reconciler.Steps() {
		out = append(out, Step{Order: i + 1, Name: s, Description: s.Description()})
	}
	return out
}

// annotate tags each column with the rule categories that write it.
func annotate(cols []string, rs *rules.RuleSet) []Column {
	tags := make(map[string][]string)
	for _, t := range rs.Transfers {
		tags[t.Target] = append(tags[t.Target], "transfer from "+t.Source)
	}
	for _, c := range rs.SentinelColumns {
		tags[c] = append(tags[c], "sentinel "+rs.SentinelValue().String())
	}
	for _, c := range rs.ConstantColumns() {
		tags[c] = append(tags[c], "constant "+rs.Constants[c].String())
	}
	for _, c := range rs.PaddingColumns() {
		tags[c] = append(tags[c], "padding "+rs.Padding[c])
	}
	for _, c := range rs.Drop {
		tags[c] = append(tags[c], "dropped")
	}
	for _, r := range rs.Renames() {
		tags[r.From] = append(tags[r.From], fmt.Sprintf("renamed to %q", r.To))
	}

	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = Column{Position: i, Name: c, Rules: tags[c]}
	}
	return out
}

func toTables(r *Report) []output.Data {
	d := r.Definition
	rs := d.Rules
	props := [][]string{
		{"Kind", string(d.Kind)},
		{"Template", d.Template},
		{"Labels", strings.Join(d.Labels, ", ")},
		{"Default", rs.DefaultValue.String()},
		{"Sentinel Columns", joinSentinels(rs)},
		{"Constants", joinValues(rs)},
		{"Padding", joinMap(rs.Padding)},
		{"Transfers", joinTransfers(rs.Transfers)},
		{"Cleanup", describeCleanup(rs)},
		{"Drop", strings.Join(rs.Drop, ", ")},
		{"Rename", joinMap(rs.Rename)},
	}
	if d.Notice != "" {
		props = append(props, []string{"Notice", d.Notice})
	}

	tables := []output.Data{{
		Title:   d.Description,
		Headers: []string{"Property", "Value"},
		Rows:    props,
	}}

	stepRows := make([][]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		stepRows = append(stepRows, []string{strconv.Itoa(s.Order), string(s.Name), s.Description})
	}
	tables = append(tables, output.Data{
		Title:           "Override steps",
		Headers:         output.Headers("order", "step", "description"),
		Rows:            stepRows,
		ColumnAlignment: []output.Align{output.AlignRight, output.AlignLeft, output.AlignLeft},
	})

	if len(r.Columns) > 0 {
		colRows := make([][]string, 0, len(r.Columns))
		for _, c := range r.Columns {
			colRows = append(colRows, []string{strconv.Itoa(c.Position), c.Name, strings.Join(c.Rules, "; ")})
		}
		tables = append(tables, output.Data{
			Title:           "Template columns",
			Headers:         output.Headers("position", "column", "rules"),
			Rows:            colRows,
			ColumnAlignment: []output.Align{output.AlignRight, output.AlignLeft, output.AlignLeft},
		})
	}
	return tables
}

func joinSentinels(rs *rules.RuleSet) string {
	if len(rs.SentinelColumns) == 0 {
		return ""
	}
	return fmt.Sprintf("%s = %s", strings.Join(rs.SentinelColumns, ", "), rs.SentinelValue())
}

func joinValues(rs *rules.RuleSet) string {
	parts := make([]string, 0, len(rs.Constants))
	for _, c := range rs.ConstantColumns() {
		parts = append(parts, c+" = "+rs.Constants[c].String())
	}
	return strings.Join(parts, ", ")
}

func joinMap(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, fmt.Sprintf("%s = %q", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func joinTransfers(ts []rules.Transfer) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, t.Source+" -> "+t.Target)
	}
	return strings.Join(parts, ", ")
}

func describeCleanup(rs *rules.RuleSet) string {
	if rs.Cleanup == nil {
		return ""
	}
	s := fmt.Sprintf("%s -> %s", rs.DefaultValue, rs.Cleanup.Replacement)
	if len(rs.Cleanup.Except) > 0 {
		s += " except " + strings.Join(rs.Cleanup.Except, ", ")
	}
	return s + " (sentinel and padding columns exempt)"
}
