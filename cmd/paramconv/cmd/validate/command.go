// Package validate implements the validate command.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/paramconv/cmd/application"
	"github.com/agentstation/paramconv/internal/cmd/alerts"
	"github.com/agentstation/paramconv/internal/cmd/output"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/registry"
)

// Status grades one kind.
type Status string

// Validation statuses.
const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Result is the validation outcome of one kind.
type Result struct {
	Kind     registry.Kind `json:"kind" yaml:"kind"`
	Template string        `json:"template" yaml:"template"`
	Status   Status        `json:"status" yaml:"status"`
	Issues   []string      `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [kind...]",
		GroupID: "management",
		Short:   "Check definitions against their templates",
		Long: `Validate loads each kind's template and checks its rule set.

Errors: the definition is invalid or the template cannot be read.
Warnings: rules that write the same column, or rule columns that the
template does not contain.`,
		Example: `  paramconv validate
  paramconv validate Npc NpcThink`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			kinds := args
			if len(kinds) == 0 {
				for _, k := range reg.Kinds() {
					kinds = append(kinds, string(k))
				}
			}

			results := make([]Result, 0, len(kinds))
			failed := 0
			for _, k := range kinds {
				r, err := Kind(cmd.Context(), reg, k)
				if err != nil {
					return err
				}
				if r.Status == StatusError {
					failed++
				}
				results = append(results, r)
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = results
			if format == output.FormatTable {
				data = toTable(results)
			}
			if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), data); err != nil {
				return err
			}

			if failed > 0 {
				return &errors.ValidationError{
					Message: fmt.Sprintf("%d of %d kinds failed validation", failed, len(results)),
				}
			}
			app.Logger().Debug().Int("kinds", len(results)).Msg("All definitions valid")
			if format == output.FormatTable {
				noColor, _ := cmd.Flags().GetBool("no-color")
				return alerts.NewWriter(cmd.ErrOrStderr(), format, noColor).
					Write(alerts.NewSuccess("All %d definitions valid", len(results)))
			}
			return nil
		},
	}
}

// Kind validates one kind. Only an unknown kind is returned as an error;
// every other problem is recorded in the result.
func Kind(ctx context.Context, reg *registry.Registry, kind string) (Result, error) {
	def, err := reg.Definition(kind)
	if err != nil {
		return Result{}, err
	}
	r := Result{Kind: def.Kind, Template: def.Template, Status: StatusOK}
	fail := func(msg string) {
		r.Status = StatusError
		r.Issues = append(r.Issues, msg)
	}
	warn := func(msg string) {
		if r.Status == StatusOK {
			r.Status = StatusWarning
		}
		r.Issues = append(r.Issues, msg)
	}

	if err := def.Validate(); err != nil {
		fail(err.Error())
		return r, nil
	}
	for _, o := range def.Rules.Overlaps() {
		warn(fmt.Sprintf("column %q written by %s", o.Column, strings.Join(o.Categories, " and ")))
	}

	s, err := reg.Schema(ctx, kind)
	if err != nil {
		fail(err.Error())
		return r, nil
	}
	for _, c := range def.Rules.Columns() {
		if !s.Has(c) {
			warn(fmt.Sprintf("column %q not in template", c))
		}
	}
	return r, nil
}

func toTable(results []Result) output.Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{string(r.Kind), r.Template, string(r.Status), strings.Join(r.Issues, "\n")})
	}
	return output.Data{
		Headers: output.Headers("kind", "template", "status", "issues"),
		Rows:    rows,
	}
}
