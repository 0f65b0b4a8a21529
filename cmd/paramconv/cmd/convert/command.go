// Package convert implements the convert command.
package convert

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/paramconv/cmd/application"
	"github.com/agentstation/paramconv/internal/cmd/alerts"
	"github.com/agentstation/paramconv/internal/cmd/output"
	"github.com/agentstation/paramconv/internal/convert"
	"github.com/agentstation/paramconv/pkg/constants"
	"github.com/agentstation/paramconv/pkg/errors"
)

// Flags holds the convert command flags.
type Flags struct {
	Inputs    []string
	Output    string
	OutputDir string
	Force     bool
}

// NewCommand creates the convert command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "convert <kind>",
		GroupID: "core",
		Short:   "Reconcile parameter tables against a template",
		Long: `Convert reads one or more parameter tables, aligns every row to the
template of the given kind, applies the kind's override rules, and writes
the result.

Without --input the file is chosen interactively. With a single input and
neither --output nor --output-dir, the destination is also prompted for.
Several inputs are converted in parallel into --output-dir.`,
		Example: `  paramconv convert Atk -i AtkParam.csv -o output/AtkParam.csv
  paramconv convert npc -i a.csv -i b.csv --output-dir converted
  paramconv convert NpcThink`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.Inputs, "input", "i", nil, "input table (repeatable)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "directory for converted tables")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite existing output files")
	cmd.MarkFlagsMutuallyExclusive("output", "output-dir")
	return cmd
}

func run(cmd *cobra.Command, app application.Application, kind string, flags *Flags) error {
	ctx := cmd.Context()
	logger := app.Logger()

	reg, err := app.Registry()
	if err != nil {
		return err
	}
	def, err := reg.Definition(kind)
	if err != nil {
		return err
	}

	inputs := flags.Inputs
	if len(inputs) == 0 {
		in, err := app.Picker().Open(ctx, "Select "+string(def.Kind)+" CSV file to compare")
		if err != nil {
			return err
		}
		logger.Info().Str("file", in).Msg("Selected file for comparison")
		inputs = []string{in}
	}
	if flags.Output != "" && len(inputs) > 1 {
		return errors.NewValidationError("output", flags.Output, "cannot be used with several inputs; use --output-dir")
	}

	jobs := make([]convert.Job, 0, len(inputs))
	for _, in := range inputs {
		job := convert.Job{Kind: kind, Input: in, Output: flags.Output}
		if job.Output == "" {
			job.Output, err = destination(cmd, app, flags, in, len(inputs))
			if err != nil {
				if errors.IsNoFileSelected(err) {
					logger.Error().Msg("No file selected for saving. Exiting without saving.")
				}
				return err
			}
		}
		jobs = append(jobs, job)
	}

	conv, err := app.Converter(convert.WithOverwrite(flags.Force))
	if err != nil {
		return err
	}
	reports, err := conv.RunAll(ctx, jobs)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), reports)
	}
	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), toTable(reports)); err != nil {
		return err
	}
	outputs := make([]string, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			outputs = append(outputs, r.Output)
		}
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	return alerts.NewWriter(cmd.ErrOrStderr(), format, noColor).
		Write(alerts.NewSuccess("Converted %d %s table(s)", len(outputs), def.Kind).WithDetails(outputs...))
}

// destination picks the output path for one input.
func destination(cmd *cobra.Command, app application.Application, flags *Flags, input string, n int) (string, error) {
	if flags.OutputDir != "" {
		return convert.OutputPath(flags.OutputDir, input), nil
	}
	if n > 1 {
		return convert.OutputPath(app.OutputDir(), input), nil
	}
	return app.Picker().Save(cmd.Context(), "Save new CSV file", constants.TableExtension)
}

func toTable(reports []*convert.Report) output.Data {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			string(r.Kind),
			r.Input,
			r.Output,
			strconv.Itoa(r.Stats.Rows),
			strconv.Itoa(r.Stats.Columns),
			strings.Join(r.Stats.Discarded, ", "),
			strconv.Itoa(len(r.Warnings)),
		})
	}
	return output.Data{
		Headers: output.Headers("kind", "input", "output", "rows", "columns", "discarded", "warnings"),
		Rows:    rows,
	}
}
