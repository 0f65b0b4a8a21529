// Package kinds implements the kinds command.
package kinds

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/paramconv/cmd/application"
	"github.com/agentstation/paramconv/internal/cmd/output"
	"github.com/agentstation/paramconv/pkg/registry"
)

// NewCommand creates the kinds command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "kinds",
		GroupID: "core",
		Short:   "List registered template kinds",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  paramconv kinds
  paramconv kinds --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := app.Registry()
			if err != nil {
				return err
			}
			defs := reg.Definitions()
			app.Logger().Debug().Int("count", len(defs)).Msg("Listing kinds")

			format := output.DetectFormat(app.OutputFormat())
			var data any = defs
			if format == output.FormatTable {
				data = toTable(defs)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}
}

func toTable(defs []*registry.Definition) output.Data {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{
			string(d.Kind),
			d.Template,
			d.Rules.DefaultValue.String(),
			d.Description,
		})
	}
	return output.Data{
		Headers: output.Headers("kind", "template", "default", "description"),
		Rows:    rows,
	}
}
