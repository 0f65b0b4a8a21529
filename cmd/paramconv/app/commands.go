package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/paramconv/cmd/paramconv/cmd/convert"
	"github.com/agentstation/paramconv/cmd/paramconv/cmd/inspect"
	"github.com/agentstation/paramconv/cmd/paramconv/cmd/kinds"
	"github.com/agentstation/paramconv/cmd/paramconv/cmd/validate"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(convert.NewCommand(a))
	rootCmd.AddCommand(kinds.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("paramconv %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
