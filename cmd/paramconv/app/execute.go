package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/paramconv/internal/cmd/output"
	"github.com/agentstation/paramconv/pkg/errors"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile     string
	verbose        bool
	quiet          bool
	noColor        bool
	format         string
	logLevel       string
	templateDir    string
	definitionsDir string
	outputDir      string
	concurrency    int
}

// Execute runs the paramconv CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:     "paramconv",
		Short:   "Game parameter table converter",
		Version: a.version,
		Long: `Paramconv migrates game parameter tables between schema versions.

Each template kind (Atk, Behavior, Bullet, Npc, NpcThink) pairs a template
table, whose header is the authoritative column list, with a set of override
rules. Converting a table aligns every row to the template and then applies
the rules in a fixed order.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.paramconv.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&flags.format, "format", "", "output format: table, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVar(&flags.templateDir, "template-dir", "", "directory holding template tables (default \"template\")")
	pf.StringVar(&flags.definitionsDir, "definitions-dir", "", "directory with extra kind definitions (YAML)")
	pf.StringVar(&flags.outputDir, "default-output-dir", "", "destination for batch conversions (default \"output\")")
	pf.IntVar(&flags.concurrency, "concurrency", 0, "number of files converted in parallel")

	rootCmd.SetVersionTemplate("paramconv {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, flags *globalFlags) error {
	if flags.configFile != "" {
		config, err := loadConfig(flags.configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel)
	if flags.templateDir != "" {
		a.config.TemplateDir = flags.templateDir
	}
	if flags.definitionsDir != "" {
		a.config.DefinitionsDir = flags.definitionsDir
	}
	if flags.outputDir != "" {
		a.config.OutputDir = flags.outputDir
	}
	if flags.concurrency != 0 {
		a.config.Concurrency = flags.concurrency
	}

	if a.config.Format != "" {
		if _, err := output.ParseFormat(a.config.Format); err != nil {
			return errors.NewValidationError("format", a.config.Format, err.Error())
		}
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(withLogger(cmd.Context(), a.logger))
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
