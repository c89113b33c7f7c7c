package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mweigel/pysize/pkg/buildinfo"
)

// Execute runs the pysize CLI and returns an error if any command
// fails. The root command performs the measurement itself; extract is
// available as a subcommand for inspecting a manifest without
// installing anything.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, including per-step probe output
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	var opts measureOpts

	root := &cobra.Command{
		Use:   "pysize",
		Short: "pysize measures the installed disk footprint of Python packages",
		Long: `pysize measures how many bytes each dependency in a manifest really
costs once installed, transitive dependencies included.

Every package is installed into its own throwaway virtual environment
and the environment's size is diffed before and after the install. The
results are printed sorted by size and written to a CSV report with a
text bar-chart column.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.requirements, "requirements", "r", "pyproject.toml",
		"path to the pyproject.toml or requirements.txt file")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to config file (default "+configDefaultHint+" if present)")
	root.Flags().StringVarP(&opts.output, "output", "o", "package_sizes.csv",
		"path to the output report")
	root.Flags().StringVar(&opts.python, "python", "",
		"python interpreter used to create environments (overrides config)")

	root.AddCommand(newExtractCmd())

	return root.ExecuteContext(ctx)
}
