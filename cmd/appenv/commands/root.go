// Package commands implements the CLI commands for appenv.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/appenv/internal/app"
	"go.trai.ch/appenv/internal/build"
)

// CLI represents the command line interface for appenv.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
	opts    app.Options
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "appenv [flags] [-- args...]",
		Short: "Bootstrap and run an application in a cached Python environment",
		Long: "appenv prepares an isolated Python environment from requirements.lock " +
			"(or requirements.txt in unclean mode) and runs the application in it. " +
			"Arguments that are not appenv flags are passed to the application.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunApp(cmd.Context(), c.opts, args)
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Everything after the first positional argument belongs to the application.
	rootCmd.Flags().SetInterspersed(false)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.opts.Base, "base", "", "Application base directory (default: working directory)")
	flags.StringVar(&c.opts.AppName, "appname", "", "Entry point to launch (default: name of the base directory)")
	flags.StringVar(&c.opts.AppEnvDir, "appenvdir", "", "Environment store directory (default: .<appname> in the base directory)")
	flags.StringVar(&c.opts.Python, "python", "", "Interpreter used to create environments (default: python3)")
	flags.BoolVarP(&c.opts.Unclean, "unclean", "u", false, "Use an unclean working environment")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPythonCmd())
	rootCmd.AddCommand(c.newUpdateLockfileCmd())
	rootCmd.AddCommand(c.newResetCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newPruneCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut sets the destination for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
