package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run a command from the environment's bin directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunCommand(cmd.Context(), c.opts, args[0], args[1:])
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (c *CLI) newPythonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "python [-- args...]",
		Short: "Start the environment's Python interpreter",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Python(cmd.Context(), c.opts, args)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
