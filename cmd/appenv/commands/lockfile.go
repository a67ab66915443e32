package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newUpdateLockfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-lockfile",
		Short: "Update the lock file from requirements.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := c.app.UpdateLockfile(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "locked %d dependencies\n", doc.Len())
			return err
		},
	}
}
