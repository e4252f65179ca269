package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/libpack/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build state and the build outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keepOutputs, _ := cmd.Flags().GetBool("keep-outputs")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath:  configPath(cmd),
				KeepOutputs: keepOutputs,
			})
		},
	}

	cmd.Flags().Bool("keep-outputs", false, "Only remove the build state")

	return cmd
}
