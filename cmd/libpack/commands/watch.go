package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/libpack/internal/adapters/watcher" //nolint:depguard // Default debounce window
	"go.trai.ch/libpack/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [entry points...]",
		Short: "Build, then rebuild the entry points whose sources change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debounce, _ := cmd.Flags().GetDuration("debounce")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				BuildOptions: buildOptions(cmd, args),
				Debounce:     debounce,
			})
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period after a change before rebuilding")
	return cmd
}
