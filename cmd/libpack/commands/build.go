package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/libpack/internal/app"
)

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("force", "f", false, "Rebuild entry points even when their outputs are up to date")
	cmd.Flags().BoolP("keep-going", "k", false, "Keep building entry points that do not depend on a failed one")
	cmd.Flags().IntP("jobs", "j", 0, "Number of entry points built at the same time (default: number of CPUs)")
}

func buildOptions(cmd *cobra.Command, targets []string) app.BuildOptions {
	force, _ := cmd.Flags().GetBool("force")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")
	jobs, _ := cmd.Flags().GetInt("jobs")
	opts := app.BuildOptions{
		ConfigPath: configPath(cmd),
		Force:      force,
		KeepGoing:  keepGoing,
		Jobs:       jobs,
	}
	if len(targets) > 0 {
		opts.Targets = targets
	}
	return opts
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entry points...]",
		Short: "Build the library, or the given entry points and their dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), buildOptions(cmd, args))
		},
	}
	addBuildFlags(cmd)
	return cmd
}
