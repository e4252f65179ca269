// Package commands implements the CLI commands for the libpack build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/libpack/internal/app"
	"go.trai.ch/libpack/internal/build"
	"go.trai.ch/libpack/internal/core/domain"
)

// Application is the part of the application layer the commands drive.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// LevelSetter changes the verbosity of the application logger.
type LevelSetter interface {
	SetLevel(level domain.LogLevel)
}

// CLI represents the command line interface for libpack.
type CLI struct {
	app     Application
	levels  LevelSetter
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application, levels LevelSetter) *CLI {
	c := &CLI{
		app:    a,
		levels: levels,
	}

	rootCmd := &cobra.Command{
		Use:               "libpack",
		Short:             "Incremental builds for packaged libraries",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           build.Version,
		PersistentPreRunE: c.configureLogging,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to "+domain.DefaultConfigFile+" or a directory to search from")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	if c.levels == nil {
		return nil
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		c.levels.SetLevel(domain.LogLevelDebug)
		return nil
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		c.levels.SetLevel(domain.ParseLogLevel(level))
	}
	return nil
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
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

// SetOutput sets the standard and error output of the commands.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}
