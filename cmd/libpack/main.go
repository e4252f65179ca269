// Package main is the entry point for the libpack build tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/cmd/libpack/commands"
	"go.trai.ch/libpack/internal/app"
	_ "go.trai.ch/libpack/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintf(stderr, "Error: %+v\n", err)
		return 1
	}
	components.Logger.SetOutput(stderr)
	defer func() {
		if err := components.Progress.Close(); err != nil {
			components.Logger.Warn("failed to close progress recorder", "error", err)
		}
	}()

	cli := commands.New(components.App, components.Logger)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return 130 //nolint:mnd // conventional exit code for SIGINT
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
