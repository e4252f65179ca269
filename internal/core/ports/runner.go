package ports

import (
	"context"
	"io"
)

// Command is an external tool invocation.
type Command struct {
	Args   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner runs external tools.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run runs cmd to completion. A non-zero exit is reported as domain.ErrCommandFailed.
	Run(ctx context.Context, cmd *Command) error
}
