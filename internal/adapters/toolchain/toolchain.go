// Package toolchain implements the compiler, stylesheet and shim adapters on top of the
// external commands configured for the project.
package toolchain

import (
	"errors"
	"slices"
	"sync"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Tool names used in error metadata.
const (
	ToolCompiler   = "compiler"
	ToolStylesheet = "stylesheet"
	ToolShim       = "shim"
)

var _ ports.ProjectBinder = (*Toolchain)(nil)

// Toolchain holds the command lines of the loaded project and runs them.
type Toolchain struct {
	runner ports.CommandRunner
	logger ports.Logger

	mu       sync.RWMutex
	commands domain.Toolchain
	root     string
	stateDir string
}

// New creates a Toolchain running commands through runner.
func New(runner ports.CommandRunner, logger ports.Logger) *Toolchain {
	return &Toolchain{runner: runner, logger: logger}
}

// Bind takes the command lines and directories of project.
func (t *Toolchain) Bind(project *domain.Project) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.commands = domain.Toolchain{
		Compiler:   slices.Clone(project.Toolchain.Compiler),
		Stylesheet: slices.Clone(project.Toolchain.Stylesheet),
		Shim:       slices.Clone(project.Toolchain.Shim),
	}
	t.root = project.Root
	t.stateDir = project.StateDir()
	return nil
}

// command returns a copy of the command line of tool.
func (t *Toolchain) command(tool string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var cmd []string
	switch tool {
	case ToolCompiler:
		cmd = t.commands.Compiler
	case ToolStylesheet:
		cmd = t.commands.Stylesheet
	case ToolShim:
		cmd = t.commands.Shim
	}
	if len(cmd) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrEmptyCommand, "resolve toolchain command"), "tool", tool)
	}
	return slices.Clone(cmd), nil
}

func (t *Toolchain) dirs() (root, stateDir string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root, t.stateDir
}

// classify attaches kind to err while keeping err in the chain.
func classify(kind error, msg string, err error, kv ...any) error {
	wrapped := zerr.Wrap(kind, msg)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		wrapped = zerr.With(wrapped, key, kv[i+1])
	}
	return errors.Join(wrapped, err)
}
