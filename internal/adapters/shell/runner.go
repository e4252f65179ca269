// Package shell provides the adapter running external toolchain commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTail is the number of trailing stderr lines attached to a failure.
const stderrTail = 20

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run runs the command to completion.
// The environment is the process environment overlaid with cmd.Env, and the
// node_modules/.bin directory of the working directory is prepended to PATH so
// locally installed tools resolve. Output goes to cmd.Stdout and cmd.Stderr when
// set and is logged line by line otherwise.
func (r *Runner) Run(ctx context.Context, c *ports.Command) error {
	if len(c.Args) == 0 {
		return zerr.Wrap(domain.ErrEmptyCommand, "run command")
	}

	name := c.Args[0]
	var binDirs []string
	if c.Dir != "" {
		binDirs = append(binDirs, filepath.Join(c.Dir, "node_modules", ".bin"))
	}
	cmdEnv := resolveEnvironment(os.Environ(), binDirs, c.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, c.Args[1:]...) //nolint:gosec // toolchain command from project config
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = c.Dir
	cmd.Env = cmdEnv

	tail := &tailWriter{max: stderrTail}
	stdout := c.Stdout
	if stdout == nil {
		lw := &logWriter{log: func(line string) { r.logger.Info(line, "command", name) }}
		defer lw.Flush()
		stdout = lw
	}
	stderr := c.Stderr
	if stderr == nil {
		lw := &logWriter{log: func(line string) { r.logger.Warn(line, "command", name) }}
		defer lw.Flush()
		stderr = lw
	}
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, tail)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.With(zerr.Wrap(domain.ErrCommandFailed, err.Error()), "exit_code", exitCode)
		wrapped = zerr.With(wrapped, "command", strings.Join(c.Args, " "))
		if out := tail.String(); out != "" {
			wrapped = zerr.With(wrapped, "stderr", out)
		}
		return wrapped
	}
	return nil
}

// logWriter buffers partial writes and emits complete lines.
type logWriter struct {
	log func(line string)
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.log(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits a trailing line without newline.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.log(w.buf.String())
		w.buf.Reset()
	}
}

// tailWriter keeps the last max lines written to it.
type tailWriter struct {
	max   int
	mu    sync.Mutex
	lines []string
	part  string
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	parts := strings.Split(w.part+string(p), "\n")
	w.part = parts[len(parts)-1]
	w.lines = append(w.lines, parts[:len(parts)-1]...)
	if over := len(w.lines) - w.max; over > 0 {
		w.lines = w.lines[over:]
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	lines := w.lines
	if w.part != "" {
		lines = append(lines[:len(lines):len(lines)], w.part)
	}
	return strings.Join(lines, "\n")
}

// resolveEnvironment overlays overrides on the system environment and prepends binDirs to PATH.
func resolveEnvironment(sysEnv, binDirs, overrides []string) []string {
	envMap := make(map[string]string)
	var order []string
	set := func(k, v string) {
		if _, ok := envMap[k]; !ok {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}
	for _, entry := range overrides {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}

	if len(binDirs) > 0 {
		path := strings.Join(binDirs, string(os.PathListSeparator))
		if sysPath := envMap["PATH"]; sysPath != "" {
			path += string(os.PathListSeparator) + sysPath
		}
		set("PATH", path)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
