package toolchain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
)

var (
	_ ports.StylesheetProcessorFactory = (*StylesheetFactory)(nil)
	_ ports.StylesheetProcessor        = (*StylesheetProcessor)(nil)
)

// StylesheetFactory constructs stylesheet processors running the configured stylesheet command.
type StylesheetFactory struct {
	toolchain *Toolchain
}

// NewStylesheetFactory creates a new StylesheetFactory.
func NewStylesheetFactory(toolchain *Toolchain) *StylesheetFactory {
	return &StylesheetFactory{toolchain: toolchain}
}

// New constructs a processor for one entry point.
func (f *StylesheetFactory) New(_ context.Context, opts ports.StylesheetOptions) (ports.StylesheetProcessor, error) {
	includes := make([]string, 0, len(opts.IncludePaths))
	for _, p := range opts.IncludePaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(opts.BasePath, p)
		}
		includes = append(includes, p)
	}

	return &StylesheetProcessor{
		toolchain: f.toolchain,
		opts:      opts,
		includes:  includes,
		results:   make(map[string]processed),
	}, nil
}

type processed struct {
	modTime time.Time
	size    int64
	css     string
}

// StylesheetProcessor turns stylesheet sources into CSS. Results are kept per file and
// reused while the file is unchanged.
type StylesheetProcessor struct {
	toolchain *Toolchain
	opts      ports.StylesheetOptions
	includes  []string

	mu      sync.Mutex
	results map[string]processed
}

// Process returns the CSS for the stylesheet at path. Plain CSS is read as is when no
// stylesheet command is configured.
func (p *StylesheetProcessor) Process(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", classify(domain.ErrStylesheet, "stat stylesheet", err, "path", path)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if r, ok := p.results[path]; ok && r.modTime.Equal(info.ModTime()) && r.size == info.Size() {
		return r.css, nil
	}

	css, err := p.run(ctx, path)
	if err != nil {
		return "", err
	}
	p.results[path] = processed{modTime: info.ModTime(), size: info.Size(), css: css}
	return css, nil
}

func (p *StylesheetProcessor) run(ctx context.Context, path string) (string, error) {
	cmd, err := p.toolchain.command(ToolStylesheet)
	if err != nil {
		if filepath.Ext(path) != ".css" {
			return "", classify(domain.ErrStylesheet, "process stylesheet", err, "path", path)
		}
		//nolint:gosec // Path comes from the entry point's own sources
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", classify(domain.ErrStylesheet, "read stylesheet", readErr, "path", path)
		}
		return string(data), nil
	}

	for _, inc := range p.includes {
		cmd = append(cmd, "--load-path="+inc)
	}
	if p.opts.CSSURL == domain.CSSURLInline {
		cmd = append(cmd, "--embed-sources")
	}
	cmd = append(cmd, path)

	var stdout bytes.Buffer
	err = p.toolchain.runner.Run(ctx, &ports.Command{
		Args:   cmd,
		Dir:    p.opts.BasePath,
		Stdout: &stdout,
	})
	if err != nil {
		return "", classify(domain.ErrStylesheet, "process stylesheet", err, "path", path)
	}
	return stdout.String(), nil
}
