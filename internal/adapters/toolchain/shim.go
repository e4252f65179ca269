package toolchain

import (
	"context"
	"path/filepath"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
)

var _ ports.ShimProcessor = (*ShimProcessor)(nil)

// ShimProcessor runs the configured shim command over the node_modules tree of a project.
type ShimProcessor struct {
	toolchain *Toolchain
}

// NewShimProcessor creates a new ShimProcessor.
func NewShimProcessor(toolchain *Toolchain) *ShimProcessor {
	return &ShimProcessor{toolchain: toolchain}
}

// ProcessAll shims every package of the project.
func (s *ShimProcessor) ProcessAll(ctx context.Context, req ports.ShimRequest) error {
	return s.run(ctx, req, "")
}

// ProcessModule shims a single package.
func (s *ShimProcessor) ProcessModule(ctx context.Context, req ports.ShimRequest, module string) error {
	return s.run(ctx, req, module)
}

func (s *ShimProcessor) run(ctx context.Context, req ports.ShimRequest, module string) error {
	cmd, err := s.toolchain.command(ToolShim)
	if err != nil {
		return classify(domain.ErrShim, "run shim", err, "base_path", req.BasePath)
	}

	cmd = append(cmd, "--source", filepath.Join(req.BasePath, "node_modules"))
	if req.Project != "" {
		cmd = append(cmd, "--tsconfig", req.Project)
	}
	if module != "" {
		cmd = append(cmd, "--module", module)
	}

	s.toolchain.logger.Debug("running compatibility shim", "base_path", req.BasePath, "module", module)
	if err := s.toolchain.runner.Run(ctx, &ports.Command{Args: cmd, Dir: req.BasePath}); err != nil {
		if module != "" {
			return classify(domain.ErrShim, "shim module", err, "base_path", req.BasePath, "module", module)
		}
		return classify(domain.ErrShim, "shim project", err, "base_path", req.BasePath)
	}
	return nil
}
