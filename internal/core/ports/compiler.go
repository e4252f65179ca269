// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/libpack/internal/core/domain"
)

// CompileOptions are the output settings the compilation stage derives for one entry point.
type CompileOptions struct {
	OutDir         string
	DeclarationDir string
	Declaration    bool
	Target         domain.ScriptTarget
}

// CompileRequest carries everything the source compiler needs to build one entry point.
type CompileRequest struct {
	Graph            *domain.Graph
	Node             *domain.EntryPointNode
	TsConfig         domain.TsConfig
	ModuleResolution *domain.ModuleResolutionCache
	Stylesheets      StylesheetProcessor
	Options          CompileOptions
	// Shim is nil when compatibility shimming is disabled.
	Shim ShimGate
}

// SourceCompiler compiles the sources of one entry point and emits its declarations.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type SourceCompiler interface {
	// Compile builds the entry point of req.Node.
	// Type and resolution errors are reported as domain.ErrCompilation.
	Compile(ctx context.Context, req *CompileRequest) error
}

// ShimGate is the view of the compatibility-shim gate handed to the source compiler.
type ShimGate interface {
	// Processed reports whether the full shim pass completed successfully.
	Processed() bool
	// EnsureModule makes sure module is available in its shimmed form before it is resolved.
	EnsureModule(ctx context.Context, module string) error
}
