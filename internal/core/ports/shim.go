package ports

import "context"

// ShimRequest describes the project whose third-party packages are shimmed.
type ShimRequest struct {
	// BasePath is the directory holding the node_modules tree to process.
	BasePath string
	// Project is the compiler configuration file of the primary entry point.
	Project string
}

// ShimProcessor runs the compatibility-shim pass over third-party packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=shim.go -destination=mocks/mock_shim.go -package=mocks
type ShimProcessor interface {
	// ProcessAll shims every package of the project. Failures are reported as domain.ErrShim.
	ProcessAll(ctx context.Context, req ShimRequest) error
	// ProcessModule shims a single package.
	ProcessModule(ctx context.Context, req ShimRequest, module string) error
}
