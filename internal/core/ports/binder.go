package ports

import "go.trai.ch/libpack/internal/core/domain"

// ProjectBinder is implemented by adapters whose settings come from the loaded project,
// such as the location of the build info store or the toolchain command lines.
//
//go:generate go run go.uber.org/mock/mockgen -source=binder.go -destination=mocks/mock_binder.go -package=mocks
type ProjectBinder interface {
	// Bind points the adapter at project. It is called once per loaded project.
	Bind(project *domain.Project) error
}
