package ports

import "go.trai.ch/libpack/internal/core/domain"

// ConfigLoader defines the interface for loading a library project.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project configuration at path and returns the project with its validated graph.
	Load(path string) (*domain.Project, error)
}
