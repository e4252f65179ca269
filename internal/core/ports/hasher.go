package ports

import "go.trai.ch/libpack/internal/core/domain"

// Hasher defines the interface for computing build hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash computes the input hash of an entry point from its definition,
	// its sources and the output hashes of its dependencies. Source directories listed in
	// excludes belong to other entry points and are not hashed.
	ComputeInputHash(data *domain.NodeData, depHashes map[string]string, excludes []string) (string, error)
	// ComputeOutputHash computes the hash of the given output files.
	ComputeOutputHash(outputs []string) (string, error)
}
