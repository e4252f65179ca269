package domain

import "path/filepath"

const (
	// DefaultConfigFile is the name of the project configuration file.
	DefaultConfigFile = "libpack.yaml"
	// DefaultStateDir is the directory holding persisted build state, relative to the project root.
	DefaultStateDir = ".libpack"
	// DefaultDestDir is the default output directory, relative to the project root.
	DefaultDestDir = "dist"
	// StoreFileName is the file of the build info store inside the state directory.
	StoreFileName = "state.json"
)

// Toolchain holds the command lines of the external collaborators.
type Toolchain struct {
	Compiler   []string
	Stylesheet []string
	Shim       []string
}

// Project is a loaded library project: its package identity, toolchain and validated graph.
type Project struct {
	Name      string
	Version   string
	Root      string
	Dest      string
	Toolchain Toolchain
	Graph     *Graph
}

// StateDir returns the directory holding persisted build state.
func (p *Project) StateDir() string {
	return filepath.Join(p.Root, DefaultStateDir)
}

// StorePath returns the path of the build info store.
func (p *Project) StorePath() string {
	return filepath.Join(p.StateDir(), StoreFileName)
}
