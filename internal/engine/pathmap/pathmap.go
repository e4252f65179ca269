// Package pathmap derives the compiler configuration an entry point is compiled with,
// mapping the module names of its sibling entry points to their build outputs.
package pathmap

import (
	"path/filepath"
	"slices"

	"go.trai.ch/libpack/internal/core/domain"
)

// SetDependenciesPaths returns a copy of current's compiler configuration whose path table
// maps every other entry point to its destination path. Mappings are declared for all
// entry points regardless of their state, since siblings built later in the order are
// resolved by the compiler once their outputs exist. User-declared targets are kept after
// the derived one and no target is listed twice. When the configuration has no base url it
// is set to the directory of the project file. The configuration of current is not modified.
func SetDependenciesPaths(current *domain.EntryPointNode, entryPoints []*domain.EntryPointNode) domain.TsConfig {
	data := current.Data()
	cfg := data.TsConfig.Clone()

	if cfg.Options.BaseURL == "" && cfg.Project != "" {
		cfg.Options.BaseURL = filepath.Dir(cfg.Project)
	}

	currentName := data.EntryPoint.Name
	for _, ep := range entryPoints {
		if ep == nil || ep == current {
			continue
		}
		sibling := ep.Data()
		if sibling.EntryPoint.Name == currentName {
			continue
		}

		if cfg.Options.Paths == nil {
			cfg.Options.Paths = make(map[string][]string)
		}
		name := sibling.EntryPoint.Name.String()
		cfg.Options.Paths[name] = prepend(cfg.Options.Paths[name], Target(&sibling))
	}

	return cfg
}

// Target returns the location a sibling entry point is resolved from: its destination
// path, or the directory its declarations are written to when none is configured.
func Target(data *domain.NodeData) string {
	if data.EntryPoint.DestinationPath != "" {
		return data.EntryPoint.DestinationPath
	}
	return filepath.Dir(data.DestinationFiles.Declarations)
}

func prepend(targets []string, target string) []string {
	out := make([]string, 0, len(targets)+1)
	out = append(out, target)
	for _, t := range targets {
		if t != target && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
