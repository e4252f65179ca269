package scheduler

import (
	"slices"

	"go.trai.ch/libpack/internal/core/domain"
)

// prerequisites returns, per entry point, the entry points that must be done before it
// starts: its declared dependencies and, for a secondary entry point compiled with the
// compatibility shim, the primary entry point whose compilation runs the shim pass. The
// primary is left out when it depends on the secondary itself.
func prerequisites(graph *domain.Graph) map[domain.InternedString][]domain.InternedString {
	prereqs := make(map[domain.InternedString][]domain.InternedString, graph.Len())
	for node := range graph.Walk() {
		prereqs[node.Name()] = node.EntryPoint().Dependencies
	}

	primary, err := graph.Find(domain.IsPrimaryEntryPoint)
	if err != nil {
		return prereqs
	}
	upstream := dependencyClosure(graph, primary.Name())

	for node := range graph.Walk() {
		name := node.Name()
		if node.IsPrimary() || upstream[name] || !node.Data().TsConfig.Options.EnableShim {
			continue
		}
		deps := prereqs[name]
		if !slices.Contains(deps, primary.Name()) {
			prereqs[name] = append(append(make([]domain.InternedString, 0, len(deps)+1), deps...), primary.Name())
		}
	}
	return prereqs
}

// dependencyClosure returns every entry point name depends on, directly or transitively.
func dependencyClosure(graph *domain.Graph, name domain.InternedString) map[domain.InternedString]bool {
	seen := make(map[domain.InternedString]bool)
	var visit func(domain.InternedString)
	visit = func(n domain.InternedString) {
		node, ok := graph.Get(n)
		if !ok {
			return
		}
		for _, dep := range node.EntryPoint().Dependencies {
			if !seen[dep] {
				seen[dep] = true
				visit(dep)
			}
		}
	}
	visit(name)
	return seen
}
