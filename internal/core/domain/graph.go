// Package domain contains the core domain models of the entry point build graph.
package domain

import (
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the ordered collection of entry point nodes of one library project.
// Nodes are kept in insertion order until Validate fixes the dependency order.
type Graph struct {
	nodes          map[InternedString]*EntryPointNode
	insertion      []InternedString
	executionOrder []InternedString
	validated      bool
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[InternedString]*EntryPointNode),
	}
}

// AddEntryPoint adds a node for data to the graph.
// It returns an error if the name is empty, the destinations are incomplete
// or an entry point with the same name already exists.
func (g *Graph) AddEntryPoint(data *NodeData) (*EntryPointNode, error) {
	name := data.EntryPoint.Name
	if name.String() == "" {
		return nil, zerr.Wrap(ErrInvalidEntryPointName, "add entry point")
	}
	if err := data.DestinationFiles.Validate(); err != nil {
		return nil, zerr.With(err, "entry_point", name.String())
	}
	if _, exists := g.nodes[name]; exists {
		return nil, zerr.With(zerr.Wrap(ErrEntryPointAlreadyExists, "add entry point"), "entry_point", name.String())
	}

	node := NewEntryPointNode(data)
	g.nodes[name] = node
	g.insertion = append(g.insertion, name)
	g.validated = false
	g.executionOrder = nil
	return node, nil
}

// Validate checks dependencies, the primary entry point and cycles, then fixes the
// execution order. Dependencies precede their dependents; independent entry points
// keep their insertion order.
func (g *Graph) Validate() error {
	g.validated = false
	g.executionOrder = nil

	if len(g.nodes) == 0 {
		return zerr.Wrap(ErrNoEntryPoints, "validate graph")
	}

	primaries := 0
	for _, name := range g.insertion {
		node := g.nodes[name]
		if node.IsPrimary() {
			primaries++
		}
		for _, dep := range node.EntryPoint().Dependencies {
			if _, ok := g.nodes[dep]; !ok {
				err := zerr.With(zerr.Wrap(ErrMissingDependency, "validate graph"), "entry_point", name.String())
				return zerr.With(err, "dependency", dep.String())
			}
		}
	}
	if primaries != 1 {
		return zerr.With(zerr.Wrap(ErrPrimaryEntryPoint, "validate graph"), "primaries", primaries)
	}

	order := make([]InternedString, 0, len(g.nodes))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.nodes[u].EntryPoint().Dependencies {
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, u)
		return nil
	}

	for _, name := range g.insertion {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	g.executionOrder = order
	g.validated = true
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(zerr.Wrap(ErrCycleDetected, "validate graph"), "cycle", strings.Join(parts, " -> "))
}

// Validated reports whether the last call to Validate succeeded.
func (g *Graph) Validated() bool {
	return g.validated
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Get returns the node named name.
func (g *Graph) Get(name InternedString) (*EntryPointNode, bool) {
	node, ok := g.nodes[name]
	return node, ok
}

// Walk returns an iterator that yields nodes in graph order: execution order once
// validated, insertion order before.
func (g *Graph) Walk() iter.Seq[*EntryPointNode] {
	order := g.order()
	return func(yield func(*EntryPointNode) bool) {
		for _, name := range order {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}

// Nodes returns all nodes in graph order.
func (g *Graph) Nodes() []*EntryPointNode {
	return g.Filter(IsEntryPoint)
}

// Find returns the single node matching pred.
// It fails with ErrGraphLookup when zero or several nodes match.
func (g *Graph) Find(pred Predicate) (*EntryPointNode, error) {
	var found *EntryPointNode
	matches := 0
	for node := range g.Walk() {
		if pred(node) {
			found = node
			matches++
		}
	}
	if matches != 1 {
		return nil, zerr.With(zerr.Wrap(ErrGraphLookup, "find node"), "matches", matches)
	}
	return found, nil
}

// Filter returns every node matching pred in graph order.
func (g *Graph) Filter(pred Predicate) []*EntryPointNode {
	var out []*EntryPointNode
	for node := range g.Walk() {
		if pred(node) {
			out = append(out, node)
		}
	}
	return out
}

// Dependents returns the nodes that directly depend on name, in graph order.
func (g *Graph) Dependents(name InternedString) []*EntryPointNode {
	return g.Filter(DependsOn(name))
}

// Owner returns the node whose base path contains path. When base paths are nested
// the deepest one wins, so a file of a secondary entry point is not attributed to
// the primary entry point enclosing it.
func (g *Graph) Owner(path string) (*EntryPointNode, bool) {
	path = filepath.Clean(path)

	var owner *EntryPointNode
	best := -1
	for node := range g.Walk() {
		base := filepath.Clean(node.EntryPoint().BasePath)
		rel, err := filepath.Rel(base, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(base) > best {
			best = len(base)
			owner = node
		}
	}
	return owner, owner != nil
}

// NestedBasePaths returns the base paths of the other entry points that lie below the
// base path of name, in graph order.
func (g *Graph) NestedBasePaths(name InternedString) []string {
	node, ok := g.Get(name)
	if !ok {
		return nil
	}
	base := filepath.Clean(node.EntryPoint().BasePath)

	var nested []string
	for other := range g.Walk() {
		if other.Name() == name {
			continue
		}
		path := filepath.Clean(other.EntryPoint().BasePath)
		rel, err := filepath.Rel(base, path)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		nested = append(nested, path)
	}
	return nested
}

// Reset returns every node to pending for a new cycle.
func (g *Graph) Reset() {
	for node := range g.Walk() {
		node.Reset()
	}
}

func (g *Graph) order() []InternedString {
	if g.validated {
		return g.executionOrder
	}
	return g.insertion
}
