package domain

import "slices"

// Predicate selects nodes of a Graph.
type Predicate func(*EntryPointNode) bool

// IsEntryPoint matches every entry point node, whatever its state.
func IsEntryPoint(n *EntryPointNode) bool {
	return n != nil
}

// IsEntryPointInProgress matches the node whose pipeline is running.
func IsEntryPointInProgress(n *EntryPointNode) bool {
	return n != nil && n.State() == NodeStateInProgress
}

// IsPrimaryEntryPoint matches the package root entry point.
func IsPrimaryEntryPoint(n *EntryPointNode) bool {
	return n != nil && n.IsPrimary()
}

// IsSecondaryEntryPoint matches sub-export entry points.
func IsSecondaryEntryPoint(n *EntryPointNode) bool {
	return n != nil && !n.IsPrimary()
}

// InState matches nodes in state s.
func InState(s NodeState) Predicate {
	return func(n *EntryPointNode) bool {
		return n != nil && n.State() == s
	}
}

// HasName matches the node named name.
func HasName(name string) Predicate {
	return func(n *EntryPointNode) bool {
		return n != nil && n.Name().String() == name
	}
}

// DependsOn matches nodes that directly depend on name.
func DependsOn(name InternedString) Predicate {
	return func(n *EntryPointNode) bool {
		return n != nil && slices.Contains(n.EntryPoint().Dependencies, name)
	}
}

// And matches nodes that satisfy every predicate.
func And(preds ...Predicate) Predicate {
	return func(n *EntryPointNode) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}
