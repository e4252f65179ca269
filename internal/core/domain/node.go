package domain

import (
	"sync"

	"go.trai.ch/zerr"
)

// NodeState is the processing state of an entry point node within one build cycle.
type NodeState string

const (
	// NodeStatePending indicates the node has not been processed in the current cycle.
	NodeStatePending NodeState = "pending"
	// NodeStateInProgress indicates the node's pipeline is running.
	NodeStateInProgress NodeState = "in-progress"
	// NodeStateDone indicates the node was built successfully.
	NodeStateDone NodeState = "done"
	// NodeStateFailed indicates a stage failed for the node in the current cycle.
	NodeStateFailed NodeState = "failed"
)

// IsTerminal reports whether the state ends the node's current cycle.
func (s NodeState) IsTerminal() bool {
	return s == NodeStateDone || s == NodeStateFailed
}

// NodeData is the derived build state of an entry point node.
type NodeData struct {
	EntryPoint       EntryPoint
	TsConfig         TsConfig
	DestinationFiles DestinationFiles
}

// EntryPointNode wraps one entry point in the build graph.
// The node owns its cache, which persists across rebuild cycles until invalidated.
type EntryPointNode struct {
	mu    sync.RWMutex
	data  NodeData
	cache *NodeCache
	state NodeState
	err   error
}

// NewEntryPointNode creates a pending node for data.
func NewEntryPointNode(data *NodeData) *EntryPointNode {
	return &EntryPointNode{
		data:  *data,
		state: NodeStatePending,
	}
}

// Name returns the entry point name.
func (n *EntryPointNode) Name() InternedString {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.data.EntryPoint.Name
}

// Data returns the node's build state. Callers must treat the returned slices and maps as read-only.
func (n *EntryPointNode) Data() NodeData {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.data
}

// EntryPoint returns the wrapped entry point.
func (n *EntryPointNode) EntryPoint() EntryPoint {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.data.EntryPoint
}

// SetData replaces the node's build state, keeping its identity and cache.
// The name is kept, so a node cannot be renamed once it is in a graph.
func (n *EntryPointNode) SetData(data *NodeData) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state == NodeStateInProgress {
		return zerr.With(zerr.Wrap(ErrInvalidStateTransition, "set node data"), "entry_point", n.data.EntryPoint.Name.String())
	}
	name := n.data.EntryPoint.Name
	n.data = *data
	n.data.EntryPoint.Name = name
	return nil
}

// IsPrimary reports whether the node wraps the package root entry point.
func (n *EntryPointNode) IsPrimary() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return !n.data.EntryPoint.IsSecondaryEntryPoint
}

// State returns the node's processing state.
func (n *EntryPointNode) State() NodeState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// Err returns the error the node failed with in the current cycle.
func (n *EntryPointNode) Err() error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.err
}

// Cache returns the node's cache, creating it on first use.
func (n *EntryPointNode) Cache() *NodeCache {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cache == nil {
		n.cache = NewNodeCache()
	}
	return n.cache
}

// Begin moves the node from pending to in-progress.
func (n *EntryPointNode) Begin() error {
	return n.transition(NodeStatePending, NodeStateInProgress, nil)
}

// Complete moves the node from in-progress to done.
func (n *EntryPointNode) Complete() error {
	return n.transition(NodeStateInProgress, NodeStateDone, nil)
}

// Fail moves the node from in-progress to failed and records cause.
func (n *EntryPointNode) Fail(cause error) error {
	return n.transition(NodeStateInProgress, NodeStateFailed, cause)
}

// Reset returns the node to pending for a new cycle. The cache is kept.
func (n *EntryPointNode) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = NodeStatePending
	n.err = nil
}

// Invalidate drops the node's cache so every resource is rebuilt on the next cycle.
func (n *EntryPointNode) Invalidate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cache = nil
}

func (n *EntryPointNode) transition(from, to NodeState, cause error) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state != from {
		err := zerr.With(zerr.Wrap(ErrInvalidStateTransition, "transition node"), "entry_point", n.data.EntryPoint.Name.String())
		err = zerr.With(err, "from", string(n.state))
		return zerr.With(err, "to", string(to))
	}
	n.state = to
	n.err = cause
	return nil
}
