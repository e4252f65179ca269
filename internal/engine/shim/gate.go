// Package shim coordinates the compatibility-shim pass that third-party packages need
// before the source compiler can resolve them.
package shim

import (
	"context"
	"sync"
	"sync/atomic"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
)

var _ ports.ShimGate = (*Gate)(nil)

// Gate runs the full shim pass at most once per build and remembers its outcome.
// All calls into the processor are serialized.
type Gate struct {
	processor ports.ShimProcessor
	req       ports.ShimRequest

	mu        sync.Mutex
	ran       bool
	err       error
	processed atomic.Bool
	modules   map[string]error
}

// NewGate creates a Gate running processor over the project described by req.
func NewGate(processor ports.ShimProcessor, req ports.ShimRequest) *Gate {
	return &Gate{
		processor: processor,
		req:       req,
		modules:   make(map[string]error),
	}
}

// Obtain returns the gate stored in the build-wide shared cache, constructing it on first use.
// The first successful construction wins; later callers share it.
func Obtain(shared *domain.NodeCache, processor ports.ShimProcessor, req ports.ShimRequest) (*Gate, error) {
	return domain.Memo(shared, domain.SlotShimProcessing, func() (*Gate, error) {
		return NewGate(processor, req), nil
	})
}

// Process runs the full shim pass. Only the first call reaches the processor; later calls
// return the remembered outcome, including a failure, without retrying.
func (g *Gate) Process(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ran {
		return g.err
	}
	g.ran = true
	g.err = g.processor.ProcessAll(ctx, g.req)
	if g.err == nil {
		g.processed.Store(true)
	}
	return g.err
}

// Processed reports whether the full pass completed successfully.
func (g *Gate) Processed() bool {
	return g.processed.Load()
}

// Ran reports whether the full pass was attempted.
func (g *Gate) Ran() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ran
}

// EnsureModule shims a single module unless the full pass already covered it.
// Each module is attempted at most once. A call made while the full pass is running
// waits for it.
func (g *Gate) EnsureModule(ctx context.Context, module string) error {
	if g.Processed() {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.processed.Load() {
		return nil
	}
	if err, ok := g.modules[module]; ok {
		return err
	}
	err := g.processor.ProcessModule(ctx, g.req, module)
	g.modules[module] = err
	return err
}
