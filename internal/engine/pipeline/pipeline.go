// Package pipeline composes transforms into the ordered build of one entry point.
package pipeline

import (
	"context"
	"io"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// Unit is what a transform operates on: the graph, the entry point being built and the
// cache shared by every entry point of the build.
type Unit struct {
	Graph *domain.Graph
	// Node is the entry point in progress. Transforms fall back to looking it up in Graph when nil.
	Node *domain.EntryPointNode
	// Shared holds the resources that exist once per build.
	Shared *domain.NodeCache
}

// Current returns the entry point in progress: Node when set, otherwise the single node of
// Graph in progress. A node that is not in progress fails with domain.ErrGraphLookup.
func (u Unit) Current() (*domain.EntryPointNode, error) {
	if u.Node == nil {
		if u.Graph == nil {
			return nil, zerr.Wrap(domain.ErrGraphLookup, "no graph to select the current entry point from")
		}
		return u.Graph.Find(domain.IsEntryPointInProgress)
	}
	if state := u.Node.State(); state != domain.NodeStateInProgress {
		err := zerr.With(zerr.Wrap(domain.ErrGraphLookup, "current entry point is not in progress"), "entry_point", u.Node.Name().String())
		return nil, zerr.With(err, "state", string(state))
	}
	return u.Node, nil
}

// Transform is one stage of the pipeline. It consumes a graph and returns the graph the
// next stage operates on, which may be the same one.
type Transform interface {
	Name() string
	Apply(ctx context.Context, unit Unit) (*domain.Graph, error)
}

// Func adapts a function to a Transform.
type Func struct {
	name string
	fn   func(ctx context.Context, unit Unit) (*domain.Graph, error)
}

// NewFunc creates a Transform named name running fn.
func NewFunc(name string, fn func(ctx context.Context, unit Unit) (*domain.Graph, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Name returns the transform name.
func (f *Func) Name() string {
	return f.name
}

// Apply runs the wrapped function.
func (f *Func) Apply(ctx context.Context, unit Unit) (*domain.Graph, error) {
	return f.fn(ctx, unit)
}

// Pipeline applies its transforms in order to one unit.
type Pipeline struct {
	transforms []Transform
	progress   ports.ProgressReporter
	tracer     ports.Tracer
	logger     ports.Logger
}

// New creates a Pipeline. Every transform is reported through progress and traced through tracer.
func New(progress ports.ProgressReporter, tracer ports.Tracer, logger ports.Logger, transforms ...Transform) *Pipeline {
	return &Pipeline{
		transforms: transforms,
		progress:   progress,
		tracer:     tracer,
		logger:     logger,
	}
}

// Transforms returns the transforms of the pipeline in order.
func (p *Pipeline) Transforms() []Transform {
	return p.transforms
}

// Run applies every transform to unit and returns the resulting graph.
// Cancellation of ctx is honored between transforms only; a running transform is not interrupted.
// The first failing transform stops the pipeline and its error is returned unchanged.
func (p *Pipeline) Run(ctx context.Context, unit Unit) (*domain.Graph, error) {
	for _, t := range p.transforms {
		if err := ctx.Err(); err != nil {
			return unit.Graph, err
		}

		graph, err := p.apply(ctx, t, unit)
		if err != nil {
			return unit.Graph, err
		}
		if graph != nil {
			unit.Graph = graph
		}
	}
	return unit.Graph, nil
}

func (p *Pipeline) apply(ctx context.Context, t Transform, unit Unit) (*domain.Graph, error) {
	label := t.Name()
	if unit.Node != nil {
		label += " " + unit.Node.Name().String()
	}

	ctx, span := p.tracer.Start(ctx, t.Name())
	defer span.End()
	if unit.Node != nil {
		span.SetAttribute("entry_point", unit.Node.Name().String())
	}

	progress := p.start(ctx, label)

	graph, err := t.Apply(context.WithoutCancel(ctx), unit)
	if err != nil {
		span.RecordError(err)
		p.signal(func() { progress.Fail(err) })
		return nil, err
	}

	p.signal(progress.Succeed)
	return graph, nil
}

// start opens a progress handle. A reporter that panics is replaced by a silent one.
func (p *Pipeline) start(ctx context.Context, label string) (progress ports.Progress) {
	progress = silentProgress{}
	defer zerr.Defer(p.reporterFailed)
	if started := p.progress.Start(ctx, label); started != nil {
		progress = started
	}
	return progress
}

// signal runs a progress callback. Reporting never changes the outcome of a transform.
func (p *Pipeline) signal(fn func()) {
	defer zerr.Defer(p.reporterFailed)
	fn()
}

func (p *Pipeline) reporterFailed(err error) {
	p.logger.Warn("progress reporter failed", "error", err)
}

type silentProgress struct{}

func (silentProgress) Output() io.Writer { return io.Discard }
func (silentProgress) Succeed()          {}
func (silentProgress) Fail(error)        {}
func (silentProgress) Cached()           {}
