// Package scheduler drives the build pipeline over the entry points of a graph in dependency order.
package scheduler

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// EntryPointStatus represents the scheduling status of an entry point within one run.
type EntryPointStatus string

const (
	// StatusPending indicates the entry point is waiting for its dependencies.
	StatusPending EntryPointStatus = "Pending"
	// StatusRunning indicates the entry point's pipeline is running.
	StatusRunning EntryPointStatus = "Running"
	// StatusCompleted indicates the entry point was built.
	StatusCompleted EntryPointStatus = "Completed"
	// StatusFailed indicates the entry point's pipeline failed.
	StatusFailed EntryPointStatus = "Failed"
	// StatusCached indicates the entry point was skipped because its outputs are up to date.
	StatusCached EntryPointStatus = "Cached"
	// StatusSkipped indicates the entry point never started because the run stopped or a dependency failed.
	StatusSkipped EntryPointStatus = "Skipped"
)

// Options control one run of the scheduler.
type Options struct {
	// Parallelism is the number of entry points built at the same time. Values below 1 mean 1.
	Parallelism int
	// Force rebuilds entry points even when their outputs are up to date.
	Force bool
	// KeepGoing keeps building entry points that do not depend on a failed one.
	// A compatibility-shim failure always stops the run.
	KeepGoing bool
	// Targets restricts the run to the named entry points and their dependencies.
	Targets []string
}

// Scheduler manages the building of entry points in the dependency graph.
type Scheduler struct {
	pipeline *pipeline.Pipeline
	hasher   ports.Hasher
	store    ports.BuildInfoStore
	verifier ports.Verifier
	progress ports.ProgressReporter
	tracer   ports.Tracer
	logger   ports.Logger

	mu     sync.RWMutex
	status map[domain.InternedString]EntryPointStatus
}

// NewScheduler creates a new Scheduler running p for every entry point.
func NewScheduler(
	p *pipeline.Pipeline,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	verifier ports.Verifier,
	progress ports.ProgressReporter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		pipeline: p,
		hasher:   hasher,
		store:    store,
		verifier: verifier,
		progress: progress,
		tracer:   tracer,
		logger:   logger,
		status:   make(map[domain.InternedString]EntryPointStatus),
	}
}

// Statuses returns the status of every entry point of the last run.
func (s *Scheduler) Statuses() map[string]EntryPointStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]EntryPointStatus, len(s.status))
	for k, v := range s.status {
		out[k.String()] = v
	}
	return out
}

func (s *Scheduler) updateStatus(name domain.InternedString, status EntryPointStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[name] = status
}

// Run builds the entry points of graph. An entry point starts only after all its dependencies
// are done. A secondary entry point compiled with the compatibility shim also waits for the
// primary, whose compilation runs the shim pass. shared is the cache of resources that exist once per build; it is handed to every
// pipeline run. Cancellation of ctx stops scheduling new entry points; running ones finish.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, shared *domain.NodeCache, opts Options) error {
	if !graph.Validated() {
		return zerr.Wrap(domain.ErrGraphNotValidated, "run scheduler")
	}

	prereqs := prerequisites(graph)
	selected, err := selectEntryPoints(graph, prereqs, opts.Targets)
	if err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "build")
	defer span.End()

	state := s.newRunState(ctx, graph, shared, prereqs, selected, opts)
	s.tracer.EmitPlan(ctx, state.plan())

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		res := <-state.resultsCh
		state.handleResult(res)
	}

	state.skipRemaining()

	if ctx.Err() != nil {
		state.errs = errors.Join(state.errs, ctx.Err())
	}
	if state.errs != nil {
		span.RecordError(state.errs)
	}
	return state.errs
}

// selectEntryPoints returns the entry points named by targets and their transitive
// prerequisites, or every entry point when targets is empty.
func selectEntryPoints(
	graph *domain.Graph,
	prereqs map[domain.InternedString][]domain.InternedString,
	targets []string,
) (map[domain.InternedString]bool, error) {
	selected := make(map[domain.InternedString]bool, graph.Len())
	if len(targets) == 0 {
		for node := range graph.Walk() {
			selected[node.Name()] = true
		}
		return selected, nil
	}

	var visit func(name domain.InternedString)
	visit = func(name domain.InternedString) {
		if selected[name] {
			return
		}
		selected[name] = true
		for _, dep := range prereqs[name] {
			visit(dep)
		}
	}

	for _, target := range targets {
		name := domain.NewInternedString(target)
		if _, ok := graph.Get(name); !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrEntryPointNotFound, "select entry points"), "entry_point", target)
		}
		visit(name)
	}
	return selected, nil
}

type result struct {
	name   domain.InternedString
	cached bool
	err    error
}

type schedulerRunState struct {
	graph       *domain.Graph
	shared      *domain.NodeCache
	selected    map[domain.InternedString]bool
	dependents  map[domain.InternedString][]domain.InternedString
	inDegree    map[domain.InternedString]int
	ready       []domain.InternedString
	active      int
	failed      bool
	aborted     bool
	resultsCh   chan result
	errs        error
	ctx         context.Context
	opts        Options
	parallelism int
	s           *Scheduler
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	shared *domain.NodeCache,
	prereqs map[domain.InternedString][]domain.InternedString,
	selected map[domain.InternedString]bool,
	opts Options,
) *schedulerRunState {
	parallelism := max(opts.Parallelism, 1)

	s.mu.Lock()
	s.status = make(map[domain.InternedString]EntryPointStatus, len(selected))
	s.mu.Unlock()

	inDegree := make(map[domain.InternedString]int, len(selected))
	dependents := make(map[domain.InternedString][]domain.InternedString, len(selected))
	var ready []domain.InternedString

	// Walking in graph order keeps the ready queue deterministic.
	for node := range graph.Walk() {
		name := node.Name()
		if !selected[name] {
			continue
		}
		node.Reset()
		s.updateStatus(name, StatusPending)

		degree := 0
		for _, dep := range prereqs[name] {
			if selected[dep] {
				degree++
				dependents[dep] = append(dependents[dep], name)
			}
		}
		inDegree[name] = degree
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	return &schedulerRunState{
		graph:       graph,
		shared:      shared,
		selected:    selected,
		dependents:  dependents,
		inDegree:    inDegree,
		ready:       ready,
		resultsCh:   make(chan result, parallelism),
		ctx:         ctx,
		opts:        opts,
		parallelism: parallelism,
		s:           s,
	}
}

func (state *schedulerRunState) plan() []string {
	names := make([]string, 0, len(state.selected))
	for node := range state.graph.Walk() {
		if state.selected[node.Name()] {
			names = append(names, node.Name().String())
		}
	}
	return names
}

// halted reports whether no further entry point may start.
func (state *schedulerRunState) halted() bool {
	return state.ctx.Err() != nil || state.aborted || (state.failed && !state.opts.KeepGoing)
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && (len(state.ready) == 0 || state.halted())
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && !state.halted() {
		name := state.ready[0]
		state.ready = state.ready[1:]

		node, _ := state.graph.Get(name)
		state.active++
		state.s.updateStatus(name, StatusRunning)

		go func() {
			res := result{name: name}
			defer func() { state.resultsCh <- res }()
			defer zerr.Defer(func(err error) { res.err = err })
			res.cached, res.err = state.build(node)
		}()
	}
}

// build runs the pipeline for node unless its recorded outputs are still valid.
func (state *schedulerRunState) build(node *domain.EntryPointNode) (bool, error) {
	if err := node.Begin(); err != nil {
		return false, err
	}
	data := node.Data()
	name := data.EntryPoint.Name.String()

	inputHash, err := state.computeInputHash(&data)
	if err != nil {
		_ = node.Fail(err)
		return false, err
	}

	if !state.opts.Force && state.checkCacheHit(name, inputHash, data.DestinationFiles.Required()) {
		state.s.reportCached(state.ctx, name)
		return true, node.Complete()
	}

	if _, err := state.s.pipeline.Run(state.ctx, pipeline.Unit{
		Graph:  state.graph,
		Node:   node,
		Shared: state.shared,
	}); err != nil {
		_ = node.Fail(err)
		return false, err
	}

	if err := state.updateCache(name, inputHash, data.DestinationFiles.Required()); err != nil {
		_ = node.Fail(err)
		return false, err
	}
	return false, node.Complete()
}

// computeInputHash hashes the entry point together with the output hashes of its
// dependencies, so a rebuilt dependency invalidates its dependents. Sources of nested
// entry points are left to their own hash.
func (state *schedulerRunState) computeInputHash(data *domain.NodeData) (string, error) {
	depHashes := make(map[string]string, len(data.EntryPoint.Dependencies))
	for _, dep := range data.EntryPoint.Dependencies {
		info, err := state.s.store.Get(dep.String())
		if err != nil {
			return "", err
		}
		if info != nil {
			depHashes[dep.String()] = info.OutputHash
		}
	}

	nested := state.graph.NestedBasePaths(data.EntryPoint.Name)
	hash, err := state.s.hasher.ComputeInputHash(data, depHashes, nested)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInputHashComputationFailed.Error()), "entry_point", data.EntryPoint.Name.String())
	}
	return hash, nil
}

func (state *schedulerRunState) checkCacheHit(name, inputHash string, outputs []string) bool {
	info, err := state.s.store.Get(name)
	if err != nil || info == nil || info.InputHash != inputHash {
		return false
	}
	ok, err := state.s.verifier.VerifyOutputs(outputs)
	return err == nil && ok
}

func (state *schedulerRunState) updateCache(name, inputHash string, outputs []string) error {
	outputHash, err := state.s.hasher.ComputeOutputHash(outputs)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputHashComputationFailed.Error()), "entry_point", name)
	}

	return state.s.store.Put(domain.BuildInfo{
		EntryPoint: name,
		InputHash:  inputHash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	})
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	node, _ := state.graph.Get(res.name)

	if res.err != nil {
		if node.State() == domain.NodeStateInProgress {
			_ = node.Fail(res.err)
		}
		wrappedErr := zerr.With(zerr.Wrap(res.err, "entry point build failed"), "entry_point", res.name.String())
		state.errs = errors.Join(state.errs, wrappedErr)
		state.failed = true
		if errors.Is(res.err, domain.ErrShim) {
			state.aborted = true
		}
		state.s.updateStatus(res.name, StatusFailed)
		return
	}

	if res.cached {
		state.s.updateStatus(res.name, StatusCached)
	} else {
		state.s.updateStatus(res.name, StatusCompleted)
	}
	for _, name := range state.dependents[res.name] {
		state.inDegree[name]--
		if state.inDegree[name] == 0 {
			state.ready = append(state.ready, name)
		}
	}
}

// skipRemaining marks every entry point that never started.
func (state *schedulerRunState) skipRemaining() {
	state.s.mu.Lock()
	defer state.s.mu.Unlock()
	for name := range maps.Keys(state.selected) {
		if state.s.status[name] == StatusPending {
			state.s.status[name] = StatusSkipped
		}
	}
}

// reportCached signals a cache hit. A failing reporter is logged and ignored.
func (s *Scheduler) reportCached(ctx context.Context, name string) {
	defer zerr.Defer(func(err error) {
		s.logger.Warn("progress reporter failed", "error", err)
	})
	if p := s.progress.Start(ctx, name); p != nil {
		p.Cached()
	}
}
