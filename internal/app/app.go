// Package app implements the application layer for libpack.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/libpack/internal/adapters/watcher" //nolint:depguard // Debouncing belongs to the watch loop
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	watcher      ports.Watcher
	logger       ports.Logger
	binders      []ports.ProjectBinder
}

// New creates a new App instance. binders receive the project once its configuration is loaded.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	w ports.Watcher,
	log ports.Logger,
	binders ...ports.ProjectBinder,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		watcher:      w,
		logger:       log,
		binders:      binders,
	}
}

// BuildOptions configuration for the Build and Watch methods.
type BuildOptions struct {
	// ConfigPath is the configuration file or a directory to search for it.
	ConfigPath string
	Targets    []string
	Force      bool
	KeepGoing  bool
	// Jobs is the number of entry points built at the same time. Zero means one per CPU.
	Jobs int
}

func (o BuildOptions) schedulerOptions() scheduler.Options {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return scheduler.Options{
		Parallelism: jobs,
		Force:       o.Force,
		KeepGoing:   o.KeepGoing,
		Targets:     o.Targets,
	}
}

// Build loads the project and builds the selected entry points once.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	project, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}
	return a.build(ctx, project, domain.NewNodeCache(), opts)
}

func (a *App) load(path string) (*domain.Project, error) {
	if path == "" {
		path = "."
	}
	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	for _, b := range a.binders {
		if err := b.Bind(project); err != nil {
			return nil, zerr.Wrap(err, "failed to bind project")
		}
	}
	return project, nil
}

func (a *App) build(ctx context.Context, project *domain.Project, shared *domain.NodeCache, opts BuildOptions) error {
	start := time.Now()
	err := a.scheduler.Run(ctx, project.Graph, shared, opts.schedulerOptions())
	a.summarize(project, time.Since(start))
	if err != nil {
		return errors.Join(domain.ErrBuildFailed, err)
	}
	return nil
}

func (a *App) summarize(project *domain.Project, elapsed time.Duration) {
	counts := make(map[scheduler.EntryPointStatus]int)
	for _, status := range a.scheduler.Statuses() {
		counts[status]++
	}
	a.logger.Info("build finished",
		"package", project.Name,
		"built", counts[scheduler.StatusCompleted],
		"cached", counts[scheduler.StatusCached],
		"failed", counts[scheduler.StatusFailed],
		"skipped", counts[scheduler.StatusSkipped],
		"duration", elapsed.Round(time.Millisecond),
	)
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	BuildOptions
	// Debounce is the quiet period after a change before a rebuild starts.
	Debounce time.Duration
}

// Watch builds the project, then rebuilds the entry points owning changed files until ctx
// is cancelled. A failed cycle is logged and watching continues.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	project, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}
	shared := domain.NewNodeCache()

	a.cycle(ctx, project, shared, opts.BuildOptions)

	if err := a.watcher.Start(ctx, watchRoots(project)...); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	batches := make(chan []ports.WatchEvent, 1)
	debouncer := watcher.NewDebouncer(window, func(batch []ports.WatchEvent) {
		select {
		case batches <- batch:
		case <-ctx.Done():
		}
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		debouncer.Stop()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		for event := range a.watcher.Events() {
			if ignored(project, event.Path) {
				continue
			}
			debouncer.Add(event)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case batch := <-batches:
				if invalidated := invalidate(project.Graph, batch); len(invalidated) > 0 {
					a.logger.Info("sources changed", "entry_points", invalidated)
					a.cycle(ctx, project, shared, opts.BuildOptions)
				}
			}
		}
	})

	return g.Wait()
}

// cycle runs one build of a watch session and logs its failure.
func (a *App) cycle(ctx context.Context, project *domain.Project, shared *domain.NodeCache, opts BuildOptions) {
	err := a.build(ctx, project, shared, opts)
	if err == nil || ctx.Err() != nil {
		return
	}
	if errors.Is(err, domain.ErrShim) {
		// The gate is retried from scratch in the next cycle.
		shared.Delete(domain.SlotShimProcessing)
	}
	a.logger.Error(err)
}

// invalidate drops the cache of every entry point owning a changed path and returns
// their names.
func invalidate(graph *domain.Graph, batch []ports.WatchEvent) []string {
	var names []string
	for _, event := range batch {
		node, ok := graph.Owner(event.Path)
		if !ok {
			continue
		}
		name := node.Name().String()
		if slices.Contains(names, name) {
			continue
		}
		node.Invalidate()
		names = append(names, name)
	}
	return names
}

// watchRoots returns the base paths of the entry points, without those nested in another.
func watchRoots(project *domain.Project) []string {
	var bases []string
	for node := range project.Graph.Walk() {
		bases = append(bases, filepath.Clean(node.EntryPoint().BasePath))
	}
	slices.Sort(bases)
	bases = slices.Compact(bases)

	roots := make([]string, 0, len(bases))
	for _, base := range bases {
		if len(roots) > 0 && within(base, roots[len(roots)-1]) {
			continue
		}
		roots = append(roots, base)
	}
	return roots
}

// ignored reports whether path is build output or build state.
func ignored(project *domain.Project, path string) bool {
	return within(path, project.Dest) || within(path, project.StateDir())
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	// KeepOutputs leaves the destination directory in place.
	KeepOutputs bool
}

// Clean removes the persisted build state and the build outputs.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	project, err := a.load(opts.ConfigPath)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name), "path", path)
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(project.StateDir(), "build state")
	if !opts.KeepOutputs {
		remove(project.Dest, "build outputs")
	}
	return errs
}
