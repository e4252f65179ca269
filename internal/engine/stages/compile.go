// Package stages contains the transforms that build one entry point.
package stages

import (
	"context"
	"path/filepath"
	"sync"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/pathmap"
	"go.trai.ch/libpack/internal/engine/pipeline"
	"go.trai.ch/libpack/internal/engine/shim"
	"go.trai.ch/zerr"
)

// Phase is the position of an entry point in the compilation stage.
type Phase string

const (
	// PhaseSelected indicates the entry point was identified as the one in progress.
	PhaseSelected Phase = "selected"
	// PhaseConfigPrepared indicates the path-mapped compiler configuration was derived.
	PhaseConfigPrepared Phase = "config-prepared"
	// PhaseShimChecked indicates the compatibility shim ran or was not needed.
	PhaseShimChecked Phase = "shim-checked"
	// PhaseCompiled indicates sources and declarations were emitted.
	PhaseCompiled Phase = "compiled"
	// PhaseDone indicates the stage completed.
	PhaseDone Phase = "done"
	// PhaseFailed indicates the stage failed.
	PhaseFailed Phase = "failed"
)

// CompileName is the name of the compilation transform.
const CompileName = "compile"

var _ pipeline.Transform = (*Compile)(nil)

// Compile is the transform that compiles the sources of the entry point in progress.
type Compile struct {
	compiler    ports.SourceCompiler
	stylesheets ports.StylesheetProcessorFactory
	shim        ports.ShimProcessor

	mu     sync.RWMutex
	phases map[domain.InternedString]Phase
}

// NewCompile creates the compilation transform.
func NewCompile(
	compiler ports.SourceCompiler,
	stylesheets ports.StylesheetProcessorFactory,
	shimProcessor ports.ShimProcessor,
) *Compile {
	return &Compile{
		compiler:    compiler,
		stylesheets: stylesheets,
		shim:        shimProcessor,
		phases:      make(map[domain.InternedString]Phase),
	}
}

// Name returns the transform name.
func (c *Compile) Name() string {
	return CompileName
}

// Phase returns the last phase the entry point named name reached.
func (c *Compile) Phase(name string) (Phase, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	phase, ok := c.phases[domain.NewInternedString(name)]
	return phase, ok
}

// Apply compiles the entry point in progress. On failure the error of the failing
// collaborator is returned unchanged.
func (c *Compile) Apply(ctx context.Context, unit pipeline.Unit) (*domain.Graph, error) {
	node, err := unit.Current()
	if err != nil {
		return nil, err
	}
	name := node.Name()
	c.setPhase(name, PhaseSelected)

	if err := c.compile(ctx, unit, node); err != nil {
		c.setPhase(name, PhaseFailed)
		return nil, err
	}

	c.setPhase(name, PhaseDone)
	return unit.Graph, nil
}

func (c *Compile) compile(ctx context.Context, unit pipeline.Unit, node *domain.EntryPointNode) error {
	name := node.Name()
	data := node.Data()

	entryPoints := unit.Graph.Filter(domain.IsEntryPoint)
	tsConfig := pathmap.SetDependenciesPaths(node, entryPoints)
	c.setPhase(name, PhaseConfigPrepared)

	cache := node.Cache()
	stylesheets, err := domain.Memo(cache, domain.SlotStylesheetProcessor, func() (ports.StylesheetProcessor, error) {
		return c.stylesheets.New(ctx, ports.StylesheetOptions{
			BasePath:     data.EntryPoint.BasePath,
			CSSURL:       data.EntryPoint.CSSURL,
			IncludePaths: data.EntryPoint.StyleIncludePaths,
		})
	})
	if err != nil {
		return err
	}

	resolution, err := domain.Memo(cache, domain.SlotModuleResolution, func() (*domain.ModuleResolutionCache, error) {
		return domain.NewModuleResolutionCache(), nil
	})
	if err != nil {
		return err
	}

	var gate ports.ShimGate
	if tsConfig.Options.EnableShim {
		if unit.Shared == nil {
			return zerr.With(zerr.Wrap(domain.ErrMissingSharedCache, "obtain shim gate"), "entry_point", name.String())
		}
		g, err := shim.Obtain(unit.Shared, c.shim, shimRequest(unit.Graph, node))
		if err != nil {
			return err
		}
		if node.IsPrimary() {
			if err := g.Process(ctx); err != nil {
				return err
			}
		}
		gate = g
	}
	c.setPhase(name, PhaseShimChecked)

	err = c.compiler.Compile(ctx, &ports.CompileRequest{
		Graph:            unit.Graph,
		Node:             node,
		TsConfig:         tsConfig,
		ModuleResolution: resolution,
		Stylesheets:      stylesheets,
		Options: ports.CompileOptions{
			OutDir:         filepath.Dir(data.DestinationFiles.ESM2015),
			DeclarationDir: filepath.Dir(data.DestinationFiles.Declarations),
			Declaration:    true,
			Target:         domain.TargetES2015,
		},
		Shim: gate,
	})
	if err != nil {
		return err
	}
	c.setPhase(name, PhaseCompiled)
	return nil
}

// shimRequest describes the project the shim pass runs over. It is taken from the primary
// entry point so the gate is the same whichever entry point constructs it.
func shimRequest(graph *domain.Graph, current *domain.EntryPointNode) ports.ShimRequest {
	root := current
	if primary, err := graph.Find(domain.IsPrimaryEntryPoint); err == nil {
		root = primary
	}
	data := root.Data()
	return ports.ShimRequest{
		BasePath: data.EntryPoint.BasePath,
		Project:  data.TsConfig.Project,
	}
}

func (c *Compile) setPhase(name domain.InternedString, phase Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phases[name] = phase
}
