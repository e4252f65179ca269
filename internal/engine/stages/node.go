package stages

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/progress"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/pipeline"
)

// PipelineNodeID is the unique identifier for the entry point pipeline Graft node.
const PipelineNodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*pipeline.Pipeline]{
		ID:        PipelineNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.CompilerNodeID,
			toolchain.StylesheetNodeID,
			toolchain.ShimNodeID,
			fs.VerifierNodeID,
			progress.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*pipeline.Pipeline, error) {
			compiler, err := graft.Dep[ports.SourceCompiler](ctx)
			if err != nil {
				return nil, err
			}

			stylesheets, err := graft.Dep[ports.StylesheetProcessorFactory](ctx)
			if err != nil {
				return nil, err
			}

			shimProcessor, err := graft.Dep[ports.ShimProcessor](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.ProgressReporter](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return pipeline.New(
				reporter, tracer, log,
				NewCompile(compiler, stylesheets, shimProcessor),
				NewVerifyOutputs(verifier),
			), nil
		},
	})
}
