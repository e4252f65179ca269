package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/progress"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/pipeline"
	"go.trai.ch/libpack/internal/engine/stages"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			stages.PipelineNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			fs.VerifierNodeID,
			progress.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			p, err := graft.Dep[*pipeline.Pipeline](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
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

			return NewScheduler(p, hasher, store, verifier, reporter, tracer, log), nil
		},
	})
}
