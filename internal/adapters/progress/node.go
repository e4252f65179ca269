package progress

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/internal/core/ports"
)

const (
	// RecorderNodeID exposes the concrete recorder so it can be closed on shutdown.
	RecorderNodeID graft.ID = "adapter.progress.recorder"
	// NodeID is the unique identifier for the progress reporter Graft node.
	NodeID graft.ID = "adapter.progress"
)

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        RecorderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Recorder, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.ProgressReporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RecorderNodeID},
		Run: func(ctx context.Context) (ports.ProgressReporter, error) {
			rec, err := graft.Dep[*Recorder](ctx)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
	})
}
