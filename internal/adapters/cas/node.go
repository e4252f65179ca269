package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/internal/core/ports"
)

const (
	// StoreNodeID exposes the concrete store so it can be bound to the loaded project.
	StoreNodeID graft.ID = "adapter.build_info_store.concrete"
	// NodeID is the unique identifier for the build info store Graft node.
	NodeID graft.ID = "adapter.build_info_store"
)

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Store, error) {
			return NewStore("")
		},
	})

	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{StoreNodeID},
		Run: func(ctx context.Context) (ports.BuildInfoStore, error) {
			store, err := graft.Dep[*Store](ctx)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
