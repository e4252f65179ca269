package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/internal/adapters/logger"
	"go.trai.ch/libpack/internal/adapters/shell"
	"go.trai.ch/libpack/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the toolchain Graft node.
	NodeID graft.ID = "adapter.toolchain"
	// CompilerNodeID is the unique identifier for the source compiler Graft node.
	CompilerNodeID graft.ID = "adapter.toolchain.compiler"
	// StylesheetNodeID is the unique identifier for the stylesheet processor factory Graft node.
	StylesheetNodeID graft.ID = "adapter.toolchain.stylesheet"
	// ShimNodeID is the unique identifier for the shim processor Graft node.
	ShimNodeID graft.ID = "adapter.toolchain.shim"
)

func init() {
	graft.Register(graft.Node[*Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Toolchain, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner, log), nil
		},
	})

	graft.Register(graft.Node[ports.SourceCompiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.SourceCompiler, error) {
			tc, err := graft.Dep[*Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(tc), nil
		},
	})

	graft.Register(graft.Node[ports.StylesheetProcessorFactory]{
		ID:        StylesheetNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.StylesheetProcessorFactory, error) {
			tc, err := graft.Dep[*Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			return NewStylesheetFactory(tc), nil
		},
	})

	graft.Register(graft.Node[ports.ShimProcessor]{
		ID:        ShimNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.ShimProcessor, error) {
			tc, err := graft.Dep[*Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			return NewShimProcessor(tc), nil
		},
	})
}
