package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libpack/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/libpack/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/libpack/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/libpack/internal/adapters/progress"  //nolint:depguard // Wired in app layer
	"go.trai.ch/libpack/internal/adapters/toolchain" //nolint:depguard // Wired in app layer
	"go.trai.ch/libpack/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/libpack/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer needs.
type Components struct {
	App    *App
	Logger *logger.Logger
	// Progress is closed once the command finishes.
	Progress *progress.Recorder
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			watcher.NodeID,
			logger.NodeID,
			cas.StoreNodeID,
			toolchain.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.ConcreteNodeID,
			progress.RecorderNodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[*progress.Recorder](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log, Progress: recorder}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*cas.Store](ctx)
	if err != nil {
		return nil, err
	}

	tc, err := graft.Dep[*toolchain.Toolchain](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, w, log, store, tc), nil
}
