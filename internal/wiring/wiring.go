// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/libpack/internal/adapters/cas"
	_ "go.trai.ch/libpack/internal/adapters/config"
	_ "go.trai.ch/libpack/internal/adapters/fs"
	_ "go.trai.ch/libpack/internal/adapters/logger"
	_ "go.trai.ch/libpack/internal/adapters/progress"
	_ "go.trai.ch/libpack/internal/adapters/shell"
	_ "go.trai.ch/libpack/internal/adapters/telemetry"
	_ "go.trai.ch/libpack/internal/adapters/toolchain"
	_ "go.trai.ch/libpack/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/libpack/internal/app"
	_ "go.trai.ch/libpack/internal/engine/scheduler"
	_ "go.trai.ch/libpack/internal/engine/stages"
)
