// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/modload/internal/adapters/binmod"
	_ "go.trai.ch/modload/internal/adapters/compiler"
	_ "go.trai.ch/modload/internal/adapters/config"
	_ "go.trai.ch/modload/internal/adapters/fs"
	_ "go.trai.ch/modload/internal/adapters/logger"
	_ "go.trai.ch/modload/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/modload/internal/adapters/tracker"
	// Register app and engine nodes.
	_ "go.trai.ch/modload/internal/app"
	_ "go.trai.ch/modload/internal/engine/loader"
)
