// Package app implements the application layer for modload.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/zerr"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
	"go.trai.ch/modload/internal/engine/loader"
)

// App represents the main application logic.
type App struct {
	loader    *loader.Loader
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new App instance.
func New(l *loader.Loader, telemetry ports.Telemetry, logger ports.Logger) *App {
	return &App{
		loader:    l,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Load resolves one module in dir and returns the binary module buffer
// together with its doc sidecar.
func (a *App) Load(ctx context.Context, dir, moduleName string) (*loader.Result, error) {
	ctx, vtx := a.telemetry.Record(ctx, fmt.Sprintf("load %s", moduleName))

	moduleFilename := moduleName + "." + domain.BinaryModuleExt
	docFilename := moduleName + "." + domain.DocExt

	res, err := a.loader.FindModule(ctx, dir, moduleName, moduleFilename, docFilename)
	vtx.Complete(err)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load module"), "module", moduleName)
	}

	a.logger.Info("loaded module", "module", moduleName, "bytes", len(res.Buffer))
	return res, nil
}

// Build force-builds a module from its interface, bypassing discovery, and
// writes the artifact to outPath.
func (a *App) Build(ctx context.Context, interfacePath, moduleName, outPath string) error {
	ctx, vtx := a.telemetry.Record(ctx, fmt.Sprintf("build %s", moduleName))

	err := a.loader.BuildModule(ctx, interfacePath, moduleName, outPath)
	vtx.Complete(err)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build module"), "module", moduleName)
	}

	a.logger.Info("built module", "module", moduleName, "output", outPath)
	return nil
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}
