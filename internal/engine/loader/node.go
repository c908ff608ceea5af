package loader

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/modload/internal/adapters/binmod"
	"go.trai.ch/modload/internal/adapters/compiler"
	"go.trai.ch/modload/internal/adapters/config"
	fsadapter "go.trai.ch/modload/internal/adapters/fs"
	"go.trai.ch/modload/internal/adapters/logger"
	"go.trai.ch/modload/internal/adapters/tracker"
	"go.trai.ch/modload/internal/core/ports"
)

// NodeID is the unique identifier for the Loader Graft node.
const NodeID graft.ID = "engine.loader"

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fsadapter.NodeID,
			binmod.NodeID,
			compiler.NodeID,
			logger.NodeID,
			tracker.NodeID,
		},
		Run: func(ctx context.Context) (*Loader, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			fs, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			codec, err := graft.Dep[ports.ModuleCodec](ctx)
			if err != nil {
				return nil, err
			}
			comp, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			track, err := graft.Dep[ports.DependencyTracker](ctx)
			if err != nil {
				return nil, err
			}
			return New(fs, codec, comp, fsadapter.NewDocLoader(), track, log,
				&settings.Invocation, settings.Mode)
		},
	})
}
