package compiler

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/modload/internal/adapters/config"
	"go.trai.ch/modload/internal/adapters/logger"
	"go.trai.ch/modload/internal/core/ports"
)

// NodeID is the unique identifier for the Compiler Graft node.
const NodeID graft.ID = "adapter.compiler"

func init() {
	graft.Register(graft.Node[ports.Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDriver(settings.CompilerArgv, log), nil
		},
	})
}
