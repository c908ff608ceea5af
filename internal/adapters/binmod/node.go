package binmod

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/modload/internal/core/ports"
)

// NodeID is the unique identifier for the ModuleCodec Graft node.
const NodeID graft.ID = "adapter.binmod"

func init() {
	graft.Register(graft.Node[ports.ModuleCodec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ModuleCodec, error) {
			return NewCodec(), nil
		},
	})
}
