package tracker

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/modload/internal/core/ports"
)

// NodeID is the unique identifier for the DependencyTracker Graft node.
const NodeID graft.ID = "adapter.tracker"

func init() {
	graft.Register(graft.Node[ports.DependencyTracker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.DependencyTracker, error) {
			return NewRecorder(), nil
		},
	})
}
