package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/modload/internal/core/ports"
)

// NodeID is the unique identifier for the FileSystem Graft node.
const NodeID graft.ID = "adapter.fs"

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.FileSystem, error) {
			return NewOS(), nil
		},
	})
}
