package config

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the Settings Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Settings, error) {
			return NewLoader().Load(".")
		},
	})
}
