// Package telemetry provides telemetry adapters. The Noop implementation
// is the default when no progress UI is attached.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/modload/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop discards all telemetry.
type Noop struct{}

// NewNoop creates a Noop telemetry sink.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (n *Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}
func (noopVertex) Cached()           {}
