// Package ports defines the core interfaces for the loader.
package ports

import (
	"context"

	"go.trai.ch/modload/internal/core/domain"
)

// CompileResult is what a compiler driver hands back after turning an
// interface file into a module payload.
type CompileResult struct {
	// Payload is the compiled module contents, before the dependency list
	// is serialized around it.
	Payload []byte

	// Dependencies are the raw paths the sub-compilation read, as reported
	// by the driver's own dependency tracking. The interface file itself
	// need not be listed.
	Dependencies []string
}

// Compiler drives a sub-invocation of the external compiler.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile runs the sub-invocation and returns the compiled payload
	// together with the dependency paths it touched. Diagnostics are
	// forwarded to the parent diagnostic sink by the implementation.
	Compile(ctx context.Context, inv *domain.SubInvocation) (*CompileResult, error)
}
