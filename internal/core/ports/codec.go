package ports

import "go.trai.ch/modload/internal/core/domain"

// ModuleCodec reads and writes the serialized binary-module format. The
// loader only ever probes the magic, validates, and round-trips the
// embedded dependency list; the payload stays opaque.
//
//go:generate go run go.uber.org/mock/mockgen -source=codec.go -destination=mocks/mock_codec.go -package=mocks
type ModuleCodec interface {
	// IsSerializedModule reports whether the buffer starts with the
	// serialized-module magic. A false result usually means a forwarding
	// record.
	IsSerializedModule(data []byte) bool

	// ValidateModule checks that the buffer is a well-formed serialized
	// module.
	ValidateModule(data []byte) error

	// ExtractDependencies validates the buffer and returns its embedded
	// dependency list.
	ExtractDependencies(data []byte) ([]domain.Dependency, error)

	// EncodeModule serializes a module payload with the given name and
	// dependency list. A nil deps slice encodes a module without
	// dependency records.
	EncodeModule(moduleName string, payload []byte, deps []domain.Dependency) ([]byte, error)
}
