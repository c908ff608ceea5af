// Package domain contains core domain types for module loading.
package domain

import "path/filepath"

// VerifierKind selects how a Dependency is re-validated against the
// filesystem.
type VerifierKind uint8

const (
	// VerifyByModTime re-validates by size and exact modification time.
	VerifyByModTime VerifierKind = iota
	// VerifyByContentHash re-validates by size and content hash.
	VerifyByContentHash
)

// Dependency describes a single file the module was built against. Exactly
// one verifier is carried, selected by Kind: ModTime holds the opaque
// 64-bit tick value for mtime-based records, ContentHash holds the xxHash64
// of the file contents for hash-based records.
type Dependency struct {
	// Path is the stored dependency path. For SDK-relative records this is
	// the suffix below the SDK root.
	Path string `yaml:"path"`

	// SDKRelative marks records whose Path must be resolved against the
	// current SDK root.
	SDKRelative bool `yaml:"sdk_relative,omitempty"`

	// Size is the file size in bytes at build time.
	Size uint64 `yaml:"size"`

	Kind        VerifierKind `yaml:"kind"`
	ModTime     uint64       `yaml:"mtime,omitempty"`
	ContentHash uint64       `yaml:"hash,omitempty"`
}

// ModTimeDependency creates a dependency verified by size and modification
// time.
func ModTimeDependency(path string, sdkRelative bool, size, mtime uint64) Dependency {
	return Dependency{
		Path:        path,
		SDKRelative: sdkRelative,
		Size:        size,
		Kind:        VerifyByModTime,
		ModTime:     mtime,
	}
}

// HashDependency creates a dependency verified by size and content hash.
func HashDependency(path string, sdkRelative bool, size, hash uint64) Dependency {
	return Dependency{
		Path:        path,
		SDKRelative: sdkRelative,
		Size:        size,
		Kind:        VerifyByContentHash,
		ContentHash: hash,
	}
}

// IsHashBased reports whether the record is verified by content hash.
func (d Dependency) IsHashBased() bool {
	return d.Kind == VerifyByContentHash
}

// ResolvePath returns the absolute path to stat for this dependency.
// SDK-relative paths are resolved by prepending the given SDK root.
func (d Dependency) ResolvePath(sdkRoot string) string {
	if d.SDKRelative {
		return filepath.Join(sdkRoot, d.Path)
	}
	return d.Path
}
