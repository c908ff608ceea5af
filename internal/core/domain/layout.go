package domain

import "io/fs"

// File extensions for the three artifact kinds handled by the loader.
const (
	// InterfaceExt is the extension of textual module interface files.
	InterfaceExt = "interface"
	// BinaryModuleExt is the extension of serialized binary modules.
	BinaryModuleExt = "binmod"
	// DocExt is the extension of module documentation sidecars.
	DocExt = "docmod"
)

// Filesystem permissions used when writing cache entries.
const (
	// DirPerm is the permission for created cache directories.
	DirPerm fs.FileMode = 0o755
	// FilePerm is the permission for written cache files.
	FilePerm fs.FileMode = 0o644
)
