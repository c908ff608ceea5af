package loader

import (
	"github.com/cespare/xxhash/v2"

	"go.trai.ch/modload/internal/core/domain"
)

// depIsUpToDate checks one dependency record against the file currently at
// fullPath. Stat or read failures count as stale, not as errors.
func (ld *load) depIsUpToDate(dep domain.Dependency, fullPath string) bool {
	info, err := ld.l.fs.Stat(fullPath)
	if err != nil {
		return false
	}

	// A size change always means the file changed.
	if uint64(info.Size()) != dep.Size {
		return false
	}

	// Modification times compare as opaque 64-bit tick values.
	if !dep.IsHashBased() {
		return uint64(info.ModTime().UnixNano()) == dep.ModTime
	}

	// Slow path: re-read and re-hash the contents.
	data, err := ld.l.fs.ReadFile(fullPath)
	if err != nil {
		return false
	}
	return xxhash.Sum64(data) == dep.ContentHash
}

// depsUpToDate reports whether every dependency record matches the current
// filesystem. Each examined path is also reported to the dependency
// tracker, tagged system iff SDK-relative.
func (ld *load) depsUpToDate(deps []domain.Dependency) bool {
	for _, dep := range deps {
		fullPath := dep.ResolvePath(ld.l.inv.SDKRoot)
		if ld.l.tracker != nil {
			ld.l.tracker.AddDependency(fullPath, dep.SDKRelative)
		}
		if !ld.depIsUpToDate(dep, fullPath) {
			ld.l.logger.Debug("dependency is out of date", "path", dep.Path)
			return false
		}
	}
	return true
}
