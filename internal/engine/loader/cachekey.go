package loader

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"go.trai.ch/modload/internal/core/domain"
)

// CacheKey derives the digest that disambiguates a cache entry. There is a
// balance between what goes in the key and what goes in the up-to-date
// check of the entry: compiler version, interface path, target and SDK keep
// unrelated configurations from fighting over one slot, while interface
// content and dependency state are left to invalidation so an edited
// interface rebuilds in place instead of filling the cache with dead
// entries. Deliberately excluded for the same reason: the source language
// version flag.
func CacheKey(inv *domain.Invocation, interfacePath string) string {
	h := xxhash.New()

	// Order matters; the digest must be stable across runs of the same
	// binary.
	writeKeyPart(h, inv.CompilerVersion)
	writeKeyPart(h, interfacePath)
	writeKeyPart(h, inv.TargetArch)
	writeKeyPart(h, inv.SDKRoot)
	if inv.TrackSystemDeps {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}

	return strconv.FormatUint(h.Sum64(), 36)
}

func writeKeyPart(h *xxhash.Digest, s string) {
	_, _ = h.WriteString(s)
	_, _ = h.Write([]byte{0}) // Separator
}

// CachedOutputPath composes the user-cache filename for a module:
// <cacheDir>/<moduleName>-<key>.<ext>.
func CachedOutputPath(cacheDir, moduleName string, inv *domain.Invocation, interfacePath string) string {
	name := fmt.Sprintf("%s-%s.%s", moduleName, CacheKey(inv, interfacePath), domain.BinaryModuleExt)
	return filepath.Join(cacheDir, name)
}
