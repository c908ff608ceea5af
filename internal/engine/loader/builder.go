package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
)

// Builder compiles an interface file into a binary module buffer, collects
// the flattened dependency list, and writes the artifact to the user
// cache.
type Builder struct {
	fs       ports.FileSystem
	codec    ports.ModuleCodec
	compiler ports.Compiler
	logger   ports.Logger
	tracker  ports.DependencyTracker

	inv           *domain.Invocation
	interfacePath string
	moduleName    string

	subInv domain.SubInvocation
}

// NewBuilder creates a Builder and seeds its sub-invocation from the
// parent invocation.
func NewBuilder(
	fs ports.FileSystem,
	codec ports.ModuleCodec,
	compiler ports.Compiler,
	logger ports.Logger,
	tracker ports.DependencyTracker,
	inv *domain.Invocation,
	interfacePath string,
	moduleName string,
) *Builder {
	b := &Builder{
		fs:            fs,
		codec:         codec,
		compiler:      compiler,
		logger:        logger,
		tracker:       tracker,
		inv:           inv,
		interfacePath: interfacePath,
		moduleName:    moduleName,
	}
	b.configureSubInvocation()
	return b
}

// SubInvocation exposes the configured sub-invocation.
func (b *Builder) SubInvocation() *domain.SubInvocation {
	return &b.subInv
}

// configureSubInvocation copies state from the parent invocation into the
// sub-invocation.
func (b *Builder) configureSubInvocation() {
	b.subInv = domain.SubInvocation{
		ModuleName:           b.moduleName,
		InterfacePath:        b.interfacePath,
		TargetArch:           b.inv.TargetArch,
		SDKRoot:              b.inv.SDKRoot,
		ImportSearchPaths:    slices.Clone(b.inv.ImportSearchPaths),
		FrameworkSearchPaths: slices.Clone(b.inv.FrameworkSearchPaths),
		RuntimeResourcePath:  b.inv.RuntimeResourcePath,
		ModuleCachePath:      b.inv.ModuleCachePath,
		PrebuiltCachePath:    b.inv.PrebuiltCachePath,

		// The user of a distributed interface is in no position to fix
		// warnings in it.
		SuppressWarnings: true,
		OptimizeForSpeed: true,

		DebuggerSupport: b.inv.DebuggerSupport,
		TrackSystemDeps: b.inv.TrackSystemDeps,
		SerializeHashes: b.inv.SerializeDependencyHashes,
	}
}

// Build compiles the interface to a binary module at outPath and returns
// the module buffer. serializeDeps controls whether the flattened
// dependency list is embedded in the artifact.
func (b *Builder) Build(ctx context.Context, outPath string, serializeDeps bool) ([]byte, error) {
	if b.inv.ModuleCachePath != "" {
		if err := b.fs.MkdirAll(b.inv.ModuleCachePath); err != nil {
			return nil, zerr.Wrap(domain.ErrCacheCreateFailed, err.Error())
		}
	}

	data, err := b.fs.ReadFile(b.interfacePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedInterface, "failed to open module interface"),
			"path", b.interfacePath)
	}

	vers, args, err := ExtractVersionAndFlags(data)
	if err != nil {
		return nil, err
	}

	// Anything with the same major version is supported; minor drift may
	// carry compatible field variants.
	if vers.Major != domain.InterfaceFormatVersion.Major {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedFormatVersion,
			fmt.Sprintf("unsupported version %d.%d of module interface", vers.Major, vers.Minor)),
			"path", b.interfacePath)
	}

	b.subInv.OutputPath = outPath
	expectedModuleName := b.subInv.ModuleName

	if err := parseSubInvocationArgs(&b.subInv, args); err != nil {
		return nil, err
	}

	if b.subInv.ModuleName != expectedModuleName {
		msg := "module name mismatch in module interface flags"
		if b.subInv.DebuggerSupport {
			msg = "module name mismatch in module interface flags; types may not be loadable"
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrModuleNameMismatch, msg),
			"declared", b.subInv.ModuleName), "expected", expectedModuleName)
	}

	result, err := b.runCompilerGuarded(ctx)
	if err != nil {
		return nil, err
	}

	deps, err := b.collectDepsForSerialization(result.Dependencies)
	if err != nil {
		return nil, err
	}

	var serialized []domain.Dependency
	if serializeDeps {
		serialized = deps
	}

	buffer, err := b.codec.EncodeModule(b.subInv.ModuleName, result.Payload, serialized)
	if err != nil {
		return nil, err
	}

	if err := b.fs.WriteOrReplace(outPath, buffer); err != nil {
		return nil, err
	}

	return buffer, nil
}

// runCompilerGuarded runs the sub-compilation behind a crash-recovery
// boundary: a panic in the driver surfaces as a failed sub-compilation
// instead of taking down the host process.
func (b *Builder) runCompilerGuarded(ctx context.Context) (result *ports.CompileResult, err error) {
	type outcome struct {
		result *ports.CompileResult
		err    error
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: zerr.With(zerr.Wrap(domain.ErrSubCompilationFailed,
					"sub-compilation crashed"), "panic", fmt.Sprint(r))}
			}
		}()
		res, err := b.compiler.Compile(ctx, &b.subInv)
		if err != nil {
			err = zerr.Wrap(domain.ErrSubCompilationFailed, err.Error())
		}
		done <- outcome{result: res, err: err}
	}()

	out := <-done
	return out.result, out.err
}

// collectDepsForSerialization turns the sub-compilation's raw dependency
// list, plus the interface itself, into flattened Dependency records.
// Cached binary modules contribute their embedded dependencies instead of
// themselves, so cache entries hold only leaf dependencies and stay
// relocatable.
func (b *Builder) collectDepsForSerialization(rawDeps []string) ([]domain.Dependency, error) {
	initial := slices.Clone(rawDeps)
	initial = append(initial, b.interfacePath)

	seen := make(map[string]bool)
	var deps []domain.Dependency

	for _, depName := range initial {
		// Duplicate suppression keys on the original, unrewritten path.
		if seen[depName] {
			continue
		}
		seen[depName] = true

		nameToStore, sdkRelative := rewriteSDKRelative(depName, b.inv.SDKRoot)

		if b.tracker != nil {
			b.tracker.AddDependency(depName, sdkRelative)
		}

		if b.isCachedModule(depName) {
			subDeps, err := b.extractCachedModuleDeps(depName)
			if err != nil {
				return nil, err
			}
			for _, subDep := range subDeps {
				if seen[subDep.Path] {
					continue
				}
				seen[subDep.Path] = true
				deps = append(deps, subDep)
				if b.tracker != nil {
					b.tracker.AddDependency(subDep.Path, subDep.SDKRelative)
				}
			}
			continue
		}

		info, err := b.fs.Stat(depName)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDependency, "missing dependency of module interface"),
				"path", depName)
		}

		if b.subInv.SerializeHashes {
			contents, err := b.fs.ReadFile(depName)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDependency, "failed to read dependency"),
					"path", depName)
			}
			deps = append(deps, domain.HashDependency(nameToStore, sdkRelative,
				uint64(info.Size()), xxhash.Sum64(contents)))
		} else {
			deps = append(deps, domain.ModTimeDependency(nameToStore, sdkRelative,
				uint64(info.Size()), uint64(info.ModTime().UnixNano())))
		}
	}

	return deps, nil
}

// extractCachedModuleDeps pulls the embedded dependency list out of a
// cached binary module so it can substitute for the module itself.
func (b *Builder) extractCachedModuleDeps(path string) ([]domain.Dependency, error) {
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDependency, "failed to open cached module"),
			"path", path)
	}
	subDeps, err := b.codec.ExtractDependencies(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDependency, err.Error()), "path", path)
	}
	return subDeps, nil
}

// isCachedModule reports whether the dependency is a binary module inside
// either the user cache or the prebuilt cache.
func (b *Builder) isCachedModule(depName string) bool {
	if b.inv.ModuleCachePath == "" && b.inv.PrebuiltCachePath == "" {
		return false
	}
	if strings.TrimPrefix(filepath.Ext(depName), ".") != domain.BinaryModuleExt {
		return false
	}
	return (b.inv.ModuleCachePath != "" && pathHasPrefix(depName, b.inv.ModuleCachePath)) ||
		(b.inv.PrebuiltCachePath != "" && pathHasPrefix(depName, b.inv.PrebuiltCachePath))
}

// rewriteSDKRelative stores dependencies inside the SDK as suffixes of the
// SDK root so that moving the SDK does not invalidate the cache. Both an
// SDK path with and without a trailing separator are handled; a sibling
// like "<SDK>X.h" stays absolute.
func rewriteSDKRelative(depName, sdkRoot string) (string, bool) {
	if len(sdkRoot) <= 1 || !strings.HasPrefix(depName, sdkRoot) || len(depName) <= len(sdkRoot) {
		return depName, false
	}
	if os.IsPathSeparator(depName[len(sdkRoot)]) {
		return depName[len(sdkRoot)+1:], true
	}
	if os.IsPathSeparator(sdkRoot[len(sdkRoot)-1]) {
		return depName[len(sdkRoot):], true
	}
	return depName, false
}

// parseSubInvocationArgs applies the interface's embedded flag list to the
// sub-invocation. The tokens pass through to the compiler driver verbatim;
// only the flags the loader must honor are interpreted here.
func parseSubInvocationArgs(sub *domain.SubInvocation, args []string) error {
	sub.Args = args

	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if name != "-module-name" && name != "-target" {
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return zerr.With(zerr.Wrap(domain.ErrMalformedInterface, "flag requires a value"),
					"flag", name)
			}
			i++
			value = args[i]
		}
		switch name {
		case "-module-name":
			sub.ModuleName = value
		case "-target":
			sub.TargetArch = value
		}
	}
	return nil
}
