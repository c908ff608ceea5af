// Package compiler provides the exec-based compiler driver adapter. It
// runs the external compiler as a subprocess and collects the payload and
// dependency manifest it emits.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
)

var _ ports.Compiler = (*Driver)(nil)

// Driver implements ports.Compiler by invoking an external compiler
// binary. The sub-invocation is rendered to command-line flags; the driver
// is expected to write the module payload to -emit-module-path and a
// newline-separated dependency manifest to -emit-dependencies-path.
type Driver struct {
	argv   []string
	logger ports.Logger
}

// NewDriver creates a Driver for the given compiler command line. argv[0]
// is the executable, the rest are leading arguments prepended to every
// sub-invocation.
func NewDriver(argv []string, logger ports.Logger) *Driver {
	return &Driver{argv: argv, logger: logger}
}

// Compile runs the sub-invocation and returns the emitted payload and
// dependency paths.
func (d *Driver) Compile(ctx context.Context, inv *domain.SubInvocation) (*ports.CompileResult, error) {
	if len(d.argv) == 0 {
		return nil, zerr.New("no compiler configured")
	}

	workDir, err := os.MkdirTemp("", "modload-compile-*")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create compile scratch directory")
	}
	defer os.RemoveAll(workDir) //nolint:errcheck // Best effort cleanup

	payloadPath := filepath.Join(workDir, "module.payload")
	depsPath := filepath.Join(workDir, "module.deps")

	args := append([]string(nil), d.argv[1:]...)
	args = append(args, d.renderFlags(inv, payloadPath, depsPath)...)

	cmd := exec.CommandContext(ctx, d.argv[0], args...) //nolint:gosec // Compiler command comes from configuration
	cmd.Env = os.Environ()
	cmd.Stdout = &logWriter{logger: d.logger, level: "info"}

	var stderrTail bytes.Buffer
	cmd.Stderr = &stderrTail

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		// Forward the sub-compilation's diagnostics unchanged.
		for line := range strings.Lines(stderrTail.String()) {
			d.logger.Warn(strings.TrimRight(line, "\n"), "module", inv.ModuleName)
		}
		return nil, zerr.With(zerr.Wrap(err, "compiler exited with failure"), "exit_code", exitCode)
	}

	payload, err := os.ReadFile(payloadPath) //nolint:gosec // Path is inside our scratch dir
	if err != nil {
		return nil, zerr.Wrap(err, "compiler produced no module payload")
	}

	deps, err := readDepsManifest(depsPath)
	if err != nil {
		return nil, err
	}

	return &ports.CompileResult{Payload: payload, Dependencies: deps}, nil
}

// renderFlags turns the sub-invocation into the driver's flag surface.
func (d *Driver) renderFlags(inv *domain.SubInvocation, payloadPath, depsPath string) []string {
	flags := []string{
		"-compile-module-from-interface",
		"-module-name", inv.ModuleName,
		"-emit-module-path", payloadPath,
		"-emit-dependencies-path", depsPath,
	}
	if inv.TargetArch != "" {
		flags = append(flags, "-target", inv.TargetArch)
	}
	if inv.SDKRoot != "" {
		flags = append(flags, "-sdk", inv.SDKRoot)
	}
	if inv.RuntimeResourcePath != "" {
		flags = append(flags, "-resource-dir", inv.RuntimeResourcePath)
	}
	if inv.ModuleCachePath != "" {
		flags = append(flags, "-module-cache-path", inv.ModuleCachePath)
	}
	if inv.PrebuiltCachePath != "" {
		flags = append(flags, "-prebuilt-module-cache-path", inv.PrebuiltCachePath)
	}
	for _, p := range inv.ImportSearchPaths {
		flags = append(flags, "-I", p)
	}
	for _, p := range inv.FrameworkSearchPaths {
		flags = append(flags, "-F", p)
	}
	if inv.SuppressWarnings {
		flags = append(flags, "-suppress-warnings")
	}
	if inv.OptimizeForSpeed {
		flags = append(flags, "-O")
	}
	if inv.TrackSystemDeps {
		flags = append(flags, "-track-system-dependencies")
	}
	flags = append(flags, inv.Args...)
	flags = append(flags, inv.InterfacePath)
	return flags
}

// readDepsManifest reads the newline-separated dependency list the driver
// emitted. A missing manifest means the driver tracked no dependencies.
func readDepsManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is inside our scratch dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read dependency manifest")
	}

	var deps []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line != "" {
			deps = append(deps, line)
		}
	}
	return deps, nil
}
