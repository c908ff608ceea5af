package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/modload/internal/adapters/config"
	"go.trai.ch/modload/internal/core/domain"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, config.DefaultFilename), []byte(contents), 0o644))
	return tmpDir
}

func TestLoader_Load(t *testing.T) {
	cwd := writeConfig(t, `
compiler: [modc, -frontend]
compilerVersion: "modc 5.1 (release)"
target: arm64
sdkRoot: /opt/sdk
moduleCache: /tmp/modcache
prebuiltCache: /opt/sdk/prebuilt
resourcePath: /opt/sdk/lib
importPaths: [/opt/extra]
mode: prefer-interface
trackSystemDeps: true
serializeHashes: true
`)

	settings, err := config.NewLoader().Load(cwd)
	require.NoError(t, err)

	assert.Equal(t, []string{"modc", "-frontend"}, settings.CompilerArgv)
	assert.Equal(t, domain.PreferInterface, settings.Mode)

	inv := settings.Invocation
	assert.Equal(t, "modc 5.1 (release)", inv.CompilerVersion)
	assert.Equal(t, "arm64", inv.TargetArch)
	assert.Equal(t, "/opt/sdk", inv.SDKRoot)
	assert.Equal(t, "/tmp/modcache", inv.ModuleCachePath)
	assert.Equal(t, "/opt/sdk/prebuilt", inv.PrebuiltCachePath)
	assert.Equal(t, "/opt/sdk/lib", inv.RuntimeResourcePath)
	assert.Equal(t, []string{"/opt/extra"}, inv.ImportSearchPaths)
	assert.True(t, inv.TrackSystemDeps)
	assert.True(t, inv.SerializeDependencyHashes)
}

func TestLoader_Defaults(t *testing.T) {
	cwd := writeConfig(t, `
compiler: [modc]
`)

	settings, err := config.NewLoader().Load(cwd)
	require.NoError(t, err)

	assert.Equal(t, domain.PreferBinary, settings.Mode, "prefer-binary is the default mode")
	assert.NotEmpty(t, settings.Invocation.ModuleCachePath, "module cache defaults under the user cache dir")
	assert.Empty(t, settings.Invocation.PrebuiltCachePath)
}

func TestLoader_InvalidMode(t *testing.T) {
	cwd := writeConfig(t, `
compiler: [modc]
mode: only-binary
`)

	_, err := config.NewLoader().Load(cwd)
	assert.Error(t, err, "only-binary never instantiates the interface loader")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigReadFailed))
}

func TestLoader_Unparseable(t *testing.T) {
	cwd := writeConfig(t, "compiler: [unclosed\n")

	_, err := config.NewLoader().Load(cwd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
}
