// Package config provides the configuration loader for modload.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/modload/internal/core/domain"
)

// DefaultFilename is the config file looked up in the working directory.
const DefaultFilename = "modload.yaml"

// Settings is the loaded, validated configuration.
type Settings struct {
	Invocation   domain.Invocation
	Mode         domain.LoadMode
	CompilerArgv []string
}

// file is the YAML shape of modload.yaml.
type file struct {
	Compiler        []string `yaml:"compiler"`
	CompilerVersion string   `yaml:"compilerVersion"`
	Target          string   `yaml:"target"`
	SDKRoot         string   `yaml:"sdkRoot"`
	ModuleCache     string   `yaml:"moduleCache"`
	PrebuiltCache   string   `yaml:"prebuiltCache"`
	ResourcePath    string   `yaml:"resourcePath"`
	ImportPaths     []string `yaml:"importPaths"`
	FrameworkPaths  []string `yaml:"frameworkPaths"`
	Mode            string   `yaml:"mode"`
	TrackSystemDeps bool     `yaml:"trackSystemDeps"`
	SerializeHashes bool     `yaml:"serializeHashes"`
	DebuggerSupport bool     `yaml:"debuggerSupport"`
}

// Loader reads Settings from a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader for the default filename.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load reads the configuration from the given working directory.
func (l *Loader) Load(cwd string) (*Settings, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	mode, err := parseMode(f.Mode)
	if err != nil {
		return nil, err
	}

	moduleCache := f.ModuleCache
	if moduleCache == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to locate user cache directory")
		}
		moduleCache = filepath.Join(base, "modload")
	}

	return &Settings{
		Invocation: domain.Invocation{
			CompilerVersion:           f.CompilerVersion,
			TargetArch:                f.Target,
			SDKRoot:                   f.SDKRoot,
			ImportSearchPaths:         f.ImportPaths,
			FrameworkSearchPaths:      f.FrameworkPaths,
			RuntimeResourcePath:       f.ResourcePath,
			ModuleCachePath:           moduleCache,
			PrebuiltCachePath:         f.PrebuiltCache,
			TrackSystemDeps:           f.TrackSystemDeps,
			SerializeDependencyHashes: f.SerializeHashes,
			DebuggerSupport:           f.DebuggerSupport,
		},
		Mode:         mode,
		CompilerArgv: f.Compiler,
	}, nil
}

func parseMode(s string) (domain.LoadMode, error) {
	switch s {
	case "", "prefer-binary":
		return domain.PreferBinary, nil
	case "prefer-interface":
		return domain.PreferInterface, nil
	case "only-interface":
		return domain.OnlyInterface, nil
	default:
		return 0, zerr.With(zerr.New("invalid load mode"), "mode", s)
	}
}
