package loader

import (
	"bytes"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/modload/internal/core/domain"
)

// forwardingRecord is the on-disk YAML shape of a forwarding module. Field
// names are part of the stable, human-readable format.
type forwardingRecord struct {
	Path         string                `yaml:"path"`
	Dependencies []forwardingRecordDep `yaml:"dependencies"`
	Version      uint32                `yaml:"version"`
}

type forwardingRecordDep struct {
	MTime uint64 `yaml:"mtime"`
	Path  string `yaml:"path"`
	Size  uint64 `yaml:"size"`
}

// ParseForwardingModule parses a forwarding module from the given buffer.
// Unknown top-level fields and versions other than the supported one are
// rejected.
func ParseForwardingModule(data []byte) (*domain.ForwardingModule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rec forwardingRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, zerr.Wrap(err, "failed to parse forwarding module")
	}

	if rec.Version != domain.ForwardingModuleVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotSupported, "unsupported forwarding module version"),
			"version", rec.Version)
	}

	fwd := domain.NewForwardingModule(rec.Path)
	for _, d := range rec.Dependencies {
		fwd.AddDependency(d.Path, d.Size, d.MTime)
	}
	return fwd, nil
}

// MarshalForwardingModule renders a forwarding module to its YAML form.
func MarshalForwardingModule(fwd *domain.ForwardingModule) ([]byte, error) {
	rec := forwardingRecord{
		Path:    fwd.UnderlyingPath,
		Version: fwd.Version,
	}
	for _, d := range fwd.Dependencies {
		rec.Dependencies = append(rec.Dependencies, forwardingRecordDep{
			MTime: d.MTime,
			Path:  d.Path,
			Size:  d.Size,
		})
	}

	data, err := yaml.Marshal(&rec)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal forwarding module")
	}
	return data, nil
}

// writeForwardingModule writes the forwarding record for a prebuilt
// discovery into the user cache at outPath. Dependency state is taken from
// a fresh stat of each resolved path; this can race with a concurrent
// modification and record state newer than what the underlying module was
// built against, which is accepted under the single-writer assumption.
func (ld *load) writeForwardingModule(outPath string, mod *domain.DiscoveredModule) error {
	fwd := domain.NewForwardingModule(mod.Path)

	addDependency := func(path string) error {
		info, err := ld.l.fs.Stat(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat forwarding dependency"), "path", path)
		}
		fwd.AddDependency(path, uint64(info.Size()), uint64(info.ModTime().UnixNano()))
		return nil
	}

	// The underlying prebuilt module is itself a dependency of the
	// forwarding record.
	if err := addDependency(fwd.UnderlyingPath); err != nil {
		return err
	}

	// SDK-relative records are expanded; forwarding modules only hold
	// absolute paths.
	for _, dep := range mod.Deps {
		if err := addDependency(dep.ResolvePath(ld.l.inv.SDKRoot)); err != nil {
			return err
		}
	}

	data, err := MarshalForwardingModule(fwd)
	if err != nil {
		return err
	}
	if err := ld.l.fs.MkdirAll(filepath.Dir(outPath)); err != nil {
		return zerr.Wrap(domain.ErrCacheCreateFailed, err.Error())
	}
	return ld.l.fs.WriteOrReplace(outPath, data)
}
