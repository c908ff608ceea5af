// Package binmod implements the serialized binary-module format: a magic
// prefix, a length-framed manifest carrying the module name and its
// dependency list, and an opaque payload.
package binmod

import (
	"bytes"
	"encoding/binary"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/modload/internal/core/domain"
	"go.trai.ch/modload/internal/core/ports"
)

const magicString = "MODB\xE2\x9C\xA8\x01"

// Magic is the fixed signature that opens every serialized module. A cache
// entry without it is treated as a forwarding record.
var Magic = []byte(magicString)

// headerLen is the magic plus the 4-byte manifest length.
const headerLen = len(magicString) + 4

// manifest is the metadata block serialized between the magic and the
// payload.
type manifest struct {
	Name         string              `yaml:"name"`
	Dependencies []domain.Dependency `yaml:"dependencies"`
}

var _ ports.ModuleCodec = (*Codec)(nil)

// Codec implements ports.ModuleCodec for the binmod format.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// IsSerializedModule reports whether the buffer begins with the module
// magic.
func (c *Codec) IsSerializedModule(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

// ValidateModule checks that the buffer is a well-formed serialized module.
func (c *Codec) ValidateModule(data []byte) error {
	_, _, err := c.decode(data)
	return err
}

// ExtractDependencies validates the buffer and returns its embedded
// dependency list.
func (c *Codec) ExtractDependencies(data []byte) ([]domain.Dependency, error) {
	m, _, err := c.decode(data)
	if err != nil {
		return nil, err
	}
	return m.Dependencies, nil
}

// EncodeModule serializes a module payload with the given name and
// dependency list.
func (c *Codec) EncodeModule(moduleName string, payload []byte, deps []domain.Dependency) ([]byte, error) {
	m := manifest{Name: moduleName, Dependencies: deps}
	manifestData, err := yaml.Marshal(&m)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal module manifest")
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerLen+len(manifestData)+len(payload)))
	buf.Write(Magic)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(manifestData))); err != nil {
		return nil, zerr.Wrap(err, "failed to write manifest length")
	}
	buf.Write(manifestData)
	buf.Write(payload)

	return buf.Bytes(), nil
}

// ModuleName returns the name stored in the module's manifest.
func (c *Codec) ModuleName(data []byte) (string, error) {
	m, _, err := c.decode(data)
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

// Payload returns the opaque payload following the manifest.
func (c *Codec) Payload(data []byte) ([]byte, error) {
	_, payload, err := c.decode(data)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Codec) decode(data []byte) (*manifest, []byte, error) {
	if !bytes.HasPrefix(data, Magic) {
		return nil, nil, zerr.Wrap(domain.ErrMalformedModule, "missing module magic")
	}
	if len(data) < headerLen {
		return nil, nil, zerr.Wrap(domain.ErrMalformedModule, "truncated module header")
	}

	manifestLen := binary.BigEndian.Uint32(data[len(Magic):headerLen])
	rest := data[headerLen:]
	if uint64(manifestLen) > uint64(len(rest)) {
		return nil, nil, zerr.Wrap(domain.ErrMalformedModule, "truncated module manifest")
	}

	var m manifest
	if err := yaml.Unmarshal(rest[:manifestLen], &m); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrMalformedModule, err.Error())
	}

	return &m, rest[manifestLen:], nil
}
