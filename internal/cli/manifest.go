package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"github.com/toyz/camp/internal/errors"
)

// manifestNamespace scopes the name-based unit ids
var manifestNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/toyz/camp/manifest"))

// Manifest records the outputs of the last run
type Manifest struct {
	Version string          `yaml:"version"`
	Units   []ManifestEntry `yaml:"units"`
}

// ManifestEntry describes one rewritten unit. Output is relative to the
// output directory.
type ManifestEntry struct {
	ID          string `yaml:"id"`
	Input       string `yaml:"input"`
	Output      string `yaml:"output"`
	Fingerprint string `yaml:"fingerprint"`
}

// UnitID returns the stable id of the unit mirrored at rel
func UnitID(rel string) string {
	return uuid.NewSHA1(manifestNamespace, []byte(filepath.ToSlash(rel))).String()
}

// Fingerprint hashes printed output
func Fingerprint(output string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(output))
}

// LoadManifest reads the manifest at path. A missing manifest is empty.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{Version: ConfigVersion}, nil
	}
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParseError(path, err)
	}
	return &m, nil
}

// Save writes the manifest to path
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.WrapGenerateError(path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapFileSystemError("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	return nil
}

// Lookup returns the entry with the given id
func (m *Manifest) Lookup(id string) (ManifestEntry, bool) {
	for _, e := range m.Units {
		if e.ID == id {
			return e, true
		}
	}
	return ManifestEntry{}, false
}
