package assets

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// MetaExt is appended to an asset path to name its sidecar.
const MetaExt = ".meta"

// Meta is the YAML sidecar stored next to every asset. GUID stays stable
// across rewrites of the asset.
type Meta struct {
	GUID    string    `yaml:"guid"`
	Format  string    `yaml:"format"`
	Source  string    `yaml:"source,omitempty"`
	Updated time.Time `yaml:"updated"`
}

// MetaPath returns the sidecar path for an asset.
func MetaPath(assetPath string) string {
	return assetPath + MetaExt
}

// LoadMeta reads the sidecar of assetPath.
func LoadMeta(assetPath string) (*Meta, error) {
	data, err := os.ReadFile(MetaPath(assetPath))
	if err != nil {
		return nil, err
	}
	var m Meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MetaPath(assetPath), err)
	}
	if _, err := uuid.Parse(m.GUID); err != nil {
		return nil, fmt.Errorf("parsing %s: guid: %w", MetaPath(assetPath), err)
	}
	return &m, nil
}

// loadOrCreateMeta returns the existing sidecar or a fresh one with a new
// GUID when none exists.
func loadOrCreateMeta(assetPath string) (*Meta, error) {
	m, err := LoadMeta(assetPath)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &Meta{GUID: uuid.NewString()}, nil
}

func (m *Meta) save(assetPath string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return writeFileAtomic(MetaPath(assetPath), data)
}
