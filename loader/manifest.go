package loader

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Manifest is a TOML list of resources:
//
//	[[resources]]
//	src = "tiles/grass.png"
//
//	[[resources]]
//	src = "fonts/ui.ttf"
//	font_name = "UI"
//
//	[[resources]]
//	[[resources.entries]]
//	src = "sfx/click.wav"
type Manifest struct {
	Resources []Entry `toml:"resources"`
}

// Entries returns the manifest's resources, flattened.
func (m *Manifest) Entries() []Entry {
	return Flatten(m.Resources)
}

// ParseManifest decodes a manifest document. Unknown keys are an error.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads and decodes the manifest at name.
func LoadManifest(fs afero.Fs, name string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}
