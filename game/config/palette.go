package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/tile-painter/game/engine"
)

// PaletteFile is the palette file name inside the config directory
const PaletteFile = "palette.yaml"

// paletteDocument is the on-disk shape of palette.yaml
type paletteDocument struct {
	Entries []engine.PaletteEntry `yaml:"entries"`
}

// LoadPalette reads path and builds a palette from it
func LoadPalette(path string) (*engine.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePalette(data)
}

// ParsePalette decodes palette YAML
func ParsePalette(data []byte) (*engine.Palette, error) {
	var doc paletteDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	palette, err := engine.NewPalette(doc.Entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return palette, nil
}

// LoadPaletteOrDefault loads configDir/palette.yaml, falling back to the
// built-in palette when the file does not exist. A file that exists but
// does not parse is an error.
func LoadPaletteOrDefault(configDir string) (*engine.Palette, error) {
	path := filepath.Join(configDir, PaletteFile)
	palette, err := LoadPalette(path)
	if err != nil {
		if os.IsNotExist(err) {
			return engine.DefaultPalette(), nil
		}
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return palette, nil
}

// SavePalette writes the palette to path as YAML
func SavePalette(path string, palette *engine.Palette) error {
	data, err := yaml.Marshal(paletteDocument{Entries: palette.Entries()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
