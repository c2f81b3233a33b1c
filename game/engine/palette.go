package engine

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPalette      = errors.New("palette has no entries")
	ErrDuplicateTileType = errors.New("duplicate palette entry")
	ErrNoDefaultEntry    = errors.New("palette must have exactly one default entry")
)

// PaletteEntry describes one selectable tile type
type PaletteEntry struct {
	Name    TileType `json:"name" yaml:"name"`
	Label   string   `json:"label" yaml:"label"`
	Color   string   `json:"color" yaml:"color"`
	Glyph   string   `json:"glyph,omitempty" yaml:"glyph"`
	Terrain bool     `json:"terrain" yaml:"terrain"` // walkable ground (informational only)
	Default bool     `json:"default,omitempty" yaml:"default"`
}

// Palette is the fixed, ordered list of tile types a user can paint with
type Palette struct {
	entries []PaletteEntry
	index   map[TileType]int
	def     TileType
}

// NewPalette validates entries and builds a palette from them
func NewPalette(entries []PaletteEntry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}

	p := &Palette{
		entries: make([]PaletteEntry, len(entries)),
		index:   make(map[TileType]int, len(entries)),
	}
	copy(p.entries, entries)

	defaults := 0
	for i, entry := range p.entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("palette entry %d: %w", i+1, ErrEmptyTileType)
		}
		if _, exists := p.index[entry.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTileType, entry.Name)
		}
		p.index[entry.Name] = i
		if entry.Default {
			p.def = entry.Name
			defaults++
		}
	}
	if defaults != 1 {
		return nil, fmt.Errorf("%w, got %d", ErrNoDefaultEntry, defaults)
	}

	return p, nil
}

// DefaultPalette returns the built-in palette
func DefaultPalette() *Palette {
	p, err := NewPalette(builtinPalette)
	if err != nil {
		panic(fmt.Sprintf("builtin palette: %v", err))
	}
	return p
}

// Entries returns a copy of the palette entries in display order
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Default returns the entry selected at startup
func (p *Palette) Default() TileType {
	return p.def
}

// Lookup returns the entry for t, if the palette has one
func (p *Palette) Lookup(t TileType) (PaletteEntry, bool) {
	i, ok := p.index[t]
	if !ok {
		return PaletteEntry{}, false
	}
	return p.entries[i], true
}

// Contains reports whether t is a palette entry
func (p *Palette) Contains(t TileType) bool {
	_, ok := p.index[t]
	return ok
}

// IsTerrain reports whether t is walkable ground. Unknown types are not.
func (p *Palette) IsTerrain(t TileType) bool {
	entry, ok := p.Lookup(t)
	return ok && entry.Terrain
}

// Cycle returns the entry step positions away from t, wrapping around.
// Types outside the palette cycle from the default entry.
func (p *Palette) Cycle(t TileType, step int) TileType {
	i, ok := p.index[t]
	if !ok {
		i = p.index[p.def]
	}
	n := len(p.entries)
	return p.entries[((i+step)%n+n)%n].Name
}

// Selection is the tile type currently used for painting. There is always exactly one.
type Selection struct {
	selected TileType
}

// NewSelection starts on the palette's default entry
func NewSelection(p *Palette) *Selection {
	return &Selection{selected: p.Default()}
}

// Select changes the selected type. Labels outside the palette are allowed.
func (s *Selection) Select(t TileType) error {
	if t == "" {
		return ErrEmptyTileType
	}
	s.selected = t
	return nil
}

// Selected returns the current selection
func (s *Selection) Selected() TileType {
	return s.selected
}

var builtinPalette = []PaletteEntry{
	{Name: "grass", Label: "Grass", Color: "#5fa84a", Glyph: ".", Terrain: true, Default: true},
	{Name: "flowers-red", Label: "Red flowers", Color: "#c8483c", Glyph: "*", Terrain: true},
	{Name: "flowers-orange", Label: "Orange flowers", Color: "#e08a2c", Glyph: "*", Terrain: true},
	{Name: "flowers-blue", Label: "Blue flowers", Color: "#4a78c8", Glyph: "*", Terrain: true},
	{Name: "weed", Label: "Weed", Color: "#4c8a3a", Glyph: "\"", Terrain: true},
	{Name: "weed-4x", Label: "Weed (4x)", Color: "#437c33", Glyph: "\"", Terrain: true},
	{Name: "weed-small", Label: "Weed (small)", Color: "#58983f", Glyph: "'", Terrain: true},
	{Name: "weed-2x", Label: "Weed (2x)", Color: "#478237", Glyph: "\"", Terrain: true},
	{Name: "field", Label: "Field", Color: "#a8a04a", Glyph: ",", Terrain: true},
	{Name: "sand-patch", Label: "Sand patch", Color: "#c9b877", Glyph: ":", Terrain: true},
	{Name: "sand", Label: "Sand", Color: "#e2cf8c", Glyph: ":", Terrain: true},
	{Name: "sand-nw", Label: "Sand (NW edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-n", Label: "Sand (N edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-ne", Label: "Sand (NE edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-w", Label: "Sand (W edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-e", Label: "Sand (E edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-sw", Label: "Sand (SW edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-s", Label: "Sand (S edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-se", Label: "Sand (SE edge)", Color: "#d8c583", Glyph: ":", Terrain: true},
	{Name: "sand-nw-inverse", Label: "Sand (NW inner)", Color: "#cfbc7a", Glyph: ";", Terrain: true},
	{Name: "sand-ne-inverse", Label: "Sand (NE inner)", Color: "#cfbc7a", Glyph: ";", Terrain: true},
	{Name: "sand-sw-inverse", Label: "Sand (SW inner)", Color: "#cfbc7a", Glyph: ";", Terrain: true},
	{Name: "sand-se-inverse", Label: "Sand (SE inner)", Color: "#cfbc7a", Glyph: ";", Terrain: true},
	{Name: "water", Label: "Water", Color: "#3a7bd5", Glyph: "~"},
	{Name: "tree", Label: "Tree", Color: "#2e5e24", Glyph: "T"},
	{Name: "rock", Label: "Rock", Color: "#7d7d7d", Glyph: "o"},
	{Name: "fence", Label: "Fence", Color: "#8b5a2b", Glyph: "#"},
	{Name: "house", Label: "House", Color: "#b5523b", Glyph: "^"},
}
