// Package config loads map presets and the tile palette for the tile painter.
//
// Map presets are JSON files in the config directory. Each one is first
// checked against a JSON Schema (santhosh-tekuri/jsonschema) and then
// against engine.ValidateMapConfig for the cross-field rules. A preset
// defines:
//   - Map size in tiles (width, height, at most 100 each)
//   - An optional starting layout using a single-character legend
//   - Where the actor starts
//   - Optionally the on-screen cell size in pixels
//
// The palette is a YAML file (palette.yaml) listing the selectable tile
// types. When it is missing the built-in palette is used.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadConfig("meadow")
//	defaultPreset := manager.GetDefault()
//	presets, err := manager.ListConfigs()
//
//	palette, err := config.LoadPaletteOrDefault("configs")
//
// Default preset:
//
// The default is "classic" when present, then the first valid preset in
// name order, then a built-in 30x15 all-grass map.
package config
