package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// MapConfig is a map preset: its size, optional starting layout and where the actor begins
type MapConfig struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Layout      []string            `json:"layout,omitempty"`
	Legend      map[string]TileType `json:"legend,omitempty"`
	ActorStart  Position            `json:"actor_start"`
	CellSize    int                 `json:"cell_size,omitempty"`
}

// DefaultMapConfig returns the built-in 30x15 all-grass map
func DefaultMapConfig() *MapConfig {
	return &MapConfig{
		Name:        "default",
		Description: "Empty grass field",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		CellSize:    DefaultCellSize,
	}
}

// EffectiveCellSize returns the cell size in pixels, falling back to DefaultCellSize
func (c *MapConfig) EffectiveCellSize() int {
	if c.CellSize <= 0 {
		return DefaultCellSize
	}
	return c.CellSize
}

// ValidateMapConfig validates a map configuration for correctness
func ValidateMapConfig(config *MapConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.Width <= 0 || config.Width > MaxWidth {
		return fmt.Errorf("config validation: width must be between 1 and %d, got %d", MaxWidth, config.Width)
	}
	if config.Height <= 0 || config.Height > MaxHeight {
		return fmt.Errorf("config validation: height must be between 1 and %d, got %d", MaxHeight, config.Height)
	}
	if config.CellSize < 0 {
		return fmt.Errorf("config validation: cell_size cannot be negative, got %d", config.CellSize)
	}

	// Validate legend
	for key, tileType := range config.Legend {
		if len(key) != 1 {
			return fmt.Errorf("config validation: legend key '%s' must be a single character", key)
		}
		if tileType == "" {
			return fmt.Errorf("config validation: legend['%s'] has an empty tile type", key)
		}
	}

	// Layout is optional; when present it must cover the whole grid
	if len(config.Layout) > 0 {
		if len(config.Layout) != config.Height {
			return fmt.Errorf("config validation: layout must have %d rows to match height, got %d",
				config.Height, len(config.Layout))
		}
		for i, row := range config.Layout {
			if len(row) != config.Width {
				return fmt.Errorf("config validation: row %d must have %d characters to match width, got %d",
					i+1, config.Width, len(row))
			}
			for j := 0; j < len(row); j++ {
				if _, ok := config.Legend[string(row[j])]; !ok {
					return fmt.Errorf("config validation: character '%c' at row %d, col %d is not in the legend",
						row[j], i+1, j+1)
				}
			}
		}
	}

	start := config.ActorStart
	if start.X < 0 || start.X >= config.Width || start.Y < 0 || start.Y >= config.Height {
		return fmt.Errorf("config validation: actor_start (%d,%d) is outside the %dx%d map",
			start.X, start.Y, config.Width, config.Height)
	}

	return nil
}

// LoadMapConfig loads a map configuration from a JSON file
func LoadMapConfig(filename string) (*MapConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config MapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse map config '%s': %w", filename, err)
	}

	if err := ValidateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid map config '%s': %w", filename, err)
	}

	return &config, nil
}

// InitGridFromConfig creates a grid sized by config and paints its layout, if any
func InitGridFromConfig(config *MapConfig) (*Grid, error) {
	grid, err := NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	for row, line := range config.Layout {
		for col := 0; col < len(line) && col < grid.Width(); col++ {
			tileType, ok := config.Legend[string(line[col])]
			if !ok {
				continue
			}
			if err := grid.SetTileType(col, row, tileType); err != nil {
				return nil, err
			}
		}
	}

	return grid, nil
}
