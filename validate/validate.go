package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/tile-painter/game/config"
	"github.com/wricardo/tile-painter/game/engine"
)

// ValidationResult holds the validation result for a single file
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// Analysis summarizes the contents of one preset
type Analysis struct {
	File       string
	Name       string
	Width      int
	Height     int
	Counts     map[engine.TileType]int
	Coverage   float64
	Unknown    []engine.TileType
	ActorStart engine.Position
	// Farthest cell from the actor start, in steps
	Reach int
}

// validateConfig checks a preset file against the schema, the semantic
// rules and the palette. Labels outside the palette are warnings.
func validateConfig(filePath string, palette *engine.Palette) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	cfg, err := config.ParseMapConfig(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid config: %v", err))
		return result
	}

	grid, err := engine.InitGridFromConfig(cfg)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to build grid: %v", err))
		return result
	}

	for _, t := range engine.UnknownTileTypes(grid.Rows(), palette) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Tile type '%s' is not in the palette", t))
	}

	// Legend entries the layout never uses
	used := make(map[string]bool)
	for _, line := range cfg.Layout {
		for i := 0; i < len(line); i++ {
			used[string(line[i])] = true
		}
	}
	var unused []string
	for key := range cfg.Legend {
		if !used[key] {
			unused = append(unused, key)
		}
	}
	sort.Strings(unused)
	for _, key := range unused {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Legend key '%s' is never used in the layout", key))
	}

	return result
}

// validatePalette checks palette.yaml in dir. A missing file is valid, the
// built-in palette is used instead.
func validatePalette(dir string) (ValidationResult, *engine.Palette) {
	result := ValidationResult{File: config.PaletteFile, Valid: true}

	palette, err := config.LoadPaletteOrDefault(dir)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result, engine.DefaultPalette()
	}

	if _, statErr := os.Stat(filepath.Join(dir, config.PaletteFile)); os.IsNotExist(statErr) {
		result.Warnings = append(result.Warnings, "No palette file, using the built-in palette")
	}
	return result, palette
}

// analyzeConfig loads a preset and counts what it holds
func analyzeConfig(filePath string, palette *engine.Palette) (*Analysis, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.ParseMapConfig(data)
	if err != nil {
		return nil, err
	}
	grid, err := engine.InitGridFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	tiles := grid.Rows()
	reach := 0
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			if d := engine.ManhattanDistance(cfg.ActorStart, engine.Position{X: col, Y: row}); d > reach {
				reach = d
			}
		}
	}

	return &Analysis{
		File:       filepath.Base(filePath),
		Name:       cfg.Name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Counts:     engine.CountTileTypes(tiles),
		Coverage:   engine.TerrainCoverage(tiles, palette),
		Unknown:    engine.UnknownTileTypes(tiles, palette),
		ActorStart: cfg.ActorStart,
		Reach:      reach,
	}, nil
}

// formatAnalysis renders an analysis as a text report
func formatAnalysis(a *Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s (%s) ===\n", a.Name, a.File)
	fmt.Fprintf(&b, "Size: %dx%d (%d tiles)\n", a.Width, a.Height, a.Width*a.Height)
	fmt.Fprintf(&b, "Actor start: (%d,%d), farthest tile %d steps\n", a.ActorStart.X, a.ActorStart.Y, a.Reach)
	fmt.Fprintf(&b, "Terrain coverage: %.1f%%\n", a.Coverage*100)

	types := make([]engine.TileType, 0, len(a.Counts))
	for t := range a.Counts {
		types = append(types, t)
	}
	// Most common first, then by name
	sort.Slice(types, func(i, j int) bool {
		if a.Counts[types[i]] != a.Counts[types[j]] {
			return a.Counts[types[i]] > a.Counts[types[j]]
		}
		return types[i] < types[j]
	})

	b.WriteString("Tiles:\n")
	total := a.Width * a.Height
	for _, t := range types {
		pct := 0.0
		if total > 0 {
			pct = float64(a.Counts[t]) * 100 / float64(total)
		}
		fmt.Fprintf(&b, "  %-14s %5d  %5.1f%%\n", t, a.Counts[t], pct)
	}

	if len(a.Unknown) > 0 {
		names := make([]string, len(a.Unknown))
		for i, t := range a.Unknown {
			names[i] = string(t)
		}
		fmt.Fprintf(&b, "Not in palette: %s\n", strings.Join(names, ", "))
	}
	return b.String()
}

// presetFiles lists the JSON presets in dir, sorted
func presetFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func printResult(result ValidationResult) {
	if result.Valid {
		fmt.Printf("✅ %s\n", result.File)
	} else {
		fmt.Printf("❌ %s\n", result.File)
	}
	for _, err := range result.Errors {
		fmt.Printf("   ERROR: %s\n", err)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("   WARNING: %s\n", warning)
	}
}

// runCheck validates the palette and every preset in dir, returning an
// error when anything is invalid
func runCheck(dir string) error {
	fmt.Println("🔍 Validating map presets...")
	fmt.Println()

	paletteResult, palette := validatePalette(dir)
	printResult(paletteResult)

	files, err := presetFiles(dir)
	if err != nil {
		return fmt.Errorf("failed to find presets: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no presets found in %s", dir)
	}

	invalid := 0
	if !paletteResult.Valid {
		invalid++
	}
	for _, file := range files {
		result := validateConfig(file, palette)
		printResult(result)
		if !result.Valid {
			invalid++
		}
	}

	fmt.Println()
	fmt.Printf("📊 Summary: %d presets, %d invalid files\n", len(files), invalid)
	if invalid > 0 {
		return fmt.Errorf("validation failed: %d invalid files", invalid)
	}
	fmt.Println("🎉 All files are valid!")
	return nil
}

// runAnalyze prints an analysis of every preset in dir
func runAnalyze(dir string) error {
	palette, err := config.LoadPaletteOrDefault(dir)
	if err != nil {
		return err
	}

	files, err := presetFiles(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		analysis, err := analyzeConfig(file, palette)
		if err != nil {
			fmt.Printf("=== %s ===\nError: %v\n\n", filepath.Base(file), err)
			continue
		}
		fmt.Println(formatAnalysis(analysis))
	}
	return nil
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dir",
		Value: "configs",
		Usage: "directory holding map presets and palette.yaml",
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "check and analyze tile painter map presets",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "validate every preset and the palette",
				Flags: []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runCheck(cmd.String("dir"))
				},
			},
			{
				Name:  "analyze",
				Usage: "print tile histograms and terrain coverage per preset",
				Flags: []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAnalyze(cmd.String("dir"))
				},
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
