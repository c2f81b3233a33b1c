package engine

import "sort"

// CountTileTypes counts how many cells hold each tile type
func CountTileTypes(tiles [][]TileType) map[TileType]int {
	counts := make(map[TileType]int)
	for _, row := range tiles {
		for _, t := range row {
			counts[t]++
		}
	}
	return counts
}

// TerrainCoverage returns the fraction of cells (0..1) holding walkable terrain
func TerrainCoverage(tiles [][]TileType, palette *Palette) float64 {
	total, terrain := 0, 0
	for _, row := range tiles {
		for _, t := range row {
			total++
			if palette.IsTerrain(t) {
				terrain++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(terrain) / float64(total)
}

// UnknownTileTypes lists, sorted, the types in tiles that the palette does not define
func UnknownTileTypes(tiles [][]TileType, palette *Palette) []TileType {
	var unknown []TileType
	for t := range CountTileTypes(tiles) {
		if !palette.Contains(t) {
			unknown = append(unknown, t)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
