package engine

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrEmptyTileType     = errors.New("tile type cannot be empty")
)

// Grid is a fixed width x height matrix of tile types, stored row-major
type Grid struct {
	width  int
	height int
	tiles  []TileType
}

// NewGrid creates a grid with every cell set to DefaultTileType
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || width > MaxWidth || height <= 0 || height > MaxHeight {
		return nil, fmt.Errorf("%w: %dx%d (width must be 1-%d, height 1-%d)",
			ErrInvalidDimensions, width, height, MaxWidth, MaxHeight)
	}

	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]TileType, width*height),
	}
	g.Fill(DefaultTileType)
	return g, nil
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (col, row) addresses a cell of the grid
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// TileType returns the stored type of the cell at (col, row)
func (g *Grid) TileType(col, row int) (TileType, error) {
	if !g.InBounds(col, row) {
		return "", g.boundsError(col, row)
	}
	return g.tiles[row*g.width+col], nil
}

// SetTileType overwrites the stored type of the cell at (col, row).
// Any non-empty label is accepted, whether or not the palette knows it.
func (g *Grid) SetTileType(col, row int, t TileType) error {
	if !g.InBounds(col, row) {
		return g.boundsError(col, row)
	}
	if t == "" {
		return ErrEmptyTileType
	}
	g.tiles[row*g.width+col] = t
	return nil
}

// Fill sets every cell to t
func (g *Grid) Fill(t TileType) {
	for i := range g.tiles {
		g.tiles[i] = t
	}
}

// Rows returns a copy of the grid as Rows()[row][col]
func (g *Grid) Rows() [][]TileType {
	rows := make([][]TileType, g.height)
	for row := range rows {
		rows[row] = make([]TileType, g.width)
		copy(rows[row], g.tiles[row*g.width:(row+1)*g.width])
	}
	return rows
}

func (g *Grid) boundsError(col, row int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d grid", ErrOutOfBounds, col, row, g.width, g.height)
}
