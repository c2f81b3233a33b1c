package engine

// TileType is the label of a tile, drawn from the palette
type TileType string

const (
	// DefaultTileType is what every cell holds until something is painted on it.
	DefaultTileType TileType = "grass"

	// Map size limits and defaults (in tiles)
	DefaultWidth  = 30
	DefaultHeight = 15
	MaxWidth      = 100
	MaxHeight     = 100

	// DefaultCellSize is the on-screen size of one tile in pixels.
	DefaultCellSize = 25
)

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MapState is a complete snapshot of a map, as served to clients
type MapState struct {
	ConfigName string       `json:"config_name"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	CellSize   int          `json:"cell_size"`
	Tiles      [][]TileType `json:"tiles"` // Tiles[row][col], stored (committed) types
	Actor      ActorView    `json:"actor"`
	Selected   TileType     `json:"selected"`
	PaintState string       `json:"paint_state"`
	Hover      *Position    `json:"hover,omitempty"`
}
