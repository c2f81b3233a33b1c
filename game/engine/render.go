package engine

// TileView is what a renderer needs to draw one cell
type TileView struct {
	Col     int      `json:"col"`
	Row     int      `json:"row"`
	Type    TileType `json:"type"`
	Preview bool     `json:"preview,omitempty"` // shown but not committed
	Known   bool     `json:"known"`             // false for labels outside the palette
}

// ActorView is what a renderer needs to place the actor
type ActorView struct {
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Facing Direction `json:"facing"`
	Left   int       `json:"left"` // pixel offset, X * cell size
	Top    int       `json:"top"`  // pixel offset, Y * cell size
}

// Renderer draws model changes. It is called synchronously right after each
// mutation, once per changed cell or actor update.
type Renderer interface {
	RenderTile(tile TileView)
	RenderActor(actor ActorView)
}

// NopRenderer discards everything
type NopRenderer struct{}

func (NopRenderer) RenderTile(TileView)   {}
func (NopRenderer) RenderActor(ActorView) {}

// Surface is the display layer: the type each cell currently shows. It equals
// the stored type except while a hover preview is active on a cell.
type Surface struct {
	width    int
	height   int
	shown    []TileType
	preview  []bool
	palette  *Palette
	renderer Renderer
}

// NewSurface creates a display layer mirroring the current contents of grid
func NewSurface(grid *Grid, palette *Palette, renderer Renderer) *Surface {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	s := &Surface{
		width:    grid.width,
		height:   grid.height,
		shown:    make([]TileType, len(grid.tiles)),
		preview:  make([]bool, len(grid.tiles)),
		palette:  palette,
		renderer: renderer,
	}
	copy(s.shown, grid.tiles)
	return s
}

// Show displays t on (col, row) and hands the cell to the renderer
func (s *Surface) Show(col, row int, t TileType, preview bool) {
	i := row*s.width + col
	s.shown[i] = t
	s.preview[i] = preview
	s.renderer.RenderTile(s.view(col, row))
}

// Displayed returns the type currently shown on (col, row)
func (s *Surface) Displayed(col, row int) (TileType, bool) {
	if col < 0 || col >= s.width || row < 0 || row >= s.height {
		return "", false
	}
	return s.shown[row*s.width+col], true
}

// Previewing reports whether (col, row) shows an uncommitted preview
func (s *Surface) Previewing(col, row int) bool {
	if col < 0 || col >= s.width || row < 0 || row >= s.height {
		return false
	}
	return s.preview[row*s.width+col]
}

// RenderAll hands every cell to the renderer, row by row
func (s *Surface) RenderAll() {
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			s.renderer.RenderTile(s.view(col, row))
		}
	}
}

func (s *Surface) view(col, row int) TileView {
	i := row*s.width + col
	return TileView{
		Col:     col,
		Row:     row,
		Type:    s.shown[i],
		Preview: s.preview[i],
		Known:   s.palette.Contains(s.shown[i]),
	}
}
