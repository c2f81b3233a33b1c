package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/tile-painter/game/engine"
)

// canvas is the drawing surface the renderer writes to
type canvas interface {
	SetContent(x, y int, r rune, style tcell.Style)
	Show()
}

var actorRunes = map[engine.Direction]rune{
	engine.Up:    '^',
	engine.Down:  'v',
	engine.Left:  '<',
	engine.Right: '>',
}

var unknownStyle = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Background(tcell.ColorBlack).Bold(true)

// Renderer draws engine render calls as one terminal cell per tile.
// It implements engine.Renderer.
type Renderer struct {
	canvas  canvas
	palette *engine.Palette

	// Terminal cell of map tile (0,0)
	originX, originY int

	tiles map[engine.Position]engine.TileView
	actor *engine.ActorView
}

// NewRenderer creates a renderer drawing the map with its top-left tile at (originX, originY)
func NewRenderer(c canvas, palette *engine.Palette, originX, originY int) *Renderer {
	if palette == nil {
		palette = engine.DefaultPalette()
	}
	return &Renderer{
		canvas:  c,
		palette: palette,
		originX: originX,
		originY: originY,
		tiles:   make(map[engine.Position]engine.TileView),
	}
}

// RenderTile draws one tile, keeping the actor on top if it stands there
func (r *Renderer) RenderTile(tile engine.TileView) {
	pos := engine.Position{X: tile.Col, Y: tile.Row}
	r.tiles[pos] = tile

	if r.actor != nil && r.actor.X == tile.Col && r.actor.Y == tile.Row {
		r.drawActor(*r.actor)
	} else {
		r.drawTile(tile)
	}
	r.canvas.Show()
}

// RenderActor moves the actor glyph, restoring the tile it left
func (r *Renderer) RenderActor(actor engine.ActorView) {
	if prev := r.actor; prev != nil && (prev.X != actor.X || prev.Y != actor.Y) {
		if tile, ok := r.tiles[engine.Position{X: prev.X, Y: prev.Y}]; ok {
			r.drawTile(tile)
		}
	}

	r.actor = &actor
	r.drawActor(actor)
	r.canvas.Show()
}

// CellAt maps a terminal position to map coordinates. It does not check the
// upper bounds of the map.
func (r *Renderer) CellAt(x, y int) (col, row int, ok bool) {
	col, row = x-r.originX, y-r.originY
	if col < 0 || row < 0 {
		return 0, 0, false
	}
	return col, row, true
}

// DrawText writes msg starting at (x, y), padding to width with spaces
func (r *Renderer) DrawText(x, y, width int, msg string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	i := 0
	for _, ch := range msg {
		if width > 0 && i >= width {
			break
		}
		r.canvas.SetContent(x+i, y, ch, style)
		i++
	}
	for ; i < width; i++ {
		r.canvas.SetContent(x+i, y, ' ', style)
	}
	r.canvas.Show()
}

func (r *Renderer) drawTile(tile engine.TileView) {
	ch, style := r.tileLook(tile)
	r.canvas.SetContent(r.originX+tile.Col, r.originY+tile.Row, ch, style)
}

func (r *Renderer) drawActor(actor engine.ActorView) {
	bg := tcell.ColorBlack
	if tile, ok := r.tiles[engine.Position{X: actor.X, Y: actor.Y}]; ok {
		if entry, found := r.palette.Lookup(tile.Type); found && tile.Known {
			bg = tcell.GetColor(entry.Color)
		}
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(bg).Bold(true)

	ch, ok := actorRunes[actor.Facing]
	if !ok {
		ch = '@'
	}
	r.canvas.SetContent(r.originX+actor.X, r.originY+actor.Y, ch, style)
}

// tileLook picks the glyph and colors for a tile. Previews are dimmed, and
// labels outside the palette show as '?'.
func (r *Renderer) tileLook(tile engine.TileView) (rune, tcell.Style) {
	entry, ok := r.palette.Lookup(tile.Type)
	if !ok || !tile.Known {
		return '?', unknownStyle
	}

	ch := ' '
	for _, g := range entry.Glyph {
		ch = g
		break
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.GetColor(entry.Color))
	if tile.Preview {
		style = style.Dim(true)
	}
	return ch, style
}
