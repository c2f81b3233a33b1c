package engine

import "fmt"

// Engine provides the main interface for map operations
type Engine interface {
	// Map state
	GetState() *MapState
	Width() int
	Height() int
	Reset() (*MapState, error)
	RenderAll()

	// Tiles
	TileType(col, row int) (TileType, error)
	SetTileType(col, row int, t TileType) error
	DisplayedTileType(col, row int) (TileType, error)
	Previewing(col, row int) bool

	// Palette selection
	Select(t TileType) error
	Selected() TileType
	GetPalette() *Palette

	// Paint interaction
	PointerEnter(col, row int) error
	PointerLeave(col, row int) error
	PointerDown(col, row int) error
	PointerUp()
	Click(col, row int) error
	PaintState() PaintState

	// Actor
	Move(dir Direction) bool
	CanMove(dir Direction) bool
	GetActorPosition() Position
	GetActorFacing() Direction
	GetPossibleMoves() []Direction

	// Configuration
	GetConfig() *MapConfig
	SetRenderer(r Renderer)
}

// MapEngine implements the Engine interface
type MapEngine struct {
	config    *MapConfig
	palette   *Palette
	grid      *Grid
	surface   *Surface
	actor     *Actor
	selection *Selection
	renderer  Renderer

	paintState PaintState
	hover      *Position
}

// NewEngine creates a map engine from config. A nil palette uses the
// built-in one and a nil renderer draws nothing.
func NewEngine(config *MapConfig, palette *Palette, renderer Renderer) (*MapEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := ValidateMapConfig(config); err != nil {
		return nil, err
	}
	if palette == nil {
		palette = DefaultPalette()
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}

	e := &MapEngine{
		config:    config,
		palette:   palette,
		selection: NewSelection(palette),
		renderer:  renderer,
	}
	if err := e.init(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a 30x15 all-grass map with the built-in palette
func NewEngineWithDefaults() *MapEngine {
	e, err := NewEngine(DefaultMapConfig(), nil, nil)
	if err != nil {
		panic(fmt.Sprintf("default map config: %v", err))
	}
	return e
}

func (e *MapEngine) init() error {
	grid, err := InitGridFromConfig(e.config)
	if err != nil {
		return err
	}
	actor, err := NewActor(e.config.ActorStart, grid.Width(), grid.Height())
	if err != nil {
		return fmt.Errorf("actor_start %v: %w", e.config.ActorStart, err)
	}

	e.grid = grid
	e.actor = actor
	e.surface = NewSurface(grid, e.palette, e.renderer)
	e.paintState = Idle
	e.hover = nil
	return nil
}

// GetState returns a snapshot of the map
func (e *MapEngine) GetState() *MapState {
	var hover *Position
	if e.hover != nil {
		h := *e.hover
		hover = &h
	}
	return &MapState{
		ConfigName: e.config.Name,
		Width:      e.grid.Width(),
		Height:     e.grid.Height(),
		CellSize:   e.config.EffectiveCellSize(),
		Tiles:      e.grid.Rows(),
		Actor:      e.actor.View(e.config.EffectiveCellSize()),
		Selected:   e.selection.Selected(),
		PaintState: e.paintState.String(),
		Hover:      hover,
	}
}

// Width returns the number of columns
func (e *MapEngine) Width() int {
	return e.grid.Width()
}

// Height returns the number of rows
func (e *MapEngine) Height() int {
	return e.grid.Height()
}

// Reset rebuilds the map from its config and redraws everything.
// The palette selection survives a reset. If the config no longer
// builds a map, the current map is kept and the error returned.
func (e *MapEngine) Reset() (*MapState, error) {
	if err := e.init(); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	e.RenderAll()
	return e.GetState(), nil
}

// RenderAll hands every cell and the actor to the renderer
func (e *MapEngine) RenderAll() {
	e.surface.RenderAll()
	e.renderActor()
}

// TileType returns the stored type of (col, row)
func (e *MapEngine) TileType(col, row int) (TileType, error) {
	return e.grid.TileType(col, row)
}

// SetTileType commits t on (col, row) and renders the cell
func (e *MapEngine) SetTileType(col, row int, t TileType) error {
	return e.commit(col, row, t)
}

// DisplayedTileType returns what (col, row) currently shows, which may be a preview
func (e *MapEngine) DisplayedTileType(col, row int) (TileType, error) {
	t, ok := e.surface.Displayed(col, row)
	if !ok {
		return "", e.grid.boundsError(col, row)
	}
	return t, nil
}

// Previewing reports whether (col, row) shows an uncommitted hover preview
func (e *MapEngine) Previewing(col, row int) bool {
	return e.surface.Previewing(col, row)
}

// Select changes the palette selection used by later paint operations
func (e *MapEngine) Select(t TileType) error {
	return e.selection.Select(t)
}

// Selected returns the palette selection
func (e *MapEngine) Selected() TileType {
	return e.selection.Selected()
}

// GetPalette returns the palette the engine was built with
func (e *MapEngine) GetPalette() *Palette {
	return e.palette
}

// Move turns the actor toward dir and steps if the target cell is inside the
// grid. The actor is re-rendered either way since its facing changed.
func (e *MapEngine) Move(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	moved := e.actor.Move(dir)
	e.renderActor()
	return moved
}

// CanMove checks whether a move in dir would change the actor's position
func (e *MapEngine) CanMove(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	pos := e.actor.Position()
	dx, dy := dir.Offset()
	return e.actor.CanMoveTo(pos.X+dx, pos.Y+dy)
}

// GetActorPosition returns the actor's cell
func (e *MapEngine) GetActorPosition() Position {
	return e.actor.Position()
}

// GetActorFacing returns the actor's facing
func (e *MapEngine) GetActorFacing() Direction {
	return e.actor.Facing()
}

// GetPossibleMoves returns all directions the actor can step in
func (e *MapEngine) GetPossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetConfig returns the map config
func (e *MapEngine) GetConfig() *MapConfig {
	return e.config
}

// SetRenderer swaps the renderer. The new one receives only future changes;
// call RenderAll to bring it up to date.
func (e *MapEngine) SetRenderer(r Renderer) {
	if r == nil {
		r = NopRenderer{}
	}
	e.renderer = r
	e.surface.renderer = r
}

func (e *MapEngine) renderActor() {
	e.renderer.RenderActor(e.actor.View(e.config.EffectiveCellSize()))
}
