package engine

// PaintState tracks whether the pointer button is held over the map
type PaintState int

const (
	Idle PaintState = iota
	Painting
)

func (s PaintState) String() string {
	if s == Painting {
		return "painting"
	}
	return "idle"
}

// PointerEnter handles the pointer moving onto (col, row). While painting the
// selected type is committed; otherwise it is only previewed on the surface.
func (e *MapEngine) PointerEnter(col, row int) error {
	if !e.grid.InBounds(col, row) {
		return e.grid.boundsError(col, row)
	}

	e.moveHover(col, row)

	if e.paintState == Painting {
		return e.commit(col, row, e.selection.Selected())
	}
	e.surface.Show(col, row, e.selection.Selected(), true)
	return nil
}

// PointerLeave handles the pointer moving off (col, row): the cell goes back
// to showing its stored type.
func (e *MapEngine) PointerLeave(col, row int) error {
	if !e.grid.InBounds(col, row) {
		return e.grid.boundsError(col, row)
	}
	if e.hover != nil && e.hover.X == col && e.hover.Y == row {
		e.hover = nil
	}
	e.revert(col, row)
	return nil
}

// PointerDown presses the button on (col, row), committing it and starting a drag
func (e *MapEngine) PointerDown(col, row int) error {
	if !e.grid.InBounds(col, row) {
		return e.grid.boundsError(col, row)
	}
	e.paintState = Painting
	e.moveHover(col, row)
	return e.commit(col, row, e.selection.Selected())
}

// PointerUp releases the button and ends the drag
func (e *MapEngine) PointerUp() {
	e.paintState = Idle
}

// Click commits the selected type on (col, row) regardless of drag state
func (e *MapEngine) Click(col, row int) error {
	return e.commit(col, row, e.selection.Selected())
}

// PaintState returns the current state of the paint state machine
func (e *MapEngine) PaintState() PaintState {
	return e.paintState
}

// commit writes t into the grid, then renders the cell
func (e *MapEngine) commit(col, row int, t TileType) error {
	if err := e.grid.SetTileType(col, row, t); err != nil {
		return err
	}
	e.surface.Show(col, row, t, false)
	return nil
}

// moveHover makes (col, row) the hovered cell. Arriving from another cell
// without a leave in between still clears the old preview.
func (e *MapEngine) moveHover(col, row int) {
	if e.hover != nil && (e.hover.X != col || e.hover.Y != row) {
		e.revert(e.hover.X, e.hover.Y)
	}
	e.hover = &Position{X: col, Y: row}
}

func (e *MapEngine) revert(col, row int) {
	stored, err := e.grid.TileType(col, row)
	if err != nil {
		return
	}
	e.surface.Show(col, row, stored, false)
}
