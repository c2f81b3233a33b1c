package engine

// Actor is the single sprite moving over the grid one cell at a time
type Actor struct {
	pos    Position
	facing Direction
	width  int
	height int
}

// NewActor places an actor at start, facing down, inside a width x height grid
func NewActor(start Position, width, height int) (*Actor, error) {
	a := &Actor{
		pos:    start,
		facing: Down,
		width:  width,
		height: height,
	}
	if !a.CanMoveTo(start.X, start.Y) {
		return nil, ErrOutOfBounds
	}
	return a, nil
}

// Position returns the actor's cell
func (a *Actor) Position() Position {
	return a.pos
}

// Facing returns the direction the actor last tried to move in
func (a *Actor) Facing() Direction {
	return a.facing
}

// CanMoveTo checks whether (x, y) is inside the grid
func (a *Actor) CanMoveTo(x, y int) bool {
	return x >= 0 && x < a.width && y >= 0 && y < a.height
}

// Move turns the actor toward dir and steps one cell if the target is in bounds.
// The facing changes even when the step is rejected. Returns whether the actor moved.
func (a *Actor) Move(dir Direction) bool {
	if !dir.Valid() {
		return false
	}

	a.facing = dir

	dx, dy := dir.Offset()
	newX, newY := a.pos.X+dx, a.pos.Y+dy
	if !a.CanMoveTo(newX, newY) {
		return false
	}

	a.pos = Position{X: newX, Y: newY}
	return true
}

// View returns the actor's render placement for the given cell size in pixels
func (a *Actor) View(cellSize int) ActorView {
	return ActorView{
		X:      a.pos.X,
		Y:      a.pos.Y,
		Facing: a.facing,
		Left:   a.pos.X * cellSize,
		Top:    a.pos.Y * cellSize,
	}
}
