package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned when a direction string is not up, down, left or right.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is one of the four cardinal moves (and facings) of the actor
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists every valid direction in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection converts user input ("up", "Left", "ArrowDown") into a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "arrowup":
		return Up, nil
	case "down", "arrowdown":
		return Down, nil
	case "left", "arrowleft":
		return Left, nil
	case "right", "arrowright":
		return Right, nil
	}
	return "", fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, s)
}

// Valid reports whether d is one of the four known directions
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Offset returns the one-cell step for d. Unknown directions do not move.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}
