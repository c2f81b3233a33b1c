package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/tile-painter/game/engine"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrConfigNotFound      = errors.New("configuration not found")
	ErrInvalidPointerEvent = errors.New("invalid pointer event")
)

// SessionInfo provides information about an editing session
type SessionInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Map            *engine.MapState  `json:"map"`
	MapConfig      *engine.MapConfig `json:"map_config"`
}

// TileInfo describes a single cell
type TileInfo struct {
	Col               int             `json:"col"`
	Row               int             `json:"row"`
	Type              engine.TileType `json:"type"`      // stored type
	Displayed         engine.TileType `json:"displayed"` // may be a hover preview
	Preview           bool            `json:"preview"`
	Known             bool            `json:"known"`
	Label             string          `json:"label,omitempty"`
	Terrain           bool            `json:"terrain"`
	HasActor          bool            `json:"has_actor"`
	DistanceFromActor int             `json:"distance_from_actor"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success       bool             `json:"success"`
	Direction     engine.Direction `json:"direction"`
	From          engine.Position  `json:"from"`
	To            engine.Position  `json:"to"`
	Actor         engine.ActorView `json:"actor"`
	PossibleMoves []string         `json:"possible_moves"`
	Message       string           `json:"message"`
}

// PointerEvent is one pointer interaction with a map cell
type PointerEvent string

const (
	PointerEnter PointerEvent = "enter"
	PointerLeave PointerEvent = "leave"
	PointerDown  PointerEvent = "down"
	PointerUp    PointerEvent = "up"
	PointerClick PointerEvent = "click"
)

// ParsePointerEvent parses an event name, accepting the DOM spellings too
func ParsePointerEvent(s string) (PointerEvent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enter", "mouseenter", "pointerenter":
		return PointerEnter, nil
	case "leave", "mouseleave", "pointerleave":
		return PointerLeave, nil
	case "down", "mousedown", "pointerdown":
		return PointerDown, nil
	case "up", "mouseup", "pointerup":
		return PointerUp, nil
	case "click":
		return PointerClick, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPointerEvent, s)
}

// PointerResult reports the paint state and the touched cell after a pointer event
type PointerResult struct {
	Event      PointerEvent `json:"event"`
	PaintState string       `json:"paint_state"`
	Tile       *TileInfo    `json:"tile,omitempty"` // nil for "up"
}

// PaletteInfo is the palette plus the session's current selection
type PaletteInfo struct {
	Entries  []engine.PaletteEntry `json:"entries"`
	Default  engine.TileType       `json:"default"`
	Selected engine.TileType       `json:"selected,omitempty"`
}

// ConfigInfo provides information about a map preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
