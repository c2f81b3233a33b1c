package service

import (
	"context"
	"time"

	"github.com/wricardo/tile-painter/game/engine"
)

// GameService defines all map editing operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Map
	GetMap(ctx context.Context, sessionID string) (*engine.MapState, error)
	GetTile(ctx context.Context, sessionID string, col, row int) (*TileInfo, error)
	SetTile(ctx context.Context, sessionID string, col, row int, tileType string) (*TileInfo, error)
	Pointer(ctx context.Context, sessionID string, event PointerEvent, col, row int) (*PointerResult, error)
	Select(ctx context.Context, sessionID, tileType string) (*PaletteInfo, error)
	Reset(ctx context.Context, sessionID string) (*engine.MapState, error)

	// Actor
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)

	// Palette and presets
	GetPalette(ctx context.Context) (*PaletteInfo, error)
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MapConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MapConfig) error
}

// SessionManager defines session storage operations. Get, List and Create
// return copies; timestamps change only through UpdateLastAccessed.
type SessionManager interface {
	Create(id string, config *engine.MapConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles map preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MapConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MapConfig
	SaveConfig(name string, config *engine.MapConfig) error
}

// RendererFactory returns the renderer a new session's engine draws to
type RendererFactory func(sessionID string) engine.Renderer

// Session represents an active editing session
type Session struct {
	ID             string
	Engine         *engine.MapEngine
	Config         *engine.MapConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
