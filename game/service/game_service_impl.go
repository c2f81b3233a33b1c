package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wricardo/tile-painter/game/engine"
	"github.com/wricardo/tile-painter/telemetry"
)

// gameServiceImpl implements the GameService interface. Every engine
// mutation happens under mu, so each engine only ever sees one caller.
type gameServiceImpl struct {
	sessions  SessionManager
	configs   ConfigManager
	palette   *engine.Palette
	renderers RendererFactory
	tracer    trace.Tracer
	mu        sync.RWMutex
}

// Option configures a GameService
type Option func(*gameServiceImpl)

// WithRendererFactory makes every new session draw to the renderer f returns
func WithRendererFactory(f RendererFactory) Option {
	return func(s *gameServiceImpl) {
		s.renderers = f
	}
}

// WithPalette sets the palette reported by GetPalette
func WithPalette(p *engine.Palette) Option {
	return func(s *gameServiceImpl) {
		if p != nil {
			s.palette = p
		}
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		palette:  engine.DefaultPalette(),
		tracer:   telemetry.Tracer("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) start(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, name)
	if sessionID != "" {
		span.SetAttributes(attribute.String("session.id", sessionID))
	}
	return ctx, span
}

// getSession marks a session accessed and returns a copy of it, so the
// timestamps read later are not shared with other callers. Callers hold mu.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	s.sessions.UpdateLastAccessed(sessionID)

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Map:            sess.Engine.GetState(),
		MapConfig:      sess.Config,
	}
}

// CreateSession creates a new editing session from a preset, or the default preset
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	_, span := s.start(ctx, "service.create_session", "")
	defer span.End()
	span.SetAttributes(attribute.String("config.name", configName))

	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MapConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if s.renderers != nil {
		sess.Engine.SetRenderer(s.renderers(sess.ID))
	}
	span.SetAttributes(attribute.String("session.id", sess.ID))

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	_, span := s.start(ctx, "service.get_session", sessionID)
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	_, span := s.start(ctx, "service.list_sessions", "")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	span.SetAttributes(attribute.Int("session.count", len(result)))

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	_, span := s.start(ctx, "service.delete_session", sessionID)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// GetMap returns a snapshot of the session's map
func (s *gameServiceImpl) GetMap(ctx context.Context, sessionID string) (*engine.MapState, error) {
	_, span := s.start(ctx, "service.get_map", sessionID)
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetTile describes one cell of the session's map
func (s *gameServiceImpl) GetTile(ctx context.Context, sessionID string, col, row int) (*TileInfo, error) {
	_, span := s.start(ctx, "service.get_tile", sessionID)
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.tileInfo(sess.Engine, col, row)
}

// SetTile commits tileType on (col, row) directly, bypassing the pointer state machine
func (s *gameServiceImpl) SetTile(ctx context.Context, sessionID string, col, row int, tileType string) (*TileInfo, error) {
	_, span := s.start(ctx, "service.set_tile", sessionID)
	defer span.End()
	span.SetAttributes(
		attribute.Int("tile.col", col),
		attribute.Int("tile.row", row),
		attribute.String("tile.type", tileType),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.SetTileType(col, row, engine.TileType(tileType)); err != nil {
		return nil, err
	}
	return s.tileInfo(sess.Engine, col, row)
}

// Pointer feeds one pointer event into the session's paint state machine
func (s *gameServiceImpl) Pointer(ctx context.Context, sessionID string, event PointerEvent, col, row int) (*PointerResult, error) {
	_, span := s.start(ctx, "service.pointer", sessionID)
	defer span.End()
	span.SetAttributes(
		attribute.String("pointer.event", string(event)),
		attribute.Int("tile.col", col),
		attribute.Int("tile.row", row),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	switch event {
	case PointerEnter:
		err = eng.PointerEnter(col, row)
	case PointerLeave:
		err = eng.PointerLeave(col, row)
	case PointerDown:
		err = eng.PointerDown(col, row)
	case PointerUp:
		eng.PointerUp()
	case PointerClick:
		err = eng.Click(col, row)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidPointerEvent, event)
	}
	if err != nil {
		return nil, err
	}

	result := &PointerResult{
		Event:      event,
		PaintState: eng.PaintState().String(),
	}
	if event != PointerUp {
		tile, err := s.tileInfo(eng, col, row)
		if err != nil {
			return nil, err
		}
		result.Tile = tile
	}
	return result, nil
}

// Select changes the session's palette selection
func (s *gameServiceImpl) Select(ctx context.Context, sessionID, tileType string) (*PaletteInfo, error) {
	_, span := s.start(ctx, "service.select", sessionID)
	defer span.End()
	span.SetAttributes(attribute.String("tile.type", tileType))

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Engine.Select(engine.TileType(tileType)); err != nil {
		return nil, err
	}
	return s.paletteInfo(sess.Engine.GetPalette(), sess.Engine.Selected()), nil
}

// Reset restores the session's map to its preset and redraws it
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.MapState, error) {
	_, span := s.start(ctx, "service.reset", sessionID)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Reset()
}

// Move turns the actor and steps it one cell if the target is on the map
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	_, span := s.start(ctx, "service.move", sessionID)
	defer span.End()

	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("move.direction", string(dir)))

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	from := eng.GetActorPosition()
	success := eng.Move(dir)
	to := eng.GetActorPosition()
	span.SetAttributes(attribute.Bool("move.success", success))

	result := &MoveResult{
		Success:   success,
		Direction: dir,
		From:      from,
		To:        to,
		Actor:     eng.GetState().Actor,
	}
	for _, d := range eng.GetPossibleMoves() {
		result.PossibleMoves = append(result.PossibleMoves, string(d))
	}
	if success {
		result.Message = fmt.Sprintf("Moved %s to (%d,%d)", dir, to.X, to.Y)
	} else {
		result.Message = fmt.Sprintf("Edge of the map: now facing %s at (%d,%d)", dir, to.X, to.Y)
	}
	return result, nil
}

// GetPalette returns the configured palette
func (s *gameServiceImpl) GetPalette(ctx context.Context) (*PaletteInfo, error) {
	_, span := s.start(ctx, "service.get_palette", "")
	defer span.End()

	return s.paletteInfo(s.palette, ""), nil
}

// ListConfigs returns all available map presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	_, span := s.start(ctx, "service.list_configs", "")
	defer span.End()

	return s.configs.ListConfigs()
}

// LoadConfig loads a specific map preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MapConfig, error) {
	_, span := s.start(ctx, "service.load_config", "")
	defer span.End()
	span.SetAttributes(attribute.String("config.name", configName))

	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a map preset
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MapConfig) error {
	_, span := s.start(ctx, "service.save_config", "")
	defer span.End()
	span.SetAttributes(attribute.String("config.name", configName))

	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) tileInfo(eng *engine.MapEngine, col, row int) (*TileInfo, error) {
	stored, err := eng.TileType(col, row)
	if err != nil {
		return nil, err
	}
	displayed, err := eng.DisplayedTileType(col, row)
	if err != nil {
		return nil, err
	}

	palette := eng.GetPalette()
	actor := eng.GetActorPosition()
	cell := engine.Position{X: col, Y: row}
	info := &TileInfo{
		Col:               col,
		Row:               row,
		Type:              stored,
		Displayed:         displayed,
		Preview:           eng.Previewing(col, row),
		Terrain:           palette.IsTerrain(stored),
		HasActor:          actor == cell,
		DistanceFromActor: engine.ManhattanDistance(actor, cell),
	}
	if entry, ok := palette.Lookup(stored); ok {
		info.Known = true
		info.Label = entry.Label
	}
	return info, nil
}

func (s *gameServiceImpl) paletteInfo(p *engine.Palette, selected engine.TileType) *PaletteInfo {
	return &PaletteInfo{
		Entries:  p.Entries(),
		Default:  p.Default(),
		Selected: selected,
	}
}
