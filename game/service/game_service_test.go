package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/tile-painter/game/engine"
	"github.com/wricardo/tile-painter/game/service"
	"github.com/wricardo/tile-painter/game/session"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.MapConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config, nil, nil)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.MapConfig
	saved   map[string]*engine.MapConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := &engine.MapConfig{
		Name:        "test",
		Description: "Test map",
		Width:       3,
		Height:      3,
	}
	pond := &engine.MapConfig{
		Name:        "Pond",
		Description: "Water in the middle",
		Width:       3,
		Height:      3,
		Layout:      []string{"ggg", "gwg", "ggg"},
		Legend:      map[string]engine.TileType{"g": "grass", "w": "water"},
		ActorStart:  engine.Position{X: 1, Y: 0},
	}

	return &MockConfigManager{
		configs: map[string]*engine.MapConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
			"pond":    pond,
		},
		saved: make(map[string]*engine.MapConfig),
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.MapConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, service.ErrConfigNotFound
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.MapConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.MapConfig) error {
	m.saved[name] = config
	return nil
}

// recordingRenderer collects render calls per session
type recordingRenderer struct {
	mu     sync.Mutex
	tiles  []engine.TileView
	actors []engine.ActorView
}

func (r *recordingRenderer) RenderTile(tile engine.TileView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiles = append(r.tiles, tile)
}

func (r *recordingRenderer) RenderActor(actor engine.ActorView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actors = append(r.actors, actor)
}

func newTestService(t *testing.T) (service.GameService, *service.SessionInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, info
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{"create with default config", "", false},
		{"create with specific config", "pond", false},
		{"create with invalid config", "nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, service.ErrConfigNotFound) {
					t.Errorf("Expected ErrConfigNotFound, got %v", err)
				}
				return
			}
			if session == nil || session.Map == nil {
				t.Fatal("CreateSession() returned nil session or map")
			}
		})
	}

	info, _ := svc.CreateSession(ctx, "pond")
	if info.ConfigName != "pond" {
		t.Errorf("Expected config_id pond, got %s", info.ConfigName)
	}
	if info.Map.Tiles[1][1] != "water" {
		t.Errorf("Expected preset layout applied, got %v", info.Map.Tiles)
	}
	if info.Map.Actor.X != 1 || info.Map.Actor.Y != 0 {
		t.Errorf("Expected actor at preset start, got %+v", info.Map.Actor)
	}
}

func TestGameService_RendererFactory(t *testing.T) {
	ctx := context.Background()
	renderers := make(map[string]*recordingRenderer)
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager(),
		service.WithRendererFactory(func(id string) engine.Renderer {
			r := &recordingRenderer{}
			renderers[id] = r
			return r
		}),
	)

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	rec, ok := renderers[info.ID]
	if !ok {
		t.Fatalf("Renderer factory not called for session %s", info.ID)
	}

	if _, err := svc.SetTile(ctx, info.ID, 2, 2, "sand"); err != nil {
		t.Fatalf("SetTile failed: %v", err)
	}
	svc.Move(ctx, info.ID, "down")

	if len(rec.tiles) != 1 || rec.tiles[0].Type != "sand" {
		t.Errorf("Expected one sand render, got %+v", rec.tiles)
	}
	if len(rec.actors) != 1 || rec.actors[0].Y != 1 {
		t.Errorf("Expected one actor render at y=1, got %+v", rec.actors)
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	tests := []struct {
		name        string
		sessionID   string
		direction   string
		wantSuccess bool
		wantTo      engine.Position
		wantErr     error
	}{
		{"blocked at top edge", info.ID, "up", false, engine.Position{X: 0, Y: 0}, nil},
		{"step right", info.ID, "right", true, engine.Position{X: 1, Y: 0}, nil},
		{"step right again", info.ID, "right", true, engine.Position{X: 2, Y: 0}, nil},
		{"blocked at right edge", info.ID, "right", false, engine.Position{X: 2, Y: 0}, nil},
		{"arrow key name", info.ID, "ArrowDown", true, engine.Position{X: 2, Y: 1}, nil},
		{"invalid direction", info.ID, "diagonal", false, engine.Position{}, engine.ErrInvalidDirection},
		{"invalid session", "nonexistent", "up", false, engine.Position{}, service.ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Move(ctx, tt.sessionID, tt.direction)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Move() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Move() unexpected error: %v", err)
			}
			if result.Success != tt.wantSuccess {
				t.Errorf("Move() success = %v, want %v", result.Success, tt.wantSuccess)
			}
			if result.To != tt.wantTo {
				t.Errorf("Move() to = %v, want %v", result.To, tt.wantTo)
			}
			if result.Actor.Facing != result.Direction {
				t.Errorf("Actor facing %s, want %s", result.Actor.Facing, result.Direction)
			}
			if result.Message == "" {
				t.Error("Move() returned empty message")
			}
		})
	}
}

func TestGameService_PointerHoverDoesNotCommit(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	if _, err := svc.Select(ctx, info.ID, "sand"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if _, err := svc.Pointer(ctx, info.ID, service.PointerClick, 1, 1); err != nil {
		t.Fatalf("Click failed: %v", err)
	}

	result, err := svc.Pointer(ctx, info.ID, service.PointerEnter, 2, 2)
	if err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	if result.Tile.Type != engine.DefaultTileType || result.Tile.Displayed != "sand" || !result.Tile.Preview {
		t.Errorf("Expected grass stored with sand preview, got %+v", result.Tile)
	}

	state, _ := svc.GetMap(ctx, info.ID)
	if state.Tiles[1][1] != "sand" || state.Tiles[2][2] != engine.DefaultTileType {
		t.Errorf("Unexpected tiles after hover: %v", state.Tiles)
	}
}

func TestGameService_PointerDrag(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)
	svc.Select(ctx, info.ID, "water")

	steps := []struct {
		event     service.PointerEvent
		col, row  int
		wantState string
	}{
		{service.PointerDown, 0, 2, "painting"},
		{service.PointerLeave, 0, 2, "painting"},
		{service.PointerEnter, 1, 2, "painting"},
		{service.PointerUp, 0, 0, "idle"},
		{service.PointerLeave, 1, 2, "idle"},
		{service.PointerEnter, 2, 2, "idle"},
	}
	for _, step := range steps {
		result, err := svc.Pointer(ctx, info.ID, step.event, step.col, step.row)
		if err != nil {
			t.Fatalf("%s (%d,%d) failed: %v", step.event, step.col, step.row, err)
		}
		if result.PaintState != step.wantState {
			t.Errorf("%s: paint state %s, want %s", step.event, result.PaintState, step.wantState)
		}
		if step.event == service.PointerUp && result.Tile != nil {
			t.Error("Expected no tile for pointer up")
		}
	}

	state, _ := svc.GetMap(ctx, info.ID)
	got := state.Tiles[2]
	if got[0] != "water" || got[1] != "water" || got[2] != engine.DefaultTileType {
		t.Errorf("Expected [water water grass] on bottom row, got %v", got)
	}
}

func TestGameService_PointerErrors(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	if _, err := svc.Pointer(ctx, info.ID, service.PointerClick, 3, 0); !errors.Is(err, engine.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if _, err := svc.Pointer(ctx, info.ID, "hover", 0, 0); !errors.Is(err, service.ErrInvalidPointerEvent) {
		t.Errorf("Expected ErrInvalidPointerEvent, got %v", err)
	}
	if _, err := svc.Pointer(ctx, "nope", service.PointerClick, 0, 0); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_TileOperations(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	tile, err := svc.SetTile(ctx, info.ID, 2, 1, "house")
	if err != nil {
		t.Fatalf("SetTile failed: %v", err)
	}
	if tile.Type != "house" || !tile.Known || tile.Terrain || tile.Label != "House" {
		t.Errorf("Unexpected tile info: %+v", tile)
	}
	if tile.DistanceFromActor != 3 {
		t.Errorf("Expected distance 3 from (0,0), got %d", tile.DistanceFromActor)
	}

	tile, _ = svc.GetTile(ctx, info.ID, 0, 0)
	if !tile.HasActor || !tile.Terrain {
		t.Errorf("Expected actor on terrain at (0,0), got %+v", tile)
	}

	if _, err := svc.SetTile(ctx, info.ID, 0, 0, ""); !errors.Is(err, engine.ErrEmptyTileType) {
		t.Errorf("Expected ErrEmptyTileType, got %v", err)
	}
	if _, err := svc.GetTile(ctx, info.ID, -1, 0); !errors.Is(err, engine.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestGameService_SelectAndPalette(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	palette, err := svc.Select(ctx, info.ID, "flowers-red")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if palette.Selected != "flowers-red" {
		t.Errorf("Expected flowers-red selected, got %s", palette.Selected)
	}
	if _, err := svc.Select(ctx, info.ID, ""); !errors.Is(err, engine.ErrEmptyTileType) {
		t.Errorf("Expected ErrEmptyTileType, got %v", err)
	}

	global, err := svc.GetPalette(ctx)
	if err != nil {
		t.Fatalf("GetPalette failed: %v", err)
	}
	if global.Default != engine.DefaultTileType || len(global.Entries) == 0 {
		t.Errorf("Unexpected palette: default=%s entries=%d", global.Default, len(global.Entries))
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, info := newTestService(t)

	svc.SetTile(ctx, info.ID, 1, 1, "rock")
	svc.Move(ctx, info.ID, "right")

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Tiles[1][1] != engine.DefaultTileType {
		t.Errorf("Expected tiles restored, got %v", state.Tiles)
	}
	if state.Actor.X != 0 || state.Actor.Y != 0 {
		t.Errorf("Expected actor back at start, got %+v", state.Actor)
	}

	if _, err := svc.Reset(ctx, "missing"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_ListAndDeleteSessions(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession(ctx, ""); err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, sessions[0].ID); err != nil {
		t.Errorf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, sessions[0].ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected deleted session to be gone, got %v", err)
	}
}

func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(session.NewManager(nil), NewMockConfigManager())

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.GetSession(ctx, info.ID); err != nil {
					t.Errorf("GetSession failed: %v", err)
					return
				}
				svc.GetMap(ctx, info.ID)
				svc.ListSessions(ctx)
				svc.Pointer(ctx, info.ID, service.PointerEnter, i%3, j%3)
			}
		}(i)
	}
	wg.Wait()

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.LastAccessedAt.Before(info.LastAccessedAt) {
		t.Error("Expected last access to move forward")
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	configs := NewMockConfigManager()
	svc := service.NewGameService(NewMockSessionManager(), configs)

	list, err := svc.ListConfigs(ctx)
	if err != nil || len(list) != 3 {
		t.Errorf("Expected 3 configs, got %d (err=%v)", len(list), err)
	}

	config, err := svc.LoadConfig(ctx, "pond")
	if err != nil || config.Name != "Pond" {
		t.Errorf("Expected Pond, got %v (err=%v)", config, err)
	}

	custom := &engine.MapConfig{Name: "custom", Width: 2, Height: 2}
	if err := svc.SaveConfig(ctx, "custom", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if configs.saved["custom"] != custom {
		t.Error("Expected SaveConfig to reach the config manager")
	}
}

func TestParsePointerEvent(t *testing.T) {
	tests := map[string]service.PointerEvent{
		"enter":       service.PointerEnter,
		"mouseenter":  service.PointerEnter,
		"MouseLeave":  service.PointerLeave,
		"pointerdown": service.PointerDown,
		"up":          service.PointerUp,
		"click":       service.PointerClick,
	}
	for input, want := range tests {
		got, err := service.ParsePointerEvent(input)
		if err != nil || got != want {
			t.Errorf("ParsePointerEvent(%q) = %s, %v; want %s", input, got, err, want)
		}
	}
	if _, err := service.ParsePointerEvent("hover"); !errors.Is(err, service.ErrInvalidPointerEvent) {
		t.Errorf("Expected ErrInvalidPointerEvent, got %v", err)
	}
}
