package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/tile-painter/game/engine"
	"github.com/wricardo/tile-painter/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Painter",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Painter - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A session holds one rectangular map of tiles and a single actor. Paint tiles
with the selected palette type, and walk the actor around with move_actor.
Coordinates are 0-based: col grows to the right, row grows downward.

AVAILABLE TOOLS:
- create_session: Start a session from a preset (list_configs shows them)
- list_sessions: List active sessions
- get_map: Text rendering of the map (actor drawn as ^ v < >)
- describe_tile: Stored and displayed type of one tile
- select_tile: Change the brush type
- paint_tile: Paint one tile directly
- pointer: Send a raw pointer event (enter, leave, down, up, click)
- move_actor: Step the actor one tile up/down/left/right
- reset_map: Restore the session's preset
- list_palette: Paintable tile types
- list_configs: Available map presets

The actor walks over any tile type. At the map edge it only turns.`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func cellProperties(props map[string]interface{}) map[string]interface{} {
	props["session_id"] = sessionProperty()
	props["col"] = map[string]interface{}{
		"type":        "integer",
		"description": "Column of the tile (0-based)",
	}
	props["row"] = map[string]interface{}{
		"type":        "integer",
		"description": "Row of the tile (0-based)",
	}
	return props
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new map session with optional preset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to start from (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active map sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	// Map
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_map",
		Description: "Get the map as text, one glyph per tile, with the actor and a legend",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetMap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get detailed information about one tile, including a hover preview if one is showing",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: cellProperties(map[string]interface{}{}),
			Required:   []string{"session_id", "col", "row"},
		},
	}, c.handleDescribeTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_tile",
		Description: "Set the tile type used by painting pointer events",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Tile type name (see list_palette)",
				},
			},
			Required: []string{"session_id", "type"},
		},
	}, c.handleSelectTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "paint_tile",
		Description: "Paint one tile with the given type",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: cellProperties(map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Tile type name (see list_palette)",
				},
			}),
			Required: []string{"session_id", "col", "row", "type"},
		},
	}, c.handlePaintTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pointer",
		Description: "Send a pointer event to a tile. enter previews the selected type, or paints it while the button is down; down paints and starts a drag; up ends it; leave restores the stored tile.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: cellProperties(map[string]interface{}{
				"event": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"enter", "leave", "down", "up", "click"},
					"description": "Pointer event",
				},
			}),
			Required: []string{"session_id", "event", "col", "row"},
		},
	}, c.handlePointer)

	// Actor
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_actor",
		Description: "Move the actor one tile. Off the map edge the actor only turns to face the direction.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMoveActor)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_map",
		Description: "Restore the session's map and actor to the preset. The brush selection is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleResetMap)

	// Palette and presets
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_palette",
		Description: "List the paintable tile types",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPalette)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available map presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads an integer argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func cellArgs(args map[string]interface{}) (col, row int, err error) {
	col, okCol := intArg(args, "col")
	row, okRow := intArg(args, "row")
	if !okCol || !okRow {
		return 0, 0, fmt.Errorf("col and row are required integers")
	}
	return col, row, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.Map != nil {
		result += fmt.Sprintf("Map: %dx%d, actor at (%d,%d) facing %s\n",
			session.Map.Width, session.Map.Height, session.Map.Actor.X, session.Map.Actor.Y, session.Map.Actor.Facing)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.MapState
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/map", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var palette service.PaletteInfo
	if err := c.apiCall("GET", "/api/palette", nil, &palette); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMap(&state, palette.Entries)), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	col, row, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var tile service.TileInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/tiles/%d/%d", sessionID, col, row), nil, &tile); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTile(&tile)), nil
}

func (c *Client) handleSelectTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	tileType, _ := args["type"].(string)

	var palette service.PaletteInfo
	if err := c.apiCall("PUT", fmt.Sprintf("/api/sessions/%s/selection", sessionID),
		map[string]string{"type": tileType}, &palette); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Selected: %s", palette.Selected)
	if !paletteHas(palette.Entries, palette.Selected) {
		result += " (not in the palette; it will render as unknown)"
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePaintTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	tileType, _ := args["type"].(string)
	col, row, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var tile service.TileInfo
	if err := c.apiCall("PUT", fmt.Sprintf("/api/sessions/%s/tiles/%d/%d", sessionID, col, row),
		map[string]string{"type": tileType}, &tile); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Painted (%d,%d) %s", tile.Col, tile.Row, tile.Type)), nil
}

func (c *Client) handlePointer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	event, _ := args["event"].(string)
	col, row, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{"event": event, "col": col, "row": row}

	var result service.PointerResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/pointer", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Pointer %s at (%d,%d). Paint state: %s", result.Event, col, row, result.PaintState)
	if result.Tile != nil {
		text += "\n" + formatTile(result.Tile)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleMoveActor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	var result service.MoveResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID),
		map[string]string{"direction": direction}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleResetMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string           `json:"message"`
		State   *engine.MapState `json:"state"`
	}

	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.State != nil {
		result += fmt.Sprintf("\nActor at (%d,%d) facing %s. Selected: %s",
			response.State.Actor.X, response.State.Actor.Y, response.State.Actor.Facing, response.State.Selected)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPalette(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var palette service.PaletteInfo
	if err := c.apiCall("GET", "/api/palette", nil, &palette); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Palette (%d types, default %s):\n\n", len(palette.Entries), palette.Default))
	for _, e := range palette.Entries {
		kind := "object"
		if e.Terrain {
			kind = "terrain"
		}
		result.WriteString(fmt.Sprintf("• %s %q (%s, %s) glyph %s\n", e.Name, e.Label, e.Color, kind, e.Glyph))
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Presets:\n\n"
	for _, cfg := range configs {
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Map: %dx%d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Width, cfg.Height)
	}

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

var actorGlyphs = map[engine.Direction]string{
	engine.Up:    "^",
	engine.Down:  "v",
	engine.Left:  "<",
	engine.Right: ">",
}

func paletteHas(entries []engine.PaletteEntry, t engine.TileType) bool {
	for _, e := range entries {
		if e.Name == t {
			return true
		}
	}
	return false
}

// formatMap draws one glyph per tile. Types outside the palette, or without a
// glyph, are drawn as '?'.
func formatMap(state *engine.MapState, entries []engine.PaletteEntry) string {
	if state == nil {
		return "No map available"
	}

	glyphs := make(map[engine.TileType]string, len(entries))
	for _, e := range entries {
		glyphs[e.Name] = e.Glyph
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Map %q %dx%d | Actor: (%d,%d) facing %s | Selected: %s | Paint: %s\n\n",
		state.ConfigName, state.Width, state.Height,
		state.Actor.X, state.Actor.Y, state.Actor.Facing, state.Selected, state.PaintState))

	used := map[engine.TileType]int{}
	for y, row := range state.Tiles {
		for x, t := range row {
			used[t]++
			if x == state.Actor.X && y == state.Actor.Y {
				result.WriteString(actorGlyphs[state.Actor.Facing])
				continue
			}
			g := glyphs[t]
			if g == "" {
				g = "?"
			}
			result.WriteString(g)
		}
		result.WriteString("\n")
	}

	types := make([]string, 0, len(used))
	for t := range used {
		types = append(types, string(t))
	}
	sort.Strings(types)

	result.WriteString("\nLegend:\n")
	for _, t := range types {
		g := glyphs[engine.TileType(t)]
		if g == "" {
			g = "?"
		}
		result.WriteString(fmt.Sprintf("  %s %s x%d\n", g, t, used[engine.TileType(t)]))
	}

	return result.String()
}

func formatTile(tile *service.TileInfo) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("Tile (%d,%d): %s", tile.Col, tile.Row, tile.Type))
	if tile.Label != "" {
		result.WriteString(fmt.Sprintf(" (%s)", tile.Label))
	}
	if !tile.Known {
		result.WriteString(" [not in palette]")
	}
	if tile.Preview {
		result.WriteString(fmt.Sprintf("\nShowing preview: %s", tile.Displayed))
	}
	if tile.Terrain {
		result.WriteString("\nTerrain tile")
	}
	if tile.HasActor {
		result.WriteString("\nThe actor is here")
	} else {
		result.WriteString(fmt.Sprintf("\n%d steps from the actor", tile.DistanceFromActor))
	}
	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var out strings.Builder
	if result.Success {
		out.WriteString(fmt.Sprintf("✓ Moved %s: (%d,%d) -> (%d,%d)\n",
			result.Direction, result.From.X, result.From.Y, result.To.X, result.To.Y))
	} else {
		out.WriteString(fmt.Sprintf("✗ Edge of the map, now facing %s at (%d,%d)\n",
			result.Actor.Facing, result.Actor.X, result.Actor.Y))
	}
	if len(result.PossibleMoves) > 0 {
		out.WriteString(fmt.Sprintf("Possible moves: %s\n", strings.Join(result.PossibleMoves, ", ")))
	}
	if result.Message != "" {
		out.WriteString(result.Message)
	}
	return out.String()
}
