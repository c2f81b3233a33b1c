// Package mcp exposes the tile painter to MCP clients.
//
// Client registers one tool per REST operation and proxies every call to
// the HTTP API, so an agent and a browser can work on the same session and
// the browser sees the agent's edits through the render channel.
//
// Tools:
//   - create_session, list_sessions
//   - get_map: text rendering, one palette glyph per tile, actor as ^ v < >
//   - describe_tile, select_tile, paint_tile, pointer
//   - move_actor, reset_map
//   - list_palette, list_configs
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// The same server answers JSON-RPC posts at /mcp in server mode.
package mcp
