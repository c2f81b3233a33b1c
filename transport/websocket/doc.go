// Package websocket streams tile and actor renders to browsers and carries
// pointer and keyboard input back.
//
// A central Hub owns one client set per session. Engines draw through a
// Renderer returned by Hub.SessionRenderer, so every RenderTile and
// RenderActor call becomes a JSON frame for that session's clients.
//
// Message Protocol:
//
// Outgoing frames, one per render call:
//   - {"session_id": "ab12", "event": "tile", "tile": {"col": 3, "row": 1, "type": "grass", ...}}
//   - {"session_id": "ab12", "event": "actor", "actor": {"x": 2, "y": 0, "facing": "right", ...}}
//   - {"session_id": "ab12", "event": "map", "map": {...}} on connect
//   - {"session_id": "ab12", "event": "error", "data": "..."} to the sender of bad input
//
// Incoming frames:
//   - {"action": "pointer", "event": "enter", "col": 3, "row": 1}
//   - {"action": "move", "direction": "up"}
//   - {"action": "select", "type": "water"}
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetInputHandler(websocket.NewServiceInput(gameService))
//	go hub.Run()
//
//	svc := service.NewGameService(sessions, configs,
//		service.WithRendererFactory(hub.SessionRenderer))
//
// Publishing never blocks the caller. When the hub queue is full the event
// is dropped and the session is marked stale. Once the queue drains, the hub
// sends stale sessions a full map from the source set with SetSnapshotSource.
package websocket
