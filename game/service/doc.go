// Package service provides the business logic layer for the tile painter.
//
// The service package implements:
//   - Multi-session map editing
//   - Pointer events routed into each session's paint state machine
//   - Actor movement
//   - Palette and map preset access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads, lists and saves map presets.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine. Each session owns its own MapEngine. The service serializes all
// engine mutation behind one mutex, so an engine never sees two callers at
// once. A RendererFactory, when configured, gives every new session's engine
// a renderer; the server wires it to the WebSocket hub.
//
// Usage:
//
//	sessionMgr := session.NewManager(palette)
//	configMgr, _ := config.NewManager("configs")
//	svc := service.NewGameService(sessionMgr, configMgr,
//		service.WithPalette(palette),
//		service.WithRendererFactory(hub.SessionRenderer),
//	)
//
//	info, err := svc.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	svc.Select(ctx, info.ID, "sand")
//	svc.Pointer(ctx, info.ID, service.PointerClick, 3, 4)
//	svc.Move(ctx, info.ID, "right")
//
// Every operation opens an OpenTelemetry span named service.<operation>.
package service
