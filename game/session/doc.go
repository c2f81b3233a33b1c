// Package session provides in-memory session management for the tile painter.
//
// Each session owns one MapEngine built from a map preset, plus creation and
// last-access timestamps. Nothing is persisted: map state lives only as long
// as its session.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated from
// crypto/rand and retried on collision. Lookups are case-insensitive.
//
// Concurrency:
//
// The manager is safe for concurrent use. It guards its session table only;
// engine access is serialized by the service layer.
//
// Usage:
//
//	manager := session.NewManager(palette)
//
//	sess, err := manager.Create("", preset)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//
//	// Drop sessions idle for more than a day
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
