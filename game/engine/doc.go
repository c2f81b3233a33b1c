// Package engine provides the core map model for the Tile Painter.
//
// The engine package implements:
//   - A fixed width x height grid of tile type labels
//   - The palette of selectable tile types and the current selection
//   - The preview/commit paint state machine driven by pointer events
//   - A single actor moving one cell at a time inside the grid bounds
//   - Map presets (size, initial layout, actor start) and their validation
//
// Core Types:
//
// Grid stores what every cell holds. Surface stores what every cell shows,
// which differs from the stored type while a hover preview is active.
// MapEngine ties a Grid, a Surface, an Actor and a Selection together and
// implements the Engine interface used by the service layer.
//
// Rendering:
//
// Every mutation is committed to the model first and then handed to a
// Renderer for the one cell (or the actor) that changed. There is no render
// pass and no dirty tracking. Swapping the Renderer changes where the map is
// drawn (browser, terminal, nowhere) without touching the model.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultMapConfig(), engine.DefaultPalette(), engine.NopRenderer{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Select("sand")
//	eng.Click(1, 1)            // commits sand at (1,1)
//	eng.PointerEnter(2, 2)     // previews sand at (2,2), stored type unchanged
//	eng.Move(engine.Right)     // moves the actor if (x+1, y) is inside the grid
//
// Movement:
//
// Movement validity depends only on the grid bounds. A rejected move still
// turns the actor to face the attempted direction. Tile walkability
// (Palette.IsTerrain) is informational and never blocks a move.
package engine
