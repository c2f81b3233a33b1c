// Package api provides the HTTP REST API for the tile painter.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "meadow"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Map:
//   - GET /api/sessions/{id}/map - Full map snapshot
//   - GET /api/sessions/{id}/tiles/{col}/{row} - Describe one tile
//   - PUT /api/sessions/{id}/tiles/{col}/{row} - Paint one tile ({"type": "sand"})
//   - POST /api/sessions/{id}/pointer - Pointer event ({"event": "enter", "col": 1, "row": 2})
//   - PUT /api/sessions/{id}/selection - Change the brush ({"type": "water"})
//   - POST /api/sessions/{id}/move - Move the actor ({"direction": "up"})
//   - POST /api/sessions/{id}/reset - Restore the preset
//
// Palette and presets:
//   - GET /api/palette
//   - GET /api/configs, POST /api/configs, GET /api/configs/{name}
//
// Other:
//   - GET /healthz
//   - GET /ws?session={id} - Render and input channel
//   - Everything else is served from ./static/
//
// Errors are returned as {"error": "..."}. Bad coordinates, directions,
// pointer events and presets are 400; unknown sessions and presets are 404.
package api
