package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wricardo/tile-painter/game/engine"
	"github.com/wricardo/tile-painter/telemetry"
)

// Map origin on the terminal; row 0 holds the title
const (
	mapOriginX = 0
	mapOriginY = 1
)

// App is a local, single-session editor on a terminal
type App struct {
	screen   *Screen
	renderer *Renderer
	engine   *engine.MapEngine
	palette  *engine.Palette

	hover      *engine.Position
	buttonDown bool
	running    bool
	message    string
}

// NewApp creates an editor for config drawing onto screen
func NewApp(screen *Screen, config *engine.MapConfig, palette *engine.Palette) (*App, error) {
	app, err := newApp(screen, config, palette)
	if err != nil {
		return nil, err
	}
	app.screen = screen
	return app, nil
}

func newApp(c canvas, config *engine.MapConfig, palette *engine.Palette) (*App, error) {
	if palette == nil {
		palette = engine.DefaultPalette()
	}
	renderer := NewRenderer(c, palette, mapOriginX, mapOriginY)

	eng, err := engine.NewEngine(config, palette, renderer)
	if err != nil {
		return nil, err
	}

	return &App{
		renderer: renderer,
		engine:   eng,
		palette:  palette,
		running:  true,
	}, nil
}

// Run draws the map and processes terminal events until the user quits
func (a *App) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("tui")

	ctx, span := tracer.Start(ctx, "tui.init")
	a.engine.RenderAll()
	a.drawChrome()
	span.SetAttributes(
		attribute.String("map.name", a.engine.GetConfig().Name),
		attribute.Int("map.width", a.engine.Width()),
		attribute.Int("map.height", a.engine.Height()),
	)
	span.End()

	for a.running {
		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ctx, ev)
	}

	a.screen.Close()
	return nil
}

// handleEvent processes a single terminal event
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ctx, MapKey(ev.Key(), ev.Rune()))
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		if a.screen != nil {
			a.screen.Clear()
			a.screen.Sync()
		}
		a.engine.RenderAll()
		a.drawChrome()
	}
}

// handleKey applies one decoded key press
func (a *App) handleKey(ctx context.Context, action KeyAction) {
	switch action.Command {
	case CmdQuit:
		a.running = false
		return
	case CmdMove:
		_, span := telemetry.Tracer("tui").Start(ctx, "tui.move")
		moved := a.engine.Move(action.Direction)
		span.SetAttributes(
			attribute.String("direction", string(action.Direction)),
			attribute.Bool("moved", moved),
		)
		span.End()
		if !moved {
			a.message = "edge of the map"
		} else {
			a.message = ""
		}
	case CmdNextTile:
		a.engine.Select(a.palette.Cycle(a.engine.Selected(), 1))
	case CmdPrevTile:
		a.engine.Select(a.palette.Cycle(a.engine.Selected(), -1))
	case CmdPickTile:
		entries := a.palette.Entries()
		if action.Index < len(entries) {
			a.engine.Select(entries[action.Index].Name)
		}
	case CmdReset:
		a.release()
		if _, err := a.engine.Reset(); err != nil {
			a.message = err.Error()
		} else {
			a.message = "map reset"
		}
	default:
		return
	}
	a.drawChrome()
}

// handleMouse turns terminal mouse reports into pointer events. Motion
// between cells becomes leave/enter, and button edges become down/up.
func (a *App) handleMouse(x, y int, pressed bool) {
	col, row, ok := a.renderer.CellAt(x, y)
	onMap := ok && col < a.engine.Width() && row < a.engine.Height()

	var cell *engine.Position
	if onMap {
		cell = &engine.Position{X: col, Y: row}
	}

	// A report can carry both a release and a move; release first so the
	// new cell is only previewed
	if !pressed && a.buttonDown {
		a.release()
	}

	if !samePosition(a.hover, cell) {
		if a.hover != nil {
			a.engine.PointerLeave(a.hover.X, a.hover.Y)
		}
		a.hover = cell
		if cell != nil {
			a.engine.PointerEnter(cell.X, cell.Y)
		}
	}

	if pressed && !a.buttonDown {
		a.buttonDown = true
		if cell != nil {
			a.engine.PointerDown(cell.X, cell.Y)
		}
	}
	a.drawChrome()
}

// release ends a drag wherever the pointer is
func (a *App) release() {
	a.buttonDown = false
	a.engine.PointerUp()
}

func samePosition(a, b *engine.Position) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// drawChrome writes the title above the map and the status line below it
func (a *App) drawChrome() {
	width := a.engine.Width()
	if width < 60 {
		width = 60
	}

	title := fmt.Sprintf("%s  %dx%d", a.engine.GetConfig().Name, a.engine.Width(), a.engine.Height())
	a.renderer.DrawText(0, 0, width, title)

	selected := a.engine.Selected()
	label := string(selected)
	if entry, ok := a.palette.Lookup(selected); ok && entry.Label != "" {
		label = entry.Label
	}
	pos := a.engine.GetActorPosition()
	status := fmt.Sprintf("brush: %s  %s  actor (%d,%d) %s",
		label, a.engine.PaintState(), pos.X, pos.Y, a.engine.GetActorFacing())
	if a.message != "" {
		status += "  " + a.message
	}

	statusY := mapOriginY + a.engine.Height() + 1
	a.renderer.DrawText(0, statusY, width, status)
	a.renderer.DrawText(0, statusY+1, width, "arrows move  1-9 0 [ ] brush  r reset  q quit")
}
