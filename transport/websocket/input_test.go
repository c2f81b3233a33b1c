package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/wricardo/tile-painter/game/engine"
	"github.com/wricardo/tile-painter/game/service"
)

// inputService records the calls ServiceInput makes. Methods it does not
// override panic through the nil embedded interface.
type inputService struct {
	service.GameService
	calls []string
	event service.PointerEvent
	col   int
	row   int
	err   error
}

func (s *inputService) Pointer(ctx context.Context, sessionID string, event service.PointerEvent, col, row int) (*service.PointerResult, error) {
	s.calls = append(s.calls, "pointer:"+sessionID)
	s.event, s.col, s.row = event, col, row
	return &service.PointerResult{Event: event}, s.err
}

func (s *inputService) Move(ctx context.Context, sessionID, direction string) (*service.MoveResult, error) {
	s.calls = append(s.calls, "move:"+direction)
	return &service.MoveResult{Direction: engine.Direction(direction)}, s.err
}

func (s *inputService) Select(ctx context.Context, sessionID, tileType string) (*service.PaletteInfo, error) {
	s.calls = append(s.calls, "select:"+tileType)
	return &service.PaletteInfo{Selected: engine.TileType(tileType)}, s.err
}

func TestServiceInput_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		msg      InputMessage
		wantCall string
		wantErr  bool
	}{
		{"pointer enter", InputMessage{Action: ActionPointer, Event: "enter", Col: 2, Row: 3}, "pointer:ab12", false},
		{"pointer DOM name", InputMessage{Action: ActionPointer, Event: "mousedown", Col: 1, Row: 1}, "pointer:ab12", false},
		{"bad pointer event", InputMessage{Action: ActionPointer, Event: "wiggle"}, "", true},
		{"move", InputMessage{Action: ActionMove, Direction: "left"}, "move:left", false},
		{"select", InputMessage{Action: ActionSelect, Type: "sand"}, "select:sand", false},
		{"unknown action", InputMessage{Action: "dance"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &inputService{}
			input := NewServiceInput(svc)

			err := input.HandleInput(context.Background(), "ab12", &tt.msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HandleInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantCall == "" {
				if len(svc.calls) != 0 {
					t.Errorf("Expected no service call, got %v", svc.calls)
				}
				return
			}
			if len(svc.calls) != 1 || svc.calls[0] != tt.wantCall {
				t.Errorf("Expected call %s, got %v", tt.wantCall, svc.calls)
			}
		})
	}
}

func TestServiceInput_PointerArguments(t *testing.T) {
	svc := &inputService{}
	input := NewServiceInput(svc)

	msg := &InputMessage{Action: ActionPointer, Event: "down", Col: 4, Row: 7}
	if err := input.HandleInput(context.Background(), "ab12", msg); err != nil {
		t.Fatalf("HandleInput failed: %v", err)
	}
	if svc.event != service.PointerDown || svc.col != 4 || svc.row != 7 {
		t.Errorf("Expected down at (4,7), got %s at (%d,%d)", svc.event, svc.col, svc.row)
	}
}

func TestServiceInput_PropagatesErrors(t *testing.T) {
	svc := &inputService{err: engine.ErrOutOfBounds}
	input := NewServiceInput(svc)

	err := input.HandleInput(context.Background(), "ab12", &InputMessage{Action: ActionPointer, Event: "enter", Col: 99})
	if !errors.Is(err, engine.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}
