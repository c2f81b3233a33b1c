package websocket

import (
	"context"
	"fmt"

	"github.com/wricardo/tile-painter/game/service"
)

// Input actions accepted from clients
const (
	ActionPointer = "pointer"
	ActionMove    = "move"
	ActionSelect  = "select"
)

// ServiceInput applies client input messages through a GameService.
// Rendering happens as a side effect of the service call, so nothing is
// written back on success.
type ServiceInput struct {
	service service.GameService
}

// NewServiceInput creates an InputHandler backed by svc
func NewServiceInput(svc service.GameService) *ServiceInput {
	return &ServiceInput{service: svc}
}

// HandleInput dispatches msg on its action
func (s *ServiceInput) HandleInput(ctx context.Context, sessionID string, msg *InputMessage) error {
	switch msg.Action {
	case ActionPointer:
		event, err := service.ParsePointerEvent(msg.Event)
		if err != nil {
			return err
		}
		_, err = s.service.Pointer(ctx, sessionID, event, msg.Col, msg.Row)
		return err

	case ActionMove:
		_, err := s.service.Move(ctx, sessionID, msg.Direction)
		return err

	case ActionSelect:
		_, err := s.service.Select(ctx, sessionID, msg.Type)
		return err

	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}
