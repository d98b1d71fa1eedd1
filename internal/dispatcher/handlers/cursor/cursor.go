package cursor

import (
	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/input"
)

// Action names for cursor movements.
const (
	ActionStepBackward     = "cursor.stepBackward"
	ActionStepForward      = "cursor.stepForward"
	ActionStart            = "cursor.start"
	ActionEnd              = "cursor.end"
	ActionPreviousBoundary = "cursor.previousBoundary"
	ActionNextBoundary     = "cursor.nextBoundary"
	ActionSeek             = "cursor.seek"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// Actions lists the handled action names.
func (h *Handler) Actions() []string {
	return []string{
		ActionStepBackward, ActionStepForward, ActionStart, ActionEnd,
		ActionPreviousBoundary, ActionNextBoundary, ActionSeek,
	}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionStepBackward, ActionStepForward, ActionStart, ActionEnd,
		ActionPreviousBoundary, ActionNextBoundary, ActionSeek:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	e := ctx.Engine
	count := ctx.GetCount()

	switch action.Name {
	case ActionStepBackward:
		e.SeekBy(-e.Settings().SeekStep * float64(count))
	case ActionStepForward:
		e.SeekBy(e.Settings().SeekStep * float64(count))
	case ActionStart:
		e.SeekStart()
	case ActionEnd:
		e.SeekEnd()
	case ActionPreviousBoundary:
		moved := false
		for i := 0; i < count && e.PreviousBoundary(); i++ {
			moved = true
		}
		if !moved {
			return handler.NoOpWithMessage("no earlier boundary")
		}
	case ActionNextBoundary:
		moved := false
		for i := 0; i < count && e.NextBoundary(); i++ {
			moved = true
		}
		if !moved {
			return handler.NoOpWithMessage("no later boundary")
		}
	case ActionSeek:
		t, ok := action.Args.GetFloat("time")
		if !ok {
			return handler.Errorf("%s: missing time argument", action.Name)
		}
		e.SetCursor(t)
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}
	return handler.Success().WithFollowCursor()
}
