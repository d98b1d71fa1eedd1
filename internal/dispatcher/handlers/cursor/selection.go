package cursor

import (
	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
)

// Action names for selection edits.
const (
	ActionGrowLeft    = "selection.growLeft"
	ActionGrowRight   = "selection.growRight"
	ActionShrinkLeft  = "selection.shrinkLeft"
	ActionShrinkRight = "selection.shrinkRight"
	ActionClear       = "selection.clear"
	ActionSelectAll   = "selection.all"
)

// SelectionHandler handles the selection namespace.
type SelectionHandler struct{}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler() *SelectionHandler {
	return &SelectionHandler{}
}

// Namespace returns the selection namespace.
func (h *SelectionHandler) Namespace() string {
	return "selection"
}

// Actions lists the handled action names.
func (h *SelectionHandler) Actions() []string {
	return []string{ActionGrowLeft, ActionGrowRight, ActionShrinkLeft, ActionShrinkRight, ActionClear, ActionSelectAll}
}

// CanHandle returns true if this handler can process the action.
func (h *SelectionHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionGrowLeft, ActionGrowRight, ActionShrinkLeft, ActionShrinkRight, ActionClear, ActionSelectAll:
		return true
	}
	return false
}

// HandleAction processes a selection action.
func (h *SelectionHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	e := ctx.Engine
	step := e.Settings().SelectionStep * float64(ctx.GetCount())

	switch action.Name {
	case ActionGrowLeft:
		e.ExtendSelection(engine.EdgeStart, -step)
	case ActionGrowRight:
		e.ExtendSelection(engine.EdgeEnd, step)
	case ActionShrinkLeft:
		e.ExtendSelection(engine.EdgeStart, step)
	case ActionShrinkRight:
		e.ExtendSelection(engine.EdgeEnd, -step)
	case ActionClear:
		if _, _, ok := e.Selection(); !ok {
			return handler.NoOp()
		}
		e.ClearSelection()
		return handler.Success()
	case ActionSelectAll:
		if e.Duration() <= 0 {
			return handler.NoOpWithMessage("timeline is empty")
		}
		e.SetSelection(0, e.Duration())
		return handler.Success()
	default:
		return handler.Errorf("unknown selection action: %s", action.Name)
	}
	return handler.Success().WithFollowCursor()
}
