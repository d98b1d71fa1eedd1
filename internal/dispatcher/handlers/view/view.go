// Package view provides handlers for zoom and scroll operations.
package view

import (
	"errors"

	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
)

// Action names for view operations.
const (
	ActionZoomIn        = "view.zoomIn"
	ActionZoomOut       = "view.zoomOut"
	ActionZoomReset     = "view.zoomReset"
	ActionZoomSelection = "view.zoomSelection"
	ActionPageLeft      = "view.pageLeft"
	ActionPageRight     = "view.pageRight"
	ActionCenterCursor  = "view.centerCursor"

	// ActionZoomTo sets the zoom to the "level" argument.
	ActionZoomTo = "view.zoomTo"
)

// PageOverlap is the share of the view kept on screen by a page scroll.
const PageOverlap = 0.1

// Handler implements namespace-based view handling.
type Handler struct{}

// NewHandler creates a new view handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the view namespace.
func (h *Handler) Namespace() string {
	return "view"
}

// Actions lists the handled action names.
func (h *Handler) Actions() []string {
	return []string{
		ActionZoomIn, ActionZoomOut, ActionZoomReset, ActionZoomSelection,
		ActionZoomTo, ActionPageLeft, ActionPageRight, ActionCenterCursor,
	}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionZoomIn, ActionZoomOut, ActionZoomReset, ActionZoomSelection,
		ActionZoomTo, ActionPageLeft, ActionPageRight, ActionCenterCursor:
		return true
	}
	return false
}

// HandleAction processes a view action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	e := ctx.Engine

	switch action.Name {
	case ActionZoomIn:
		return h.zoomAroundCursor(e, e.Zoom()*e.Settings().ZoomStep)
	case ActionZoomOut:
		return h.zoomAroundCursor(e, e.Zoom()/e.Settings().ZoomStep)
	case ActionZoomReset:
		e.ZoomReset()
		return handler.Success()
	case ActionZoomSelection:
		return h.zoomSelection(e)
	case ActionZoomTo:
		level, ok := action.Args.GetFloat("level")
		if !ok {
			return handler.Errorf("%s: missing level argument", action.Name)
		}
		return h.zoomAroundCursor(e, level)
	case ActionPageLeft:
		return h.page(e, -1, ctx.GetCount())
	case ActionPageRight:
		return h.page(e, 1, ctx.GetCount())
	case ActionCenterCursor:
		return h.centerCursor(e)
	default:
		return handler.Errorf("unknown view action: %s", action.Name)
	}
}

// zoomAroundCursor keeps the cursor at the same screen position when it
// is visible; otherwise the view centre stays fixed.
func (h *Handler) zoomAroundCursor(e *engine.Engine, level float64) handler.Result {
	before := e.Zoom()
	m := e.Mapper()
	x := m.TimeToPixel(e.CursorTime())
	if x >= 0 && x <= m.Width {
		e.ZoomAt(level, x)
	} else {
		e.ZoomTo(level)
	}
	if e.Zoom() == before {
		return handler.NoOpWithMessage("zoom limit reached")
	}
	return handler.Success()
}

func (h *Handler) zoomSelection(e *engine.Engine) handler.Result {
	if err := e.ZoomToSelection(); err != nil {
		if errors.Is(err, engine.ErrNoSelection) {
			return handler.NoOpWithMessage("nothing selected")
		}
		return handler.Error(err)
	}
	return handler.Success()
}

func (h *Handler) page(e *engine.Engine, dir float64, count int) handler.Result {
	before := e.Scroll()
	width := e.Mapper().Width
	e.ScrollBy(dir * float64(count) * width * (1 - PageOverlap))
	if e.Scroll() == before {
		return handler.NoOp()
	}
	return handler.Success()
}

func (h *Handler) centerCursor(e *engine.Engine) handler.Result {
	before := e.Scroll()
	e.CenterOn(e.CursorTime())
	if e.Scroll() == before {
		return handler.NoOp()
	}
	return handler.Success()
}
