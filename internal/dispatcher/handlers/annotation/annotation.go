// Package annotation provides handlers for annotation and tier actions.
package annotation

import (
	"errors"

	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
)

// Action names for annotation edits.
const (
	ActionCreate   = "annotation.create"
	ActionDelete   = "annotation.delete"
	ActionNext     = "annotation.next"
	ActionPrevious = "annotation.previous"
	ActionEdit     = "annotation.edit"
	ActionSetText  = input.ActionSetText
)

// ModeLabel is the input mode entered to edit a label.
const ModeLabel = "label"

// Handler implements the annotation namespace.
type Handler struct{}

// NewHandler creates a new annotation handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the annotation namespace.
func (h *Handler) Namespace() string {
	return "annotation"
}

// Actions lists the handled action names.
func (h *Handler) Actions() []string {
	return []string{ActionCreate, ActionDelete, ActionNext, ActionPrevious, ActionEdit, ActionSetText}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionCreate, ActionDelete, ActionNext, ActionPrevious, ActionEdit, ActionSetText:
		return true
	}
	return false
}

// HandleAction processes an annotation action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	e := ctx.Engine

	switch action.Name {
	case ActionCreate:
		return h.create(e)
	case ActionDelete:
		return h.delete(e)
	case ActionNext:
		if !e.NextAnnotation() {
			return handler.NoOpWithMessage("no later annotation on " + e.ActiveTier())
		}
		return handler.Success().WithFollowCursor()
	case ActionPrevious:
		if !e.PreviousAnnotation() {
			return handler.NoOpWithMessage("no earlier annotation on " + e.ActiveTier())
		}
		return handler.Success().WithFollowCursor()
	case ActionEdit:
		return h.edit(e)
	case ActionSetText:
		if _, err := e.SetSelectedText(action.Args.Text); err != nil {
			return handler.Error(err)
		}
		return handler.Success()
	default:
		return handler.Errorf("unknown annotation action: %s", action.Name)
	}
}

func (h *Handler) create(e *engine.Engine) handler.Result {
	a, err := e.CreateAtCursor()
	switch {
	case errors.Is(err, engine.ErrNoSelection):
		return handler.NoOpWithMessage("select a range first")
	case errors.Is(err, engine.ErrNoActiveTier):
		return handler.NoOpWithMessage("no tier to annotate")
	case err != nil:
		return handler.Error(err)
	}
	if err := e.SelectAnnotation(a.ID); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithModeChange(ModeLabel).WithData("text", a.Text)
}

func (h *Handler) delete(e *engine.Engine) handler.Result {
	err := e.DeleteSelected()
	if errors.Is(err, engine.ErrNoSelectedAnnotation) {
		return handler.NoOpWithMessage("no annotation selected")
	}
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("annotation deleted")
}

// edit opens the label editor on the selected annotation, or on the
// annotation under the cursor on the active tier.
func (h *Handler) edit(e *engine.Engine) handler.Result {
	a, ok := e.SelectedAnnotation()
	if !ok {
		a, ok = findUnderCursor(e)
		if !ok {
			return handler.NoOpWithMessage("no annotation here")
		}
		if err := e.SelectAnnotation(a.ID); err != nil {
			return handler.Error(err)
		}
	}
	return handler.Success().WithModeChange(ModeLabel).WithData("text", a.Text)
}

func findUnderCursor(e *engine.Engine) (engine.Annotation, bool) {
	t := e.CursorTime()
	eps := e.Settings().BoundaryEpsilon
	for _, a := range e.InTier(e.ActiveTier()) {
		if t >= a.Start-eps && t <= a.End+eps {
			return a, true
		}
	}
	return e.AnnotationAt(t)
}
