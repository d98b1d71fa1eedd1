// Package history provides the undo and redo handlers.
package history

import (
	"errors"

	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/input"
)

// Action names.
const (
	ActionUndo = "history.undo"
	ActionRedo = "history.redo"
)

// NewHandler creates the history namespace handler.
func NewHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler("history")
	h.Register(ActionUndo, undo)
	h.Register(ActionRedo, redo)
	return h
}

func undo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	label := ctx.Engine.UndoLabel()
	for i := 0; i < ctx.GetCount(); i++ {
		if err := ctx.Engine.Undo(); err != nil {
			if errors.Is(err, engine.ErrNothingToUndo) {
				if i == 0 {
					return handler.NoOpWithMessage("nothing to undo")
				}
				break
			}
			return handler.Error(err)
		}
	}
	if label == "" {
		return handler.SuccessWithMessage("undo")
	}
	return handler.SuccessWithMessage("undo " + label)
}

func redo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	for i := 0; i < ctx.GetCount(); i++ {
		if err := ctx.Engine.Redo(); err != nil {
			if errors.Is(err, engine.ErrNothingToRedo) {
				if i == 0 {
					return handler.NoOpWithMessage("nothing to redo")
				}
				break
			}
			return handler.Error(err)
		}
	}
	return handler.SuccessWithMessage("redo")
}
