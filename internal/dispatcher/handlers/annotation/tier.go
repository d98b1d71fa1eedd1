package annotation

import (
	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/input"
)

// Action names for tier navigation.
const (
	ActionTierNext     = "tier.next"
	ActionTierPrevious = "tier.previous"
	ActionTierSelect   = "tier.select"
)

// NewTierHandler creates the tier namespace handler.
func NewTierHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler("tier")
	h.Register(ActionTierNext, func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return cycle(ctx, 1)
	})
	h.Register(ActionTierPrevious, func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return cycle(ctx, -1)
	})
	h.Register(ActionTierSelect, selectTier)
	return h
}

func cycle(ctx *execctx.ExecutionContext, step int) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	var moved bool
	if step > 0 {
		moved = ctx.Engine.NextTier()
	} else {
		moved = ctx.Engine.PreviousTier()
	}
	if !moved {
		return handler.NoOpWithMessage("no tiers")
	}
	return handler.SuccessWithMessage("tier " + ctx.Engine.ActiveTier())
}

func selectTier(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.RequireEngine(); err != nil {
		return handler.Error(err)
	}
	name := action.Args.GetString("name")
	if name == "" {
		return handler.Errorf("%s: missing name argument", action.Name)
	}
	if err := ctx.Engine.SetActiveTier(name); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("tier " + name)
}
