// Package session provides handlers for file and application actions.
// They do no I/O themselves: results carry a request that the terminal
// session carries out.
package session

import (
	"github.com/dshills/tierline/internal/dispatcher/execctx"
	"github.com/dshills/tierline/internal/dispatcher/handler"
	"github.com/dshills/tierline/internal/input"
)

// Action names.
const (
	ActionSave = "file.save"
	ActionQuit = "app.quit"
)

// NewFileHandler creates the file namespace handler.
func NewFileHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler("file")
	h.Register(ActionSave, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithRequest(handler.RequestSave)
	})
	return h
}

// NewAppHandler creates the app namespace handler.
func NewAppHandler() *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler("app")
	h.Register(ActionQuit, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithRequest(handler.RequestQuit)
	})
	return h
}
