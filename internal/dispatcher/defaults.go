package dispatcher

import (
	"github.com/dshills/tierline/internal/dispatcher/handlers/annotation"
	"github.com/dshills/tierline/internal/dispatcher/handlers/cursor"
	"github.com/dshills/tierline/internal/dispatcher/handlers/history"
	"github.com/dshills/tierline/internal/dispatcher/handlers/session"
	"github.com/dshills/tierline/internal/dispatcher/handlers/view"
)

// RegisterDefaults installs the built-in namespace handlers.
func (d *Dispatcher) RegisterDefaults() {
	d.RegisterNamespace(cursor.NewHandler())
	d.RegisterNamespace(cursor.NewSelectionHandler())
	d.RegisterNamespace(view.NewHandler())
	d.RegisterNamespace(annotation.NewHandler())
	d.RegisterNamespace(annotation.NewTierHandler())
	d.RegisterNamespace(history.NewHandler())
	d.RegisterNamespace(session.NewFileHandler())
	d.RegisterNamespace(session.NewAppHandler())
}

// NewDefault creates a dispatcher with the built-in handlers registered.
func NewDefault(config Config) *Dispatcher {
	d := New(config)
	d.RegisterDefaults()
	return d
}
