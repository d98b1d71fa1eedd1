// Package execctx provides the execution context for action handlers.
package execctx

import (
	"errors"

	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/logging"
)

// ErrMissingEngine indicates a handler ran without an engine.
var ErrMissingEngine = errors.New("execctx: engine not set")

// ModeSwitcher changes the input mode. The input handler implements it.
type ModeSwitcher interface {
	SwitchMode(name, seed string) error
}

// ExecutionContext carries what a handler may act on.
type ExecutionContext struct {
	// Engine is the annotation timeline.
	Engine *engine.Engine

	// Modes switches input modes; may be nil.
	Modes ModeSwitcher

	// Log is the dispatcher logger.
	Log *logging.Logger

	// Count is the repeat count for the action. Zero means 1.
	Count int
}

// New creates a context for one dispatch.
func New(e *engine.Engine) *ExecutionContext {
	return &ExecutionContext{Engine: e, Log: logging.Nop()}
}

// GetCount returns the repeat count, defaulting to 1.
func (c *ExecutionContext) GetCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// RequireEngine returns ErrMissingEngine when no engine is set.
func (c *ExecutionContext) RequireEngine() error {
	if c == nil || c.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
