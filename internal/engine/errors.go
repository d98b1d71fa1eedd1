package engine

import (
	"errors"

	"github.com/dshills/tierline/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrNoSelection indicates an operation needs a time selection.
	ErrNoSelection = errors.New("no selection")

	// ErrNoActiveTier indicates an operation needs an active tier.
	ErrNoActiveTier = errors.New("no active tier")

	// ErrNoSelectedAnnotation indicates an operation needs a selected annotation.
	ErrNoSelectedAnnotation = errors.New("no selected annotation")
)
