package history

import (
	"errors"
	"reflect"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 100

// entry is one stacked value with the label of the change it belongs to.
type entry[T any] struct {
	value     T
	label     string
	timestamp time.Time
}

// History manages undo/redo state for a value of type T.
type History[T any] struct {
	mu sync.Mutex

	past    []entry[T]
	present T
	future  []entry[T] // future[0] is the next redo

	equal func(a, b T) bool

	// Grouping state
	grouping  bool
	groupName string
	groupBase T
	groupSet  bool

	maxEntries int
}

// New creates a history whose present is initial. Values are compared
// with equal; a nil equal falls back to reflect.DeepEqual.
func New[T any](initial T, equal func(a, b T) bool, maxEntries int) *History[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if equal == nil {
		equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	return &History[T]{
		present:    initial,
		equal:      equal,
		maxEntries: maxEntries,
	}
}

// Present returns the current value.
func (h *History[T]) Present() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.present
}

// Set records a new present value. It returns false, leaving both stacks
// untouched, when value equals the current present.
func (h *History[T]) Set(value T) bool {
	return h.SetLabeled(value, "")
}

// SetLabeled is Set with a human-readable description of the change.
func (h *History[T]) SetLabeled(value T, label string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.equal(value, h.present) {
		return false
	}

	// The redo stack survives until the group records a step.
	if h.grouping {
		if !h.groupSet {
			h.groupBase = h.present
			h.groupSet = true
		}
		h.present = value
		return true
	}

	h.pushLocked(h.present, label)
	h.present = value
	return true
}

// pushLocked appends a past entry, clears the future and enforces the bound.
func (h *History[T]) pushLocked(value T, label string) {
	h.past = append(h.past, entry[T]{
		value:     value,
		label:     label,
		timestamp: time.Now(),
	})

	h.future = nil

	if len(h.past) > h.maxEntries {
		excess := len(h.past) - h.maxEntries
		h.past = h.past[excess:]
	}
}

// Undo moves the present one step back. It returns false if there is
// nothing to undo. An open group is closed first.
func (h *History[T]) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.endGroupLocked()

	if len(h.past) == 0 {
		return false
	}

	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]

	h.future = append([]entry[T]{{value: h.present, label: last.label, timestamp: time.Now()}}, h.future...)
	h.present = last.value
	return true
}

// Redo moves the present one step forward. It returns false if there is
// nothing to redo.
func (h *History[T]) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.endGroupLocked()

	if len(h.future) == 0 {
		return false
	}

	next := h.future[0]
	h.future = h.future[1:]

	h.past = append(h.past, entry[T]{value: h.present, label: next.label, timestamp: time.Now()})
	if len(h.past) > h.maxEntries {
		h.past = h.past[len(h.past)-h.maxEntries:]
	}
	h.present = next.value
	return true
}

// Reset clears both stacks and sets a new present. Reset is not undoable.
func (h *History[T]) Reset(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = nil
	h.future = nil
	h.present = value
	h.grouping = false
	h.groupSet = false
}

// CanUndo returns true if undo is available.
func (h *History[T]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0 || (h.grouping && h.groupSet)
}

// CanRedo returns true if redo is available.
func (h *History[T]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// OperationInfo describes one step in the history.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// PeekUndo describes the step Undo would revert.
func (h *History[T]) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return OperationInfo{}, false
	}
	e := h.past[len(h.past)-1]
	return OperationInfo{Description: e.label, Timestamp: e.timestamp}, true
}

// SetMaxEntries changes the undo depth, dropping the oldest entries if needed.
func (h *History[T]) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	if len(h.past) > max {
		h.past = h.past[len(h.past)-max:]
	}
}
