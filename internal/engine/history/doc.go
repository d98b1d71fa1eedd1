// Package history provides snapshot-based undo/redo over any value type.
//
// A History holds a present value plus bounded past and future stacks:
//
//	h := history.New(initial, equal, 100)
//
//	h.Set(next)   // records present in past, clears future
//	h.Undo()      // steps back
//	h.Redo()      // steps forward
//	h.Reset(v)    // new document; not undoable
//
// # Skipping Unchanged Values
//
// Set compares the new value against the present with the equality
// function supplied at construction. Equal values are dropped without
// touching either stack, so UI components that re-emit the same value on
// every render (blur handlers, re-applied edits) never pollute history.
//
// # Grouping
//
// Several Set calls can be collapsed into one undo step:
//
//	h.BeginGroup("Drag boundary")
//	// ... many Set calls while dragging ...
//	h.EndGroup()
//
// Stored values are kept by reference. Callers must hand Set values that
// they will not mutate afterwards.
package history
