package history

import (
	"slices"
	"testing"
)

func newIntHistory(max int) *History[int] {
	return New(0, func(a, b int) bool { return a == b }, max)
}

func TestSetSkipsEqualValue(t *testing.T) {
	h := newIntHistory(10)

	if !h.Set(1) {
		t.Fatal("first Set returned false")
	}
	h.Redo() // nothing to redo
	if h.Set(1) {
		t.Error("second Set of same value returned true")
	}
	if len(h.past) != 1 {
		t.Errorf("undo depth = %d, want 1", len(h.past))
	}
}

func TestSetEqualValueKeepsRedoStack(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)
	h.Set(2)
	h.Undo()

	if h.Set(1) {
		t.Error("Set(present) returned true")
	}
	if len(h.future) != 1 {
		t.Errorf("redo depth = %d, want 1", len(h.future))
	}
}

func TestUndoRedo(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)
	h.Set(2)
	h.Set(3)

	if !h.Undo() || h.Present() != 2 {
		t.Fatalf("after Undo present = %d, want 2", h.Present())
	}
	if !h.Undo() || h.Present() != 1 {
		t.Fatalf("after Undo present = %d, want 1", h.Present())
	}
	if !h.Redo() || h.Present() != 2 {
		t.Fatalf("after Redo present = %d, want 2", h.Present())
	}
	if !h.Redo() || h.Present() != 3 {
		t.Fatalf("after Redo present = %d, want 3", h.Present())
	}
	if h.Redo() {
		t.Error("Redo with empty future returned true")
	}
}

func TestUndoEmptyIsNoOp(t *testing.T) {
	h := newIntHistory(10)
	if h.Undo() {
		t.Error("Undo on empty history returned true")
	}
	if h.Present() != 0 {
		t.Errorf("present = %d, want 0", h.Present())
	}
}

func TestSetClearsFuture(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)
	h.Set(2)
	h.Undo()

	h.Set(5)
	if h.CanRedo() {
		t.Error("redo still available after new Set")
	}
	h.Undo()
	if h.Present() != 1 {
		t.Errorf("present = %d, want 1", h.Present())
	}
}

func TestMaxEntriesDropsOldest(t *testing.T) {
	h := newIntHistory(3)
	for i := 1; i <= 5; i++ {
		h.Set(i)
	}
	if len(h.past) != 3 {
		t.Fatalf("undo depth = %d, want 3", len(h.past))
	}
	for h.Undo() {
	}
	if h.Present() != 2 {
		t.Errorf("oldest reachable present = %d, want 2", h.Present())
	}
}

func TestResetIsNotUndoable(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)
	h.Set(2)
	h.Undo()

	h.Reset(42)
	if h.CanUndo() || h.CanRedo() {
		t.Error("stacks not cleared by Reset")
	}
	if h.Present() != 42 {
		t.Errorf("present = %d, want 42", h.Present())
	}
}

func TestSliceValuesDeepEquality(t *testing.T) {
	h := New([]string{}, nil, 10)

	h.Set([]string{"a"})
	if h.Set([]string{"a"}) {
		t.Error("deep-equal slice recorded a new entry")
	}
	h.Set([]string{"a", "b"})
	h.Undo()
	h.Redo()
	if !slices.Equal(h.Present(), []string{"a", "b"}) {
		t.Errorf("present = %v", h.Present())
	}
}

func TestGroupCollapsesIntoOneStep(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)

	h.BeginGroup("drag")
	h.Set(2)
	h.Set(3)
	h.Set(4)
	h.EndGroup()

	if len(h.past) != 2 {
		t.Fatalf("undo depth = %d, want 2", len(h.past))
	}
	info, ok := h.PeekUndo()
	if !ok || info.Description != "drag" {
		t.Errorf("PeekUndo() = %+v, %v", info, ok)
	}
	h.Undo()
	if h.Present() != 1 {
		t.Errorf("present = %d, want 1", h.Present())
	}
	h.Redo()
	if h.Present() != 4 {
		t.Errorf("present = %d, want 4", h.Present())
	}
}

func TestGroupReturningToStartRecordsNothing(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)

	h.BeginGroup("wiggle")
	h.Set(2)
	h.Set(1)
	h.EndGroup()

	if len(h.past) != 1 {
		t.Errorf("undo depth = %d, want 1", len(h.past))
	}
}

func TestGroupReturningToStartKeepsRedo(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)
	h.Set(2)
	h.Undo()

	h.BeginGroup("wiggle")
	h.Set(5)
	h.Set(1)
	h.EndGroup()

	if !h.CanRedo() {
		t.Fatal("an unchanged group dropped the redo stack")
	}
	if !h.Redo() || h.Present() != 2 {
		t.Errorf("after Redo present = %d, want 2", h.Present())
	}
}

func TestGroupThatChangesClearsRedo(t *testing.T) {
	h := newIntHistory(10)
	h.Set(1)
	h.Set(2)
	h.Undo()

	h.BeginGroup("drag")
	h.Set(7)
	h.EndGroup()

	if h.CanRedo() {
		t.Error("redo still available after a recorded group")
	}
}

func TestUndoClosesOpenGroup(t *testing.T) {
	h := newIntHistory(10)
	h.BeginGroup("edit")
	h.Set(3)

	if !h.Undo() {
		t.Fatal("Undo returned false")
	}
	if h.Present() != 0 {
		t.Errorf("present = %d, want 0", h.Present())
	}
	h.EndGroup()
	if h.grouping {
		t.Error("group still open")
	}
}

func TestLabelsFollowUndoRedo(t *testing.T) {
	h := newIntHistory(10)
	h.SetLabeled(1, "create")
	h.SetLabeled(2, "rename")

	h.Undo()
	if got := h.future[0].label; got != "rename" {
		t.Errorf("redo label = %q, want rename", got)
	}
	h.Redo()
	info, _ := h.PeekUndo()
	if info.Description != "rename" {
		t.Errorf("PeekUndo() = %q, want rename", info.Description)
	}
}
