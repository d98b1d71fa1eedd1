package engine

import (
	"github.com/dshills/tierline/internal/engine/annotation"
)

// CreateAnnotation adds an annotation with an empty label and selects it.
func (e *Engine) CreateAnnotation(tier string, start, end float64, typ annotation.Type) (Annotation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.store.Create(tier, start, end, typ)
	if err != nil {
		return Annotation{}, err
	}
	e.commit("create annotation")
	e.selectedID = a.ID
	if e.activeTier == "" {
		e.activeTier = tier
	}
	return a, nil
}

// UpdateAnnotation merges a patch over an annotation. An update that
// changes nothing leaves history untouched.
func (e *Engine) UpdateAnnotation(id string, p Patch) (Annotation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.store.Update(id, p)
	if err != nil {
		return Annotation{}, err
	}
	e.commit("update annotation")
	return a, nil
}

// DeleteAnnotation removes an annotation. Unknown ids are ignored and
// report false.
func (e *Engine) DeleteAnnotation(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.store.Delete(id) {
		return false
	}
	e.commit("delete annotation")
	if e.selectedID == id {
		e.selectedID = ""
	}
	return true
}

// DeclareTier adds a tier declaration. Declarations are not undoable.
func (e *Engine) DeclareTier(name string, typ annotation.Type) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	added, err := e.store.DeclareTier(name, typ)
	if err != nil {
		return false, err
	}
	if e.activeTier == "" {
		e.activeTier = name
	}
	return added, nil
}

// Get returns one annotation.
func (e *Engine) Get(id string) (Annotation, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Get(id)
}

// Annotations returns every annotation in insertion order.
func (e *Engine) Annotations() []Annotation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Annotations()
}

// InTier returns a tier's annotations ordered by start.
func (e *Engine) InTier(name string) []Annotation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.InTier(name)
}

// Tiers returns declared and implied tiers in display order.
func (e *Engine) Tiers() []Tier {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.ListTiers()
}

// Boundaries returns every distinct annotation start and end, ascending.
func (e *Engine) Boundaries() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.FindBoundaries()
}

// AnnotationAt returns the interval annotation containing t.
func (e *Engine) AnnotationAt(t float64) (Annotation, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.AnnotationAt(t)
}

// Undo restores the previous annotation list.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.history.Undo() {
		return ErrNothingToUndo
	}
	e.restoreLocked()
	return nil
}

// Redo re-applies the last undone change.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.history.Redo() {
		return ErrNothingToRedo
	}
	e.restoreLocked()
	return nil
}

func (e *Engine) restoreLocked() {
	e.store.Restore(e.history.Present())
	if _, ok := e.store.Get(e.selectedID); !ok {
		e.selectedID = ""
	}
}

// CanUndo returns true if there is something to undo.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanUndo()
}

// CanRedo returns true if there is something to redo.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanRedo()
}

// UndoLabel describes the change Undo would revert.
func (e *Engine) UndoLabel() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	info, _ := e.history.PeekUndo()
	return info.Description
}

// BeginEdit starts collapsing changes into one undo step, for example
// while a boundary is dragged.
func (e *Engine) BeginEdit(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.BeginGroup(label)
}

// EndEdit closes the step opened by BeginEdit.
func (e *Engine) EndEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.EndGroup()
}
