package engine

import (
	"github.com/dshills/tierline/internal/engine/annotation"
)

// CursorState returns the cursor and selection for rendering.
func (e *Engine) CursorState() CursorState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor.State()
}

// CursorTime returns the playback position.
func (e *Engine) CursorTime() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor.Time()
}

// Selection returns the selected range.
func (e *Engine) Selection() (start, end float64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor.Selection()
}

// SetCursor moves the playback position, clamped to the timeline.
func (e *Engine) SetCursor(t float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.Seek(t)
}

// SeekBy moves the playback position by delta seconds.
func (e *Engine) SeekBy(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.SeekBy(delta)
}

// SeekStart moves the cursor to 0.
func (e *Engine) SeekStart() {
	e.SetCursor(0)
}

// SeekEnd moves the cursor to the end of the timeline.
func (e *Engine) SeekEnd() {
	e.SetCursor(e.Duration())
}

// SetSelection selects [min(a,b), max(a,b)]. Equal bounds clear the
// selection.
func (e *Engine) SetSelection(a, b float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.SetSelection(a, b)
}

// ClearSelection removes the selection.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.ClearSelection()
}

// ExtendSelection moves one selection bound by delta seconds.
func (e *Engine) ExtendSelection(edge Edge, delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.ExtendSelection(edge, delta)
}

// PointerDown handles a press at pixel x: the cursor moves there and the
// selection is cleared.
func (e *Engine) PointerDown(x float64) {
	t := e.view.Mapper().PixelToTimeClamped(x)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.PointerDown(t)
}

// PointerDrag extends the drag to pixel x.
func (e *Engine) PointerDrag(x float64) {
	t := e.view.Mapper().PixelToTimeClamped(x)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.PointerDrag(t)
}

// PointerUp ends a drag.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.PointerUp()
}

// PreviousBoundary moves the cursor to the previous annotation boundary.
// Returns false when there is none.
func (e *Engine) PreviousBoundary() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.SeekPreviousBoundary(e.store.FindBoundaries(), e.settings.BoundaryEpsilon)
}

// NextBoundary moves the cursor to the next annotation boundary.
func (e *Engine) NextBoundary() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor.SeekNextBoundary(e.store.FindBoundaries(), e.settings.BoundaryEpsilon)
}

// ActiveTier returns the tier keyboard edits apply to.
func (e *Engine) ActiveTier() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activeTier
}

// SetActiveTier selects a tier by name. The tier must exist.
func (e *Engine) SetActiveTier(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.store.TierType(name); !ok {
		return &annotation.ValidationError{Field: "tier", Message: "unknown tier " + name}
	}
	e.activeTier = name
	return nil
}

// NextTier activates the tier after the active one, wrapping around.
func (e *Engine) NextTier() bool {
	return e.cycleTier(1)
}

// PreviousTier activates the tier before the active one, wrapping around.
func (e *Engine) PreviousTier() bool {
	return e.cycleTier(-1)
}

func (e *Engine) cycleTier(step int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	tiers := e.store.ListTiers()
	if len(tiers) == 0 {
		return false
	}
	idx := -1
	for i, t := range tiers {
		if t.Name == e.activeTier {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(tiers)) % len(tiers)
	}
	e.activeTier = tiers[idx].Name
	e.selectedID = ""
	return true
}

// SelectedAnnotation returns the annotation keyboard edits apply to.
func (e *Engine) SelectedAnnotation() (Annotation, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selectedID == "" {
		return Annotation{}, false
	}
	return e.store.Get(e.selectedID)
}

// SelectAnnotation selects an annotation by id, moving the cursor to its
// start and the time selection to its span.
func (e *Engine) SelectAnnotation(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.store.Get(id)
	if !ok {
		return &annotation.NotFoundError{ID: id}
	}
	e.selectLocked(a)
	return nil
}

func (e *Engine) selectLocked(a Annotation) {
	e.selectedID = a.ID
	e.activeTier = a.Tier
	e.cursor.Seek(a.Start)
	e.cursor.SetSelection(a.Start, a.End)
}

// NextAnnotation selects the first annotation on the active tier that
// starts after the cursor.
func (e *Engine) NextAnnotation() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.cursor.Time() + e.settings.BoundaryEpsilon
	for _, a := range e.store.InTier(e.activeTier) {
		if a.Start > now {
			e.selectLocked(a)
			return true
		}
	}
	return false
}

// PreviousAnnotation selects the last annotation on the active tier that
// starts before the cursor.
func (e *Engine) PreviousAnnotation() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.cursor.Time() - e.settings.BoundaryEpsilon
	list := e.store.InTier(e.activeTier)
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Start < now {
			e.selectLocked(list[i])
			return true
		}
	}
	return false
}

// CreateAtCursor creates an annotation on the active tier: a point at the
// cursor on point tiers, otherwise an interval over the selection.
func (e *Engine) CreateAtCursor() (Annotation, error) {
	e.mu.RLock()
	tier := e.activeTier
	typ, known := e.store.TierType(tier)
	t := e.cursor.Time()
	start, end, hasSel := e.cursor.Selection()
	e.mu.RUnlock()

	if tier == "" {
		return Annotation{}, ErrNoActiveTier
	}
	if known && typ == annotation.Point {
		return e.CreateAnnotation(tier, t, t, annotation.Point)
	}
	if !hasSel {
		return Annotation{}, ErrNoSelection
	}
	return e.CreateAnnotation(tier, start, end, annotation.Interval)
}

// DeleteSelected removes the selected annotation.
func (e *Engine) DeleteSelected() error {
	e.mu.RLock()
	id := e.selectedID
	e.mu.RUnlock()

	if id == "" {
		return ErrNoSelectedAnnotation
	}
	e.DeleteAnnotation(id)
	return nil
}

// SetSelectedText relabels the selected annotation.
func (e *Engine) SetSelectedText(text string) (Annotation, error) {
	e.mu.RLock()
	id := e.selectedID
	e.mu.RUnlock()

	if id == "" {
		return Annotation{}, ErrNoSelectedAnnotation
	}
	return e.UpdateAnnotation(id, annotation.SetText(text))
}
