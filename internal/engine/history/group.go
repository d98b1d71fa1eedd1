package history

// BeginGroup starts a group. Values set while grouping collapse into a
// single undo step labelled name. Nested calls are ignored.
func (h *History[T]) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupSet = false
}

// EndGroup closes the group and records one step if the value changed.
func (h *History[T]) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endGroupLocked()
}

func (h *History[T]) endGroupLocked() {
	if !h.grouping {
		return
	}
	h.grouping = false

	if h.groupSet && !h.equal(h.groupBase, h.present) {
		h.pushLocked(h.groupBase, h.groupName)
	}
	h.groupSet = false
	var zero T
	h.groupBase = zero
}
