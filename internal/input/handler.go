package input

import (
	"fmt"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/tierline/internal/input/key"
	"github.com/dshills/tierline/internal/input/keymap"
)

// Mode is the input mode.
type Mode uint8

const (
	// ModeTimeline routes chords through the keymap.
	ModeTimeline Mode = iota
	// ModeLabel edits the selected annotation's label.
	ModeLabel
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	if m == ModeLabel {
		return "LABEL"
	}
	return "TIMELINE"
}

// ParseMode converts a mode name as used in handler results.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "timeline":
		return ModeTimeline, true
	case "label":
		return ModeLabel, true
	}
	return ModeTimeline, false
}

// ActionSetText is produced when a label edit is committed.
const ActionSetText = "annotation.setText"

// Handler converts key events to actions.
type Handler struct {
	mu sync.RWMutex

	keymap *keymap.Keymap
	mode   Mode
	label  []byte
}

// NewHandler creates a handler in timeline mode.
func NewHandler(km *keymap.Keymap) *Handler {
	if km == nil {
		km = keymap.Default()
	}
	return &Handler{keymap: km}
}

// SetKeymap swaps the active keymap, for example after a config reload.
func (h *Handler) SetKeymap(km *keymap.Keymap) {
	if km == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keymap = km
}

// Keymap returns the active keymap.
func (h *Handler) Keymap() *keymap.Keymap {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.keymap
}

// Mode returns the current mode.
func (h *Handler) Mode() Mode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// BeginLabel switches to label mode with the buffer seeded with text.
func (h *Handler) BeginLabel(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = ModeLabel
	h.label = append(h.label[:0], text...)
}

// SwitchMode enters the named mode. seed is the initial label text when
// entering label mode.
func (h *Handler) SwitchMode(name, seed string) error {
	mode, ok := ParseMode(name)
	if !ok {
		return fmt.Errorf("input: unknown mode %q", name)
	}
	if mode == ModeLabel {
		h.BeginLabel(seed)
	} else {
		h.CancelLabel()
	}
	return nil
}

// CancelLabel leaves label mode without producing an action.
func (h *Handler) CancelLabel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = ModeTimeline
	h.label = h.label[:0]
}

// Label returns the label buffer.
func (h *Handler) Label() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return string(h.label)
}

// HandleKey processes one key event. The second result is false when the
// event produced no action: an unbound chord, or a keystroke consumed by
// the label editor.
func (h *Handler) HandleKey(ev key.Event) (Action, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.mode == ModeLabel {
		return h.handleLabelKey(ev)
	}

	b, ok := h.keymap.Lookup(ev)
	if !ok {
		return Action{}, false
	}
	action := Action{Name: b.Action, Source: SourceKeyboard}
	if len(b.Args) > 0 {
		action.Args.Extra = make(map[string]any, len(b.Args))
		for k, v := range b.Args {
			action.Args.Extra[k] = v
		}
	}
	return action, true
}

func (h *Handler) handleLabelKey(ev key.Event) (Action, bool) {
	switch {
	case ev.Key == key.KeyEnter:
		action := Action{Name: ActionSetText, Source: SourceKeyboard}
		action.Args.Text = string(h.label)
		h.mode = ModeTimeline
		h.label = h.label[:0]
		return action, true
	case ev.Key == key.KeyEscape:
		h.mode = ModeTimeline
		h.label = h.label[:0]
	case ev.Key == key.KeyBackspace:
		h.label = dropLastGrapheme(h.label)
	case ev.IsPrintable():
		h.label = append(h.label, string(ev.Text())...)
	}
	return Action{}, false
}

// dropLastGrapheme removes the final user-perceived character, so a
// base letter and its combining diacritics go together.
func dropLastGrapheme(b []byte) []byte {
	last := 0
	state := -1
	rest := b
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.Step(rest, state)
		if len(rest) > 0 {
			last += len(cluster)
		}
	}
	return b[:last]
}
