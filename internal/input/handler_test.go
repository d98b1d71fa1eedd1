package input

import (
	"testing"

	"github.com/dshills/tierline/internal/input/key"
	"github.com/dshills/tierline/internal/input/keymap"
)

func typeRunes(h *Handler, s string) {
	for _, r := range s {
		h.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
}

func TestHandleKeyTimeline(t *testing.T) {
	h := NewHandler(nil)

	tests := []struct {
		name string
		ev   key.Event
		want string
	}{
		{"next boundary", key.NewSpecialEvent(key.KeyRight, key.ModCtrl), "cursor.nextBoundary"},
		{"undo", key.NewRuneEvent('z', key.ModCtrl), "history.undo"},
		{"redo shifted", key.NewRuneEvent('Z', key.ModCtrl), "history.redo"},
		{"zoom in", key.NewRuneEvent('+', key.ModNone), "view.zoomIn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.HandleKey(tt.ev)
			if !ok {
				t.Fatalf("HandleKey(%v) produced no action", tt.ev)
			}
			if got.Name != tt.want {
				t.Errorf("HandleKey(%v) = %q, want %q", tt.ev, got.Name, tt.want)
			}
			if got.Source != SourceKeyboard {
				t.Errorf("Source = %v, want keyboard", got.Source)
			}
		})
	}

	if _, ok := h.HandleKey(key.NewRuneEvent('Q', key.ModAlt)); ok {
		t.Error("unbound chord produced an action")
	}
}

func TestHandleKeyCopiesArgs(t *testing.T) {
	km := keymap.NewKeymap("test")
	if err := km.AddBinding(keymap.NewBinding("l", "cursor.stepForward").WithArgs(map[string]any{"steps": 4})); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(km)

	action, ok := h.HandleKey(key.NewRuneEvent('l', key.ModNone))
	if !ok {
		t.Fatal("no action")
	}
	if n, ok := action.Args.GetFloat("steps"); !ok || n != 4 {
		t.Errorf("steps = %v, %v; want 4", n, ok)
	}

	action.Args.Extra["steps"] = 9
	again, _ := h.HandleKey(key.NewRuneEvent('l', key.ModNone))
	if n, _ := again.Args.GetFloat("steps"); n != 4 {
		t.Errorf("binding args mutated through action: steps = %v", n)
	}
}

func TestLabelModeCommit(t *testing.T) {
	h := NewHandler(nil)
	h.BeginLabel("ab")
	if h.Mode() != ModeLabel {
		t.Fatalf("Mode() = %v, want LABEL", h.Mode())
	}

	typeRunes(h, "cD")
	h.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	if got := h.Label(); got != "abc" {
		t.Errorf("Label() = %q, want abc", got)
	}

	// Bound chords are text while editing.
	if _, ok := h.HandleKey(key.NewRuneEvent('n', key.ModNone)); ok {
		t.Error("rune produced an action in label mode")
	}

	action, ok := h.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	if !ok || action.Name != ActionSetText {
		t.Fatalf("Enter = %+v, %v", action, ok)
	}
	if action.Args.Text != "abcn" {
		t.Errorf("Text = %q, want abcn", action.Args.Text)
	}
	if h.Mode() != ModeTimeline {
		t.Error("still in label mode after commit")
	}
}

func TestLabelModeCancel(t *testing.T) {
	h := NewHandler(nil)
	h.BeginLabel("keep")
	typeRunes(h, "xyz")

	if _, ok := h.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone)); ok {
		t.Error("Escape produced an action")
	}
	if h.Mode() != ModeTimeline || h.Label() != "" {
		t.Errorf("after cancel mode = %v, label = %q", h.Mode(), h.Label())
	}
}

func TestBackspaceRemovesWholeGrapheme(t *testing.T) {
	h := NewHandler(nil)
	// "e" followed by a combining acute accent.
	h.BeginLabel("né")
	h.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	if got := h.Label(); got != "n" {
		t.Errorf("Label() = %q, want n", got)
	}
	h.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	h.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	if got := h.Label(); got != "" {
		t.Errorf("Label() = %q, want empty", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode("label"); !ok || m != ModeLabel {
		t.Errorf("ParseMode(label) = %v, %v", m, ok)
	}
	if _, ok := ParseMode("visual"); ok {
		t.Error("ParseMode(visual) succeeded")
	}
}

func TestSwitchMode(t *testing.T) {
	h := NewHandler(nil)
	if err := h.SwitchMode("label", "seed"); err != nil {
		t.Fatal(err)
	}
	if h.Mode() != ModeLabel || h.Label() != "seed" {
		t.Errorf("mode = %v, label = %q", h.Mode(), h.Label())
	}
	if err := h.SwitchMode("timeline", ""); err != nil || h.Mode() != ModeTimeline {
		t.Errorf("SwitchMode(timeline) = %v, mode %v", err, h.Mode())
	}
	if err := h.SwitchMode("insert", ""); err == nil {
		t.Error("SwitchMode(insert) succeeded")
	}
}
