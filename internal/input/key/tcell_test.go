package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), "n"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'N', tcell.ModShift), "Shift+N"},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModShift), "+"},
		{"ctrl z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), "Ctrl+Z"},
		{"ctrl shift z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl|tcell.ModShift), "Ctrl+Shift+Z"},
		{"ctrl y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModNone), "Ctrl+Y"},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), "Shift+Left"},
		{"alt shift right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt|tcell.ModShift), "Alt+Shift+Right"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTcell(tt.ev)
			if !got.Equals(MustParse(tt.want)) {
				t.Errorf("FromTcell() = %q, want %q", got, tt.want)
			}
		})
	}
}
