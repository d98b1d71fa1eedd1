package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tierline/internal/input/key"
	"github.com/dshills/tierline/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); !got.Equals(cell) {
		t.Errorf("GetCell() = %+v, want %+v", got, cell)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); !got.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndRow(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Fill(core.NewScreenRect(1, 2, 2, 5), core.NewCell('.'))

	if got := b.Row(1); got != "  ...     " {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Row(0); got != "          " {
		t.Errorf("Row(0) = %q", got)
	}

	b.Clear()
	if got := b.Row(1); got != "          " {
		t.Errorf("Row(1) after Clear = %q", got)
	}
}

func TestNullBackendResizeQueuesEvent(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Resize(20, 5)

	if w, h := b.Size(); w != 20 || h != 5 {
		t.Errorf("Size() = %d, %d, want 20, 5", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 20 || ev.Height != 5 {
		t.Errorf("PollEvent() = %+v", ev)
	}
}

func TestMouseButtonHas(t *testing.T) {
	m := MouseLeft | MouseWheelUp
	if !m.Has(MouseLeft) || !m.Has(MouseWheelUp) {
		t.Error("missing set buttons")
	}
	if m.Has(MouseRight) || m.Has(MouseNone) {
		t.Error("reported unset buttons")
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	sim.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalCellRoundTrip(t *testing.T) {
	term, _ := newSimTerminal(t)

	style := core.DefaultStyle().WithForeground(core.ColorFromRGB(10, 20, 30)).Bold()
	cell := core.Cell{Rune: 'a', Combining: []rune{'\u0303'}, Width: 1, Style: style}
	term.SetCell(3, 2, cell)
	term.Show()

	got := term.GetCell(3, 2)
	if got.Rune != 'a' || len(got.Combining) != 1 || got.Combining[0] != '\u0303' {
		t.Errorf("GetCell() = %+v", got)
	}
	if !got.Style.Foreground.Equals(style.Foreground) || !got.Style.Attributes.Has(core.AttrBold) {
		t.Errorf("style = %+v, want %+v", got.Style, style)
	}
}

func TestTerminalConvertsKeys(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	ev := term.PollEvent()
	for ev.Type == EventResize {
		ev = term.PollEvent()
	}
	if ev.Type != EventKey {
		t.Fatalf("PollEvent() type = %v, want key", ev.Type)
	}
	if want := key.MustParse("Ctrl+Z"); !ev.Key.Equals(want) {
		t.Errorf("key = %s, want %s", ev.Key, want)
	}
}

func TestTerminalPostEvent(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.PostEvent(Event{Type: EventInterrupt, Data: "reload"})
	ev := term.PollEvent()
	for ev.Type == EventResize {
		ev = term.PollEvent()
	}
	if ev.Type != EventInterrupt || ev.Data != "reload" {
		t.Errorf("PollEvent() = %+v", ev)
	}
}

func TestConvertButtons(t *testing.T) {
	tests := []struct {
		mask tcell.ButtonMask
		want MouseButton
	}{
		{tcell.ButtonNone, MouseNone},
		{tcell.ButtonPrimary, MouseLeft},
		{tcell.ButtonSecondary, MouseRight},
		{tcell.ButtonPrimary | tcell.WheelDown, MouseLeft | MouseWheelDown},
	}
	for _, tt := range tests {
		if got := convertButtons(tt.mask); got != tt.want {
			t.Errorf("convertButtons(%v) = %v, want %v", tt.mask, got, tt.want)
		}
	}
}
