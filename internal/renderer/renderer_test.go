package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/renderer/backend"
)

const (
	testWidth  = 64
	testHeight = 8
)

// newScene builds a 10 s document on a 50-column timeline, so one second
// is five columns and the timeline starts at column 14.
func newScene(t *testing.T) (*engine.Engine, *backend.NullBackend, *Renderer) {
	t.Helper()
	b := backend.NewNullBackend(testWidth, testHeight)
	r := New(b, DefaultOptions())

	n := 0
	e := engine.New(
		engine.WithWidth(float64(r.TimelineWidth())),
		engine.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("a%d", n)
		}),
	)
	e.Open(10)

	word, err := e.CreateAnnotation("words", 2, 4, engine.Interval)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.SetSelectedText("hello"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CreateAnnotation("tones", 6, 6, engine.Point); err != nil {
		t.Fatal(err)
	}
	if _, err := e.SetSelectedText("H*"); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectAnnotation(word.ID); err != nil {
		t.Fatal(err)
	}
	return e, b, r
}

func TestRenderTierRows(t *testing.T) {
	e, b, r := newScene(t)
	r.Render(e, Status{Title: "test.TextGrid", Mode: "timeline"})

	words := b.Row(2)
	if !strings.HasPrefix(words, "▶ words") {
		t.Errorf("words row = %q, want active marker", words)
	}
	if got := b.GetCell(24, 2).Rune; got != '▏' {
		t.Errorf("interval start cell = %q, want ▏", got)
	}
	if !strings.Contains(words, "▏hello") {
		t.Errorf("words row = %q, want label", words)
	}
	if b.GetCell(30, 2).Style.Background.IsDefault() {
		t.Error("interval drawn without tier colour")
	}

	if got := b.GetCell(44, 3).Rune; got != '◆' {
		t.Errorf("point marker = %q, want ◆", got)
	}
	if !strings.Contains(b.Row(3), "◆H*") {
		t.Errorf("tones row = %q", b.Row(3))
	}
}

func TestRenderSelectedAnnotationIsHighlighted(t *testing.T) {
	e, b, r := newScene(t)
	e.ClearSelection()
	r.Render(e, Status{})

	th := DefaultTheme()
	if got := b.GetCell(26, 2).Style; !got.Equals(th.TierStyle(0, true)) {
		t.Errorf("selected interval style = %+v, want %+v", got, th.TierStyle(0, true))
	}
	if got := b.GetCell(44, 3).Style; !got.Equals(th.PointStyle(1, false)) {
		t.Errorf("unselected point style = %+v", got)
	}
}

func TestRenderRulerAndCursor(t *testing.T) {
	e, b, r := newScene(t)
	e.SetCursor(5)
	r.Render(e, Status{})

	if got := b.GetCell(24, 1).Rune; got != '┬' {
		t.Errorf("tick at 2s = %q, want ┬", got)
	}
	if got := b.GetCell(25, 1).Rune; got != '2' {
		t.Errorf("tick label = %q, want 2", got)
	}
	if got := b.GetCell(39, 1).Rune; got != '▼' {
		t.Errorf("cursor on ruler = %q, want ▼", got)
	}
	if got := b.GetCell(39, 2).Rune; got != '│' {
		t.Errorf("cursor on empty tier cell = %q, want │", got)
	}
}

func TestRenderSelectionShading(t *testing.T) {
	e, b, r := newScene(t)
	e.SetSelection(7, 8)
	r.Render(e, Status{})

	sel := DefaultTheme().SelectionBackground
	if got := b.GetCell(50, 1).Style.Background; !got.Equals(sel) {
		t.Errorf("ruler background in selection = %s, want %s", got, sel)
	}
	if got := b.GetCell(50, 2).Style.Background; !got.Equals(sel) {
		t.Errorf("tier background in selection = %s, want %s", got, sel)
	}
	if got := b.GetCell(60, 2).Style.Background; !got.IsDefault() {
		t.Errorf("background outside selection = %s, want default", got)
	}
}

func TestRenderHeaderAndStatus(t *testing.T) {
	e, b, r := newScene(t)
	e.SetSelection(2, 4)
	r.Render(e, Status{Title: "test.TextGrid", Mode: "timeline", Message: "saved", Kind: MessageInfo})

	header := b.Row(0)
	if !strings.Contains(header, "test.TextGrid [+]") {
		t.Errorf("header = %q, want title and modified marker", header)
	}
	status := b.Row(testHeight - 1)
	for _, want := range []string{"TIMELINE", "t=2.000s", "sel 2.000s-4.000s", "saved"} {
		if !strings.Contains(status, want) {
			t.Errorf("status = %q, missing %q", status, want)
		}
	}

	e.MarkSaved()
	r.Render(e, Status{Title: "test.TextGrid"})
	if strings.Contains(b.Row(0), "[+]") {
		t.Error("modified marker shown after MarkSaved")
	}
}

func TestRenderLabelEditing(t *testing.T) {
	e, b, r := newScene(t)
	r.Render(e, Status{Mode: "label", Editing: true, Label: "abc"})

	status := b.Row(testHeight - 1)
	if !strings.Contains(status, "label: abc") {
		t.Errorf("status = %q, want label prompt", status)
	}
	x, y, visible := b.CursorPosition()
	if !visible || y != testHeight-1 || b.GetCell(x-1, y).Rune != 'c' {
		t.Errorf("cursor at (%d, %d) visible=%v, want after the label", x, y, visible)
	}
}

func TestRenderKeepsActiveTierVisible(t *testing.T) {
	b := backend.NewNullBackend(40, 5)
	r := New(b, DefaultOptions())
	e := engine.New(engine.WithWidth(float64(r.TimelineWidth())))
	e.Open(10)
	for _, name := range []string{"t1", "t2", "t3", "t4"} {
		if _, err := e.DeclareTier(name, engine.Interval); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.SetActiveTier("t4"); err != nil {
		t.Fatal(err)
	}

	r.Render(e, Status{})
	if got := b.Row(2); !strings.HasPrefix(got, "  t3") {
		t.Errorf("first tier row = %q, want t3", got)
	}
	if got := b.Row(3); !strings.HasPrefix(got, "▶ t4") {
		t.Errorf("second tier row = %q, want active t4", got)
	}
	if hit := r.HitTest(20, 3); hit.Tier != "t4" {
		t.Errorf("HitTest() tier = %q, want t4", hit.Tier)
	}
}

func TestHitTest(t *testing.T) {
	e, _, r := newScene(t)
	r.Render(e, Status{})

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"header", 3, 0, Hit{Region: RegionHeader}},
		{"ruler", 20, 1, Hit{Region: RegionRuler, X: 6}},
		{"tier", 24, 2, Hit{Region: RegionTier, Tier: "words", X: 10}},
		{"gutter", 5, 3, Hit{Region: RegionGutter, Tier: "tones"}},
		{"below tiers", 30, 5, Hit{}},
		{"status", 30, testHeight - 1, Hit{Region: RegionStatus}},
		{"outside", 100, 1, Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 5, "hello"},
		{"hello", 3, "he…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"ãbc", 2, "ã…"},
		{"中文字", 4, "中…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		pps  float64
		want float64
	}{
		{5, 2},
		{100, 0.1},
		{10000, 0.001},
		{0.001, 3600},
	}
	for _, tt := range tests {
		if got := TickStep(tt.pps, 10); got != tt.want {
			t.Errorf("TickStep(%v) = %v, want %v", tt.pps, got, tt.want)
		}
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		t, step float64
		want    string
	}{
		{2, 2, "2"},
		{1.5, 0.5, "1.5"},
		{0.25, 0.05, "0.25"},
		{0.004, 0.002, "0.004"},
	}
	for _, tt := range tests {
		if got := formatTick(tt.t, tt.step); got != tt.want {
			t.Errorf("formatTick(%v, %v) = %q, want %q", tt.t, tt.step, got, tt.want)
		}
	}
}

func TestTierColorsDiffer(t *testing.T) {
	th := DefaultTheme()
	seen := map[string]int{}
	for i := 0; i < 8; i++ {
		c := th.TierColor(i).String()
		if j, ok := seen[c]; ok {
			t.Errorf("tier %d and %d share colour %s", i, j, c)
		}
		seen[c] = i
	}
}
