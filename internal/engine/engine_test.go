package engine

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

func newTestEngine(t *testing.T, duration float64) *Engine {
	t.Helper()
	n := 0
	e := New(WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}))
	e.Open(duration)
	return e
}

const existingGrid = `File type = "ooTextFile"
Object class = "TextGrid"

xmin = 0
xmax = 2
tiers? <exists>
size = 2
item []:
    item [1]:
        class = "TextTier"
        name = "words"
        xmin = 0
        xmax = 2
        points: size = 1
        points [1]:
            number = 1.5
            mark = "x"
    item [2]:
        class = "IntervalTier"
        name = "phones"
        xmin = 0
        xmax = 2
        intervals: size = 1
        intervals [1]:
            xmin = 0
            xmax = 0.5
            text = "a"
`

// ============================================================================
// Annotation Operations
// ============================================================================

func TestCreateUndoRedo(t *testing.T) {
	e := newTestEngine(t, 10)

	a, err := e.CreateAnnotation("words", 1, 2, Interval)
	if err != nil {
		t.Fatalf("CreateAnnotation() error = %v", err)
	}
	if _, err := e.UpdateAnnotation(a.ID, annotation.SetText("hello")); err != nil {
		t.Fatalf("UpdateAnnotation() error = %v", err)
	}
	before := e.Annotations()

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got, _ := e.Get(a.ID); got.Text != "" {
		t.Errorf("after Undo text = %q, want empty", got.Text)
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if !annotation.Equal(e.Annotations(), before) {
		t.Errorf("Redo() = %+v, want %+v", e.Annotations(), before)
	}
}

func TestUndoEmpty(t *testing.T) {
	e := newTestEngine(t, 10)
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestUnchangedUpdateDoesNotPolluteHistory(t *testing.T) {
	e := newTestEngine(t, 10)
	a, _ := e.CreateAnnotation("words", 1, 2, Interval)
	e.UpdateAnnotation(a.ID, annotation.SetText("x"))
	e.Undo()

	// Re-applying the present value must keep the redo entry.
	if _, err := e.UpdateAnnotation(a.ID, annotation.SetText("")); err != nil {
		t.Fatal(err)
	}
	if !e.CanRedo() {
		t.Error("no-op update cleared redo")
	}
}

func TestInvalidEditKeepsEngineUsable(t *testing.T) {
	e := newTestEngine(t, 10)
	e.CreateAnnotation("words", 1, 2, Interval)

	if _, err := e.CreateAnnotation("events", 1, 2, Point); !errors.Is(err, annotation.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if err := e.Undo(); err != nil {
		t.Errorf("Undo() after failed edit error = %v", err)
	}
	if len(e.Annotations()) != 0 {
		t.Errorf("Annotations() = %+v, want none", e.Annotations())
	}
}

func TestDeleteIsSilentForUnknownID(t *testing.T) {
	e := newTestEngine(t, 10)
	if e.DeleteAnnotation("nope") {
		t.Error("DeleteAnnotation(unknown) returned true")
	}
	if e.CanUndo() {
		t.Error("failed delete recorded history")
	}
}

func TestOpenResets(t *testing.T) {
	e := newTestEngine(t, 10)
	e.DeclareTier("words", Interval)
	e.CreateAnnotation("words", 1, 2, Interval)
	e.SetSelection(1, 2)
	e.ZoomTo(4)

	e.Open(5)
	if len(e.Annotations()) != 0 || len(e.Tiers()) != 0 {
		t.Error("Open did not clear annotations and tiers")
	}
	if e.CanUndo() {
		t.Error("Open is undoable")
	}
	if _, _, ok := e.Selection(); ok {
		t.Error("Open kept the selection")
	}
	if e.Zoom() != 1 {
		t.Errorf("Zoom() = %v, want 1", e.Zoom())
	}
	if e.Duration() != 5 {
		t.Errorf("Duration() = %v, want 5", e.Duration())
	}
}

// ============================================================================
// Import / Export
// ============================================================================

func TestImportMergeIsNonDestructive(t *testing.T) {
	e := newTestEngine(t, 2)
	e.DeclareTier("words", Interval)
	existing, _ := e.CreateAnnotation("words", 0, 1, Interval)

	res, err := e.Import([]byte(existingGrid), "take.TextGrid")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Format != format.TextGrid {
		t.Errorf("Format = %v", res.Format)
	}
	if len(res.TiersSkipped) != 1 || res.TiersSkipped[0] != "words" {
		t.Errorf("TiersSkipped = %v", res.TiersSkipped)
	}
	if len(res.Warnings) == 0 {
		t.Error("skipped tier not reported in warnings")
	}

	tiers := e.Tiers()
	if len(tiers) != 2 || tiers[0] != (Tier{Name: "words", Type: Interval}) {
		t.Errorf("Tiers() = %+v", tiers)
	}
	if _, ok := e.Get(existing.ID); !ok {
		t.Error("existing annotation lost")
	}
	if len(e.Annotations()) != 3 {
		t.Errorf("len(Annotations()) = %d, want 3", len(e.Annotations()))
	}

	// The whole import is one undo step.
	e.Undo()
	if len(e.Annotations()) != 1 {
		t.Errorf("after Undo len = %d, want 1", len(e.Annotations()))
	}
}

func TestFailedImportLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t, 2)
	e.CreateAnnotation("words", 0, 1, Interval)
	before := e.Annotations()

	broken := strings.Replace(existingGrid, "intervals: size = 1", "intervals: size = 4", 1)
	_, err := e.Import([]byte(broken), "bad.TextGrid")
	if !errors.Is(err, format.ErrParse) {
		t.Fatalf("Import() error = %v, want ErrParse", err)
	}
	if !annotation.Equal(e.Annotations(), before) {
		t.Error("failed import changed annotations")
	}
	if len(e.Tiers()) != 1 {
		t.Errorf("failed import declared tiers: %+v", e.Tiers())
	}

	if _, err := e.Import([]byte("plain notes"), "notes.txt"); !errors.Is(err, format.ErrUnsupportedFormat) {
		t.Errorf("Import(notes.txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFailedLoadLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t, 5)
	e.CreateAnnotation("words", 0, 1, Interval)
	before := e.Annotations()

	bad := `{"annotations":[{"tier":"w","start":2,"end":1.5,"type":"point"}]}`
	if _, err := e.Load([]byte(bad), "bad.json", 0); !errors.Is(err, annotation.ErrValidation) {
		t.Fatalf("Load() error = %v, want ErrValidation", err)
	}
	if !annotation.Equal(e.Annotations(), before) {
		t.Errorf("Annotations() = %+v, want the timeline before the load", e.Annotations())
	}
	if e.Duration() != 5 {
		t.Errorf("Duration() = %v, want 5", e.Duration())
	}
	if !e.CanUndo() {
		t.Error("failed load cleared the undo history")
	}
}

// tonesEAF holds a tier whose last annotation is a point, so the tier is
// declared point while its first annotation stays an interval.
const tonesEAF = `<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT FORMAT="3.0" VERSION="3.0">
    <HEADER TIME_UNITS="milliseconds"/>
    <TIME_ORDER>
        <TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="100"/>
        <TIME_SLOT TIME_SLOT_ID="ts2" TIME_VALUE="500"/>
        <TIME_SLOT TIME_SLOT_ID="ts3" TIME_VALUE="900"/>
        <TIME_SLOT TIME_SLOT_ID="ts4" TIME_VALUE="900"/>
    </TIME_ORDER>
    <TIER LINGUISTIC_TYPE_REF="default" TIER_ID="tones">
        <ANNOTATION>
            <ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
                <ANNOTATION_VALUE>H*</ANNOTATION_VALUE>
            </ALIGNABLE_ANNOTATION>
        </ANNOTATION>
        <ANNOTATION>
            <ALIGNABLE_ANNOTATION ANNOTATION_ID="a2" TIME_SLOT_REF1="ts3" TIME_SLOT_REF2="ts4">
                <ANNOTATION_VALUE>L%</ANNOTATION_VALUE>
            </ALIGNABLE_ANNOTATION>
        </ANNOTATION>
    </TIER>
</ANNOTATION_DOCUMENT>
`

func TestEditIntervalOnImportedPointTier(t *testing.T) {
	e := newTestEngine(t, 2)
	if _, err := e.Import([]byte(tonesEAF), "tones.eaf"); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if tiers := e.Tiers(); len(tiers) != 1 || tiers[0].Type != Point {
		t.Fatalf("Tiers() = %+v, want one point tier", tiers)
	}
	a1, ok := e.Get("a1")
	if !ok || a1.Type != Interval {
		t.Fatalf("Get(a1) = %+v, %v; want the imported interval", a1, ok)
	}

	tests := []struct {
		name  string
		patch Patch
	}{
		{"same label", annotation.SetText("H*")},
		{"relabel", annotation.SetText("H* edited")},
		{"retime", annotation.SetTimes(0.2, 0.6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.UpdateAnnotation("a1", tt.patch); err != nil {
				t.Errorf("UpdateAnnotation() error = %v", err)
			}
		})
	}

	if _, err := e.CreateAnnotation("tones", 1, 1.5, Interval); !errors.Is(err, annotation.ErrValidation) {
		t.Errorf("CreateAnnotation(interval on point tier) error = %v, want ErrValidation", err)
	}
}

func TestImportAdoptsDurationWhenUnknown(t *testing.T) {
	e := newTestEngine(t, 0)
	if _, err := e.Import([]byte(existingGrid), "take.TextGrid"); err != nil {
		t.Fatal(err)
	}
	if e.Duration() != 2 {
		t.Errorf("Duration() = %v, want 2", e.Duration())
	}
}

func TestLoadIsTheBaseline(t *testing.T) {
	e := newTestEngine(t, 10)
	e.CreateAnnotation("notes", 1, 2, Interval)

	res, err := e.Load([]byte(existingGrid), "take.TextGrid", 0)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Annotations) != 2 {
		t.Errorf("loaded %d annotations, want 2", len(res.Annotations))
	}
	if len(e.Annotations()) != 2 || len(e.Tiers()) != 2 {
		t.Errorf("Load kept old state: %d annotations, %d tiers", len(e.Annotations()), len(e.Tiers()))
	}
	if e.Duration() != 2 {
		t.Errorf("Duration() = %v, want 2", e.Duration())
	}
	if e.CanUndo() {
		t.Error("Load is undoable")
	}
	if e.Modified() {
		t.Error("Modified() = true right after Load")
	}

	broken := strings.Replace(existingGrid, "intervals: size = 1", "intervals: size = 4", 1)
	if _, err := e.Load([]byte(broken), "bad.TextGrid", 0); !errors.Is(err, format.ErrParse) {
		t.Fatalf("Load(broken) error = %v, want ErrParse", err)
	}
	if len(e.Annotations()) != 2 {
		t.Error("failed Load changed the timeline")
	}
}

func TestExportRoundTrip(t *testing.T) {
	e := newTestEngine(t, 3)
	e.DeclareTier("tones", Point)
	e.CreateAnnotation("tones", 0.5, 0.5, Point)
	w, _ := e.CreateAnnotation("words", 1, 2.25, Interval)
	e.UpdateAnnotation(w.ID, annotation.SetText("two"))

	out, err := e.Export(format.TextGrid)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f := newTestEngine(t, 0)
	if _, err := f.Import(out, "round.TextGrid"); err != nil {
		t.Fatalf("Import(Export()) error = %v\n%s", err, out)
	}
	got, want := f.Annotations(), e.Annotations()
	if len(got) != len(want) {
		t.Fatalf("got %d annotations, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Tier != w.Tier || g.Start != w.Start || g.End != w.End || g.Text != w.Text || g.Type != w.Type {
			t.Errorf("annotation %d = %+v, want %+v", i, g, w)
		}
	}
	if f.Duration() != 3 {
		t.Errorf("Duration() = %v, want 3", f.Duration())
	}
}

func TestExportRoundTripUndeclaredPointTier(t *testing.T) {
	e := newTestEngine(t, 3)
	e.CreateAnnotation("events", 0.5, 0.5, Point)
	if _, err := e.CreateAnnotation("events", 1, 2, Interval); !errors.Is(err, annotation.ErrValidation) {
		t.Fatalf("interval on point tier error = %v, want ErrValidation", err)
	}
	e.CreateAnnotation("events", 1.5, 1.5, Point)

	out, err := e.Export(format.TextGrid)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	f := newTestEngine(t, 0)
	if _, err := f.Import(out, "round.TextGrid"); err != nil {
		t.Fatalf("Import(Export()) error = %v\n%s", err, out)
	}
	got := f.Annotations()
	if len(got) != 2 {
		t.Fatalf("got %d annotations, want 2", len(got))
	}
	for _, a := range got {
		if a.Type != Point {
			t.Errorf("annotation %+v came back as %v", a, a.Type)
		}
	}
}

// ============================================================================
// Cursor / View
// ============================================================================

func TestBoundaryNavigation(t *testing.T) {
	e := newTestEngine(t, 5)
	e.CreateAnnotation("a", 1.0, 2.0, Interval)
	e.CreateAnnotation("b", 2.0, 3.5, Interval)
	if got := e.Boundaries(); !slices.Equal(got, []float64{1.0, 2.0, 3.5}) {
		t.Errorf("Boundaries() = %v, want [1 2 3.5]", got)
	}

	e.SetCursor(2.0)
	if !e.PreviousBoundary() || e.CursorTime() != 1.0 {
		t.Errorf("PreviousBoundary() moved to %v, want 1.0", e.CursorTime())
	}
	e.SetCursor(2.0)
	if !e.NextBoundary() || e.CursorTime() != 3.5 {
		t.Errorf("NextBoundary() moved to %v, want 3.5", e.CursorTime())
	}
	if e.NextBoundary() {
		t.Error("NextBoundary() past the last boundary returned true")
	}
}

func TestSelectionCollapse(t *testing.T) {
	e := newTestEngine(t, 5)
	e.SetSelection(2.0, 2.0)
	st := e.CursorState()
	if st.SelectionStart != nil || st.SelectionEnd != nil {
		t.Errorf("selection = %v, %v; want nil, nil", st.SelectionStart, st.SelectionEnd)
	}
}

func TestPointerDragUsesMapper(t *testing.T) {
	e := New(WithWidth(1000))
	e.Open(10) // 100 px per second

	e.PointerDown(150)
	e.PointerDrag(400)
	e.PointerUp()

	start, end, ok := e.Selection()
	if !ok || start != 1.5 || end != 4 {
		t.Errorf("Selection() = %v, %v, %v; want 1.5, 4, true", start, end, ok)
	}
	if e.CursorTime() != 1.5 {
		t.Errorf("CursorTime() = %v, want 1.5", e.CursorTime())
	}
}

func TestZoomToSelection(t *testing.T) {
	e := New(WithWidth(1000))
	e.Open(10)

	if err := e.ZoomToSelection(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("ZoomToSelection() error = %v, want ErrNoSelection", err)
	}

	e.SetSelection(4, 5)
	if err := e.ZoomToSelection(); err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.Zoom()-9) > 1e-9 {
		t.Errorf("Zoom() = %v, want 9", e.Zoom())
	}
	if x := e.Mapper().TimeToPixel(4); math.Abs(x-50) > 1e-9 {
		t.Errorf("selection start at x = %v, want 50", x)
	}
}

func TestZoomClamped(t *testing.T) {
	e := newTestEngine(t, 10)
	e.ZoomTo(1000)
	if e.Zoom() != 100 {
		t.Errorf("Zoom() = %v, want 100", e.Zoom())
	}
	e.ZoomTo(0.001)
	if e.Zoom() != 0.1 {
		t.Errorf("Zoom() = %v, want 0.1", e.Zoom())
	}
}

func TestExtendSelectionFromCursor(t *testing.T) {
	e := newTestEngine(t, 5)
	e.SetCursor(1)
	e.ExtendSelection(EdgeEnd, e.Settings().SelectionStep)
	start, end, ok := e.Selection()
	if !ok || start != 1 || math.Abs(end-1.05) > 1e-9 {
		t.Errorf("Selection() = %v, %v, %v; want 1, 1.05, true", start, end, ok)
	}
}

// ============================================================================
// Active tier / selected annotation
// ============================================================================

func TestCreateAtCursor(t *testing.T) {
	e := newTestEngine(t, 5)
	if _, err := e.CreateAtCursor(); !errors.Is(err, ErrNoActiveTier) {
		t.Errorf("CreateAtCursor() error = %v, want ErrNoActiveTier", err)
	}

	e.DeclareTier("words", Interval)
	e.DeclareTier("tones", Point)
	if _, err := e.CreateAtCursor(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("CreateAtCursor() error = %v, want ErrNoSelection", err)
	}

	e.SetSelection(1, 2)
	a, err := e.CreateAtCursor()
	if err != nil || a.Tier != "words" || a.Start != 1 || a.End != 2 {
		t.Errorf("CreateAtCursor() = %+v, %v", a, err)
	}

	e.NextTier()
	e.SetCursor(3)
	p, err := e.CreateAtCursor()
	if err != nil || p.Tier != "tones" || p.Type != Point || p.Start != 3 {
		t.Errorf("CreateAtCursor() on point tier = %+v, %v", p, err)
	}
}

func TestAnnotationNavigation(t *testing.T) {
	e := newTestEngine(t, 5)
	a, _ := e.CreateAnnotation("words", 0.5, 1, Interval)
	b, _ := e.CreateAnnotation("words", 2, 3, Interval)
	e.SetCursor(0)

	if !e.NextAnnotation() {
		t.Fatal("NextAnnotation() returned false")
	}
	if sel, _ := e.SelectedAnnotation(); sel.ID != a.ID {
		t.Errorf("selected %q, want %q", sel.ID, a.ID)
	}
	e.NextAnnotation()
	if sel, _ := e.SelectedAnnotation(); sel.ID != b.ID {
		t.Errorf("selected %q, want %q", sel.ID, b.ID)
	}
	if start, end, _ := e.Selection(); start != 2 || end != 3 {
		t.Errorf("Selection() = %v, %v; want 2, 3", start, end)
	}
	e.PreviousAnnotation()
	if sel, _ := e.SelectedAnnotation(); sel.ID != a.ID {
		t.Errorf("selected %q, want %q", sel.ID, a.ID)
	}

	if err := e.DeleteSelected(); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.SelectedAnnotation(); ok {
		t.Error("deleted annotation still selected")
	}
	if err := e.DeleteSelected(); !errors.Is(err, ErrNoSelectedAnnotation) {
		t.Errorf("DeleteSelected() error = %v", err)
	}
}

func TestTierCycling(t *testing.T) {
	e := newTestEngine(t, 5)
	e.DeclareTier("a", Interval)
	e.DeclareTier("b", Interval)
	e.DeclareTier("c", Point)

	if e.ActiveTier() != "a" {
		t.Fatalf("ActiveTier() = %q, want a", e.ActiveTier())
	}
	e.PreviousTier()
	if e.ActiveTier() != "c" {
		t.Errorf("PreviousTier() wrapped to %q, want c", e.ActiveTier())
	}
	e.NextTier()
	if e.ActiveTier() != "a" {
		t.Errorf("NextTier() = %q, want a", e.ActiveTier())
	}
	if err := e.SetActiveTier("missing"); !errors.Is(err, annotation.ErrValidation) {
		t.Errorf("SetActiveTier(missing) error = %v", err)
	}
}

func TestEditGroupIsOneUndoStep(t *testing.T) {
	e := newTestEngine(t, 5)
	a, _ := e.CreateAnnotation("words", 1, 2, Interval)

	e.BeginEdit("drag boundary")
	for _, end := range []float64{2.1, 2.2, 2.3} {
		e.UpdateAnnotation(a.ID, annotation.SetTimes(1, end))
	}
	e.EndEdit()

	if e.UndoLabel() != "drag boundary" {
		t.Errorf("UndoLabel() = %q", e.UndoLabel())
	}
	e.Undo()
	if got, _ := e.Get(a.ID); got.End != 2 {
		t.Errorf("after Undo end = %v, want 2", got.End)
	}
}

func TestModifiedTracksSavedState(t *testing.T) {
	e := newTestEngine(t, 10)
	if e.Modified() {
		t.Fatal("fresh timeline reported modified")
	}
	if _, err := e.CreateAnnotation("words", 1, 2, Interval); err != nil {
		t.Fatal(err)
	}
	if !e.Modified() {
		t.Error("Modified() = false after create")
	}
	e.MarkSaved()
	if e.Modified() {
		t.Error("Modified() = true after MarkSaved")
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if !e.Modified() {
		t.Error("Modified() = false after undoing past the save")
	}
	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Modified() {
		t.Error("Modified() = true after redo back to the saved state")
	}
}
