package annotation

import (
	"errors"
	"fmt"
	"testing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a%d", n)
	}
}

func newTestStore() *Store {
	return NewStore(WithIDGenerator(sequentialIDs()))
}

func TestCreatePointInvariant(t *testing.T) {
	s := newTestStore()

	if _, err := s.Create("events", 1.5, 1.5, Point); err != nil {
		t.Fatalf("Create(point, t, t) error = %v", err)
	}

	_, err := s.Create("events", 1.5, 2.0, Point)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(point, t1, t2) error = %v, want ErrValidation", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "end" {
		t.Errorf("expected ValidationError on end, got %#v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestCreateNormalisesIntervals(t *testing.T) {
	s := newTestStore()

	a, err := s.Create("words", 2.0, 1.0, Interval)
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if a.Start != 1.0 || a.End != 2.0 {
		t.Errorf("got [%v, %v], want [1, 2]", a.Start, a.End)
	}
	if a.ID != "a1" {
		t.Errorf("ID = %q, want a1", a.ID)
	}
}

func TestCreateZeroWidthIntervalAllowed(t *testing.T) {
	s := newTestStore()
	if _, err := s.Create("words", 1, 1, Interval); err != nil {
		t.Errorf("zero-width interval rejected: %v", err)
	}
}

func TestCreateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		tier  string
		start float64
		end   float64
	}{
		{"empty tier", "", 0, 1},
		{"negative start", "words", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			if _, err := s.Create(tt.tier, tt.start, tt.end, Interval); !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
			if s.Len() != 0 {
				t.Error("store was mutated")
			}
		})
	}
}

func TestPointTierRejectsIntervals(t *testing.T) {
	s := newTestStore()
	if _, err := s.DeclareTier("tones", Point); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create("tones", 1, 2, Interval); !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if _, err := s.Create("tones", 1, 1, Point); err != nil {
		t.Errorf("point on point tier rejected: %v", err)
	}
}

func TestImpliedPointTierRejectsIntervals(t *testing.T) {
	s := newTestStore()
	if _, err := s.Create("events", 1, 1, Point); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create("events", 2, 3, Interval); !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if typ, _ := s.TierType("events"); typ != Point {
		t.Errorf("TierType() = %v, want point", typ)
	}
}

func TestUpdateIntervalOnMergedPointTier(t *testing.T) {
	s := newTestStore()
	res, err := s.Merge(
		[]Tier{{Name: "tones", Type: Point}},
		[]Draft{
			{Tier: "tones", Start: 0.1, End: 0.5, Text: "H*", Type: Interval},
			{Tier: "tones", Start: 0.9, End: 0.9, Text: "L%", Type: Point},
		},
	)
	if err != nil {
		t.Fatalf("Merge error = %v", err)
	}
	id := res.Annotations[0].ID

	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{"relabel", SetText("H* edited"), false},
		{"same label", SetText("H* edited"), false},
		{"move within tier", SetTimes(0.2, 0.6), false},
		{"end before start", SetTimes(0.6, 0.2), true},
		{"onto itself", Patch{Tier: ptr("tones")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(id, tt.patch)
			if (err != nil) != tt.wantErr {
				t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := s.Create("other", 0, 1, Interval); err != nil {
		t.Fatal(err)
	}
	other := s.InTier("other")[0]
	if _, err := s.Update(other.ID, Patch{Tier: ptr("tones")}); !errors.Is(err, ErrValidation) {
		t.Errorf("moving an interval onto a point tier error = %v, want ErrValidation", err)
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidateImport(t *testing.T) {
	tests := []struct {
		name   string
		tiers  []Tier
		drafts []Draft
		ok     bool
	}{
		{"valid", []Tier{{Name: "w"}}, []Draft{{Tier: "w", Start: 0, End: 1}}, true},
		{"point with width", nil, []Draft{{Tier: "w", Start: 2, End: 1.5, Type: Point}}, false},
		{"unnamed tier", []Tier{{Name: ""}}, nil, false},
		{"negative start", nil, []Draft{{Tier: "w", Start: -1, End: 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImport(tt.tiers, tt.drafts)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateImport() error = %v, want ok %v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("ValidateImport() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create("words", 1, 2, Interval)

	got, err := s.Update(a.ID, SetText("hello"))
	if err != nil {
		t.Fatalf("Update error = %v", err)
	}
	if got.Text != "hello" || got.Start != 1 || got.End != 2 {
		t.Errorf("Update() = %+v", got)
	}

	if _, err := s.Update("missing", SetText("x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}

	if _, err := s.Update(a.ID, SetTimes(3, 2)); !errors.Is(err, ErrValidation) {
		t.Errorf("Update(end < start) error = %v, want ErrValidation", err)
	}
	stored, _ := s.Get(a.ID)
	if stored.Start != 1 || stored.End != 2 {
		t.Errorf("failed update changed stored value: %+v", stored)
	}

	if got, err := s.Update(a.ID, Patch{}); err != nil || got != stored {
		t.Errorf("Update(empty) = %+v, %v; want %+v", got, err, stored)
	}
}

func TestUpdatePointRevalidates(t *testing.T) {
	s := newTestStore()
	p, _ := s.Create("events", 1, 1, Point)

	end := 2.0
	if _, err := s.Update(p.ID, Patch{End: &end}); !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if _, err := s.Update(p.ID, SetTimes(2, 2)); err != nil {
		t.Errorf("moving a point failed: %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create("words", 1, 2, Interval)
	b, _ := s.Create("words", 2, 3, Interval)

	if !s.Delete(a.ID) {
		t.Error("first Delete returned false")
	}
	if s.Delete(a.ID) {
		t.Error("second Delete returned true")
	}
	if _, ok := s.Get(b.ID); !ok {
		t.Error("unrelated annotation lost after delete")
	}
}

func TestListTiers(t *testing.T) {
	s := newTestStore()
	s.DeclareTier("phones", Interval)
	s.Create("words", 0, 1, Interval)
	s.Create("tones", 0.5, 0.5, Point)
	s.Create("phones", 0, 0.2, Interval)
	s.DeclareTier("notes", Interval)

	if added, _ := s.DeclareTier("phones", Point); added {
		t.Error("re-declaring a tier returned true")
	}

	tiers := s.ListTiers()
	want := []Tier{
		{Name: "phones", Type: Interval},
		{Name: "notes", Type: Interval},
		{Name: "words", Type: Interval},
		{Name: "tones", Type: Point},
	}
	if len(tiers) != len(want) {
		t.Fatalf("ListTiers() = %v, want %v", tiers, want)
	}
	for i := range want {
		if tiers[i] != want[i] {
			t.Errorf("tier %d = %+v, want %+v", i, tiers[i], want[i])
		}
	}
}

func TestFindBoundaries(t *testing.T) {
	s := newTestStore()
	s.Create("words", 1.0, 2.0, Interval)
	s.Create("words", 2.0, 3.5, Interval)

	got := s.FindBoundaries()
	want := []float64{1.0, 2.0, 3.5}
	if len(got) != len(want) {
		t.Fatalf("FindBoundaries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindBoundaries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAnnotationAt(t *testing.T) {
	s := newTestStore()
	s.Create("events", 1.5, 1.5, Point)
	a, _ := s.Create("words", 1.0, 2.0, Interval)

	tests := []struct {
		time float64
		want bool
	}{
		{1.0, true},
		{1.5, true},
		{2.0, true},
		{2.1, false},
		{0.5, false},
	}
	for _, tt := range tests {
		got, ok := s.AnnotationAt(tt.time)
		if ok != tt.want {
			t.Errorf("AnnotationAt(%v) found = %v, want %v", tt.time, ok, tt.want)
			continue
		}
		if ok && got.ID != a.ID {
			t.Errorf("AnnotationAt(%v) = %q, want %q", tt.time, got.ID, a.ID)
		}
	}
}

func TestInTierSortedByStart(t *testing.T) {
	s := newTestStore()
	s.Create("words", 3, 4, Interval)
	s.Create("words", 1, 2, Interval)
	s.Create("other", 0, 1, Interval)

	got := s.InTier("words")
	if len(got) != 2 || got[0].Start != 1 || got[1].Start != 3 {
		t.Errorf("InTier() = %+v", got)
	}
}

func TestMergeSkipsExistingTiers(t *testing.T) {
	s := newTestStore()
	s.DeclareTier("words", Interval)
	s.Create("words", 0, 1, Interval)

	res, err := s.Merge(
		[]Tier{{Name: "words", Type: Point}, {Name: "phones", Type: Interval}},
		[]Draft{
			{Tier: "words", Start: 1, End: 2, Text: "b"},
			{Tier: "phones", Start: 0, End: 0.5, Text: "p"},
		},
	)
	if err != nil {
		t.Fatalf("Merge error = %v", err)
	}
	if len(res.TiersSkipped) != 1 || res.TiersSkipped[0] != "words" {
		t.Errorf("TiersSkipped = %v", res.TiersSkipped)
	}
	if len(res.TiersAdded) != 1 || res.TiersAdded[0] != "phones" {
		t.Errorf("TiersAdded = %v", res.TiersAdded)
	}
	if typ, _ := s.TierType("words"); typ != Interval {
		t.Error("existing tier declaration was overwritten")
	}
	if !s.IsDeclared("phones") {
		t.Error("phones was not declared")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestMergeIsAtomic(t *testing.T) {
	s := newTestStore()
	s.Create("words", 0, 1, Interval)

	_, err := s.Merge(
		[]Tier{{Name: "phones", Type: Interval}},
		[]Draft{
			{Tier: "phones", Start: 0, End: 1},
			{Tier: "phones", Start: 1, End: 2, Type: Point},
		},
	)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Merge error = %v, want ErrValidation", err)
	}
	if s.Len() != 1 || s.IsDeclared("phones") {
		t.Error("failed merge mutated the store")
	}
}

func TestMergeKeepsUnusedIDs(t *testing.T) {
	s := newTestStore()
	existing, _ := s.Create("words", 0, 1, Interval)

	res, err := s.Merge(nil, []Draft{
		{ID: "keep-me", Tier: "words", Start: 1, End: 2},
		{ID: existing.ID, Tier: "words", Start: 2, End: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Annotations[0].ID != "keep-me" {
		t.Errorf("ID = %q, want keep-me", res.Annotations[0].ID)
	}
	if res.Annotations[1].ID == existing.ID {
		t.Error("colliding id was reused")
	}
}

func TestRestoreSnapshot(t *testing.T) {
	s := newTestStore()
	a, _ := s.Create("words", 0, 1, Interval)
	snap := s.Annotations()

	s.Update(a.ID, SetText("changed"))
	s.Create("words", 1, 2, Interval)

	s.Restore(snap)
	if !Equal(s.Annotations(), snap) {
		t.Errorf("Restore() = %+v, want %+v", s.Annotations(), snap)
	}
	if got, _ := s.Get(a.ID); got.Text != "" {
		t.Errorf("restored text = %q", got.Text)
	}
}

func TestAnnotationSpan(t *testing.T) {
	a := Annotation{Start: 0, End: 2}
	if !a.Contains(0) || !a.Contains(2) || a.Contains(2.5) {
		t.Error("Contains() should include both ends only")
	}
	if a.Duration() != 2 {
		t.Errorf("Duration() = %v, want 2", a.Duration())
	}
}
