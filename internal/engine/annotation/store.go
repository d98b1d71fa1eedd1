package annotation

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Store is the collection of tier declarations and annotations.
//
// Store is not safe for concurrent use; the engine serialises access.
type Store struct {
	tiers       []Tier
	annotations []Annotation
	index       map[string]int // id -> position in annotations

	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		index: make(map[string]int),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset removes every tier and annotation.
func (s *Store) Reset() {
	s.tiers = nil
	s.annotations = nil
	s.index = make(map[string]int)
}

// Len returns the number of annotations.
func (s *Store) Len() int {
	return len(s.annotations)
}

// Create adds an annotation with an empty label.
func (s *Store) Create(tier string, start, end float64, typ Type) (Annotation, error) {
	return s.Insert(Draft{Tier: tier, Start: start, End: end, Type: typ})
}

// Insert validates a draft, assigns it a fresh id and appends it.
// Interval bounds are normalised so that Start <= End.
func (s *Store) Insert(d Draft) (Annotation, error) {
	if d.Type == Interval && d.End < d.Start {
		d.Start, d.End = d.End, d.Start
	}
	a := Annotation{
		ID:    s.newID(),
		Tier:  d.Tier,
		Start: d.Start,
		End:   d.End,
		Text:  d.Text,
		Type:  d.Type,
	}
	if err := s.validate(a); err != nil {
		return Annotation{}, err
	}
	s.append(a)
	return a, nil
}

// Update merges a patch over an existing annotation and re-validates its
// values. The tier type is only checked when the patch moves the
// annotation to another tier: imported point tiers may still hold
// intervals, and those stay editable.
func (s *Store) Update(id string, p Patch) (Annotation, error) {
	i, ok := s.index[id]
	if !ok {
		return Annotation{}, &NotFoundError{ID: id}
	}
	cur := s.annotations[i]
	if p.IsEmpty() {
		return cur, nil
	}
	next := p.apply(cur)
	check := s.validate
	if next.Tier == cur.Tier {
		check = func(a Annotation) error { return validateValues(a.Tier, a.Start, a.End, a.Type) }
	}
	if err := check(next); err != nil {
		return Annotation{}, err
	}
	s.annotations[i] = next
	return next, nil
}

// Delete removes an annotation. Unknown ids are ignored; the return value
// reports whether anything was removed.
func (s *Store) Delete(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.annotations = append(s.annotations[:i:i], s.annotations[i+1:]...)
	s.reindex()
	return true
}

// Get returns the annotation with the given id.
func (s *Store) Get(id string) (Annotation, bool) {
	i, ok := s.index[id]
	if !ok {
		return Annotation{}, false
	}
	return s.annotations[i], true
}

// DeclareTier adds a tier declaration. It returns false without changes if
// the name is already declared.
func (s *Store) DeclareTier(name string, typ Type) (bool, error) {
	if name == "" {
		return false, invalid("tier", "tier name must not be empty")
	}
	for _, t := range s.tiers {
		if t.Name == name {
			return false, nil
		}
	}
	s.tiers = append(s.tiers, Tier{Name: name, Type: typ})
	return true, nil
}

// IsDeclared reports whether name has an explicit declaration.
func (s *Store) IsDeclared(name string) bool {
	for _, t := range s.tiers {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ListTiers returns declared tiers followed by tiers that only appear on
// annotations, de-duplicated in first-seen order. Undeclared tiers take the
// type of their first annotation.
func (s *Store) ListTiers() []Tier {
	out := make([]Tier, 0, len(s.tiers))
	seen := make(map[string]bool, len(s.tiers))
	for _, t := range s.tiers {
		out = append(out, t)
		seen[t.Name] = true
	}
	for _, a := range s.annotations {
		if seen[a.Tier] {
			continue
		}
		seen[a.Tier] = true
		out = append(out, Tier{Name: a.Tier, Type: a.Type})
	}
	return out
}

// TierType returns the effective type of a tier: its declaration, or the
// type of its first annotation. The second result is false for unknown tiers.
func (s *Store) TierType(name string) (Type, bool) {
	for _, t := range s.tiers {
		if t.Name == name {
			return t.Type, true
		}
	}
	for _, a := range s.annotations {
		if a.Tier == name {
			return a.Type, true
		}
	}
	return Interval, false
}

// Annotations returns a copy of every annotation in insertion order.
func (s *Store) Annotations() []Annotation {
	out := make([]Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// InTier returns the annotations of one tier ordered by start time.
func (s *Store) InTier(name string) []Annotation {
	var out []Annotation
	for _, a := range s.annotations {
		if a.Tier == name {
			out = append(out, a)
		}
	}
	SortByStart(out)
	return out
}

// SortByStart orders annotations by start, then end, keeping insertion
// order for ties.
func SortByStart(list []Annotation) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].End < list[j].End
	})
}

// FindBoundaries returns every distinct start and end value, ascending.
func (s *Store) FindBoundaries() []float64 {
	seen := make(map[float64]bool, len(s.annotations)*2)
	out := make([]float64, 0, len(s.annotations)*2)
	for _, a := range s.annotations {
		for _, b := range [2]float64{a.Start, a.End} {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	sort.Float64s(out)
	return out
}

// AnnotationAt returns the interval annotation containing t, searching
// tiers in display order.
func (s *Store) AnnotationAt(t float64) (Annotation, bool) {
	for _, tier := range s.ListTiers() {
		if a, ok := s.AnnotationAtIn(tier.Name, t); ok {
			return a, true
		}
	}
	return Annotation{}, false
}

// AnnotationAtIn returns the interval annotation on one tier whose
// [Start, End] contains t.
func (s *Store) AnnotationAtIn(tier string, t float64) (Annotation, bool) {
	for _, a := range s.InTier(tier) {
		if a.Type == Interval && a.Contains(t) {
			return a, true
		}
	}
	return Annotation{}, false
}

// Restore replaces the annotation list with a snapshot, leaving tier
// declarations alone. Used by undo/redo.
func (s *Store) Restore(snapshot []Annotation) {
	s.annotations = make([]Annotation, len(snapshot))
	copy(s.annotations, snapshot)
	s.reindex()
}

func (s *Store) append(a Annotation) {
	s.index[a.ID] = len(s.annotations)
	s.annotations = append(s.annotations, a)
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.annotations))
	for i, a := range s.annotations {
		s.index[a.ID] = i
	}
}

// validate checks one annotation against the store invariants. A tier
// with no declaration is held to the type of its first annotation, so a
// tier that starts with a point stays a point tier.
func (s *Store) validate(a Annotation) error {
	if err := validateValues(a.Tier, a.Start, a.End, a.Type); err != nil {
		return err
	}
	if a.Type == Interval {
		if typ, ok := s.TierType(a.Tier); ok && typ == Point {
			return invalid("type", "tier %q only accepts point annotations", a.Tier)
		}
	}
	return nil
}

func validateValues(tier string, start, end float64, typ Type) error {
	if tier == "" {
		return invalid("tier", "tier name must not be empty")
	}
	if math.IsNaN(start) || math.IsInf(start, 0) {
		return invalid("start", "start must be a finite number")
	}
	if math.IsNaN(end) || math.IsInf(end, 0) {
		return invalid("end", "end must be a finite number")
	}
	if start < 0 {
		return invalid("start", "start %v is negative", start)
	}
	switch typ {
	case Point:
		if start != end {
			return invalid("end", "point annotation needs start == end, got %v and %v", start, end)
		}
	case Interval:
		if end < start {
			return invalid("end", "end %v is before start %v", end, start)
		}
	default:
		return invalid("type", "unknown annotation type %v", typ)
	}
	return nil
}

// ValidateImport checks tiers and drafts the way Merge does, without a
// store. A nil result means Merge into any store would succeed.
func ValidateImport(tiers []Tier, drafts []Draft) error {
	for i, d := range drafts {
		if err := validateValues(d.Tier, d.Start, d.End, d.Type); err != nil {
			return fmt.Errorf("annotation %d on tier %q: %w", i, d.Tier, err)
		}
	}
	for _, t := range tiers {
		if t.Name == "" {
			return invalid("tier", "tier name must not be empty")
		}
	}
	return nil
}

// MergeResult summarises a bulk merge.
type MergeResult struct {
	TiersAdded   []string
	TiersSkipped []string // already declared; existing declaration kept
	Annotations  []Annotation
}

// Merge appends imported tiers and annotations. Tier names already declared
// are skipped, never overwritten. Every draft is validated before anything
// is written, so a failed merge leaves the store untouched.
func (s *Store) Merge(tiers []Tier, drafts []Draft) (MergeResult, error) {
	if err := ValidateImport(tiers, drafts); err != nil {
		return MergeResult{}, err
	}

	var res MergeResult
	for _, t := range tiers {
		added, _ := s.DeclareTier(t.Name, t.Type)
		if added {
			res.TiersAdded = append(res.TiersAdded, t.Name)
		} else {
			res.TiersSkipped = append(res.TiersSkipped, t.Name)
		}
	}

	res.Annotations = make([]Annotation, 0, len(drafts))
	for _, d := range drafts {
		id := d.ID
		if _, taken := s.index[id]; id == "" || taken {
			id = s.newID()
		}
		a := Annotation{ID: id, Tier: d.Tier, Start: d.Start, End: d.End, Text: d.Text, Type: d.Type}
		s.append(a)
		res.Annotations = append(res.Annotations, a)
	}
	return res, nil
}
