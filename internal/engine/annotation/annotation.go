// Package annotation holds the canonical in-memory model of tiers and
// time-aligned annotations.
//
// Tiers are not separate containers: an annotation names its tier, and the
// tier list is the union of explicitly declared tiers and every tier name
// seen on an annotation. Annotations within a tier are ordered by start time
// at read time; storage order is insertion order.
package annotation

import "fmt"

// Type distinguishes labelled spans from labelled instants.
type Type uint8

const (
	// Interval is a labelled span [Start, End].
	Interval Type = iota
	// Point is a labelled instant with Start == End.
	Point
)

// String returns the interchange name of the type.
func (t Type) String() string {
	switch t {
	case Interval:
		return "interval"
	case Point:
		return "point"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}

// ParseType converts "interval" or "point" to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "interval", "":
		return Interval, nil
	case "point":
		return Point, nil
	default:
		return Interval, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown annotation type %q", s)}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Annotation is a single labelled time marker. It is a value type; the
// store hands out copies.
type Annotation struct {
	ID    string  `json:"id"`
	Tier  string  `json:"tier"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Type  Type    `json:"type"`
}

// Duration returns End - Start in seconds.
func (a Annotation) Duration() float64 {
	return a.End - a.Start
}

// Contains reports whether t lies within [Start, End].
func (a Annotation) Contains(t float64) bool {
	return t >= a.Start && t <= a.End
}

// Tier is a tier declaration.
type Tier struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Patch lists the fields an update may change. Nil fields are left as
// they are. Type and ID are fixed at creation and cannot be patched.
type Patch struct {
	Tier  *string
	Start *float64
	End   *float64
	Text  *string
}

// IsEmpty returns true if the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Tier == nil && p.Start == nil && p.End == nil && p.Text == nil
}

// apply returns a copy of a with the patch fields merged over it.
func (p Patch) apply(a Annotation) Annotation {
	if p.Tier != nil {
		a.Tier = *p.Tier
	}
	if p.Start != nil {
		a.Start = *p.Start
	}
	if p.End != nil {
		a.End = *p.End
	}
	if p.Text != nil {
		a.Text = *p.Text
	}
	return a
}

// SetText returns a patch that changes only the label.
func SetText(text string) Patch {
	return Patch{Text: &text}
}

// SetTimes returns a patch that changes start and end.
func SetTimes(start, end float64) Patch {
	return Patch{Start: &start, End: &end}
}

// Draft is an annotation that has not been assigned to a store yet.
// Format adapters produce drafts; the store turns them into annotations.
type Draft struct {
	ID    string // optional; kept on merge when not already in use
	Tier  string
	Start float64
	End   float64
	Text  string
	Type  Type
}

// Equal reports whether two annotation lists hold the same values in the
// same order. History uses it to skip redundant snapshots.
func Equal(a, b []Annotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
