package cursor

import "fmt"

// Selection is a time range with direction.
// Anchor is where the selection started; Head is the moving end.
// Selection is an immutable value type.
type Selection struct {
	Anchor float64
	Head   float64
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head float64) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// Start returns the lower bound.
func (s Selection) Start() float64 {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound.
func (s Selection) End() float64 {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// String returns a debug representation.
func (s Selection) String() string {
	return fmt.Sprintf("[%g, %g]", s.Start(), s.End())
}
