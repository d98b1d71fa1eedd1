package renderer

import (
	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/renderer/viewport"
)

// Source provides the annotation and view state to paint.
// *engine.Engine satisfies it.
type Source interface {
	Mapper() viewport.Mapper
	Duration() float64
	CursorTime() float64
	Selection() (start, end float64, ok bool)
	Tiers() []annotation.Tier
	InTier(name string) []annotation.Annotation
	ActiveTier() string
	SelectedAnnotation() (annotation.Annotation, bool)
	Modified() bool
}

// MessageKind selects how a status message is shown.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageError
)

// Status is the session state shown around the timeline.
type Status struct {
	// Title names the open document.
	Title string
	// Mode is the input mode name.
	Mode string

	// Editing shows Label as the text being typed.
	Editing bool
	Label   string

	Message string
	Kind    MessageKind
}

// Region identifies a screen area.
type Region int

const (
	RegionNone Region = iota
	RegionHeader
	RegionRuler
	RegionGutter
	RegionTier
	RegionStatus
)

// Hit is the result of mapping a screen cell back to the timeline.
type Hit struct {
	Region Region
	// Tier is the tier name on a tier row.
	Tier string
	// X is the timeline pixel for ruler and tier rows.
	X float64
}
