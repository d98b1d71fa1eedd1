// Package textgrid reads and writes Praat TextGrid files.
//
// Praat writes two text grammars. The long form labels every value with a
// key ("xmin = 0.2") and nests tiers and intervals under bracketed item
// headers. The short form lists the same values positionally, one per line.
// Parse selects a strategy from the first value line after the header; the
// strategies share the line reader and quoted-string scanner.
package textgrid

import (
	"strings"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

// Praat tier classes.
const (
	ClassInterval = "IntervalTier"
	ClassText     = "TextTier"
)

// strategy parses one grammar.
type strategy interface {
	parse(r *lineReader) (*format.Document, error)
}

// Form names a TextGrid grammar.
type Form uint8

const (
	// Long is the key = value form.
	Long Form = iota
	// Short is the positional form.
	Short
)

// String returns the form name.
func (f Form) String() string {
	if f == Short {
		return "short"
	}
	return "long"
}

// DetectForm reports which grammar content uses. The header lines up to
// the "TextGrid" object class are skipped; a first value line starting
// with "xmin" means the long form.
func DetectForm(content string) (Form, error) {
	r := newLineReader(content)
	if err := r.skipHeader(); err != nil {
		return Long, err
	}
	line, _, ok := r.peek()
	if !ok {
		return Long, r.truncated("header")
	}
	if strings.HasPrefix(line, "xmin") {
		return Long, nil
	}
	return Short, nil
}

// Parse reads a TextGrid in either form.
func Parse(content string) (*format.Document, error) {
	form, err := DetectForm(content)
	if err != nil {
		return nil, err
	}
	var s strategy = &longParser{}
	if form == Short {
		s = &shortParser{}
	}
	r := newLineReader(content)
	if err := r.skipHeader(); err != nil {
		return nil, err
	}
	return s.parse(r)
}

// tierType maps a Praat class name to an annotation type.
func tierType(class string) (annotation.Type, bool) {
	switch {
	case class == ClassInterval:
		return annotation.Interval, true
	case class == ClassText, strings.Contains(strings.ToLower(class), "point"):
		return annotation.Point, true
	default:
		return annotation.Interval, false
	}
}
