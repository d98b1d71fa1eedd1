// Package interchange routes annotation files to the right format adapter.
//
// Import decodes raw bytes, detects the format and parses into a
// standalone Document; nothing is merged here. Export renders a Document
// in a named format, optionally restricted to tiers matching glob
// patterns.
package interchange

import (
	"github.com/tidwall/match"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
	"github.com/dshills/tierline/internal/format/csvfmt"
	"github.com/dshills/tierline/internal/format/eaf"
	"github.com/dshills/tierline/internal/format/jsonfmt"
	"github.com/dshills/tierline/internal/format/textgrid"
)

// ImportOptions adjusts parsed content.
type ImportOptions = format.ReadOptions

// ExportOptions controls rendering.
type ExportOptions struct {
	// FillGaps pads interval tiers to cover the whole timeline (TextGrid only).
	FillGaps bool
	// Tiers restricts output to tiers matching any of these glob patterns
	// ("*" and "?" wildcards). Empty means every tier.
	Tiers []string
}

// Import decodes and parses one file. The returned Kind is the detected
// format.
func Import(raw []byte, filename string, opts ImportOptions) (*format.Document, format.Kind, error) {
	content, err := format.Decode(raw)
	if err != nil {
		return nil, "", &format.ParseError{Message: "cannot decode " + filename, Err: err}
	}
	kind, err := format.Detect(filename, content)
	if err != nil {
		return nil, "", err
	}
	doc, err := Parse(kind, content)
	if err != nil {
		return nil, kind, err
	}
	doc.Apply(opts)
	return doc, kind, nil
}

// Parse runs the reader for kind over decoded content.
func Parse(kind format.Kind, content string) (*format.Document, error) {
	if !kind.CanRead() {
		return nil, &format.UnsupportedFormatError{Name: string(kind), Reason: "no reader"}
	}
	switch kind {
	case format.TextGrid, format.TextGridShort:
		return textgrid.Parse(content)
	case format.EAF:
		return eaf.Parse(content)
	default:
		return jsonfmt.Parse(content)
	}
}

// Export renders doc in the given format.
func Export(doc *format.Document, kind format.Kind, opts ExportOptions) ([]byte, error) {
	if len(opts.Tiers) > 0 {
		doc = FilterTiers(doc, opts.Tiers)
	}
	switch kind {
	case format.TextGrid:
		return textgrid.Marshal(doc, textgrid.WriteOptions{Form: textgrid.Long, FillGaps: opts.FillGaps}), nil
	case format.TextGridShort:
		return textgrid.Marshal(doc, textgrid.WriteOptions{Form: textgrid.Short, FillGaps: opts.FillGaps}), nil
	case format.JSON:
		return jsonfmt.Marshal(doc)
	case format.CSV:
		return csvfmt.Marshal(doc), nil
	default:
		return nil, &format.UnsupportedFormatError{Name: string(kind), Reason: "no writer"}
	}
}

// FilterTiers returns a copy of doc holding only tiers whose names match
// one of the patterns, with their annotations.
func FilterTiers(doc *format.Document, patterns []string) *format.Document {
	keep := func(name string) bool {
		for _, p := range patterns {
			if match.Match(name, p) {
				return true
			}
		}
		return false
	}

	out := &format.Document{Duration: doc.Duration, Warnings: doc.Warnings}
	for _, t := range doc.Tiers {
		if keep(t.Name) {
			out.Tiers = append(out.Tiers, t)
		}
	}
	out.Annotations = make([]annotation.Draft, 0, len(doc.Annotations))
	for _, a := range doc.Annotations {
		if keep(a.Tier) {
			out.Annotations = append(out.Annotations, a)
		}
	}
	return out
}
