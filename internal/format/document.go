package format

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/tierline/internal/engine/annotation"
)

// Document is the format-neutral content of one annotation file.
type Document struct {
	// Duration is the timeline length in seconds, or 0 if the file has none.
	Duration float64
	// Tiers holds tier declarations in file order.
	Tiers []annotation.Tier
	// Annotations holds every record in file order.
	Annotations []annotation.Draft
	// Warnings lists lossy conversions the reader had to make.
	Warnings []string
}

// Warnf appends a warning.
func (d *Document) Warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// DeclareTier appends a tier unless the name is already present.
func (d *Document) DeclareTier(name string, typ annotation.Type) {
	for _, t := range d.Tiers {
		if t.Name == name {
			return
		}
	}
	d.Tiers = append(d.Tiers, annotation.Tier{Name: name, Type: typ})
}

// InTier returns the drafts on one tier ordered by start time.
func (d *Document) InTier(name string) []annotation.Draft {
	var out []annotation.Draft
	for _, a := range d.Annotations {
		if a.Tier == name {
			out = append(out, a)
		}
	}
	sortDrafts(out)
	return out
}

// MaxTime returns the larger of Duration and the latest annotation end.
func (d *Document) MaxTime() float64 {
	max := d.Duration
	for _, a := range d.Annotations {
		if a.End > max {
			max = a.End
		}
	}
	return max
}

// ReadOptions adjusts imported content after parsing.
type ReadOptions struct {
	// SkipEmpty drops annotations whose label is blank.
	SkipEmpty bool
	// NormalizeText converts labels to Unicode NFC.
	NormalizeText bool
}

// Apply filters and normalizes the document in place.
func (d *Document) Apply(opts ReadOptions) {
	if !opts.SkipEmpty && !opts.NormalizeText {
		return
	}
	kept := d.Annotations[:0]
	skipped := 0
	for _, a := range d.Annotations {
		if opts.SkipEmpty && strings.TrimSpace(a.Text) == "" {
			skipped++
			continue
		}
		if opts.NormalizeText {
			a.Text = norm.NFC.String(a.Text)
		}
		kept = append(kept, a)
	}
	d.Annotations = kept
	if opts.NormalizeText {
		for i := range d.Tiers {
			d.Tiers[i].Name = norm.NFC.String(d.Tiers[i].Name)
		}
		for i := range d.Annotations {
			d.Annotations[i].Tier = norm.NFC.String(d.Annotations[i].Tier)
		}
	}
	if skipped > 0 {
		d.Warnf("skipped %d annotations with empty labels", skipped)
	}
}

// FromAnnotations builds a Document for writers.
func FromAnnotations(duration float64, tiers []annotation.Tier, list []annotation.Annotation) *Document {
	doc := &Document{
		Duration:    duration,
		Tiers:       append([]annotation.Tier(nil), tiers...),
		Annotations: make([]annotation.Draft, 0, len(list)),
	}
	for _, a := range list {
		doc.Annotations = append(doc.Annotations, annotation.Draft{
			ID:    a.ID,
			Tier:  a.Tier,
			Start: a.Start,
			End:   a.End,
			Text:  a.Text,
			Type:  a.Type,
		})
	}
	return doc
}

func sortDrafts(list []annotation.Draft) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].End < list[j].End
	})
}
