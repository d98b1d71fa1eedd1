// Package eaf reads ELAN annotation documents.
//
// Parsing runs in three passes over a fully decoded XML tree: time slots
// are resolved to seconds, every annotation is gathered as a raw record,
// and only then are tier types derived and drafts built. A tier is a point
// tier when any of its aligned annotations has zero width.
//
// Reference annotations (children of another annotation with no time of
// their own) are flattened to zero-width records at time 0 and reported in
// the document warnings.
package eaf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

type document struct {
	XMLName   xml.Name  `xml:"ANNOTATION_DOCUMENT"`
	Header    header    `xml:"HEADER"`
	TimeOrder timeOrder `xml:"TIME_ORDER"`
	Tiers     []tier    `xml:"TIER"`
}

type header struct {
	TimeUnits string `xml:"TIME_UNITS,attr"`
}

type timeOrder struct {
	Slots []timeSlot `xml:"TIME_SLOT"`
}

type timeSlot struct {
	ID    string `xml:"TIME_SLOT_ID,attr"`
	Value string `xml:"TIME_VALUE,attr"`
}

type tier struct {
	ID          string  `xml:"TIER_ID,attr"`
	Annotations []entry `xml:"ANNOTATION"`
}

// entry wraps exactly one of the two annotation kinds.
type entry struct {
	Alignable *alignable `xml:"ALIGNABLE_ANNOTATION"`
	Ref       *reference `xml:"REF_ANNOTATION"`
}

type alignable struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Slot1 string `xml:"TIME_SLOT_REF1,attr"`
	Slot2 string `xml:"TIME_SLOT_REF2,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

type reference struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Ref   string `xml:"ANNOTATION_REF,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

// raw is one gathered annotation before tier types are known.
type raw struct {
	id    string
	tier  string
	start float64
	end   float64
	text  string
	ref   bool
}

// Parse reads an ELAN document.
func Parse(content string) (*format.Document, error) {
	var d document
	if err := xml.Unmarshal([]byte(content), &d); err != nil {
		pe := &format.ParseError{Format: format.EAF, Message: "invalid XML", Err: err}
		var se *xml.SyntaxError
		if errors.As(err, &se) {
			pe.Line = se.Line
			pe.Err = errors.New(se.Msg)
		}
		return nil, pe
	}

	scale, err := timeScale(d.Header.TimeUnits)
	if err != nil {
		return nil, err
	}
	slots, err := resolveSlots(d.TimeOrder.Slots, scale)
	if err != nil {
		return nil, err
	}
	records, err := gather(d.Tiers, slots)
	if err != nil {
		return nil, err
	}
	return build(d.Tiers, records), nil
}

// timeScale returns the divisor converting slot values to seconds.
func timeScale(units string) (float64, error) {
	switch units {
	case "", "milliseconds":
		return 1000, nil
	default:
		return 0, &format.ParseError{Format: format.EAF, Element: "HEADER", Message: fmt.Sprintf("unsupported TIME_UNITS %q", units)}
	}
}

// resolveSlots maps slot ids to seconds. Slots without a TIME_VALUE are
// placed by linear interpolation between the nearest aligned slots in
// TIME_ORDER; leading unaligned slots take the next aligned value and
// trailing ones the previous.
func resolveSlots(list []timeSlot, scale float64) (map[string]float64, error) {
	values := make([]float64, len(list))
	aligned := make([]bool, len(list))
	for i, s := range list {
		if s.ID == "" {
			return nil, &format.ParseError{Format: format.EAF, Element: "TIME_SLOT", Message: fmt.Sprintf("slot %d has no TIME_SLOT_ID", i+1)}
		}
		if strings.TrimSpace(s.Value) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil {
			return nil, &format.ParseError{Format: format.EAF, Element: "TIME_SLOT " + s.ID, Message: "invalid TIME_VALUE", Err: err}
		}
		values[i] = v / scale
		aligned[i] = true
	}

	for i := 0; i < len(list); i++ {
		if aligned[i] {
			continue
		}
		j := i
		for j < len(list) && !aligned[j] {
			j++
		}
		// list[i:j] is a run of unaligned slots.
		prev, next := -1, j
		if i > 0 {
			prev = i - 1
		}
		for k := i; k < j; k++ {
			switch {
			case prev >= 0 && next < len(list):
				span := values[next] - values[prev]
				values[k] = values[prev] + span*float64(k-prev)/float64(next-prev)
			case prev >= 0:
				values[k] = values[prev]
			case next < len(list):
				values[k] = values[next]
			}
		}
		i = j
	}

	out := make(map[string]float64, len(list))
	for i, s := range list {
		out[s.ID] = values[i]
	}
	return out, nil
}

// gather resolves every annotation to a raw record.
func gather(tiers []tier, slots map[string]float64) ([]raw, error) {
	var records []raw
	for _, t := range tiers {
		if t.ID == "" {
			return nil, &format.ParseError{Format: format.EAF, Element: "TIER", Message: "tier has no TIER_ID"}
		}
		for _, a := range t.Annotations {
			switch {
			case a.Alignable != nil:
				al := a.Alignable
				start, err := lookup(slots, al.Slot1, al.ID)
				if err != nil {
					return nil, err
				}
				end, err := lookup(slots, al.Slot2, al.ID)
				if err != nil {
					return nil, err
				}
				if end < start {
					start, end = end, start
				}
				records = append(records, raw{id: al.ID, tier: t.ID, start: start, end: end, text: al.Value})
			case a.Ref != nil:
				records = append(records, raw{id: a.Ref.ID, tier: t.ID, text: a.Ref.Value, ref: true})
			}
		}
	}
	return records, nil
}

func lookup(slots map[string]float64, id, owner string) (float64, error) {
	v, ok := slots[id]
	if !ok {
		return 0, &format.ParseError{
			Format:  format.EAF,
			Element: "ALIGNABLE_ANNOTATION " + owner,
			Message: fmt.Sprintf("unknown time slot %q", id),
		}
	}
	return v, nil
}

// build derives tier types from the gathered records and emits drafts.
func build(tiers []tier, records []raw) *format.Document {
	pointTiers := make(map[string]bool)
	refCounts := make(map[string]int)
	for _, r := range records {
		if r.ref {
			refCounts[r.tier]++
			continue
		}
		if r.start == r.end {
			pointTiers[r.tier] = true
		}
	}

	doc := &format.Document{}
	for _, t := range tiers {
		typ := annotation.Interval
		if pointTiers[t.ID] {
			typ = annotation.Point
		}
		doc.DeclareTier(t.ID, typ)
		if n := refCounts[t.ID]; n > 0 {
			doc.Warnf("tier %q: %d reference annotations have no time alignment and were placed at 0", t.ID, n)
		}
	}

	doc.Annotations = make([]annotation.Draft, 0, len(records))
	for _, r := range records {
		typ := annotation.Interval
		if !r.ref && r.start == r.end {
			typ = annotation.Point
		}
		doc.Annotations = append(doc.Annotations, annotation.Draft{
			ID:    r.id,
			Tier:  r.tier,
			Start: r.start,
			End:   r.end,
			Text:  r.text,
			Type:  typ,
		})
	}
	doc.Duration = doc.MaxTime()
	return doc
}
