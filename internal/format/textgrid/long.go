package textgrid

import (
	"strings"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

// longParser reads the key = value grammar. It tracks whether it is inside
// a tier item and inside an interval or point record; a record is emitted
// as soon as its required fields are present.
type longParser struct {
	r   *lineReader
	doc *format.Document

	tierCount    int
	hasTierCount bool
	tiersSeen    int

	tier *tierState // nil outside an item
	rec  *record    // nil outside a record
}

type tierState struct {
	line        int
	class       string
	name        string
	typ         annotation.Type
	declared    int
	hasDeclared bool
	seen        int
}

type record struct {
	line     int
	start    float64
	end      float64
	text     string
	hasStart bool
	hasEnd   bool
	hasText  bool
}

func (p *longParser) parse(r *lineReader) (*format.Document, error) {
	p.r = r
	p.doc = &format.Document{}

	for {
		line, n, ok := r.next()
		if !ok {
			break
		}
		switch {
		case line == "item []:" || line == "item[]:":
			continue
		case strings.HasPrefix(line, "item"):
			if err := p.endTier(); err != nil {
				return nil, err
			}
			p.tier = &tierState{line: n}
			continue
		case isRecordHeader(line):
			if p.tier == nil {
				return nil, format.Errorf(format.TextGrid, n, "%s outside a tier", line)
			}
			if err := p.endRecord(); err != nil {
				return nil, err
			}
			p.rec = &record{line: n}
			continue
		case strings.HasPrefix(line, "tiers?"):
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			return nil, format.Errorf(format.TextGrid, n, "unexpected line %q", line)
		}
		if err := p.field(key, value, n); err != nil {
			return nil, err
		}
		if err := p.emitIfComplete(); err != nil {
			return nil, err
		}
	}

	if p.rec != nil {
		return nil, p.r.truncated("a " + p.recordKind() + " record")
	}
	if err := p.endTier(); err != nil {
		return nil, err
	}
	if p.hasTierCount && p.tiersSeen != p.tierCount {
		return nil, format.Errorf(format.TextGrid, len(r.lines), "file declares %d tiers, found %d", p.tierCount, p.tiersSeen)
	}
	return p.doc, nil
}

func isRecordHeader(line string) bool {
	for _, prefix := range []string{"intervals [", "intervals[", "points [", "points["} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (p *longParser) field(key, value string, n int) error {
	switch key {
	case "xmin":
		v, err := parseNumber(value, n)
		if err != nil {
			return err
		}
		if p.rec != nil {
			p.rec.start, p.rec.hasStart = v, true
		}

	case "xmax":
		v, err := parseNumber(value, n)
		if err != nil {
			return err
		}
		switch {
		case p.rec != nil:
			p.rec.end, p.rec.hasEnd = v, true
		case p.tier == nil:
			p.doc.Duration = v
		}

	case "time", "number":
		if p.rec == nil {
			return nil
		}
		v, err := parseNumber(value, n)
		if err != nil {
			return err
		}
		p.rec.start, p.rec.hasStart = v, true
		if p.tier.typ == annotation.Point {
			p.rec.end, p.rec.hasEnd = v, true
		}

	case "text", "mark":
		if p.rec == nil {
			return nil
		}
		text, err := p.r.readQuoted(value, n)
		if err != nil {
			return err
		}
		p.rec.text, p.rec.hasText = text, true

	case "size":
		if p.tier != nil {
			return nil
		}
		count, err := parseCount(value, n)
		if err != nil {
			return err
		}
		p.tierCount, p.hasTierCount = count, true

	case "class":
		if p.tier == nil {
			return nil
		}
		p.tier.class = unquote(value)
		typ, known := tierType(p.tier.class)
		if !known {
			p.doc.Warnf("line %d: unknown tier class %q read as %s", n, p.tier.class, typ)
		}
		p.tier.typ = typ

	case "name":
		if p.tier == nil {
			return nil
		}
		name := unquote(value)
		if name == "" {
			return format.Errorf(format.TextGrid, n, "tier has an empty name")
		}
		for _, t := range p.doc.Tiers {
			if t.Name == name {
				p.doc.Warnf("line %d: tier %q appears more than once; records merged", n, name)
			}
		}
		p.tier.name = name
		p.doc.DeclareTier(name, p.tier.typ)

	case "intervals: size", "points: size":
		if p.tier == nil {
			return format.Errorf(format.TextGrid, n, "%s outside a tier", key)
		}
		count, err := parseCount(value, n)
		if err != nil {
			return err
		}
		p.tier.declared, p.tier.hasDeclared = count, true
	}
	return nil
}

// emitIfComplete appends the current record once its required fields are
// set: time and text for points, both bounds and text for intervals.
func (p *longParser) emitIfComplete() error {
	rec := p.rec
	if rec == nil || !rec.hasStart || !rec.hasText {
		return nil
	}
	if p.tier.typ == annotation.Point {
		rec.end = rec.start
	} else if !rec.hasEnd {
		return nil
	}
	if p.tier.name == "" {
		return format.Errorf(format.TextGrid, rec.line, "record before tier name")
	}
	if rec.end < rec.start {
		return format.Errorf(format.TextGrid, rec.line, "interval ends at %v before it starts at %v", rec.end, rec.start)
	}

	p.doc.Annotations = append(p.doc.Annotations, annotation.Draft{
		Tier:  p.tier.name,
		Start: rec.start,
		End:   rec.end,
		Text:  rec.text,
		Type:  p.tier.typ,
	})
	p.tier.seen++
	p.rec = nil
	return nil
}

func (p *longParser) endRecord() error {
	if p.rec == nil {
		return nil
	}
	return format.Errorf(format.TextGrid, p.rec.line, "incomplete %s record", p.recordKind())
}

func (p *longParser) endTier() error {
	t := p.tier
	if t == nil {
		return nil
	}
	if err := p.endRecord(); err != nil {
		return err
	}
	if t.name == "" {
		return format.Errorf(format.TextGrid, t.line, "tier without a name")
	}
	if t.hasDeclared && t.seen != t.declared {
		return format.Errorf(format.TextGrid, t.line, "tier %q declares %d %s, found %d",
			t.name, t.declared, recordKindOf(t.typ)+"s", t.seen)
	}
	p.tiersSeen++
	p.tier = nil
	return nil
}

func (p *longParser) recordKind() string {
	if p.tier == nil {
		return "interval"
	}
	return recordKindOf(p.tier.typ)
}

func recordKindOf(typ annotation.Type) string {
	if typ == annotation.Point {
		return "point"
	}
	return "interval"
}
