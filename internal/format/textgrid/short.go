package textgrid

import (
	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

// shortParser reads the positional grammar: after the header come the
// file xmin and xmax, an <exists> marker, the tier count, and for each tier
// its class, name, xmin, xmax, record count and records.
type shortParser struct {
	r *lineReader
}

func (p *shortParser) parse(r *lineReader) (*format.Document, error) {
	p.r = r
	doc := &format.Document{}

	if _, err := p.number("file xmin"); err != nil {
		return nil, err
	}
	duration, err := p.number("file xmax")
	if err != nil {
		return nil, err
	}
	doc.Duration = duration

	marker, n, err := p.value("tiers marker")
	if err != nil {
		return nil, err
	}
	switch marker {
	case "<absent>":
		return doc, nil
	case "<exists>":
	default:
		return nil, format.Errorf(format.TextGrid, n, "expected <exists>, got %q", marker)
	}

	tiers, err := p.count("tier count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < tiers; i++ {
		if err := p.tier(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (p *shortParser) tier(doc *format.Document) error {
	class, n, err := p.text("tier class")
	if err != nil {
		return err
	}
	typ, known := tierType(class)
	if !known {
		doc.Warnf("line %d: unknown tier class %q read as %s", n, class, typ)
	}
	name, n, err := p.text("tier name")
	if err != nil {
		return err
	}
	if name == "" {
		return format.Errorf(format.TextGrid, n, "tier has an empty name")
	}
	if _, err := p.number("tier xmin"); err != nil {
		return err
	}
	if _, err := p.number("tier xmax"); err != nil {
		return err
	}
	records, err := p.count("record count")
	if err != nil {
		return err
	}
	doc.DeclareTier(name, typ)

	what := "tier " + name
	for j := 0; j < records; j++ {
		start, err := p.number(what)
		if err != nil {
			return err
		}
		end := start
		if typ == annotation.Interval {
			if end, err = p.number(what); err != nil {
				return err
			}
			if end < start {
				return format.Errorf(format.TextGrid, p.r.line(), "interval ends at %v before it starts at %v", end, start)
			}
		}
		text, _, err := p.text(what)
		if err != nil {
			return err
		}
		doc.Annotations = append(doc.Annotations, annotation.Draft{
			Tier:  name,
			Start: start,
			End:   end,
			Text:  text,
			Type:  typ,
		})
	}
	return nil
}

func (p *shortParser) value(what string) (string, int, error) {
	line, n, ok := p.r.next()
	if !ok {
		return "", 0, p.r.truncated(what)
	}
	return line, n, nil
}

func (p *shortParser) number(what string) (float64, error) {
	line, n, err := p.value(what)
	if err != nil {
		return 0, err
	}
	return parseNumber(line, n)
}

func (p *shortParser) count(what string) (int, error) {
	line, n, err := p.value(what)
	if err != nil {
		return 0, err
	}
	return parseCount(line, n)
}

func (p *shortParser) text(what string) (string, int, error) {
	line, n, err := p.value(what)
	if err != nil {
		return "", 0, err
	}
	s, err := p.r.readQuoted(line, n)
	return s, n, err
}
