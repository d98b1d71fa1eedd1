package textgrid

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

// WriteOptions controls TextGrid output.
type WriteOptions struct {
	// Form selects the long or short grammar.
	Form Form
	// FillGaps inserts empty intervals so every interval tier covers
	// [0, xmax] without holes, as Praat itself requires.
	FillGaps bool
}

// tierPlan is one tier ready to print.
type tierPlan struct {
	name    string
	class   string
	records []annotation.Draft
}

// Marshal renders doc as a TextGrid.
func Marshal(doc *format.Document, opts WriteOptions) []byte {
	xmax := doc.MaxTime()
	plans := plan(doc, xmax, opts.FillGaps)

	var buf bytes.Buffer
	if opts.Form == Short {
		writeShort(&buf, plans, xmax)
	} else {
		writeLong(&buf, plans, xmax)
	}
	return buf.Bytes()
}

// Write renders doc to w.
func Write(w io.Writer, doc *format.Document, opts WriteOptions) error {
	_, err := w.Write(Marshal(doc, opts))
	return err
}

// plan orders tiers as declared, followed by tiers that only appear on
// annotations. A tier is written as a TextTier only when it is typed as a
// point tier and every record on it is a point.
func plan(doc *format.Document, xmax float64, fillGaps bool) []tierPlan {
	tiers := append([]annotation.Tier(nil), doc.Tiers...)
	seen := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		seen[t.Name] = true
	}
	for _, a := range doc.Annotations {
		if !seen[a.Tier] {
			seen[a.Tier] = true
			tiers = append(tiers, annotation.Tier{Name: a.Tier, Type: a.Type})
		}
	}

	plans := make([]tierPlan, 0, len(tiers))
	for _, t := range tiers {
		records := doc.InTier(t.Name)
		class := ClassInterval
		if t.Type == annotation.Point && allPoints(records) {
			class = ClassText
		}
		if class == ClassInterval && fillGaps {
			records = fill(t.Name, records, xmax)
		}
		plans = append(plans, tierPlan{name: t.Name, class: class, records: records})
	}
	return plans
}

func allPoints(records []annotation.Draft) bool {
	for _, r := range records {
		if r.Start != r.End {
			return false
		}
	}
	return true
}

// fill adds empty intervals between sorted records and out to xmax.
func fill(tier string, records []annotation.Draft, xmax float64) []annotation.Draft {
	out := make([]annotation.Draft, 0, len(records)*2+1)
	cursor := 0.0
	for _, r := range records {
		if r.Start > cursor {
			out = append(out, annotation.Draft{Tier: tier, Start: cursor, End: r.Start})
		}
		out = append(out, r)
		if r.End > cursor {
			cursor = r.End
		}
	}
	if cursor < xmax || len(out) == 0 {
		out = append(out, annotation.Draft{Tier: tier, Start: cursor, End: xmax})
	}
	return out
}

func writeLong(buf *bytes.Buffer, plans []tierPlan, xmax float64) {
	buf.WriteString("File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n")
	fmt.Fprintf(buf, "xmin = 0\nxmax = %s\ntiers? <exists>\nsize = %d\nitem []:\n", num(xmax), len(plans))

	for i, t := range plans {
		fmt.Fprintf(buf, "    item [%d]:\n", i+1)
		fmt.Fprintf(buf, "        class = %s\n", quote(t.class))
		fmt.Fprintf(buf, "        name = %s\n", quote(t.name))
		fmt.Fprintf(buf, "        xmin = 0\n        xmax = %s\n", num(xmax))

		if t.class == ClassText {
			fmt.Fprintf(buf, "        points: size = %d\n", len(t.records))
			for j, r := range t.records {
				fmt.Fprintf(buf, "        points [%d]:\n", j+1)
				fmt.Fprintf(buf, "            number = %s\n", num(r.Start))
				fmt.Fprintf(buf, "            mark = %s\n", quote(r.Text))
			}
			continue
		}
		fmt.Fprintf(buf, "        intervals: size = %d\n", len(t.records))
		for j, r := range t.records {
			fmt.Fprintf(buf, "        intervals [%d]:\n", j+1)
			fmt.Fprintf(buf, "            xmin = %s\n", num(r.Start))
			fmt.Fprintf(buf, "            xmax = %s\n", num(r.End))
			fmt.Fprintf(buf, "            text = %s\n", quote(r.Text))
		}
	}
}

func writeShort(buf *bytes.Buffer, plans []tierPlan, xmax float64) {
	buf.WriteString("File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n")
	fmt.Fprintf(buf, "0\n%s\n<exists>\n%d\n", num(xmax), len(plans))

	for _, t := range plans {
		fmt.Fprintf(buf, "%s\n%s\n0\n%s\n%d\n", quote(t.class), quote(t.name), num(xmax), len(t.records))
		for _, r := range t.records {
			buf.WriteString(num(r.Start))
			buf.WriteByte('\n')
			if t.class == ClassInterval {
				buf.WriteString(num(r.End))
				buf.WriteByte('\n')
			}
			buf.WriteString(quote(r.Text))
			buf.WriteByte('\n')
		}
	}
}

// num prints the shortest decimal that parses back to v.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quote wraps s in quotes, doubling embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
