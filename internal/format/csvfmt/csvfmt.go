// Package csvfmt writes annotations as comma-separated rows with the
// header tier,start,end,text. Rows follow tier order, then start time.
// Text is always quoted and embedded quotes are doubled.
package csvfmt

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/tierline/internal/format"
)

// Header is the first row of every file.
const Header = "tier,start,end,text"

// Marshal renders doc as CSV.
func Marshal(doc *format.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for _, tier := range tierOrder(doc) {
		for _, a := range doc.InTier(tier) {
			buf.WriteString(field(a.Tier))
			buf.WriteByte(',')
			buf.WriteString(strconv.FormatFloat(a.Start, 'f', -1, 64))
			buf.WriteByte(',')
			buf.WriteString(strconv.FormatFloat(a.End, 'f', -1, 64))
			buf.WriteByte(',')
			buf.WriteString(quote(a.Text))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// Write renders doc to w.
func Write(w io.Writer, doc *format.Document) error {
	_, err := w.Write(Marshal(doc))
	return err
}

func tierOrder(doc *format.Document) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, t := range doc.Tiers {
		add(t.Name)
	}
	for _, a := range doc.Annotations {
		add(a.Tier)
	}
	return names
}

// field quotes a tier name only when it needs it.
func field(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
