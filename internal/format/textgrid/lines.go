package textgrid

import (
	"strconv"
	"strings"

	"github.com/dshills/tierline/internal/format"
)

// lineReader walks the file one trimmed line at a time, skipping blank
// lines and keeping 1-based line numbers for errors.
type lineReader struct {
	lines []string
	pos   int
}

func newLineReader(content string) *lineReader {
	return &lineReader{lines: strings.Split(content, "\n")}
}

// skipBlank advances past empty lines.
func (r *lineReader) skipBlank() {
	for r.pos < len(r.lines) && strings.TrimSpace(r.lines[r.pos]) == "" {
		r.pos++
	}
}

// peek returns the next non-blank line without consuming it.
func (r *lineReader) peek() (string, int, bool) {
	r.skipBlank()
	if r.pos >= len(r.lines) {
		return "", len(r.lines), false
	}
	return strings.TrimSpace(r.lines[r.pos]), r.pos + 1, true
}

// next consumes the next non-blank line.
func (r *lineReader) next() (string, int, bool) {
	line, n, ok := r.peek()
	if ok {
		r.pos++
	}
	return line, n, ok
}

// line returns the 1-based number of the line most recently consumed.
func (r *lineReader) line() int {
	return r.pos
}

// skipHeader consumes lines up to and including the one naming the
// TextGrid object class.
func (r *lineReader) skipHeader() error {
	for {
		line, _, ok := r.next()
		if !ok {
			return &format.ParseError{Format: format.TextGrid, Message: `missing "TextGrid" object class`}
		}
		if isClassMarker(line) {
			return nil
		}
	}
}

func isClassMarker(line string) bool {
	if line == `"TextGrid"` {
		return true
	}
	key, value, ok := splitKeyValue(line)
	return ok && key == "Object class" && value == `"TextGrid"`
}

func (r *lineReader) truncated(what string) error {
	return format.Errorf(format.TextGrid, len(r.lines), "file ends inside %s", what)
}

// readQuoted consumes a quoted string that begins in first and may
// continue over following raw lines. Praat escapes a quote by doubling it.
func (r *lineReader) readQuoted(first string, line int) (string, error) {
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, `"`) {
		return "", format.Errorf(format.TextGrid, line, "expected quoted text, got %q", first)
	}
	var b strings.Builder
	rest := first[1:]
	for {
		if closed := scanQuoted(rest, &b); closed {
			return b.String(), nil
		}
		if r.pos >= len(r.lines) {
			return "", format.Errorf(format.TextGrid, line, "unterminated text")
		}
		b.WriteByte('\n')
		rest = r.lines[r.pos]
		r.pos++
	}
}

// scanQuoted copies s into b up to the closing quote. It reports false when
// s ends before the string does.
func scanQuoted(s string, b *strings.Builder) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '"' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		return true
	}
	return false
}

// splitKeyValue splits "key = value". Keys may contain spaces and colons
// ("intervals: size").
func splitKeyValue(line string) (key, value string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func parseNumber(s string, line int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &format.ParseError{Format: format.TextGrid, Line: line, Message: "invalid number " + strconv.Quote(s), Err: err}
	}
	return v, nil
}

func parseCount(s string, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, &format.ParseError{Format: format.TextGrid, Line: line, Message: "invalid count " + strconv.Quote(s), Err: err}
	}
	return n, nil
}

// unquote strips surrounding quotes from a single-line value and undoes
// doubled quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}
