package format

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file bytes to text.
//
// A UTF-8 or UTF-16 byte order mark selects that encoding and is removed.
// Without a mark, valid UTF-8 is used as is and anything else is read as
// Windows-1252, which is a superset of Latin-1 for printable text. Line
// endings are normalized to "\n".
func Decode(raw []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		out, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return "", err
		}
	}
	return normalizeNewlines(string(out)), nil
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
