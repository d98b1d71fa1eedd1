package format

import (
	"path/filepath"
	"strings"
)

// Kind identifies an interchange format.
type Kind string

// Known formats.
const (
	// TextGrid is Praat's long text form. On read it also covers the short form.
	TextGrid Kind = "textgrid"
	// TextGridShort is Praat's positional short text form.
	TextGridShort Kind = "textgrid-short"
	// EAF is the ELAN annotation format.
	EAF Kind = "eaf"
	// JSON is the tool's own JSON schema.
	JSON Kind = "json"
	// CSV is tier,start,end,text rows.
	CSV Kind = "csv"
)

// Kinds lists every known format in display order.
func Kinds() []Kind {
	return []Kind{TextGrid, TextGridShort, EAF, JSON, CSV}
}

// ParseKind converts a user-supplied name to a Kind. Matching ignores case
// and accepts a few common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "textgrid", "textgrid-long", "long", "tg":
		return TextGrid, nil
	case "textgrid-short", "short":
		return TextGridShort, nil
	case "eaf", "elan":
		return EAF, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	default:
		return "", &UnsupportedFormatError{Name: s}
	}
}

// String returns the canonical name.
func (k Kind) String() string {
	return string(k)
}

// Extension returns the conventional file extension including the dot.
func (k Kind) Extension() string {
	switch k {
	case TextGrid, TextGridShort:
		return ".TextGrid"
	case EAF:
		return ".eaf"
	case JSON:
		return ".json"
	case CSV:
		return ".csv"
	default:
		return ""
	}
}

// CanRead returns true if the format has a reader.
func (k Kind) CanRead() bool {
	switch k {
	case TextGrid, TextGridShort, EAF, JSON:
		return true
	default:
		return false
	}
}

// CanWrite returns true if the format has a writer.
func (k Kind) CanWrite() bool {
	switch k {
	case TextGrid, TextGridShort, JSON, CSV:
		return true
	default:
		return false
	}
}

// KindForPath guesses a writable Kind from an output path extension.
func KindForPath(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".textgrid":
		return TextGrid, true
	case ".json":
		return JSON, true
	case ".csv":
		return CSV, true
	default:
		return "", false
	}
}
