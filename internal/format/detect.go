package format

import (
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	textGridMarker = `Object class = "TextGrid"`
	praatMarker    = "ooTextFile"
	elanMarker     = "ANNOTATION_DOCUMENT"
)

// Detect picks a reader for a file. The extension is tried first, then
// the content is sniffed for format markers.
func Detect(filename, content string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".textgrid":
		return TextGrid, nil
	case ".eaf", ".xml":
		if strings.Contains(content, elanMarker) {
			return EAF, nil
		}
	case ".json":
		return JSON, nil
	}

	switch {
	case strings.Contains(content, praatMarker), strings.Contains(content, textGridMarker):
		return TextGrid, nil
	case strings.Contains(content, elanMarker):
		return EAF, nil
	case looksLikeJSON(content):
		return JSON, nil
	}
	return "", &UnsupportedFormatError{Filename: filename}
}

func looksLikeJSON(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return false
	}
	r := gjson.Parse(trimmed)
	return r.Get("annotations").IsArray() || r.Get("tiers").IsArray()
}
