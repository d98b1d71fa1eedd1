// Package jsonfmt reads and writes the JSON interchange schema:
//
//	{
//	  "duration": 1.5,
//	  "tiers": [{"name": "words", "type": "interval"}],
//	  "annotations": [
//	    {"id": "…", "tier": "words", "start": 0.2, "end": 0.8, "text": "hello", "type": "interval"}
//	  ]
//	}
//
// The reader also accepts files that nest annotations under their tier
// and files that spell the type key "tier_type".
package jsonfmt

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

type fileJSON struct {
	Duration    float64           `json:"duration"`
	Tiers       []annotation.Tier `json:"tiers"`
	Annotations []annotationJSON  `json:"annotations"`
}

type annotationJSON struct {
	ID    string          `json:"id"`
	Tier  string          `json:"tier"`
	Start float64         `json:"start"`
	End   float64         `json:"end"`
	Text  string          `json:"text"`
	Type  annotation.Type `json:"type"`
}

var prettyOptions = &pretty.Options{Width: 100, Indent: "  "}

// Marshal renders doc as indented JSON.
func Marshal(doc *format.Document) ([]byte, error) {
	out := fileJSON{
		Duration:    doc.Duration,
		Tiers:       doc.Tiers,
		Annotations: make([]annotationJSON, 0, len(doc.Annotations)),
	}
	if out.Tiers == nil {
		out.Tiers = []annotation.Tier{}
	}
	for _, a := range doc.Annotations {
		out.Annotations = append(out.Annotations, annotationJSON(a))
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return pretty.PrettyOptions(raw, prettyOptions), nil
}

// Parse reads a JSON annotation file.
func Parse(content string) (*format.Document, error) {
	if !gjson.Valid(content) {
		return nil, &format.ParseError{Format: format.JSON, Message: "invalid JSON"}
	}
	root := gjson.Parse(content)
	if !root.IsObject() {
		return nil, &format.ParseError{Format: format.JSON, Message: "top level must be an object"}
	}

	doc := &format.Document{Duration: root.Get("duration").Float()}

	tiers := root.Get("tiers")
	if tiers.Exists() && !tiers.IsArray() {
		return nil, &format.ParseError{Format: format.JSON, Element: "tiers", Message: "must be an array"}
	}
	for i, t := range tiers.Array() {
		where := fmt.Sprintf("tiers.%d", i)
		name := t.Get("name").String()
		if name == "" {
			return nil, &format.ParseError{Format: format.JSON, Element: where, Message: "tier has no name"}
		}
		typ, err := typeOf(t, where)
		if err != nil {
			return nil, err
		}
		doc.DeclareTier(name, typ)

		for j, a := range t.Get("annotations").Array() {
			d, err := draft(a, fmt.Sprintf("%s.annotations.%d", where, j), name, typ)
			if err != nil {
				return nil, err
			}
			doc.Annotations = append(doc.Annotations, d)
		}
	}

	list := root.Get("annotations")
	if list.Exists() && !list.IsArray() {
		return nil, &format.ParseError{Format: format.JSON, Element: "annotations", Message: "must be an array"}
	}
	for i, a := range list.Array() {
		d, err := draft(a, fmt.Sprintf("annotations.%d", i), "", annotation.Interval)
		if err != nil {
			return nil, err
		}
		doc.Annotations = append(doc.Annotations, d)
	}
	return doc, nil
}

// draft converts one annotation object. tier and typ are the defaults
// inherited from an enclosing tier object.
func draft(a gjson.Result, where, tier string, typ annotation.Type) (annotation.Draft, error) {
	if !a.IsObject() {
		return annotation.Draft{}, &format.ParseError{Format: format.JSON, Element: where, Message: "annotation must be an object"}
	}
	if t := a.Get("tier").String(); t != "" {
		tier = t
	}
	if tier == "" {
		return annotation.Draft{}, &format.ParseError{Format: format.JSON, Element: where, Message: "annotation has no tier"}
	}
	start, end := a.Get("start"), a.Get("end")
	if start.Type != gjson.Number {
		return annotation.Draft{}, &format.ParseError{Format: format.JSON, Element: where, Message: "start must be a number"}
	}
	if !end.Exists() {
		end = start
	} else if end.Type != gjson.Number {
		return annotation.Draft{}, &format.ParseError{Format: format.JSON, Element: where, Message: "end must be a number"}
	}
	if a.Get("type").Exists() || a.Get("tier_type").Exists() {
		var err error
		if typ, err = typeOf(a, where); err != nil {
			return annotation.Draft{}, err
		}
	}
	return annotation.Draft{
		ID:    a.Get("id").String(),
		Tier:  tier,
		Start: start.Float(),
		End:   end.Float(),
		Text:  a.Get("text").String(),
		Type:  typ,
	}, nil
}

func typeOf(obj gjson.Result, where string) (annotation.Type, error) {
	v := obj.Get("type")
	if !v.Exists() {
		v = obj.Get("tier_type")
	}
	typ, err := annotation.ParseType(v.String())
	if err != nil {
		return typ, &format.ParseError{Format: format.JSON, Element: where, Message: err.Error()}
	}
	return typ, nil
}
