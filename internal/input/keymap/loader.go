package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding names a keymap file syntax.
type Encoding string

const (
	EncodingTOML Encoding = "toml"
	EncodingYAML Encoding = "yaml"
	EncodingJSON Encoding = "json"
)

// ErrUnknownEncoding is returned for keymap files with an unrecognised
// extension.
var ErrUnknownEncoding = errors.New("unknown keymap file encoding")

// EncodingForPath picks the encoding from a file extension.
func EncodingForPath(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return EncodingTOML, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	case ".json":
		return EncodingJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEncoding, path)
}

// file is the on-disk layout shared by all encodings.
type file struct {
	Name     string    `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Bindings []Binding `json:"bindings" toml:"bindings" yaml:"bindings"`
}

// LoadFile reads a keymap file.
func LoadFile(path string) (*Keymap, error) {
	enc, err := EncodingForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	km, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	km.Source = path
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return km, nil
}

// Decode parses keymap content. Every chord is validated.
func Decode(data []byte, enc Encoding) (*Keymap, error) {
	var f file
	var err error
	switch enc {
	case EncodingTOML:
		err = toml.Unmarshal(data, &f)
	case EncodingYAML:
		err = yaml.Unmarshal(data, &f)
	case EncodingJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return FromBindings(f.Name, f.Bindings)
}

// FromBindings builds a keymap from a list, failing on the first invalid
// binding.
func FromBindings(name string, bindings []Binding) (*Keymap, error) {
	km := NewKeymap(name)
	for i, b := range bindings {
		if err := km.AddBinding(b); err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return km, nil
}

// Encode renders the keymap in the given syntax.
func (k *Keymap) Encode(enc Encoding) ([]byte, error) {
	f := file{Name: k.Name, Bindings: k.Bindings()}
	switch enc {
	case EncodingTOML:
		return toml.Marshal(f)
	case EncodingYAML:
		return yaml.Marshal(f)
	case EncodingJSON:
		return json.MarshalIndent(f, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
}

// SaveFile writes the keymap, choosing the encoding from the extension.
func (k *Keymap) SaveFile(path string) error {
	enc, err := EncodingForPath(path)
	if err != nil {
		return err
	}
	data, err := k.Encode(enc)
	if err != nil {
		return fmt.Errorf("encoding keymap: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}
