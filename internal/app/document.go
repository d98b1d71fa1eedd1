package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/format"
)

// Document is the annotation file a session edits.
type Document struct {
	// Source is the file that was opened. It is empty for a new file.
	Source string

	// Path is where saves are written. It differs from Source when the
	// opened format has no writer, for example ELAN files.
	Path string

	// Name is the display name.
	Name string

	// Format is the format saves are written in.
	Format format.Kind

	// Warnings lists lossy conversions reported while loading.
	Warnings []string
}

// OpenDocument loads path into e. A path that does not exist opens an
// empty timeline of the given duration; the file is created on the first
// save. fallback is the save format used when the path's extension does
// not name a writable format.
func OpenDocument(e *engine.Engine, path string, duration float64, fallback format.Kind) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	doc := &Document{Path: abs, Format: fallback}

	raw, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		e.Open(duration)
	case err != nil:
		return nil, &FileError{Op: "open", Path: abs, Err: err}
	default:
		res, err := e.Load(raw, abs, duration)
		if err != nil {
			return nil, &FileError{Op: "open", Path: abs, Err: err}
		}
		doc.Source = abs
		doc.Warnings = res.Warnings
		if res.Format.CanWrite() {
			doc.Format = res.Format
		}
	}

	if doc.Source == "" {
		if kind, ok := format.KindForPath(abs); ok {
			doc.Format = kind
		}
	}
	if ext := filepath.Ext(abs); !strings.EqualFold(ext, doc.Format.Extension()) {
		doc.Path = strings.TrimSuffix(abs, ext) + doc.Format.Extension()
	}
	doc.Name = filepath.Base(doc.Path)
	return doc, nil
}

// Merge imports another annotation file into the open timeline. Tiers the
// timeline already declares are kept, and the merge is one undo step.
func (d *Document) Merge(e *engine.Engine, path string) (engine.ImportResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return engine.ImportResult{}, &FileError{Op: "import", Path: path, Err: err}
	}
	res, err := e.Import(raw, path)
	if err != nil {
		return res, &FileError{Op: "import", Path: path, Err: err}
	}
	d.Warnings = append(d.Warnings, res.Warnings...)
	return res, nil
}

// Save writes the timeline to the document path and marks it saved.
func (d *Document) Save(e *engine.Engine) error {
	if d.Path == "" {
		return ErrNoFilePath
	}
	data, err := e.Export(d.Format)
	if err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := writeFileAtomic(d.Path, data); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	e.MarkSaved()
	return nil
}

// writeFileAtomic replaces path through a temporary file in the same
// directory, so a failed write never truncates the previous version.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
