// Package format defines the shared model for annotation file adapters.
//
// Every reader parses a complete file into a standalone Document before
// anything touches the annotation store, so a malformed file never leaves
// partial state behind. Writers consume the same Document shape built from
// the store.
//
// The concrete grammars live in subpackages:
//
//   - textgrid: Praat TextGrid, long and short text forms (read and write)
//   - eaf: ELAN annotation documents (read only)
//   - jsonfmt: the tool's own JSON schema (read and write)
//   - csvfmt: tier,start,end,text rows (write only)
//
// Detect picks a Kind from a filename and the decoded content. Decode turns
// raw file bytes into text, handling byte order marks and legacy 8-bit
// encodings.
package format
