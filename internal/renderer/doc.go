// Package renderer paints the annotation timeline in a terminal.
//
// Layout, top to bottom:
//
//	┌──────────────┬──────────────────────────────────────────┐
//	│ title [+]      duration  zoom  visible range            │  header
//	│ time         │┬0.5      ┬1.0  ▼   ┬1.5                  │  ruler
//	│ ▶ words      │▏hello    ▏world│                         │  tier rows
//	│   tones      │     ◆H*        │                         │
//	│ TIMELINE  t=1.250s  sel ...                      message│  status
//	└──────────────┴──────────────────────────────────────────┘
//
// One terminal column is one timeline pixel, so the engine's viewport
// width is the terminal width minus the tier name gutter. Time-to-column
// conversion goes through viewport.Mapper, the same mapping every other
// view of the timeline uses.
//
// The renderer reads state through the Source interface and draws to a
// backend.Backend: backend.Terminal in the editor, backend.NullBackend in
// tests.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	eng.Resize(float64(r.TimelineWidth()))
//	r.Render(eng, renderer.Status{Title: "a.TextGrid", Mode: "timeline"})
package renderer
