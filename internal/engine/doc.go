// Package engine provides the annotation timeline engine for tierline.
//
// The Engine is the single context object every front end talks to. It
// combines the annotation store, undo history, playback cursor and view
// state into one thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - annotation: tiers, annotations and the store invariants
//   - history: generic snapshot undo/redo with an equality skip
//   - cursor: playback position, selection and boundary navigation
//
// View state lives in renderer/viewport and file formats in interchange.
//
// # Undo Scope
//
// Only the annotation list is undoable. Tier declarations, the timeline
// duration, zoom, scroll and the cursor are not recorded, so undo never
// moves the view or forgets a tier.
//
// # Thread Safety
//
// All Engine operations are thread-safe. A read-write mutex allows
// concurrent readers (renderers) while serializing mutations.
//
// # Basic Usage
//
//	e := engine.New()
//	e.Open(12.5)
//
//	a, err := e.CreateAnnotation("words", 1.0, 1.8, annotation.Interval)
//	if err != nil {
//	    return err
//	}
//	e.UpdateAnnotation(a.ID, annotation.SetText("hello"))
//	e.Undo()
//
//	out, err := e.Export(format.TextGrid)
package engine
