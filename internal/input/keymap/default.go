package keymap

// Default returns the built-in timeline bindings.
func Default() *Keymap {
	km := NewKeymap("default")
	km.Source = "default"
	for _, b := range defaultBindings {
		if err := km.AddBinding(b); err != nil {
			panic("keymap: bad default binding: " + err.Error())
		}
	}
	return km
}

var defaultBindings = []Binding{
	// Playback cursor
	{Keys: "Left", Action: "cursor.stepBackward", Description: "Seek back one step", Category: "Cursor"},
	{Keys: "Right", Action: "cursor.stepForward", Description: "Seek forward one step", Category: "Cursor"},
	{Keys: "Home", Action: "cursor.start", Description: "Seek to start", Category: "Cursor"},
	{Keys: "End", Action: "cursor.end", Description: "Seek to end", Category: "Cursor"},
	{Keys: "Ctrl+Left", Action: "cursor.previousBoundary", Description: "Previous annotation boundary", Category: "Cursor"},
	{Keys: "Ctrl+Right", Action: "cursor.nextBoundary", Description: "Next annotation boundary", Category: "Cursor"},

	// Selection
	{Keys: "Shift+Left", Action: "selection.growLeft", Description: "Move selection start earlier", Category: "Selection"},
	{Keys: "Shift+Right", Action: "selection.growRight", Description: "Move selection end later", Category: "Selection"},
	{Keys: "Alt+Shift+Left", Action: "selection.shrinkRight", Description: "Move selection end earlier", Category: "Selection"},
	{Keys: "Alt+Shift+Right", Action: "selection.shrinkLeft", Description: "Move selection start later", Category: "Selection"},
	{Keys: "Escape", Action: "selection.clear", Description: "Clear selection", Category: "Selection"},

	// View
	{Keys: "+", Action: "view.zoomIn", Description: "Zoom in", Category: "View"},
	{Keys: "=", Action: "view.zoomIn", Description: "Zoom in", Category: "View"},
	{Keys: "-", Action: "view.zoomOut", Description: "Zoom out", Category: "View"},
	{Keys: "0", Action: "view.zoomReset", Description: "Reset zoom", Category: "View"},
	{Keys: "z", Action: "view.zoomSelection", Description: "Zoom to selection", Category: "View"},
	{Keys: "PageUp", Action: "view.pageLeft", Description: "Scroll one page earlier", Category: "View"},
	{Keys: "PageDown", Action: "view.pageRight", Description: "Scroll one page later", Category: "View"},

	// Annotations
	{Keys: "Enter", Action: "annotation.create", Description: "Create annotation on active tier", Category: "Annotation"},
	{Keys: "Delete", Action: "annotation.delete", Description: "Delete selected annotation", Category: "Annotation"},
	{Keys: "Backspace", Action: "annotation.delete", Description: "Delete selected annotation", Category: "Annotation"},
	{Keys: "n", Action: "annotation.next", Description: "Select next annotation", Category: "Annotation"},
	{Keys: "p", Action: "annotation.previous", Description: "Select previous annotation", Category: "Annotation"},
	{Keys: "e", Action: "annotation.edit", Description: "Edit label of selected annotation", Category: "Annotation"},
	{Keys: "F2", Action: "annotation.edit", Description: "Edit label of selected annotation", Category: "Annotation"},
	{Keys: "Up", Action: "tier.previous", Description: "Previous tier", Category: "Annotation"},
	{Keys: "Down", Action: "tier.next", Description: "Next tier", Category: "Annotation"},

	// History
	{Keys: "Ctrl+Z", Action: "history.undo", Description: "Undo", Category: "History"},
	{Keys: "Ctrl+Shift+Z", Action: "history.redo", Description: "Redo", Category: "History"},
	{Keys: "Ctrl+Y", Action: "history.redo", Description: "Redo", Category: "History"},

	// File
	{Keys: "Ctrl+S", Action: "file.save", Description: "Save annotations", Category: "File"},
	{Keys: "Ctrl+Q", Action: "app.quit", Description: "Quit", Category: "File"},
}
