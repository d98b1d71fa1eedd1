// Package input turns key events into timeline actions.
//
// The Handler has two modes. In timeline mode every chord is looked up in
// the keymap and becomes an Action named after the binding. In label mode
// printable keys edit a label buffer; Enter yields an "annotation.setText"
// action carrying the buffer and Escape abandons the edit.
//
//	h := input.NewHandler(keymap.Default())
//	if action, ok := h.HandleKey(ev); ok {
//	    result := dispatcher.Dispatch(action)
//	    ...
//	}
package input
