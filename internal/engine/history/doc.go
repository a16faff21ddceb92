// Package history is the host's undo stack. It records the buffer.Change
// values a buffer reports and replays their inverses, so batch edits made
// by the cursor engine undo like any other typing.
//
//	h := NewHistory(1000)
//	buf := buffer.NewBufferFromString(text, buffer.WithChangeFunc(h.Record))
//
//	defer h.Group("paste")()
//	// ... edits that should undo together ...
//
//	caret, err := h.Undo(buf)
package history
