// Package engine implements multi-cursor editing over a host text buffer.
//
// The engine never stores text. It works on a cursor.Set and reaches the
// document only through the buffer.Text interface, so any widget that can
// read, replace and answer line queries can host it.
//
// # Operations
//
//   - ApplyReplace, ApplyReplaceEach and ApplyDelete edit at every cursor in
//     a single batch
//   - Occurrences.SelectNext and SelectAll grow the set by matching the
//     primary selection's text
//   - ApplyColumnSelect builds the set from a rectangle
//   - MoveCursors and AddCursorVertical move or add carets
//
// Session bundles a set, a document, the configured Limits and a logger and
// is what hosts normally hold on to.
//
// # Basic Usage
//
//	buf := buffer.NewBufferFromString("foo bar foo baz foo")
//	s, _ := engine.NewSession(buf)
//
//	s.SelectNext() // selects the first "foo"
//	s.SelectNext() // adds the second
//	s.SelectNext() // adds the third
//	_, err := s.SelectNext()
//	// errors.Is(err, engine.ErrAllSelected)
//
//	s.Type("qux") // "qux bar qux baz qux"
//
// # Batch Edits
//
// A batch edit visits cursors in ascending order. Every cursor still holds
// the offsets it had before the batch; a running offset built from the
// length change of each edit so far translates it into the document as it
// is when its own edit is applied. The host sees one ReplaceRange per
// cursor inside one BeginBatch/EndBatch scope followed by a single redraw,
// so its undo stack records ordinary edits.
//
// # Errors
//
// Failed gestures return sentinel errors such as ErrNoWord, ErrAllSelected
// or ErrCursorLimit and leave the cursor set unchanged. ErrNilCursorSet and
// ErrNilBuffer report a missing argument.
//
// # Thread Safety
//
// Nothing in this package is thread-safe. A session belongs to the
// goroutine that handles input for its document.
package engine
