package buffer

// Text is the host text widget as seen by the engine.
//
// ReplaceRange is synchronous. Offsets passed to it are valid in the
// document as it stands at the moment of the call.
type Text interface {
	// Len returns the document length in bytes.
	Len() int

	// ReadRange returns the text in [start, end).
	ReadRange(start, end Offset) string

	// ReplaceRange replaces [start, end) with text.
	ReplaceRange(start, end Offset, text string)

	// LineFromOffset returns the line containing offset.
	LineFromOffset(offset Offset) int

	// LineStartOffset returns the offset of the first byte of line.
	LineStartOffset(line int) Offset

	// LineLength returns the length, excluding the line terminator, of the
	// line that starts at startOffset.
	LineLength(startOffset Offset) int

	// LineCount returns the number of lines. An empty document has one line.
	LineCount() int

	// NativeSelection returns the host's own caret/selection.
	NativeSelection() (start, end Offset)

	// SetNativeSelection moves the host's own caret/selection.
	SetNativeSelection(start, end Offset)

	// BeginBatch suppresses redraws and change notifications until the
	// matching EndBatch. Calls nest.
	BeginBatch()

	// EndBatch closes the innermost batch scope.
	EndBatch()

	// RequestRedraw asks the host to repaint. Inside a batch the request is
	// deferred until the next request made outside any batch.
	RequestRedraw()
}

// Batch runs fn inside a BeginBatch/EndBatch scope.
// EndBatch is called even if fn panics.
func Batch(t Text, fn func()) {
	t.BeginBatch()
	defer t.EndBatch()
	fn()
}

// LineEnd returns the offset just past the last byte of line, excluding the
// line terminator.
func LineEnd(t Text, line int) Offset {
	start := t.LineStartOffset(line)
	return start + t.LineLength(start)
}

// LineText returns the content of line without its terminator.
func LineText(t Text, line int) string {
	start := t.LineStartOffset(line)
	return t.ReadRange(start, start+t.LineLength(start))
}
