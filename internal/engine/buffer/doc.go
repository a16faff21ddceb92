// Package buffer defines the contract between the multi-cursor engine and the
// text widget that owns the document, and ships an in-memory implementation
// of that contract.
//
// The engine never stores text. Everything it knows about the document comes
// through the Text interface:
//
//   - Length and range reads (Len, ReadRange)
//   - Range replacement (ReplaceRange)
//   - Line/offset conversion (LineFromOffset, LineStartOffset, LineLength, LineCount)
//   - The host's single visible selection (NativeSelection, SetNativeSelection)
//   - A redraw-suppressed batch scope (BeginBatch, EndBatch, RequestRedraw)
//
// Offsets are byte offsets into UTF-8 text. Line numbers are 0-indexed.
//
// Batch scopes nest. A caller that edits several ranges in one logical step
// wraps the edits with Batch, which guarantees EndBatch runs even when an
// edit panics, and then asks for a single redraw:
//
//	buffer.Batch(text, func() {
//	    text.ReplaceRange(10, 12, "x")
//	    text.ReplaceRange(3, 3, "y")
//	})
//	text.RequestRedraw()
//
// Buffer is the reference implementation. It keeps the document in memory,
// normalizes line endings to LF on load, and counts redraws so tests can
// assert that a batch produced exactly one.
//
// Thread Safety:
//
// Text implementations are owned by the UI goroutine. Buffer performs no
// locking; callers that touch it from other goroutines must synchronize
// around whole batches.
package buffer
