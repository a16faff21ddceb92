package engine

import "errors"

// Errors returned by engine operations.
//
// Apart from ErrNilCursorSet and ErrNilBuffer these are ordinary outcomes
// of a gesture, not faults: the cursor set is left exactly as it was and
// callers decide whether to tell the user.
var (
	// ErrNilCursorSet indicates an operation was given no cursor set.
	ErrNilCursorSet = errors.New("nil cursor set")

	// ErrNilBuffer indicates an operation was given no text buffer.
	ErrNilBuffer = errors.New("nil text buffer")

	// ErrNotActive indicates a multi-cursor edit was requested with a single cursor.
	ErrNotActive = errors.New("multi-cursor mode not active")

	// ErrTextCount indicates per-cursor texts do not match the cursor count.
	ErrTextCount = errors.New("text count does not match cursor count")

	// ErrNoWord indicates there is no word under or next to the caret.
	ErrNoWord = errors.New("no word at cursor")

	// ErrPatternEmpty indicates the search pattern is empty.
	ErrPatternEmpty = errors.New("search pattern is empty")

	// ErrPatternTooLong indicates the search pattern exceeds the length limit.
	ErrPatternTooLong = errors.New("search pattern too long")

	// ErrNoOccurrence indicates the pattern does not occur in the document.
	ErrNoOccurrence = errors.New("no occurrence found")

	// ErrAllSelected indicates every occurrence already has a cursor.
	ErrAllSelected = errors.New("all occurrences already selected")

	// ErrCursorLimit indicates the cursor limit has been reached.
	ErrCursorLimit = errors.New("cursor limit reached")

	// ErrNoLine indicates there is no line above or below to place a cursor on.
	ErrNoLine = errors.New("no line in that direction")
)
