package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNilSession is returned when no session is given.
	ErrNilSession = errors.New("nil session")

	// ErrCursorExists is reported when a cursor already covers the range.
	ErrCursorExists = errors.New("cursor already exists")

	// ErrLastCursor is reported when removing the only cursor.
	ErrLastCursor = errors.New("cannot remove the last cursor")
)
