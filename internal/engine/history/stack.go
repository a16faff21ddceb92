package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/multicaret/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo depth used when none is given.
const DefaultMaxEntries = 1000

// undoEntry is one undo unit: the changes in the order they were applied.
type undoEntry struct {
	name      string
	changes   []buffer.Change
	timestamp time.Time
}

// History records buffer changes and replays their inverses.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping  bool
	groupName string
	group     []buffer.Change

	// set while Undo or Redo edit the buffer
	applying bool

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record adds a change. Outside a group it is its own undo unit. Changes
// made by Undo and Redo themselves are ignored. Record clears the redo
// stack.
func (h *History) Record(c buffer.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.applying {
		return
	}
	if h.grouping {
		h.group = append(h.group, c)
		return
	}
	h.pushLocked("", []buffer.Change{c})
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(name string, changes []buffer.Change) {
	h.undoStack = append(h.undoStack, &undoEntry{
		name:      name,
		changes:   changes,
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last undo unit in t and returns where the caret
// belongs afterwards.
func (h *History) Undo(t buffer.Text) (buffer.Offset, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	caret := h.apply(t, func(yield func(buffer.Change)) {
		for i := len(entry.changes) - 1; i >= 0; i-- {
			yield(entry.changes[i].Invert())
		}
	})

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	return caret, nil
}

// Redo reapplies the last undone unit in t and returns where the caret
// belongs afterwards.
func (h *History) Redo(t buffer.Text) (buffer.Offset, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	caret := h.apply(t, func(yield func(buffer.Change)) {
		for _, c := range entry.changes {
			yield(c)
		}
	})

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	return caret, nil
}

// apply replays changes in one redraw scope. The caret lands after the
// last replacement.
func (h *History) apply(t buffer.Text, changes func(yield func(buffer.Change))) buffer.Offset {
	h.mu.Lock()
	h.applying = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.applying = false
		h.mu.Unlock()
	}()

	var caret buffer.Offset
	buffer.Batch(t, func() {
		changes(func(c buffer.Change) {
			t.ReplaceRange(c.Range.Start, c.Range.End, c.NewText)
			caret = c.NewRange().End
		})
	})
	t.RequestRedraw()
	return caret
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts a group. Changes recorded until EndGroup undo together.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}
	h.grouping = true
	h.groupName = name
	h.group = nil
}

// EndGroup closes the group. An empty group adds nothing.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	if len(h.group) > 0 {
		h.pushLocked(h.groupName, h.group)
	}
	h.group = nil
}

// Group begins a group and returns the function that ends it:
//
//	defer h.Group("paste")()
func (h *History) Group(name string) (end func()) {
	h.BeginGroup(name)
	return h.EndGroup
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// PeekUndo returns the name and size of the next undo unit.
func (h *History) PeekUndo() (name string, changes int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return "", 0, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	return e.name, len(e.changes), true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.group = nil
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
