package cursor

import (
	"fmt"

	"github.com/dshills/multicaret/internal/engine/buffer"
)

// Offset is an alias for buffer.Offset for convenience.
type Offset = buffer.Offset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Cursor is one caret or range selection.
//
// A selection always grows forward: SelectionStart <= SelectionEnd and
// Position == SelectionEnd. For a caret all three fields are equal.
type Cursor struct {
	Position       Offset
	SelectionStart Offset
	SelectionEnd   Offset
}

// Caret creates a cursor with no selection.
func Caret(pos Offset) Cursor {
	if pos < 0 {
		pos = 0
	}
	return Cursor{Position: pos, SelectionStart: pos, SelectionEnd: pos}
}

// Selection creates a cursor selecting [start, end). Reversed bounds are
// swapped; the caret sits at the end.
func Selection(start, end Offset) Cursor {
	r := buffer.NewRange(start, end)
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End < 0 {
		r.End = 0
	}
	return Cursor{Position: r.End, SelectionStart: r.Start, SelectionEnd: r.End}
}

// HasSelection returns true if the cursor selects at least one byte.
func (c Cursor) HasSelection() bool {
	return c.SelectionStart != c.SelectionEnd
}

// EffectivePos returns the sort key: the selection start for a selection,
// the caret otherwise.
func (c Cursor) EffectivePos() Offset {
	if c.HasSelection() {
		return c.SelectionStart
	}
	return c.Position
}

// Range returns the selected range, empty at the caret when there is none.
func (c Cursor) Range() Range {
	if !c.HasSelection() {
		return Range{Start: c.Position, End: c.Position}
	}
	return Range{Start: c.SelectionStart, End: c.SelectionEnd}
}

// Contains reports whether pos hits the cursor: inside the selection with
// both ends inclusive, or exactly on the caret.
func (c Cursor) Contains(pos Offset) bool {
	if c.HasSelection() {
		return c.Range().Contains(pos)
	}
	return c.Position == pos
}

// SameRange reports whether both cursors cover the exact same range.
func (c Cursor) SameRange(other Cursor) bool {
	return c.Range() == other.Range()
}

// Collapse returns a caret at the cursor's position.
func (c Cursor) Collapse() Cursor {
	return Caret(c.Position)
}

// Shift returns the cursor moved by delta bytes.
func (c Cursor) Shift(delta int) Cursor {
	return Cursor{
		Position:       c.Position + delta,
		SelectionStart: c.SelectionStart + delta,
		SelectionEnd:   c.SelectionEnd + delta,
	}
}

// Clamp returns the cursor with every offset limited to [0, max].
func (c Cursor) Clamp(max Offset) Cursor {
	r := c.Range().Clamp(max)
	if !c.HasSelection() {
		return Caret(r.Start)
	}
	return Selection(r.Start, r.End)
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	if c.HasSelection() {
		return fmt.Sprintf("Cursor[%d:%d)", c.SelectionStart, c.SelectionEnd)
	}
	return fmt.Sprintf("Cursor(%d)", c.Position)
}
