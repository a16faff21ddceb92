package engine

import (
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// Motion is a caret movement applied to every cursor.
type Motion int

const (
	MoveLeft Motion = iota
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
)

var motionNames = [...]string{"left", "right", "up", "down", "home", "end"}

// String returns the name of the motion.
func (m Motion) String() string {
	if m < 0 || int(m) >= len(motionNames) {
		return "unknown"
	}
	return motionNames[m]
}

// MoveCursors moves every cursor by m and collapses selections.
//
// Left and Right step over one grapheme cluster; a selection collapses to
// its start or end instead of moving. Up and Down keep the rune column,
// clamped to the target line. Cursors that meet are merged.
func MoveCursors(set *cursor.Set, text buffer.Text, m Motion) error {
	if set == nil {
		return ErrNilCursorSet
	}
	if text == nil {
		return ErrNilBuffer
	}

	set.EndColumn()
	for i := 0; i < set.Len(); i++ {
		c, _ := set.At(i)
		set.Update(i, cursor.Caret(moveOne(text, c, m)))
	}
	set.Sort()
	set.MergeDuplicates()
	syncNative(set, text)
	text.RequestRedraw()
	return nil
}

func moveOne(text buffer.Text, c cursor.Cursor, m Motion) buffer.Offset {
	pos := c.Position
	switch m {
	case MoveLeft:
		if c.HasSelection() {
			return c.SelectionStart
		}
		return prevBoundary(text, pos)
	case MoveRight:
		if c.HasSelection() {
			return c.SelectionEnd
		}
		return nextBoundary(text, pos)
	case MoveUp, MoveDown:
		line := text.LineFromOffset(pos)
		target := line - 1
		if m == MoveDown {
			target = line + 1
		}
		switch {
		case target < 0:
			return 0
		case target >= text.LineCount():
			return text.Len()
		}
		return offsetAtColumn(text, target, columnOf(text, pos))
	case MoveHome:
		return text.LineStartOffset(text.LineFromOffset(pos))
	case MoveEnd:
		return buffer.LineEnd(text, text.LineFromOffset(pos))
	}
	return pos
}

// AddCursorVertical adds a caret on the line above (up) or below the
// outermost cursor in that direction, at the primary cursor's rune column.
func AddCursorVertical(set *cursor.Set, text buffer.Text, up bool) (cursor.Cursor, error) {
	if set == nil {
		return cursor.Cursor{}, ErrNilCursorSet
	}
	if text == nil {
		return cursor.Cursor{}, ErrNilBuffer
	}
	if set.Full() {
		return cursor.Cursor{}, ErrCursorLimit
	}

	edge, _ := set.At(set.Len() - 1)
	target := text.LineFromOffset(edge.Position) + 1
	if up {
		edge, _ = set.At(0)
		target = text.LineFromOffset(edge.EffectivePos()) - 1
	}
	if target < 0 || target >= text.LineCount() {
		return cursor.Cursor{}, ErrNoLine
	}

	pos := offsetAtColumn(text, target, columnOf(text, set.Primary().Position))
	if !set.Add(pos) {
		return cursor.Cursor{}, ErrCursorLimit
	}
	text.RequestRedraw()
	return cursor.Caret(pos), nil
}
