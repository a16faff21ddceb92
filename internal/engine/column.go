package engine

import (
	"unicode/utf8"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// ApplyColumnSelect replaces the cursor set with one cursor per line of the
// rectangle spanned by the two corners, and returns how many were created.
//
// Columns count runes and are clamped to each line's length, so short lines
// get a shorter selection or a caret at their end. The first cursor becomes
// primary. Lines beyond the cursor limit are dropped.
func ApplyColumnSelect(set *cursor.Set, text buffer.Text, startLine, startCol, endLine, endCol int) (int, error) {
	if set == nil {
		return 0, ErrNilCursorSet
	}
	if text == nil {
		return 0, ErrNilBuffer
	}

	region := cursor.ColumnRegion{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}
	loLine, hiLine, loCol, hiCol := region.Normalize()
	last := text.LineCount() - 1
	loLine = min(max(loLine, 0), last)
	hiLine = min(max(hiLine, 0), last)

	cursors := make([]cursor.Cursor, 0, min(hiLine-loLine+1, set.Max()))
	for line := loLine; line <= hiLine && len(cursors) < set.Max(); line++ {
		start := offsetAtColumn(text, line, loCol)
		end := offsetAtColumn(text, line, hiCol)
		if start == end {
			cursors = append(cursors, cursor.Caret(start))
		} else {
			cursors = append(cursors, cursor.Selection(start, end))
		}
	}

	set.Replace(cursors, 0)
	syncNative(set, text)
	text.RequestRedraw()
	return len(cursors), nil
}

// offsetAtColumn returns the offset of rune column col on line, clamped to
// the line end.
func offsetAtColumn(text buffer.Text, line, col int) buffer.Offset {
	s := buffer.LineText(text, line)
	start := text.LineStartOffset(line)
	i := 0
	for n := 0; n < col && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return start + i
}

// columnOf returns the rune column of pos within its line.
func columnOf(text buffer.Text, pos buffer.Offset) int {
	start := text.LineStartOffset(text.LineFromOffset(pos))
	return utf8.RuneCountInString(text.ReadRange(start, pos))
}
