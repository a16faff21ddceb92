package cursor

import "github.com/dshills/multicaret/internal/engine/buffer"

// TransformOffset updates an offset after a change has been applied.
//
// Transformation rules:
//   - change entirely before offset: shift by the change's delta
//   - change starts at or after offset: unchanged
//   - change spans offset: move to the end of the new text
func TransformOffset(offset Offset, c buffer.Change) Offset {
	if c.Range.End <= offset {
		return offset + c.Delta()
	}
	if c.Range.Start >= offset {
		return offset
	}
	return c.Range.Start + len(c.NewText)
}

// Transform returns the cursor with its offsets updated after c.
func (cur Cursor) Transform(c buffer.Change) Cursor {
	if !cur.HasSelection() {
		return Caret(TransformOffset(cur.Position, c))
	}
	return Selection(TransformOffset(cur.SelectionStart, c), TransformOffset(cur.SelectionEnd, c))
}
