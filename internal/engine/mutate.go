package engine

import (
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// Direction selects which side of a caret a deletion removes.
type Direction int

const (
	// Backward deletes the grapheme before the caret (Backspace).
	Backward Direction = iota
	// Forward deletes the grapheme after the caret (Delete).
	Forward
)

// String returns the key name of the direction.
func (d Direction) String() string {
	if d == Forward {
		return "delete"
	}
	return "backspace"
}

// editFunc maps a cursor's live range to the range to replace and the text
// to insert there. Returning skip leaves that cursor untouched.
type editFunc func(i int, live buffer.Range) (target buffer.Range, text string, skip bool)

// ApplyReplace replaces every cursor's selection, or inserts at every caret,
// with newText in one batch. Every cursor ends up as a caret just after its
// inserted text. An empty newText deletes the selections.
//
// With a single cursor nothing happens and ErrNotActive is returned: the
// host's own editing handles that case.
func ApplyReplace(set *cursor.Set, text buffer.Text, newText string) error {
	return applyEach(set, text, func(_ int, live buffer.Range) (buffer.Range, string, bool) {
		return live, newText, false
	})
}

// ApplyReplaceEach is ApplyReplace with a different text per cursor:
// cursor i receives texts[i]. The slice length must match the cursor count.
func ApplyReplaceEach(set *cursor.Set, text buffer.Text, texts []string) error {
	if set != nil && len(texts) != set.Len() {
		return ErrTextCount
	}
	return applyEach(set, text, func(i int, live buffer.Range) (buffer.Range, string, bool) {
		return live, texts[i], false
	})
}

// ApplyDelete performs Backspace or Delete at every cursor. Cursors with a
// selection lose the selected text. Carets lose one grapheme cluster; a caret
// at the start (Backspace) or end (Delete) of the document is skipped.
func ApplyDelete(set *cursor.Set, text buffer.Text, dir Direction) error {
	return applyEach(set, text, func(_ int, live buffer.Range) (buffer.Range, string, bool) {
		if !live.IsEmpty() {
			return live, "", false
		}
		pos := live.Start
		if dir == Backward {
			if pos <= 0 {
				return live, "", true
			}
			return buffer.Range{Start: prevBoundary(text, pos), End: pos}, "", false
		}
		if pos >= text.Len() {
			return live, "", true
		}
		return buffer.Range{Start: pos, End: nextBoundary(text, pos)}, "", false
	})
}

// applyEach is the batch mutator. Cursors are visited in ascending order
// holding pre-batch offsets; offset accumulates the length change of every
// edit made so far and translates the next cursor into the coordinates the
// document has at the moment its edit is applied.
func applyEach(set *cursor.Set, text buffer.Text, fn editFunc) error {
	if set == nil {
		return ErrNilCursorSet
	}
	if text == nil {
		return ErrNilBuffer
	}
	if set.Len() <= 1 {
		return ErrNotActive
	}

	set.Sort()
	set.EndColumn()

	buffer.Batch(text, func() {
		offset := 0
		floor := 0
		for i := 0; i < set.Len(); i++ {
			c, _ := set.At(i)
			r := c.Range()

			live := buffer.Range{Start: r.Start + offset, End: r.End + offset}
			// Overlapping cursors never reach back into text an earlier
			// cursor already rewrote.
			live.Start = max(live.Start, floor)
			live.End = max(live.End, live.Start)
			live = live.Clamp(text.Len())

			target, newText, skip := fn(i, live)
			if skip {
				set.Update(i, cursor.Caret(live.Start))
				floor = live.Start
				continue
			}
			target.Start = max(target.Start, floor)
			target.End = max(target.End, target.Start)

			text.ReplaceRange(target.Start, target.End, newText)

			pos := target.Start + len(newText)
			set.Update(i, cursor.Caret(pos))
			floor = pos
			offset += len(newText) - target.Len()
		}
	})

	set.Sort()
	set.MergeDuplicates()
	text.RequestRedraw()
	syncNative(set, text)
	return nil
}

// syncNative mirrors the primary cursor into the host's own selection.
func syncNative(set *cursor.Set, text buffer.Text) {
	p := set.Primary()
	if p.HasSelection() {
		text.SetNativeSelection(p.SelectionStart, p.SelectionEnd)
		return
	}
	text.SetNativeSelection(p.Position, p.Position)
}

// SyncPrimaryFromNative copies the host's own caret or selection into the
// primary cursor.
func SyncPrimaryFromNative(set *cursor.Set, text buffer.Text) error {
	if set == nil {
		return ErrNilCursorSet
	}
	if text == nil {
		return ErrNilBuffer
	}
	start, end := text.NativeSelection()
	if start == end {
		set.SetPrimaryCursor(cursor.Caret(start))
	} else {
		set.SetPrimaryCursor(cursor.Selection(start, end))
	}
	return nil
}
