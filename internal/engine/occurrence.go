package engine

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// Occurrences grows a cursor set by matching the primary selection's text
// elsewhere in the document.
type Occurrences struct {
	// MaxPatternLength is the exclusive upper bound on the pattern length
	// in runes. Zero means DefaultMaxPatternLength.
	MaxPatternLength int

	// CaseSensitive disables case folding.
	CaseSensitive bool
}

// SelectNextOccurrence runs Occurrences.SelectNext with default settings.
func SelectNextOccurrence(set *cursor.Set, text buffer.Text) (cursor.Cursor, error) {
	return Occurrences{}.SelectNext(set, text)
}

// SelectAllOccurrences runs Occurrences.SelectAll with default settings.
func SelectAllOccurrences(set *cursor.Set, text buffer.Text) (int, error) {
	return Occurrences{}.SelectAll(set, text)
}

// SelectNext adds a selection cursor on the next occurrence of the primary
// selection's text and returns it.
//
// When the set holds a single caret the word under it is selected and the
// call stops there: the starting word is the first match. The search starts
// after the furthest selection end and wraps to the document start. A match
// that an existing cursor already covers yields ErrAllSelected. A failed
// call leaves the set as it found it.
func (o Occurrences) SelectNext(set *cursor.Set, text buffer.Text) (cursor.Cursor, error) {
	if set == nil {
		return cursor.Cursor{}, ErrNilCursorSet
	}
	if text == nil {
		return cursor.Cursor{}, ErrNilBuffer
	}

	primary := set.Primary()
	if !primary.HasSelection() {
		word, ok := WordAt(text, primary.Position)
		if !ok {
			return cursor.Cursor{}, ErrNoWord
		}
		if err := o.checkPattern(text.ReadRange(word.Start, word.End)); err != nil {
			return cursor.Cursor{}, err
		}
		sel := cursor.Selection(word.Start, word.End)
		if !set.Active() {
			set.SetPrimaryCursor(sel)
			set.SetLastPattern(text.ReadRange(word.Start, word.End))
			return sel, nil
		}

		orig, origPattern := primary, set.LastPattern()
		set.SetPrimaryCursor(sel)
		c, err := o.addNext(set, text, sel)
		if err != nil {
			set.SetPrimaryCursor(orig)
			set.SetLastPattern(origPattern)
		}
		return c, err
	}
	return o.addNext(set, text, primary)
}

// addNext searches for the text under primary and adds the match.
func (o Occurrences) addNext(set *cursor.Set, text buffer.Text, primary cursor.Cursor) (cursor.Cursor, error) {
	pattern := text.ReadRange(primary.SelectionStart, primary.SelectionEnd)
	set.SetLastPattern(pattern)
	if err := o.checkPattern(pattern); err != nil {
		return cursor.Cursor{}, err
	}

	found, ok := o.find(text, pattern, set.MaxSelectionEnd())
	if !ok {
		return cursor.Cursor{}, ErrNoOccurrence
	}
	if set.FindRange(found) >= 0 {
		return cursor.Cursor{}, ErrAllSelected
	}
	if !set.AddWithSelection(found.Start, found.End) {
		return cursor.Cursor{}, ErrCursorLimit
	}
	return cursor.Selection(found.Start, found.End), nil
}

// SelectAll repeats SelectNext until every occurrence is selected or the
// cursor limit is reached, and returns how many cursors were added.
func (o Occurrences) SelectAll(set *cursor.Set, text buffer.Text) (int, error) {
	added := 0
	for {
		before := set.Len()
		_, err := o.SelectNext(set, text)
		if err != nil {
			if added > 0 && (errors.Is(err, ErrAllSelected) || errors.Is(err, ErrNoOccurrence)) {
				return added, nil
			}
			return added, err
		}
		added += set.Len() - before
	}
}

func (o Occurrences) checkPattern(p string) error {
	if p == "" {
		return ErrPatternEmpty
	}
	limit := o.MaxPatternLength
	if limit <= 0 {
		limit = DefaultMaxPatternLength
	}
	if utf8.RuneCountInString(p) >= limit {
		return ErrPatternTooLong
	}
	return nil
}

// find looks for pattern at or after from, then wraps to the start.
func (o Occurrences) find(text buffer.Text, pattern string, from buffer.Offset) (buffer.Range, bool) {
	doc := text.ReadRange(0, text.Len())
	from = min(max(from, 0), len(doc))

	if start, end, ok := o.indexIn(doc[from:], pattern); ok {
		return buffer.Range{Start: from + start, End: from + end}, true
	}
	if start, end, ok := o.indexIn(doc, pattern); ok && start < from {
		return buffer.Range{Start: start, End: end}, true
	}
	return buffer.Range{}, false
}

// indexIn returns the first match of pattern in s.
func (o Occurrences) indexIn(s, pattern string) (int, int, bool) {
	if o.CaseSensitive {
		i := strings.Index(s, pattern)
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(pattern), true
	}

	m := search.New(language.Und, search.IgnoreCase)
	base := 0
	for base < len(s) {
		start, end := m.IndexString(s[base:], pattern)
		if start < 0 {
			return 0, 0, false
		}
		// The collator may also equate strings that differ by more than
		// case; keep only true case-insensitive matches.
		if strings.EqualFold(s[base+start:base+end], pattern) {
			return base + start, base + end, true
		}
		_, size := utf8.DecodeRuneInString(s[base+start:])
		base += start + size
	}
	return 0, 0, false
}

// WordAt returns the word touching pos: the run of letters, digits,
// combining marks and underscores around it on the same line.
func WordAt(text buffer.Text, pos buffer.Offset) (buffer.Range, bool) {
	line := text.LineFromOffset(pos)
	lineStart := text.LineStartOffset(line)
	s := text.ReadRange(lineStart, lineStart+text.LineLength(lineStart))
	col := min(max(pos-lineStart, 0), len(s))

	start := col
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:start])
		if !isWordChar(r) {
			break
		}
		start -= size
	}
	end := col
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !isWordChar(r) {
			break
		}
		end += size
	}
	if start == end {
		return buffer.Range{}, false
	}
	return buffer.Range{Start: lineStart + start, End: lineStart + end}, true
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}
