package engine

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// Session ties one cursor set to one document. Hosts create a session per
// open document; nothing is shared between sessions.
//
// A Session is not thread-safe. Every call must come from the goroutine
// that delivers input events for the document.
type Session struct {
	id     string
	text   buffer.Text
	set    *cursor.Set
	limits Limits
	logger *zap.Logger
}

// NewSession creates a session over text with a single cursor at the
// host's current caret.
func NewSession(text buffer.Text, opts ...Option) (*Session, error) {
	if text == nil {
		return nil, ErrNilBuffer
	}

	s := &Session{
		id:     uuid.New().String(),
		text:   text,
		limits: DefaultLimits(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "engine"), zap.String("session", s.id))

	start, end := text.NativeSelection()
	s.set = cursor.NewSet(start, s.limits.MaxCursors)
	if start != end {
		s.set.SetPrimaryCursor(cursor.Selection(start, end))
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Text returns the document.
func (s *Session) Text() buffer.Text {
	return s.text
}

// Cursors returns the live cursor set.
func (s *Session) Cursors() *cursor.Set {
	return s.set
}

// View returns a snapshot of the cursors for rendering.
func (s *Session) View() cursor.View {
	return s.set.View()
}

// Active reports whether more than one cursor exists.
func (s *Session) Active() bool {
	return s.set.Active()
}

// Limits returns the limits in effect.
func (s *Session) Limits() Limits {
	return s.limits
}

// Configure applies new limits. Lowering the cursor limit below the current
// cursor count clears the set to its primary cursor.
func (s *Session) Configure(l Limits) {
	if l.MaxCursors <= 0 {
		l.MaxCursors = DefaultMaxCursors
	}
	if l.MaxPatternLength <= 0 {
		l.MaxPatternLength = DefaultMaxPatternLength
	}
	s.limits = l
	s.set.SetMax(l.MaxCursors)
	s.logger.Debug("limits configured",
		zap.Int("max_cursors", l.MaxCursors),
		zap.Int("max_pattern_length", l.MaxPatternLength),
		zap.Bool("case_sensitive", l.CaseSensitive))
}

// Reset drops every cursor and starts over at the host's caret. Hosts call
// it when the document is switched or reloaded.
func (s *Session) Reset(text buffer.Text) error {
	if text == nil {
		return ErrNilBuffer
	}
	s.text = text
	start, _ := text.NativeSelection()
	s.set.Init(start)
	return nil
}

func (s *Session) occurrences() Occurrences {
	return Occurrences{MaxPatternLength: s.limits.MaxPatternLength, CaseSensitive: s.limits.CaseSensitive}
}

// SelectNext selects the next occurrence of the primary selection.
func (s *Session) SelectNext() (cursor.Cursor, error) {
	c, err := s.occurrences().SelectNext(s.set, s.text)
	if err != nil {
		s.logger.Debug("select next failed", zap.Error(err), zap.String("pattern", s.set.LastPattern()))
		return c, err
	}
	s.logger.Debug("occurrence selected", zap.Stringer("cursor", c), zap.Int("cursors", s.set.Len()))
	syncNative(s.set, s.text)
	s.text.RequestRedraw()
	return c, nil
}

// SelectAll selects every occurrence of the primary selection.
func (s *Session) SelectAll() (int, error) {
	n, err := s.occurrences().SelectAll(s.set, s.text)
	s.logger.Debug("select all", zap.Int("added", n), zap.Int("cursors", s.set.Len()), zap.Error(err))
	if n > 0 || err == nil {
		syncNative(s.set, s.text)
		s.text.RequestRedraw()
	}
	return n, err
}

// Type inserts text at every cursor.
func (s *Session) Type(text string) error {
	return s.logEdit("type", ApplyReplace(s.set, s.text, text))
}

// TypeEach inserts texts[i] at cursor i.
func (s *Session) TypeEach(texts []string) error {
	return s.logEdit("type each", ApplyReplaceEach(s.set, s.text, texts))
}

// Delete performs Backspace or Delete at every cursor.
func (s *Session) Delete(dir Direction) error {
	return s.logEdit(dir.String(), ApplyDelete(s.set, s.text, dir))
}

func (s *Session) logEdit(op string, err error) error {
	if err != nil && !errors.Is(err, ErrNotActive) {
		s.logger.Debug("batch edit failed", zap.String("op", op), zap.Error(err))
		return err
	}
	if err == nil {
		s.logger.Debug("batch edit", zap.String("op", op), zap.Int("cursors", s.set.Len()))
	}
	return err
}

// ColumnSelect replaces the cursors with a rectangular selection and keeps
// column mode on until EndColumn.
func (s *Session) ColumnSelect(startLine, startCol, endLine, endCol int) (int, error) {
	s.set.SetColumn(cursor.ColumnRegion{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol})
	n, err := ApplyColumnSelect(s.set, s.text, startLine, startCol, endLine, endCol)
	if err == nil {
		s.logger.Debug("column selection", zap.Int("cursors", n))
	}
	return n, err
}

// EndColumn leaves column mode.
func (s *Session) EndColumn() {
	s.set.EndColumn()
}

// Move moves every cursor.
func (s *Session) Move(m Motion) error {
	return MoveCursors(s.set, s.text, m)
}

// AddVertical adds a cursor on the line above or below.
func (s *Session) AddVertical(up bool) (cursor.Cursor, error) {
	if !s.set.Active() {
		if err := SyncPrimaryFromNative(s.set, s.text); err != nil {
			return cursor.Cursor{}, err
		}
	}
	return AddCursorVertical(s.set, s.text, up)
}

// AddCursor adds a caret at pos. The host's selection is copied into the
// primary cursor first when the set is not yet active.
func (s *Session) AddCursor(pos buffer.Offset) bool {
	if !s.set.Active() {
		_ = SyncPrimaryFromNative(s.set, s.text)
	}
	if !s.set.Add(pos) {
		return false
	}
	s.text.RequestRedraw()
	return true
}

// ToggleCursor removes the cursor at pos if there is one and another cursor
// remains, otherwise adds one there. It reports whether the set changed.
func (s *Session) ToggleCursor(pos buffer.Offset) bool {
	if i := s.set.FindAt(pos); i >= 0 && s.set.Len() > 1 {
		return s.RemoveCursor(i)
	}
	return s.AddCursor(pos)
}

// RemoveCursor removes the cursor at index i. The last cursor is never
// removed. When the primary goes, the host's caret follows the new primary.
func (s *Session) RemoveCursor(i int) bool {
	if !s.set.RemoveAt(i) {
		return false
	}
	syncNative(s.set, s.text)
	s.text.RequestRedraw()
	return true
}

// Clear returns to a single cursor.
func (s *Session) Clear() {
	if !s.set.Active() {
		s.set.EndColumn()
		return
	}
	s.set.ClearToPrimary()
	syncNative(s.set, s.text)
	s.text.RequestRedraw()
	s.logger.Debug("cursors cleared")
}

// SyncFromNative copies the host's caret into the primary cursor.
func (s *Session) SyncFromNative() {
	_ = SyncPrimaryFromNative(s.set, s.text)
}

// SelectedTexts returns the text of every cursor's selection in order.
func (s *Session) SelectedTexts() []string {
	out := make([]string, 0, s.set.Len())
	for _, c := range s.set.All() {
		r := c.Range()
		out = append(out, s.text.ReadRange(r.Start, r.End))
	}
	return out
}
