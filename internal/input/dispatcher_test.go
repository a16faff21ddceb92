package input

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/keymap"
	"github.com/dshills/multicaret/internal/input/mouse"
)

// gridLocator maps Y to a line and X to a rune column with no scrolling.
type gridLocator struct {
	text buffer.Text
}

func (g gridLocator) LineColAt(p mouse.Position) (int, int, bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	line := p.Y
	if last := g.text.LineCount() - 1; line > last {
		line = last
	}
	return line, p.X, true
}

func (g gridLocator) OffsetAt(p mouse.Position) (buffer.Offset, bool) {
	line, col, ok := g.LineColAt(p)
	if !ok {
		return 0, false
	}
	s := buffer.LineText(g.text, line)
	i := 0
	for n := 0; n < col && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return g.text.LineStartOffset(line) + i, true
}

type fixture struct {
	buf     *buffer.Buffer
	session *engine.Session
	d       *Dispatcher
	clip    *MemoryClipboard
	notices []string
}

func newFixture(t *testing.T, text string, opts ...engine.Option) *fixture {
	t.Helper()
	f := &fixture{buf: buffer.NewBufferFromString(text), clip: &MemoryClipboard{}}
	s, err := engine.NewSession(f.buf, opts...)
	require.NoError(t, err)
	f.session = s
	f.d = NewDispatcher(s, gridLocator{text: f.buf},
		WithClipboard(f.clip),
		WithNotifier(func(msg string) { f.notices = append(f.notices, msg) }),
	)
	return f
}

func ctrl(r rune) key.Event       { return key.NewRuneEvent(r, key.ModCtrl) }
func alt(k key.Key) key.Event     { return key.NewSpecialEvent(k, key.ModAlt) }
func special(k key.Key) key.Event { return key.NewSpecialEvent(k, key.ModNone) }
func char(r rune) key.Event       { return key.NewRuneEvent(r, key.ModNone) }

func click(x, y int, mods key.Modifier) mouse.Event {
	return mouse.Event{Position: mouse.Position{X: x, Y: y}, Button: mouse.ButtonLeft, Modifiers: mods, Action: mouse.ActionPress}
}

func ranges(v cursor.View) [][2]int {
	out := make([][2]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.At(i).Range()
		out = append(out, [2]int{r.Start, r.End})
	}
	return out
}

func TestInactivePassesEditingKeysThrough(t *testing.T) {
	f := newFixture(t, "hello world")

	for _, ev := range []key.Event{
		char('x'),
		special(key.KeyLeft),
		special(key.KeyBackspace),
		special(key.KeyEnter),
		special(key.KeyEscape),
		ctrl('c'),
		ctrl('v'),
	} {
		assert.False(t, f.d.ProcessKey(ev), "key %s", ev)
	}
	assert.Equal(t, "hello world", f.buf.Text())
	assert.False(t, f.d.ProcessMouse(click(3, 0, key.ModNone)))
	assert.False(t, f.d.ProcessPaste("text"))
}

func TestSelectNextScenario(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")

	require.True(t, f.d.ProcessKey(ctrl('d')))
	assert.Equal(t, [][2]int{{0, 3}}, ranges(f.d.Cursors()))
	assert.False(t, f.session.Active())

	require.True(t, f.d.ProcessKey(ctrl('d')))
	require.True(t, f.d.ProcessKey(ctrl('d')))
	assert.Equal(t, [][2]int{{0, 3}, {8, 11}, {16, 19}}, ranges(f.d.Cursors()))

	require.True(t, f.d.ProcessKey(ctrl('d')))
	assert.Equal(t, 3, f.d.Cursors().Len())
	assert.Equal(t, []string{NoticeAllSelected}, f.notices)

	for _, r := range "qux" {
		require.True(t, f.d.ProcessKey(char(r)))
	}
	assert.Equal(t, "qux bar qux baz qux", f.buf.Text())
	assert.Equal(t, [][2]int{{3, 3}, {11, 11}, {19, 19}}, ranges(f.d.Cursors()))
}

func TestSelectNextUsesHostCaret(t *testing.T) {
	f := newFixture(t, "one two one")
	f.buf.SetNativeSelection(5, 5)

	require.True(t, f.d.ProcessKey(ctrl('d')))
	assert.Equal(t, [][2]int{{4, 7}}, ranges(f.d.Cursors()))
}

func TestSelectNextNoWord(t *testing.T) {
	f := newFixture(t, "a   b")
	f.buf.SetNativeSelection(2, 2)

	assert.True(t, f.d.ProcessKey(ctrl('d')))
	assert.Equal(t, []string{NoticeNoWord}, f.notices)
}

func TestSelectAll(t *testing.T) {
	f := newFixture(t, "x y x y x")

	require.True(t, f.d.ProcessKey(key.NewRuneEvent('d', key.ModAlt)))
	assert.Equal(t, [][2]int{{0, 1}, {4, 5}, {8, 9}}, ranges(f.d.Cursors()))
	assert.Empty(t, f.notices)
}

func TestCursorLimitNotice(t *testing.T) {
	f := newFixture(t, "a a a", engine.WithMaxCursors(2))

	f.d.ProcessKey(ctrl('d'))
	f.d.ProcessKey(ctrl('d'))
	f.d.ProcessKey(ctrl('d'))
	assert.Equal(t, 2, f.d.Cursors().Len())
	assert.Equal(t, []string{NoticeCursorLimit}, f.notices)
}

func TestEscapeClearsOnlyWhenActive(t *testing.T) {
	f := newFixture(t, "foo foo")
	f.d.ProcessKey(ctrl('d'))
	f.d.ProcessKey(ctrl('d'))
	require.True(t, f.session.Active())

	assert.True(t, f.d.ProcessKey(special(key.KeyEscape)))
	assert.False(t, f.session.Active())
	assert.False(t, f.d.ProcessKey(special(key.KeyEscape)))
}

func TestModifiedClickTogglesCursor(t *testing.T) {
	f := newFixture(t, "aaaa\nbbbb\ncccc")
	f.buf.SetNativeSelection(1, 1)

	require.True(t, f.d.ProcessMouse(click(2, 1, key.ModCtrl)))
	assert.Equal(t, [][2]int{{1, 1}, {7, 7}}, ranges(f.d.Cursors()))
	assert.True(t, f.session.Active())

	require.True(t, f.d.ProcessMouse(click(2, 1, key.ModCtrl)))
	assert.Equal(t, [][2]int{{1, 1}}, ranges(f.d.Cursors()))
	assert.False(t, f.session.Active())
}

func TestModifiedClickCursorLimit(t *testing.T) {
	f := newFixture(t, "aaaa\nbbbb", engine.WithMaxCursors(2))

	require.True(t, f.d.ProcessMouse(click(1, 1, key.ModCtrl)))
	require.True(t, f.d.ProcessMouse(click(3, 1, key.ModCtrl)))
	assert.Equal(t, 2, f.d.Cursors().Len())
	assert.Equal(t, []string{NoticeCursorLimit}, f.notices)
}

func TestPlainClickClearsAndPassesThrough(t *testing.T) {
	f := newFixture(t, "aaaa\nbbbb")
	f.d.ProcessMouse(click(2, 1, key.ModCtrl))
	require.True(t, f.session.Active())

	assert.False(t, f.d.ProcessMouse(click(1, 0, key.ModNone)))
	assert.False(t, f.session.Active())
}

func TestColumnDrag(t *testing.T) {
	f := newFixture(t, "aaaa\nbbbb\ncccc")

	var tr mouse.Tracker
	press := tr.Update(mouse.Position{X: 1, Y: 0}, mouse.ButtonLeft, key.ModAlt)
	require.True(t, f.d.ProcessMouse(press))

	drag := tr.Update(mouse.Position{X: 3, Y: 2}, mouse.ButtonLeft, key.ModAlt)
	require.True(t, f.d.ProcessMouse(drag))
	assert.Equal(t, [][2]int{{1, 3}, {6, 8}, {11, 13}}, ranges(f.d.Cursors()))
	_, inColumn := f.d.Cursors().Column()
	assert.True(t, inColumn)

	release := tr.Update(mouse.Position{X: 3, Y: 2}, mouse.ButtonNone, key.ModNone)
	require.True(t, f.d.ProcessMouse(release))
	_, inColumn = f.d.Cursors().Column()
	assert.False(t, inColumn)
	assert.Equal(t, 3, f.d.Cursors().Len())

	require.True(t, f.d.ProcessKey(ctrl('c')))
	assert.Equal(t, "aa\nbb\ncc", f.clip.text)

	require.True(t, f.d.ProcessPaste("1\n2\n3\n"))
	assert.Equal(t, "a1a\nb2b\nc3c", f.buf.Text())
}

func TestPlainDragIsNotColumn(t *testing.T) {
	f := newFixture(t, "aaaa\nbbbb")
	var tr mouse.Tracker

	assert.False(t, f.d.ProcessMouse(tr.Update(mouse.Position{X: 0, Y: 0}, mouse.ButtonLeft, key.ModNone)))
	assert.False(t, f.d.ProcessMouse(tr.Update(mouse.Position{X: 2, Y: 1}, mouse.ButtonLeft, key.ModNone)))
	assert.False(t, f.d.ProcessMouse(tr.Update(mouse.Position{X: 2, Y: 1}, mouse.ButtonNone, key.ModNone)))
	assert.Equal(t, 1, f.d.Cursors().Len())
}

func TestPasteWholeTextWhenLineCountDiffers(t *testing.T) {
	f := newFixture(t, "ab\ncd")
	f.d.ProcessMouse(click(1, 1, key.ModCtrl))
	f.buf.SetNativeSelection(0, 0)
	require.Equal(t, 2, f.d.Cursors().Len())

	f.clip.text = "x\r\ny\r\nz"
	require.True(t, f.d.ProcessKey(ctrl('v')))
	assert.Equal(t, "x\ny\nzab\ncx\ny\nzd", f.buf.Text())
}

func TestActiveEditingKeys(t *testing.T) {
	f := newFixture(t, "ab\ncd")
	f.d.ProcessMouse(click(1, 1, key.ModCtrl))
	require.Equal(t, [][2]int{{0, 0}, {4, 4}}, ranges(f.d.Cursors()))

	require.True(t, f.d.ProcessKey(special(key.KeyRight)))
	assert.Equal(t, [][2]int{{1, 1}, {5, 5}}, ranges(f.d.Cursors()))

	require.True(t, f.d.ProcessKey(special(key.KeyTab)))
	assert.Equal(t, "a\tb\ncd\t", f.buf.Text())
	assert.Equal(t, [][2]int{{2, 2}, {7, 7}}, ranges(f.d.Cursors()))

	require.True(t, f.d.ProcessKey(special(key.KeyBackspace)))
	assert.Equal(t, "ab\ncd", f.buf.Text())
	assert.Equal(t, [][2]int{{1, 1}, {5, 5}}, ranges(f.d.Cursors()))

	// The second caret is at the document end, so only "b" goes.
	require.True(t, f.d.ProcessKey(special(key.KeyDelete)))
	assert.Equal(t, "a\ncd", f.buf.Text())
	assert.Equal(t, [][2]int{{1, 1}, {4, 4}}, ranges(f.d.Cursors()))

	require.True(t, f.d.ProcessKey(special(key.KeyEnter)))
	assert.Equal(t, "a\n\ncd\n", f.buf.Text())

	require.True(t, f.d.ProcessKey(special(key.KeyHome)))
	assert.Equal(t, [][2]int{{2, 2}, {6, 6}}, ranges(f.d.Cursors()))

	assert.False(t, f.d.ProcessKey(key.NewSpecialEvent(key.KeyLeft, key.ModCtrl)))
	assert.False(t, f.d.ProcessKey(special(key.KeyF5)))
}

func TestAddCursorAboveBelow(t *testing.T) {
	f := newFixture(t, "abc\ndef\nghi")
	f.buf.SetNativeSelection(5, 5)

	require.True(t, f.d.ProcessKey(alt(key.KeyDown)))
	require.True(t, f.d.ProcessKey(alt(key.KeyUp)))
	assert.Equal(t, [][2]int{{1, 1}, {5, 5}, {9, 9}}, ranges(f.d.Cursors()))
}

func TestSetKeymap(t *testing.T) {
	f := newFixture(t, "foo foo")
	parsed, err := keymap.NewKeymap("custom").Add("ctrl+g", keymap.ActionSelectNext).Parse()
	require.NoError(t, err)
	f.d.SetKeymap(parsed)

	assert.False(t, f.d.ProcessKey(ctrl('d')))
	assert.True(t, f.d.ProcessKey(ctrl('g')))
	assert.Equal(t, [][2]int{{0, 3}}, ranges(f.d.Cursors()))
}

func TestMouseModifiers(t *testing.T) {
	f := newFixture(t, "aaaa\nbbbb")
	f.d.SetMouseModifiers(key.ModMeta, key.ModCtrl)

	require.True(t, f.d.ProcessMouse(click(2, 1, key.ModMeta)))
	assert.Equal(t, 2, f.d.Cursors().Len())

	require.True(t, f.d.ProcessMouse(click(0, 0, key.ModCtrl)))
	assert.Equal(t, 2, f.d.Cursors().Len(), "column press alone changes nothing")
}

func TestScrollIgnored(t *testing.T) {
	f := newFixture(t, "text")
	ev := mouse.Event{Button: mouse.ButtonScrollDown, Action: mouse.ActionPress}
	assert.False(t, f.d.ProcessMouse(ev))
}

type failingClipboard struct{}

func (failingClipboard) ReadAll() (string, error) { return "", errors.New("no clipboard") }
func (failingClipboard) WriteAll(string) error    { return errors.New("no clipboard") }

func TestClipboardFailureIsConsumed(t *testing.T) {
	f := newFixture(t, "ab\ncd")
	f.d.ProcessMouse(click(1, 1, key.ModCtrl))
	WithClipboard(failingClipboard{})(f.d)

	assert.True(t, f.d.ProcessKey(ctrl('v')))
	assert.True(t, f.d.ProcessKey(ctrl('c')))
	assert.Equal(t, "ab\ncd", f.buf.Text())
}

func TestStats(t *testing.T) {
	f := newFixture(t, "foo foo")
	f.d.ProcessKey(char('x'))
	f.d.ProcessKey(ctrl('d'))
	f.d.ProcessKey(ctrl('d'))
	f.d.ProcessKey(ctrl('d'))
	f.d.ProcessPaste("p")
	f.d.ProcessMouse(click(0, 0, key.ModNone))

	snap := f.d.Stats().Snapshot()
	assert.Equal(t, uint64(3), snap.KeysHandled)
	assert.Equal(t, uint64(1), snap.KeysPassed)
	assert.Equal(t, uint64(1), snap.Pastes)
	assert.Equal(t, uint64(1), snap.Notices)
	assert.Equal(t, uint64(1), snap.MousePassed)
}
