package overlay

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
	"github.com/dshills/multicaret/internal/renderer/backend"
)

// gridLayout lays out ASCII text one byte per cell, showing lines
// [top, top+height).
type gridLayout struct {
	text   buffer.Text
	top    int
	height int
}

func (l gridLayout) GlyphAt(off buffer.Offset) (Glyph, bool) {
	line := l.text.LineFromOffset(off)
	if line < l.top || line >= l.top+l.height {
		return Glyph{}, false
	}
	start := l.text.LineStartOffset(line)
	r := ' '
	if off < start+l.text.LineLength(start) {
		r = rune(l.text.ReadRange(off, off+1)[0])
	}
	return Glyph{X: off - start, Y: line - l.top, Rune: r, Width: 1}, true
}

type cell struct {
	r     rune
	style tcell.Style
}

// recordScreen records every SetCell.
type recordScreen map[[2]int]cell

func (s recordScreen) SetCell(x, y int, r rune, style tcell.Style) {
	s[[2]int{x, y}] = cell{r, style}
}

func newView(t *testing.T, primary int, cursors ...cursor.Cursor) cursor.View {
	t.Helper()
	set := cursor.NewSet(0, 0)
	if !set.Replace(cursors, primary) {
		t.Fatal("Replace failed")
	}
	return set.View()
}

const sample = "foo bar\nfoo baz\nfoo"

func TestDrawSkipsPrimary(t *testing.T) {
	buf := buffer.NewBufferFromString(sample)
	view := newView(t, 0,
		cursor.Selection(0, 3),
		cursor.Selection(8, 11),
		cursor.Caret(18),
	)
	cfg := DefaultConfig()
	screen := recordScreen{}

	n := NewRenderer(cfg).Draw(screen, buf, view, gridLayout{text: buf, height: 3})
	if n != 5 {
		t.Errorf("Draw() = %d cells, want 5", n)
	}

	for x := 0; x < 3; x++ {
		got := screen[[2]int{x, 1}]
		if got.style != cfg.SelectionStyle || got.r != rune("foo"[x]) {
			t.Errorf("cell (%d,1) = %+v, want selected %q", x, got, "foo"[x])
		}
	}
	if got := screen[[2]int{3, 1}]; got.style != cfg.CaretStyle || got.r != ' ' {
		t.Errorf("caret after selection = %+v", got)
	}
	if got := screen[[2]int{2, 2}]; got.style != cfg.CaretStyle || got.r != 'o' {
		t.Errorf("caret on last line = %+v", got)
	}
	for x := 0; x <= 3; x++ {
		if _, ok := screen[[2]int{x, 0}]; ok {
			t.Errorf("primary cell (%d,0) was painted", x)
		}
	}
}

func TestDrawSkipsHiddenLines(t *testing.T) {
	buf := buffer.NewBufferFromString(sample)
	view := newView(t, 0,
		cursor.Selection(0, 3),
		cursor.Selection(8, 11),
		cursor.Caret(18),
	)
	screen := recordScreen{}

	n := NewRenderer(DefaultConfig()).Draw(screen, buf, view, gridLayout{text: buf, top: 1, height: 1})
	if n != 4 {
		t.Errorf("Draw() = %d cells, want 4", n)
	}
	if _, ok := screen[[2]int{0, 0}]; !ok {
		t.Error("line 1 should be drawn at row 0")
	}
	if len(screen) != 4 {
		t.Errorf("painted %d cells, want 4", len(screen))
	}
}

func TestDrawSelectionAcrossLines(t *testing.T) {
	buf := buffer.NewBufferFromString("ab\ncd")
	view := newView(t, 0, cursor.Caret(0), cursor.Selection(1, 4))
	cfg := DefaultConfig()
	screen := recordScreen{}

	NewRenderer(cfg).Draw(screen, buf, view, gridLayout{text: buf, height: 2})

	// "b", the newline as a blank, "c", then the caret on "d".
	want := map[[2]int]cell{
		{1, 0}: {'b', cfg.SelectionStyle},
		{2, 0}: {' ', cfg.SelectionStyle},
		{0, 1}: {'c', cfg.SelectionStyle},
		{1, 1}: {'d', cfg.CaretStyle},
	}
	if len(screen) != len(want) {
		t.Fatalf("painted %v, want %v", screen, want)
	}
	for pos, w := range want {
		if screen[pos] != w {
			t.Errorf("cell %v = %+v, want %+v", pos, screen[pos], w)
		}
	}
}

func TestDrawInactive(t *testing.T) {
	buf := buffer.NewBufferFromString(sample)
	view := newView(t, 0, cursor.Selection(0, 3))
	screen := recordScreen{}

	if n := NewRenderer(DefaultConfig()).Draw(screen, buf, view, gridLayout{text: buf, height: 3}); n != 0 {
		t.Errorf("Draw() with one cursor = %d, want 0", n)
	}

	view = newView(t, 0, cursor.Caret(0), cursor.Caret(4))
	r := NewRenderer(DefaultConfig())
	cfg := r.Config()
	cfg.ShowSecondary = false
	r.SetConfig(cfg)
	if n := r.Draw(screen, buf, view, gridLayout{text: buf, height: 3}); n != 0 {
		t.Errorf("Draw() with ShowSecondary off = %d, want 0", n)
	}
	if len(screen) != 0 {
		t.Errorf("painted %v", screen)
	}
}

func TestPaintWideGlyphs(t *testing.T) {
	r := NewRenderer(DefaultConfig())
	style := tcell.StyleDefault.Bold(true)

	screen := recordScreen{}
	if n := r.paint(screen, Glyph{X: 2, Y: 0, Rune: '\t', Width: 4}, style); n != 4 {
		t.Errorf("tab painted %d cells, want 4", n)
	}
	for x := 2; x < 6; x++ {
		if got := screen[[2]int{x, 0}]; got != (cell{' ', style}) {
			t.Errorf("tab cell %d = %+v", x, got)
		}
	}

	screen = recordScreen{}
	if n := r.paint(screen, Glyph{Rune: '世'}, style); n != 2 {
		t.Errorf("wide rune painted %d cells, want 2", n)
	}
	if len(screen) != 1 {
		t.Errorf("wide rune set %d cells, want 1", len(screen))
	}
}

func TestDrawOnSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := backend.NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()
	sim.SetSize(20, 4)

	buf := buffer.NewBufferFromString(sample)
	for y, line := range []string{"foo bar", "foo baz", "foo"} {
		for x, r := range line {
			term.SetCell(x, y, r, tcell.StyleDefault)
		}
	}

	view := newView(t, 0, cursor.Caret(0), cursor.Caret(8))
	cfg := DefaultConfig()
	NewRenderer(cfg).Draw(term, buf, view, gridLayout{text: buf, height: 3})
	term.Show()

	r, _, style, _ := sim.GetContent(0, 1) //nolint:staticcheck // GetContent is the correct API
	if r != 'f' || style != cfg.CaretStyle {
		t.Errorf("secondary caret cell = %q %v", r, style)
	}
	r, _, style, _ = sim.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	if r != 'f' || style != tcell.StyleDefault {
		t.Errorf("primary caret cell = %q %v, want untouched", r, style)
	}
}
