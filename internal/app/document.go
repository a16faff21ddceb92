package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/history"
	"github.com/dshills/multicaret/internal/input/mouse"
	"github.com/dshills/multicaret/internal/renderer/overlay"
)

// DefaultTabWidth is the distance between tab stops in cells.
const DefaultTabWidth = 4

// Document is an open file shown in a scrolling text view. The embedded
// buffer is the text the cursor engine edits; the view maps its offsets to
// screen cells.
type Document struct {
	*buffer.Buffer

	// Path is the file path, empty for a scratch buffer.
	Path string

	// Name is the display name.
	Name string

	modified bool
	history  *history.History

	tabWidth      int
	top, left     int
	width, height int

	// last laid out line
	cacheLine int
	cacheRev  buffer.RevisionID
	cache     []glyph
	cacheW    int
}

// glyph is one grapheme cluster of a laid out line.
type glyph struct {
	off   buffer.Offset
	x     int
	width int
	r     rune
}

// NewDocument creates a document holding content.
func NewDocument(path string, content []byte) *Document {
	d := &Document{
		Path:      path,
		Name:      displayName(path),
		tabWidth:  DefaultTabWidth,
		cacheLine: -1,
		history:   history.NewHistory(history.DefaultMaxEntries),
	}
	d.Buffer = buffer.NewBufferFromString(string(content),
		buffer.WithChangeFunc(func(c buffer.Change) {
			d.modified = true
			d.history.Record(c)
		}),
	)
	return d
}

// OpenDocument reads path. A missing file yields an empty document that
// is created on save.
func OpenDocument(path string) (*Document, error) {
	if path == "" {
		return NewDocument("", nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	return NewDocument(path, data), nil
}

func displayName(path string) string {
	if path == "" {
		return "Untitled"
	}
	return filepath.Base(path)
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// History returns the document's undo stack.
func (d *Document) History() *history.History {
	return d.history
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified = modified
}

// Save writes the document with its original line endings.
func (d *Document) Save() error {
	if d.Path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(d.Path, []byte(d.Encoded()), 0o644); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	d.modified = false
	return nil
}

// Resize sets the size of the text area.
func (d *Document) Resize(width, height int) {
	d.width = max(0, width)
	d.height = max(0, height)
}

// Size returns the size of the text area.
func (d *Document) Size() (width, height int) {
	return d.width, d.height
}

// Top returns the first visible line.
func (d *Document) Top() int {
	return d.top
}

// SetTabWidth sets the tab stop distance.
func (d *Document) SetTabWidth(n int) {
	if n > 0 && n != d.tabWidth {
		d.tabWidth = n
		d.cacheLine = -1
	}
}

// Scroll moves the view by n lines, keeping at least one line visible.
func (d *Document) Scroll(n int) {
	d.top = min(max(0, d.top+n), d.LineCount()-1)
}

// ScrollTo scrolls the least amount that makes off visible.
func (d *Document) ScrollTo(off buffer.Offset) {
	if d.width <= 0 || d.height <= 0 {
		return
	}
	d.top = min(d.top, d.LineCount()-1)

	line := d.LineFromOffset(off)
	if line < d.top {
		d.top = line
	} else if line >= d.top+d.height {
		d.top = line - d.height + 1
	}

	g := d.glyphAt(line, off)
	if g.x < d.left {
		d.left = g.x
	} else if g.x+g.width > d.left+d.width {
		d.left = g.x + g.width - d.width
	}
}

// layout returns the glyphs of line and its width in cells.
func (d *Document) layout(line int) ([]glyph, int) {
	if line == d.cacheLine && d.Revision() == d.cacheRev {
		return d.cache, d.cacheW
	}

	start := d.LineStartOffset(line)
	gr := uniseg.NewGraphemes(buffer.LineText(d, line))
	glyphs := make([]glyph, 0, len(d.cache))
	x := 0
	for gr.Next() {
		from, _ := gr.Positions()
		cluster := gr.Str()
		r, _ := utf8.DecodeRuneInString(cluster)
		w := runewidth.StringWidth(cluster)
		switch {
		case r == '\t':
			w = d.tabWidth - x%d.tabWidth
		case w == 0:
			r, w = '?', 1
		}
		glyphs = append(glyphs, glyph{off: start + from, x: x, width: w, r: r})
		x += w
	}

	d.cacheLine, d.cacheRev, d.cache, d.cacheW = line, d.Revision(), glyphs, x
	return glyphs, x
}

// glyphAt returns the glyph covering off on line. The line end is a blank
// one cell wide.
func (d *Document) glyphAt(line int, off buffer.Offset) glyph {
	glyphs, width := d.layout(line)
	if off >= buffer.LineEnd(d, line) {
		return glyph{off: off, x: width, width: 1, r: ' '}
	}
	i := sort.Search(len(glyphs), func(i int) bool { return glyphs[i].off > off }) - 1
	if i < 0 {
		return glyph{off: off, width: 1, r: ' '}
	}
	return glyphs[i]
}

// GlyphAt implements overlay.Layout.
func (d *Document) GlyphAt(off buffer.Offset) (overlay.Glyph, bool) {
	line := d.LineFromOffset(off)
	y := line - d.top
	if y < 0 || y >= d.height {
		return overlay.Glyph{}, false
	}
	g := d.glyphAt(line, off)
	x := g.x - d.left
	if x < 0 || x >= d.width {
		return overlay.Glyph{}, false
	}
	return overlay.Glyph{X: x, Y: y, Rune: g.r, Width: g.width}, true
}

// cellAt returns the line and absolute cell column under p.
func (d *Document) cellAt(p mouse.Position) (line, x int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= d.width || p.Y >= d.height {
		return 0, 0, false
	}
	return min(d.top+p.Y, d.LineCount()-1), d.left + p.X, true
}

// OffsetAt implements input.Locator.
func (d *Document) OffsetAt(p mouse.Position) (buffer.Offset, bool) {
	line, x, ok := d.cellAt(p)
	if !ok {
		return 0, false
	}
	glyphs, _ := d.layout(line)
	for _, g := range glyphs {
		if x < g.x+g.width {
			return g.off, true
		}
	}
	return buffer.LineEnd(d, line), true
}

// LineColAt implements input.Locator. Past the line end every cell counts
// as one column.
func (d *Document) LineColAt(p mouse.Position) (line, col int, ok bool) {
	line, x, ok := d.cellAt(p)
	if !ok {
		return 0, 0, false
	}
	start := d.LineStartOffset(line)
	glyphs, width := d.layout(line)
	for _, g := range glyphs {
		if x < g.x+g.width {
			return line, utf8.RuneCountInString(d.ReadRange(start, g.off)), true
		}
	}
	return line, utf8.RuneCountInString(buffer.LineText(d, line)) + x - width, true
}

// Draw paints the visible lines and the native selection. Rows below the
// last line are cleared.
func (d *Document) Draw(screen overlay.Screen, normal, selected tcell.Style) {
	selStart, selEnd := d.NativeSelection()
	if selStart > selEnd {
		selStart, selEnd = selEnd, selStart
	}

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			screen.SetCell(x, y, ' ', normal)
		}
		line := d.top + y
		if line >= d.LineCount() {
			continue
		}

		glyphs, width := d.layout(line)
		for _, g := range glyphs {
			style := normal
			if g.off >= selStart && g.off < selEnd {
				style = selected
			}
			d.drawGlyph(screen, g, y, style)
		}
		if end := buffer.LineEnd(d, line); end >= selStart && end < selEnd {
			d.drawGlyph(screen, glyph{x: width, width: 1, r: ' '}, y, selected)
		}
	}
}

func (d *Document) drawGlyph(screen overlay.Screen, g glyph, y int, style tcell.Style) {
	for dx := 0; dx < g.width; dx++ {
		x := g.x - d.left + dx
		if x < 0 || x >= d.width {
			continue
		}
		switch {
		case g.r == '\t':
			screen.SetCell(x, y, ' ', style)
		case dx == 0:
			screen.SetCell(x, y, g.r, style)
		}
	}
}
