// Package overlay draws the secondary cursors of a multi-cursor session on
// top of the host's text. The host draws the text, the primary caret and
// the primary selection itself.
package overlay

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// Glyph is the character drawn for one document offset.
type Glyph struct {
	X, Y  int
	Rune  rune
	Width int
}

// Layout maps document offsets to screen cells.
type Layout interface {
	// GlyphAt returns the glyph that starts at off. Line ends and the end of
	// the document report a blank glyph one cell wide. ok is false when off
	// is scrolled out of view.
	GlyphAt(off buffer.Offset) (Glyph, bool)
}

// Screen is the drawing surface.
type Screen interface {
	SetCell(x, y int, r rune, style tcell.Style)
}

// Config holds overlay configuration.
type Config struct {
	// CaretStyle draws secondary carets.
	CaretStyle tcell.Style

	// SelectionStyle draws secondary selections.
	SelectionStyle tcell.Style

	// ShowSecondary enables drawing. When false Draw does nothing.
	ShowSecondary bool
}

// DefaultConfig returns the default overlay configuration.
func DefaultConfig() Config {
	return Config{
		CaretStyle:     tcell.StyleDefault.Reverse(true),
		SelectionStyle: tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite),
		ShowSecondary:  true,
	}
}

// Renderer draws secondary cursors.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer.
func NewRenderer(config Config) *Renderer {
	return &Renderer{config: config}
}

// Config returns the configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// SetConfig replaces the configuration.
func (r *Renderer) SetConfig(config Config) {
	r.config = config
}

// Draw paints every secondary cursor of view and returns how many cells
// it painted. Selections are painted first, then the carets on top.
func (r *Renderer) Draw(screen Screen, text buffer.Text, view cursor.View, layout Layout) int {
	if !r.config.ShowSecondary || !view.Active() {
		return 0
	}

	cells := 0
	view.Secondary(func(_ int, c cursor.Cursor) {
		if c.HasSelection() {
			cells += r.drawRange(screen, text, c.Range(), layout)
		}
	})
	view.Secondary(func(_ int, c cursor.Cursor) {
		if g, ok := layout.GlyphAt(c.Position); ok {
			cells += r.paint(screen, g, r.config.CaretStyle)
		}
	})
	return cells
}

// drawRange paints the glyphs of rg. Offsets that are not visible are
// skipped.
func (r *Renderer) drawRange(screen Screen, text buffer.Text, rg buffer.Range, layout Layout) int {
	s := text.ReadRange(rg.Start, rg.End)
	cells := 0
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if g, ok := layout.GlyphAt(rg.Start + i); ok {
			cells += r.paint(screen, g, r.config.SelectionStyle)
		}
		i += size
	}
	return cells
}

// paint draws g with style over every cell it covers.
func (r *Renderer) paint(screen Screen, g Glyph, style tcell.Style) int {
	if g.Rune == '\t' || g.Rune == '\n' || g.Rune == 0 {
		g.Rune = ' '
	}
	width := g.Width
	if width <= 0 {
		width = runewidth.RuneWidth(g.Rune)
	}
	if width <= 0 {
		return 0
	}
	screen.SetCell(g.X, g.Y, g.Rune, style)
	if g.Rune == ' ' {
		for dx := 1; dx < width; dx++ {
			screen.SetCell(g.X+dx, g.Y, ' ', style)
		}
	}
	return width
}
