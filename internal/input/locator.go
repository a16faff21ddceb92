package input

import (
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/input/mouse"
)

// Locator maps screen positions to document coordinates. The host view
// implements it because only the view knows scrolling and cell widths.
type Locator interface {
	// OffsetAt returns the document offset under p, clamped to the line
	// under p. ok is false when p is outside the text area.
	OffsetAt(p mouse.Position) (off buffer.Offset, ok bool)

	// LineColAt returns the line and rune column under p. The column may
	// lie past the end of the line; the line is clamped to the document.
	LineColAt(p mouse.Position) (line, col int, ok bool)
}
