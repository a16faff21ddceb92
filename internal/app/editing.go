package app

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/engine/cursor"
	"github.com/dshills/multicaret/internal/input/key"
)

var motionKeys = map[key.Key]engine.Motion{
	key.KeyLeft:  engine.MoveLeft,
	key.KeyRight: engine.MoveRight,
	key.KeyUp:    engine.MoveUp,
	key.KeyDown:  engine.MoveDown,
	key.KeyHome:  engine.MoveHome,
	key.KeyEnd:   engine.MoveEnd,
}

// editKey applies k to the single caret. It reports whether k was used.
func (app *Application) editKey(k key.Event) bool {
	if k.IsChar() {
		app.insert(string(k.Rune))
		return true
	}

	mods := k.Modifiers.Without(key.ModShift)
	if k.Key == key.KeyRune && mods == key.ModCtrl {
		switch unicode.ToLower(k.Rune) {
		case 'a':
			app.setSelection(0, app.doc.Len())
		case 'c':
			app.copySelection(false)
		case 'x':
			app.copySelection(true)
		case 'v':
			app.pasteClipboard()
		default:
			return false
		}
		return true
	}

	if mods != key.ModNone {
		return false
	}
	if m, ok := motionKeys[k.Key]; ok {
		app.moveCaret(m, k.Modifiers.HasShift(), 1)
		return true
	}

	switch k.Key {
	case key.KeyPageUp:
		_, h := app.doc.Size()
		app.moveCaret(engine.MoveUp, k.Modifiers.HasShift(), max(1, h-1))
		return true
	case key.KeyPageDown:
		_, h := app.doc.Size()
		app.moveCaret(engine.MoveDown, k.Modifiers.HasShift(), max(1, h-1))
		return true
	}

	if k.Modifiers != key.ModNone {
		return false
	}
	switch k.Key {
	case key.KeyEnter:
		app.insert("\n")
	case key.KeyTab:
		app.insert("\t")
	case key.KeyBackspace:
		app.deleteToward(engine.MoveLeft)
	case key.KeyDelete:
		app.deleteToward(engine.MoveRight)
	default:
		return false
	}
	return true
}

// selection returns the anchor and caret of the single caret. When the
// native selection was changed behind the host's back, its end is the
// caret.
func (app *Application) selection() (anchor, caret buffer.Offset) {
	start, end := app.doc.NativeSelection()
	if start == min(app.anchor, app.caret) && end == max(app.anchor, app.caret) {
		return app.anchor, app.caret
	}
	return start, end
}

// nativeRange returns the native selection in order.
func (app *Application) nativeRange() (start, end buffer.Offset) {
	start, end = app.doc.NativeSelection()
	return min(start, end), max(start, end)
}

func (app *Application) setSelection(anchor, caret buffer.Offset) {
	app.anchor, app.caret = anchor, caret
	app.doc.SetNativeSelection(min(anchor, caret), max(anchor, caret))
}

// caretOffset returns where the terminal cursor belongs: the primary
// cursor while several cursors are active, otherwise the single caret.
func (app *Application) caretOffset() buffer.Offset {
	if app.session.Active() {
		return app.session.Cursors().Primary().Position
	}
	_, caret := app.selection()
	return caret
}

func (app *Application) insert(text string) {
	start, end := app.nativeRange()
	app.doc.ReplaceRange(start, end, text)
	pos := start + len(text)
	app.setSelection(pos, pos)
}

// deleteToward removes the selection, or one grapheme cluster in the
// direction of m.
func (app *Application) deleteToward(m engine.Motion) {
	start, end := app.nativeRange()
	if start == end {
		to := app.step(cursor.Caret(start), m).Position
		start, end = min(start, to), max(start, to)
		if start == end {
			return
		}
	}
	app.doc.ReplaceRange(start, end, "")
	app.setSelection(start, start)
}

// moveCaret moves the single caret n times. With extend the anchor stays
// put; without it a selection collapses first.
func (app *Application) moveCaret(m engine.Motion, extend bool, n int) {
	anchor, caret := app.selection()
	c := cursor.Caret(caret)
	if !extend && anchor != caret {
		c = cursor.Selection(anchor, caret)
	}
	for range n {
		c = app.step(c, m)
	}
	if extend {
		app.setSelection(anchor, c.Position)
		return
	}
	app.setSelection(c.Position, c.Position)
}

// step moves a lone cursor by m using the engine's motion rules.
func (app *Application) step(c cursor.Cursor, m engine.Motion) cursor.Cursor {
	set := cursor.NewSet(0, 0)
	if !set.Replace([]cursor.Cursor{c}, 0) {
		return c
	}
	if err := engine.MoveCursors(set, app.doc, m); err != nil {
		return c
	}
	return set.Primary()
}

func (app *Application) copySelection(cut bool) {
	start, end := app.nativeRange()
	if start == end {
		return
	}
	if err := app.clipboard.WriteAll(app.doc.ReadRange(start, end)); err != nil {
		app.log.Warn("clipboard write failed", zap.Error(err))
		return
	}
	if cut {
		app.doc.ReplaceRange(start, end, "")
		app.setSelection(start, start)
	}
}

func (app *Application) pasteClipboard() {
	text, err := app.clipboard.ReadAll()
	if err != nil {
		app.log.Warn("clipboard read failed", zap.Error(err))
		return
	}
	app.pasteText(text)
}

func (app *Application) pasteText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text != "" {
		app.insert(text)
	}
}
