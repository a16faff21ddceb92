package app

import (
	"unicode"

	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/config"
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/mouse"
	"github.com/dshills/multicaret/internal/renderer/backend"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// configReload carries a reloaded configuration to the UI goroutine.
type configReload struct {
	cfg *config.Config
}

// configFailure carries a failed reload to the UI goroutine.
type configFailure struct {
	err error
}

// handleEvent routes a backend event. It returns ErrQuit when the
// application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		defer app.doc.History().Group("key")()
		return app.handleKey(ev.Key)
	case backend.EventMouse:
		app.handleMouse(ev.Mouse)
	case backend.EventPaste:
		defer app.doc.History().Group("paste")()
		app.handlePaste(ev.Text)
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		app.backend.Sync()
	case backend.EventInterrupt:
		app.handleInterrupt(ev.Data)
	}
	return nil
}

func (app *Application) handleKey(k key.Event) error {
	app.notice = ""

	if k.Key == key.KeyRune && k.Modifiers == key.ModCtrl {
		switch unicode.ToLower(k.Rune) {
		case 'q':
			return app.quit()
		case 's':
			app.save()
			app.quitArmed = false
			return nil
		case 'z':
			app.quitArmed = false
			app.undo()
			return nil
		case 'y':
			app.quitArmed = false
			app.redo()
			return nil
		}
	}
	app.quitArmed = false

	if !app.dispatcher.ProcessKey(k) {
		if !app.editKey(k) {
			app.log.Debug("key ignored", zap.Stringer("key", k))
			return nil
		}
	}
	app.doc.ScrollTo(app.caretOffset())
	return nil
}

// undo reverts the last edit and leaves a single caret where it happened.
func (app *Application) undo() {
	caret, err := app.doc.History().Undo(app.doc)
	if err != nil {
		app.setNotice(err.Error())
		return
	}
	app.restoreCaret(caret)
}

func (app *Application) redo() {
	caret, err := app.doc.History().Redo(app.doc)
	if err != nil {
		app.setNotice(err.Error())
		return
	}
	app.restoreCaret(caret)
}

func (app *Application) restoreCaret(caret buffer.Offset) {
	if app.session.Active() {
		app.session.Clear()
	}
	app.setSelection(caret, caret)
	app.doc.ScrollTo(caret)
}

func (app *Application) handleMouse(ev mouse.Event) {
	switch ev.Button {
	case mouse.ButtonScrollUp:
		app.doc.Scroll(-wheelLines)
		return
	case mouse.ButtonScrollDown:
		app.doc.Scroll(wheelLines)
		return
	}
	if app.dispatcher.ProcessMouse(ev) {
		return
	}

	switch ev.Action {
	case mouse.ActionPress:
		if ev.Button != mouse.ButtonLeft {
			return
		}
		off, ok := app.doc.OffsetAt(ev.Position)
		if !ok {
			return
		}
		app.dragging = true
		if ev.Modifiers.HasShift() {
			anchor, _ := app.selection()
			app.setSelection(anchor, off)
		} else {
			app.setSelection(off, off)
		}
		app.doc.ScrollTo(off)
	case mouse.ActionDrag:
		if !app.dragging {
			return
		}
		if off, ok := app.doc.OffsetAt(ev.Position); ok {
			anchor, _ := app.selection()
			app.setSelection(anchor, off)
		}
	case mouse.ActionRelease:
		app.dragging = false
	}
}

func (app *Application) handlePaste(text string) {
	if !app.dispatcher.ProcessPaste(text) {
		app.pasteText(text)
	}
	app.doc.ScrollTo(app.caretOffset())
}

func (app *Application) handleInterrupt(data any) {
	switch v := data.(type) {
	case configReload:
		app.applyConfig(v.cfg)
	case configFailure:
		app.log.Warn("config reload failed", zap.Error(v.err))
		app.setNotice("config error, keeping previous settings")
	}
}

// applyConfig makes cfg the live configuration.
func (app *Application) applyConfig(cfg *config.Config) {
	app.config = cfg
	app.session.Configure(cfg.Limits())
	if km, err := cfg.BuildKeymap(); err == nil {
		app.dispatcher.SetKeymap(km)
	} else {
		app.log.Warn("keymap invalid, keeping previous bindings", zap.Error(err))
	}
	if add, col, err := cfg.MouseModifiers(); err == nil {
		app.dispatcher.SetMouseModifiers(add, col)
	}
	app.log.Info("config reloaded", zap.String("path", app.opts.ConfigPath))
	app.setNotice("configuration reloaded")
}

func (app *Application) resize(width, height int) {
	// the bottom row is the status line
	app.doc.Resize(width, height-1)
	app.doc.ScrollTo(app.caretOffset())
}
