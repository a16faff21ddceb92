package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/config"
	"github.com/dshills/multicaret/internal/renderer/backend"
)

// Styles used by the host view.
var (
	textStyle      = tcell.StyleDefault
	selectionStyle = tcell.StyleDefault.Reverse(true)
	statusStyle    = tcell.StyleDefault.Reverse(true)
)

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and processes events until the backend
// closes or the user quits, in which case it returns ErrQuit.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	app.resize(app.backend.Size())
	app.startWatcher()

	app.log.Info("editor started",
		zap.String("file", app.doc.Path),
		zap.String("session", app.session.ID()),
	)
	return app.loop()
}

func (app *Application) loop() error {
	app.draw()
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventClosed {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			return err
		}
		app.draw()
	}
}

// startWatcher hot-reloads the config file. Reloads reach the UI goroutine
// as interrupts.
func (app *Application) startWatcher() {
	path := app.opts.ConfigPath
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		app.log.Debug("config directory missing, hot reload disabled", zap.String("path", path))
		return
	}

	b := app.backend
	w, err := config.Watch(path,
		func(cfg *config.Config) { b.Interrupt(configReload{cfg: cfg}) },
		func(err error) { b.Interrupt(configFailure{err: err}) },
		app.watchOpts...,
	)
	if err != nil {
		app.log.Warn("config watch failed", zap.String("path", path), zap.Error(err))
		return
	}
	app.watcher = w
}

// draw paints the text, the secondary cursors and the status line.
func (app *Application) draw() {
	b := app.backend
	app.doc.Draw(b, textStyle, selectionStyle)
	app.overlay.Draw(b, app.doc, app.session.View(), app.doc)
	app.drawStatus()

	if g, ok := app.doc.GlyphAt(app.caretOffset()); ok {
		b.ShowCursor(g.X, g.Y)
	} else {
		b.HideCursor()
	}
	b.Show()
}

// drawStatus paints the bottom row: file name, notice and cursor count or
// caret position.
func (app *Application) drawStatus() {
	width, height := app.backend.Size()
	y := height - 1
	if y < 0 || width <= 0 {
		return
	}

	left := " " + app.doc.Name
	if app.doc.IsModified() {
		left += " [+]"
	}
	if app.notice != "" {
		left += "  " + app.notice
	}
	right := app.position() + " "

	room := max(0, width-runewidth.StringWidth(right)-1)
	left = runewidth.Truncate(left, room, "…")
	line := runewidth.FillRight(left, width-runewidth.StringWidth(right)) + right

	x := 0
	for _, r := range line {
		if x >= width {
			break
		}
		app.backend.SetCell(x, y, r, statusStyle)
		x += max(1, runewidth.RuneWidth(r))
	}
	for ; x < width; x++ {
		app.backend.SetCell(x, y, ' ', statusStyle)
	}
}

// position describes the cursors for the status line.
func (app *Application) position() string {
	if app.session.Active() {
		return fmt.Sprintf("%d cursors", app.session.Cursors().Len())
	}
	_, caret := app.selection()
	line := app.doc.LineFromOffset(caret)
	return fmt.Sprintf("Ln %d, Col %d", line+1, app.doc.glyphAt(line, caret).x+1)
}

// quit returns ErrQuit. With unsaved changes the first request only warns.
func (app *Application) quit() error {
	if app.doc.IsModified() && !app.quitArmed {
		app.quitArmed = true
		app.setNotice("unsaved changes, ctrl+q again to quit")
		return nil
	}
	return ErrQuit
}

// save writes the document and reports the outcome on the status line.
func (app *Application) save() {
	err := app.Save()
	switch {
	case err == nil:
		app.setNotice("saved " + app.doc.Name)
	case errors.Is(err, ErrNoFilePath):
		app.setNotice("no file name")
	default:
		app.setNotice("save failed: " + err.Error())
	}
}
