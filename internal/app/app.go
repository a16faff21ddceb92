// Package app is the terminal host for multicaret. It opens one file into a
// text view and feeds terminal input to the multi-cursor dispatcher,
// editing with its own single caret whenever the dispatcher declines an
// event.
package app

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/config"
	"github.com/dshills/multicaret/internal/config/watcher"
	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/engine/buffer"
	"github.com/dshills/multicaret/internal/input"
	"github.com/dshills/multicaret/internal/plugin/lua"
	"github.com/dshills/multicaret/internal/renderer/backend"
	"github.com/dshills/multicaret/internal/renderer/overlay"
)

// Application owns the document, the cursor session and the terminal. All
// of its state is confined to the goroutine running Run; other goroutines
// reach it through backend interrupts.
type Application struct {
	opts   Options
	config *config.Config

	logger   *zap.Logger // shared by every component
	log      *zap.Logger // application child logger
	closeLog func() error

	backend    backend.Backend
	doc        *Document
	session    *engine.Session
	dispatcher *input.Dispatcher
	clipboard  input.Clipboard
	overlay    *overlay.Renderer
	scripts    *lua.State
	watcher    *config.Watcher
	watchOpts  []watcher.Option

	// single-caret state
	anchor   buffer.Offset
	caret    buffer.Offset
	dragging bool

	notice    string
	quitArmed bool

	running  atomic.Bool
	shutdown sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means config.DefaultPath.
	ConfigPath string

	// File is the file to edit. Empty opens a scratch buffer.
	File string

	// LogLevel overrides logging.level from the configuration.
	LogLevel string

	// Logger replaces the logger built from the configuration.
	Logger *zap.Logger

	// Clipboard replaces the system clipboard.
	Clipboard input.Clipboard
}

// New creates an Application and loads its configuration, document and
// init scripts.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		overlay: overlay.NewRenderer(overlay.DefaultConfig()),
	}
	if err := app.bootstrap(); err != nil {
		app.closeLogger()
		return nil, err
	}
	return app, nil
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// Session returns the cursor session.
func (app *Application) Session() *engine.Session {
	return app.session
}

// Dispatcher returns the input dispatcher.
func (app *Application) Dispatcher() *input.Dispatcher {
	return app.dispatcher
}

// Notice returns the message shown on the status line.
func (app *Application) Notice() string {
	return app.notice
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

func (app *Application) setNotice(msg string) {
	app.notice = msg
}
