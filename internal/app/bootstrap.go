package app

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/config"
	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/input"
	"github.com/dshills/multicaret/internal/logging"
	"github.com/dshills/multicaret/internal/plugin/lua"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config. A broken file falls back to the defaults.
	if app.opts.ConfigPath == "" {
		app.opts.ConfigPath = config.DefaultPath()
	}
	cfg, cfgErr := config.Load(app.opts.ConfigPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	app.config = cfg

	// 2. Logging
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	if cfgErr != nil {
		app.log.Warn("config load failed, using defaults",
			zap.String("path", app.opts.ConfigPath), zap.Error(cfgErr))
		app.setNotice("config error, using defaults")
	}

	// 3. Document
	doc, err := OpenDocument(app.opts.File)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	app.doc = doc

	// 4. Cursor session
	session, err := engine.NewSession(doc, engine.WithLogger(app.logger))
	if err != nil {
		return &InitError{Component: "session", Err: err}
	}
	session.Configure(cfg.Limits())
	app.session = session

	// 5. Dispatcher
	app.clipboard = app.opts.Clipboard
	if app.clipboard == nil {
		app.clipboard = input.DefaultClipboard()
	}
	dopts := []input.Option{
		input.WithLogger(app.logger),
		input.WithClipboard(app.clipboard),
		input.WithNotifier(app.setNotice),
	}
	if km, err := cfg.BuildKeymap(); err == nil {
		dopts = append(dopts, input.WithKeymap(km))
	} else {
		app.log.Warn("keymap invalid, using defaults", zap.Error(err))
	}
	if add, col, err := cfg.MouseModifiers(); err == nil {
		dopts = append(dopts, input.WithMouseModifiers(add, col))
	}
	app.dispatcher = input.NewDispatcher(session, doc, dopts...)

	// 6. Init scripts
	app.loadScripts()

	return nil
}

// loadScripts runs plugins.scripts against the session. Script failures
// are logged and shown, never fatal.
func (app *Application) loadScripts() {
	p := app.config.Plugins
	if !p.Enabled || len(p.Scripts) == 0 {
		return
	}

	state, err := lua.NewState(app.session,
		lua.WithLogger(app.logger),
		lua.WithOutput(app.setNotice),
	)
	if err != nil {
		app.log.Error("lua init failed", zap.Error(err))
		return
	}
	app.scripts = state

	paths := make([]string, len(p.Scripts))
	for i, s := range p.Scripts {
		paths[i] = app.resolvePath(s)
	}
	if err := state.RunScripts(paths); err != nil {
		app.log.Error("init scripts failed", zap.Error(err))
		app.setNotice("script error, see log")
		return
	}
	app.log.Info("init scripts loaded", zap.Int("count", len(paths)))
}

// resolvePath expands ~ and makes p relative to the config file.
func (app *Application) resolvePath(p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(app.opts.ConfigPath), p)
}

// initLogger builds the logger from the logging section. The terminal UI
// owns stderr, so the log goes to a file.
func (app *Application) initLogger() error {
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
		app.closeLog = func() error { return nil }
		app.log = app.logger.With(zap.String("component", "app"))
		return nil
	}

	level := app.config.Logging.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	file := app.config.Logging.File
	if file == "" {
		file = filepath.Join(config.DefaultDir(), "multicaret.log")
	}

	logger, closeFn, err := logging.New(level, file)
	if err != nil {
		return err
	}
	app.logger = logger
	app.closeLog = closeFn
	app.log = logger.With(zap.String("component", "app"))
	return nil
}

func (app *Application) closeLogger() {
	if app.logger != nil {
		_ = app.logger.Sync() // fails on some file descriptors
	}
	if app.closeLog != nil {
		_ = app.closeLog()
	}
}
