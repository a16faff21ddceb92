package app

import (
	"go.uber.org/zap"
)

// Save writes the document to its file.
func (app *Application) Save() error {
	if err := app.doc.Save(); err != nil {
		app.log.Error("save failed", zap.String("path", app.doc.Path), zap.Error(err))
		return err
	}
	app.log.Info("saved",
		zap.String("path", app.doc.Path),
		zap.Int("bytes", app.doc.Len()),
	)
	return nil
}

// Shutdown stops the watcher, closes the script state and restores the
// terminal. It is safe to call more than once and from another goroutine;
// a running event loop sees the backend close and returns.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.log.Warn("closing config watcher", zap.Error(err))
			}
		}
		if app.scripts != nil {
			if err := app.scripts.Close(); err != nil {
				app.log.Warn("closing lua state", zap.Error(err))
			}
		}
		if app.backend != nil {
			app.backend.Shutdown()
		}
		app.log.Info("editor stopped")
		app.closeLogger()
	})
}
