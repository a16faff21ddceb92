package config

import (
	"github.com/dshills/multicaret/internal/config/watcher"
)

// Watcher reloads a config file when it changes.
type Watcher struct {
	path string
	w    *watcher.Watcher
}

// Watch starts watching path. onChange receives every successfully loaded
// and validated Config; onError receives load and validation failures.
// Both run on the watcher's goroutine.
func Watch(path string, onChange func(*Config), onError func(error), opts ...watcher.Option) (*Watcher, error) {
	cw := &Watcher{path: path}
	reload := func(ev watcher.Event) {
		if ev.Op == watcher.Remove || ev.Op == watcher.Rename {
			return
		}
		cfg, err := Load(cw.path)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onChange != nil {
			onChange(cfg)
		}
	}

	opts = append([]watcher.Option{watcher.WithHandler(reload), watcher.WithErrorHandler(onError)}, opts...)
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	cw.w = w
	w.Start()
	return cw, nil
}

// Path returns the watched file.
func (cw *Watcher) Path() string {
	return cw.path
}

// Close stops watching.
func (cw *Watcher) Close() error {
	return cw.w.Close()
}
