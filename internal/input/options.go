package input

import (
	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/keymap"
)

// Notifier receives short user-facing messages such as "cursor limit
// reached".
type Notifier func(msg string)

// Messages passed to the Notifier.
const (
	NoticeAllSelected = "all occurrences already selected"
	NoticeCursorLimit = "cursor limit reached"
	NoticeNoWord      = "no word under cursor"
	NoticePattern     = "selection too long to search"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithKeymap sets the key bindings.
func WithKeymap(km *keymap.ParsedKeymap) Option {
	return func(d *Dispatcher) {
		if km != nil {
			d.keymap = km
		}
	}
}

// WithClipboard sets the clipboard used for copy and paste.
func WithClipboard(cb Clipboard) Option {
	return func(d *Dispatcher) {
		if cb != nil {
			d.clipboard = cb
		}
	}
}

// WithNotifier sets the callback for user-facing messages.
func WithNotifier(fn Notifier) Option {
	return func(d *Dispatcher) {
		d.notify = fn
	}
}

// WithMouseModifiers sets the modifiers that turn a click into an
// add-cursor click and a drag into a column selection.
func WithMouseModifiers(addCursor, column key.Modifier) Option {
	return func(d *Dispatcher) {
		d.addCursorMod = addCursor
		d.columnMod = column
	}
}
