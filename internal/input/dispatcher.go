package input

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/engine/cursor"
	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/keymap"
	"github.com/dshills/multicaret/internal/input/mouse"
)

// Dispatcher decides which input events the multi-cursor engine handles.
// Every Process method reports whether the event was consumed; unconsumed
// events belong to the host's single-cursor editing.
type Dispatcher struct {
	session   *engine.Session
	locator   Locator
	keymap    *keymap.ParsedKeymap
	clipboard Clipboard
	notify    Notifier
	logger    *zap.Logger
	stats     Stats

	addCursorMod key.Modifier
	columnMod    key.Modifier

	// column drag in progress
	columnDrag bool
	anchorLine int
	anchorCol  int
}

// NewDispatcher creates a dispatcher for session. locator may be nil when
// the host has no mouse support.
func NewDispatcher(session *engine.Session, locator Locator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		session:      session,
		locator:      locator,
		clipboard:    &MemoryClipboard{},
		logger:       zap.NewNop(),
		addCursorMod: key.ModCtrl,
		columnMod:    key.ModAlt,
	}
	if parsed, err := keymap.Default().Parse(); err == nil {
		d.keymap = parsed
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(zap.String("component", "input"))
	return d
}

// SetKeymap replaces the key bindings.
func (d *Dispatcher) SetKeymap(km *keymap.ParsedKeymap) {
	if km != nil {
		d.keymap = km
	}
}

// SetMouseModifiers replaces the add-cursor and column-select modifiers.
func (d *Dispatcher) SetMouseModifiers(addCursor, column key.Modifier) {
	d.addCursorMod = addCursor
	d.columnMod = column
}

// Cursors returns a read-only view of the cursors for rendering.
func (d *Dispatcher) Cursors() cursor.View {
	return d.session.View()
}

// Session returns the session the dispatcher drives.
func (d *Dispatcher) Session() *engine.Session {
	return d.session
}

// Stats returns the event counters.
func (d *Dispatcher) Stats() *Stats {
	return &d.stats
}

// ProcessKey handles a key press.
func (d *Dispatcher) ProcessKey(ev key.Event) bool {
	handled := d.processKey(ev)
	d.stats.recordKey(handled)
	return handled
}

func (d *Dispatcher) processKey(ev key.Event) bool {
	if b, ok := d.keymap.Lookup(ev); ok {
		if d.runAction(b.Action) {
			return true
		}
	}

	if !d.session.Active() {
		return false
	}

	if ev.IsChar() {
		d.edit("type", d.session.Type(string(ev.Rune)))
		return true
	}

	switch ev.Key {
	case key.KeyLeft:
		return d.move(ev, engine.MoveLeft)
	case key.KeyRight:
		return d.move(ev, engine.MoveRight)
	case key.KeyUp:
		return d.move(ev, engine.MoveUp)
	case key.KeyDown:
		return d.move(ev, engine.MoveDown)
	case key.KeyHome:
		return d.move(ev, engine.MoveHome)
	case key.KeyEnd:
		return d.move(ev, engine.MoveEnd)
	}

	if ev.Modifiers != key.ModNone {
		return false
	}
	switch ev.Key {
	case key.KeyEnter:
		d.edit("enter", d.session.Type("\n"))
	case key.KeyTab:
		d.edit("tab", d.session.Type("\t"))
	case key.KeyBackspace:
		d.edit("backspace", d.session.Delete(engine.Backward))
	case key.KeyDelete:
		d.edit("delete", d.session.Delete(engine.Forward))
	default:
		return false
	}
	return true
}

// move applies a motion to every cursor. Motions with Ctrl, Alt or Meta
// are left to the host.
func (d *Dispatcher) move(ev key.Event, m engine.Motion) bool {
	if ev.Modifiers.Without(key.ModShift) != key.ModNone {
		return false
	}
	d.edit(m.String(), d.session.Move(m))
	return true
}

// runAction executes a bound action and reports whether it consumed the
// key. Actions that only make sense with several cursors decline while
// inactive.
func (d *Dispatcher) runAction(action string) bool {
	active := d.session.Active()

	switch action {
	case keymap.ActionSelectNext:
		if !active {
			d.session.SyncFromNative()
		}
		_, err := d.session.SelectNext()
		d.report(err)
	case keymap.ActionSelectAll:
		if !active {
			d.session.SyncFromNative()
		}
		_, err := d.session.SelectAll()
		d.report(err)
	case keymap.ActionAddAbove, keymap.ActionAddBelow:
		_, err := d.session.AddVertical(action == keymap.ActionAddAbove)
		d.report(err)
	case keymap.ActionClear:
		if !active {
			return false
		}
		d.session.Clear()
	case keymap.ActionCopy:
		if !active {
			return false
		}
		d.copy()
	case keymap.ActionPaste:
		if !active {
			return false
		}
		text, err := d.clipboard.ReadAll()
		if err != nil {
			d.logger.Warn("clipboard read failed", zap.Error(err))
			return true
		}
		d.paste(text)
	default:
		d.logger.Debug("unknown action", zap.String("action", action))
		return false
	}
	return true
}

// report turns engine failures into notices.
func (d *Dispatcher) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrAllSelected), errors.Is(err, engine.ErrNoOccurrence):
		d.notice(NoticeAllSelected)
	case errors.Is(err, engine.ErrCursorLimit):
		d.notice(NoticeCursorLimit)
	case errors.Is(err, engine.ErrNoWord):
		d.notice(NoticeNoWord)
	case errors.Is(err, engine.ErrPatternTooLong):
		d.notice(NoticePattern)
	default:
		d.logger.Debug("cursor operation failed", zap.Error(err))
	}
}

func (d *Dispatcher) notice(msg string) {
	d.stats.notices.Add(1)
	if d.notify != nil {
		d.notify(msg)
	}
}

func (d *Dispatcher) edit(op string, err error) {
	if err != nil && !errors.Is(err, engine.ErrNotActive) {
		d.logger.Debug("edit failed", zap.String("op", op), zap.Error(err))
	}
}

// copy places every selection on the clipboard, one per line.
func (d *Dispatcher) copy() {
	text := strings.Join(d.session.SelectedTexts(), "\n")
	if err := d.clipboard.WriteAll(text); err != nil {
		d.logger.Warn("clipboard write failed", zap.Error(err))
	}
}

// ProcessPaste inserts pasted text at every cursor. When the text has one
// line per cursor, line i goes to cursor i.
func (d *Dispatcher) ProcessPaste(text string) bool {
	if !d.session.Active() {
		return false
	}
	d.stats.pastes.Add(1)
	d.paste(text)
	return true
}

func (d *Dispatcher) paste(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) > 1 && len(lines) == d.session.Cursors().Len() {
		d.edit("paste", d.session.TypeEach(lines))
		return
	}
	d.edit("paste", d.session.Type(text))
}

// ProcessMouse handles a mouse event.
func (d *Dispatcher) ProcessMouse(ev mouse.Event) bool {
	handled := d.processMouse(ev)
	d.stats.recordMouse(handled)
	return handled
}

func (d *Dispatcher) processMouse(ev mouse.Event) bool {
	if d.locator == nil || ev.Button.IsScroll() {
		return false
	}

	switch ev.Action {
	case mouse.ActionPress:
		if ev.Button != mouse.ButtonLeft {
			return false
		}
		return d.press(ev)
	case mouse.ActionDrag:
		if !d.columnDrag {
			return false
		}
		line, col, ok := d.locator.LineColAt(ev.Position)
		if !ok {
			return true
		}
		_, err := d.session.ColumnSelect(d.anchorLine, d.anchorCol, line, col)
		d.report(err)
		return true
	case mouse.ActionRelease:
		if !d.columnDrag {
			return false
		}
		d.columnDrag = false
		d.session.EndColumn()
		return true
	}
	return false
}

func (d *Dispatcher) press(ev mouse.Event) bool {
	d.columnDrag = false

	if d.columnMod != key.ModNone && ev.Modifiers.Has(d.columnMod) {
		line, col, ok := d.locator.LineColAt(ev.Position)
		if !ok {
			return false
		}
		d.columnDrag = true
		d.anchorLine, d.anchorCol = line, col
		return true
	}

	off, ok := d.locator.OffsetAt(ev.Position)
	if !ok {
		return false
	}

	if d.addCursorMod != key.ModNone && ev.Modifiers.Has(d.addCursorMod) {
		if !d.session.ToggleCursor(off) && d.session.Cursors().Full() {
			d.notice(NoticeCursorLimit)
		}
		return true
	}

	// A plain click leaves multi-cursor mode and still reaches the host.
	if d.session.Active() {
		d.session.Clear()
	}
	return false
}
