package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/mouse"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// owned by the PollEvent goroutine
	tracker mouse.Tracker
	pasting bool
	paste   strings.Builder
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal backend over screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, r rune, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, r, nil, style)
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Sync()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func (t *Terminal) Interrupt(data any) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data)) // best-effort; event queue may be full
}

// PollEvent waits for the next event the editor cares about. Keys inside a
// bracketed paste are collected into one EventPaste.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		if out, ok := t.convertEvent(ev); ok {
			return out
		}
	}
}

// convertEvent converts a tcell event. ok is false for events that are
// swallowed.
func (t *Terminal) convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if t.pasting {
			appendPaste(&t.paste, e)
			return Event{}, false
		}
		k, ok := ConvertKey(e)
		if !ok {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: k}, true

	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return Event{}, false
		}
		t.pasting = false
		return Event{Type: EventPaste, Text: t.paste.String()}, true

	case *tcell.EventMouse:
		button, ok := ConvertButtons(e.Buttons())
		if !ok {
			return Event{}, false
		}
		x, y := e.Position()
		me := t.tracker.Update(mouse.Position{X: x, Y: y}, button, ConvertModifiers(e.Modifiers()))
		if me.Action == mouse.ActionMove {
			return Event{}, false
		}
		return Event{Type: EventMouse, Mouse: me}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}, true
	}
	return Event{}, false
}

// appendPaste adds one pasted key to b.
func appendPaste(b *strings.Builder, e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		b.WriteRune(e.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		b.WriteByte('\n')
	case tcell.KeyTab:
		b.WriteByte('\t')
	}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// ConvertKey converts a tcell key event. Control letters become the letter
// with ModCtrl, so they match bindings such as "ctrl+d". Backspace, Tab,
// Enter and Escape keep their own keys even though tcell gives them the
// same codes as Ctrl+H, Ctrl+I, Ctrl+M and Ctrl+[.
func ConvertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := ConvertModifiers(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		return key.NewRuneEvent(e.Rune(), mods), true
	}
	if k == tcell.KeyBacktab {
		return key.NewSpecialEvent(key.KeyTab, mods|key.ModShift), true
	}
	if special, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(special, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods|key.ModCtrl), true
	}
	if k == tcell.KeyCtrlSpace {
		return key.NewRuneEvent(' ', mods|key.ModCtrl), true
	}
	return key.Event{}, false
}

// ConvertModifiers converts a tcell modifier mask.
func ConvertModifiers(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// ConvertButtons converts a tcell button mask to the button held. tcell
// numbers the right button 2 and the middle button 3. ok is false for
// horizontal wheel events.
func ConvertButtons(b tcell.ButtonMask) (mouse.Button, bool) {
	switch {
	case b&tcell.WheelUp != 0:
		return mouse.ButtonScrollUp, true
	case b&tcell.WheelDown != 0:
		return mouse.ButtonScrollDown, true
	case b&(tcell.WheelLeft|tcell.WheelRight) != 0:
		return mouse.ButtonNone, false
	case b&tcell.Button1 != 0:
		return mouse.ButtonLeft, true
	case b&tcell.Button3 != 0:
		return mouse.ButtonMiddle, true
	case b&tcell.Button2 != 0:
		return mouse.ButtonRight, true
	default:
		return mouse.ButtonNone, true
	}
}
