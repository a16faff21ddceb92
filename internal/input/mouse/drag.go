package mouse

import "github.com/dshills/multicaret/internal/input/key"

// Tracker derives press, drag and release actions from successive button
// states and tracks the drag in progress.
type Tracker struct {
	// active indicates a button is held.
	active bool

	// moved indicates the pointer left the press position while held.
	moved bool

	// button is the mouse button being held.
	button Button

	// mods are the modifiers held when the button went down.
	mods key.Modifier

	// startPos is where the drag started.
	startPos Position

	// currentPos is the current drag position.
	currentPos Position
}

// Update records the pointer at pos with held buttons (ButtonNone when
// nothing is held) and returns the resulting event. Scroll buttons never
// start a drag. A release reports the button that was held.
func (t *Tracker) Update(pos Position, held Button, mods key.Modifier) Event {
	ev := Event{Position: pos, Button: held, Modifiers: mods}

	switch {
	case held.IsScroll():
		ev.Action = ActionPress
	case held == ButtonNone && t.active:
		ev.Action = ActionRelease
		ev.Button = t.button
		t.end()
	case held == ButtonNone:
		ev.Action = ActionMove
	case !t.active || held != t.button:
		ev.Action = ActionPress
		t.start(pos, held, mods)
	default:
		ev.Action = ActionDrag
		t.update(pos)
	}
	return ev
}

// start begins a new drag operation.
func (t *Tracker) start(pos Position, button Button, mods key.Modifier) {
	t.active = true
	t.moved = false
	t.button = button
	t.mods = mods
	t.startPos = pos
	t.currentPos = pos
}

// update updates the current drag position.
func (t *Tracker) update(pos Position) {
	if t.active {
		if pos != t.startPos {
			t.moved = true
		}
		t.currentPos = pos
	}
}

// end ends the current drag operation.
func (t *Tracker) end() {
	*t = Tracker{}
}

// Reset forgets any drag in progress.
func (t *Tracker) Reset() {
	t.end()
}

// DragState represents the current state of a drag operation.
type DragState struct {
	// Active indicates a button is held.
	Active bool

	// Moved indicates the pointer moved since the press.
	Moved bool

	// Button is the mouse button being held.
	Button Button

	// Modifiers were held when the drag started.
	Modifiers key.Modifier

	// StartPos is where the drag started.
	StartPos Position

	// CurrentPos is the current drag position.
	CurrentPos Position
}

// State returns the current drag state.
func (t *Tracker) State() DragState {
	return DragState{
		Active:     t.active,
		Moved:      t.moved,
		Button:     t.button,
		Modifiers:  t.mods,
		StartPos:   t.startPos,
		CurrentPos: t.currentPos,
	}
}

// Delta returns the distance dragged from start.
func (t *Tracker) Delta() Position {
	return Position{
		X: t.currentPos.X - t.startPos.X,
		Y: t.currentPos.Y - t.startPos.Y,
	}
}
