package mouse

import (
	"fmt"

	"github.com/dshills/multicaret/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
)

var buttonNames = [...]string{"none", "left", "middle", "right", "scroll-up", "scroll-down"}

// String returns a string representation of the button.
func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "none"
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

var actionNames = [...]string{"none", "press", "release", "move", "drag"}

// String returns a string representation of the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "none"
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// String returns "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of mouse action.
	Action Action
}

// IsPress returns true for a press of button b.
func (e Event) IsPress(b Button) bool {
	return e.Action == ActionPress && e.Button == b
}

// String returns a compact description such as "ctrl+left press (3,4)".
func (e Event) String() string {
	prefix := ""
	if !e.Modifiers.IsEmpty() {
		prefix = e.Modifiers.String() + "+"
	}
	return fmt.Sprintf("%s%s %s %s", prefix, e.Button, e.Action, e.Position)
}
