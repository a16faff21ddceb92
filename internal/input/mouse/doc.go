// Package mouse provides mouse event types and press/drag/release tracking.
//
// # Core Types
//
// Event represents a mouse input with position, button, modifiers and
// action type:
//
//	event := mouse.Event{
//	    Position:  mouse.Position{X: 10, Y: 4},
//	    Button:    mouse.ButtonLeft,
//	    Modifiers: key.ModCtrl,
//	    Action:    mouse.ActionPress,
//	}
//
// # Drag Tracking
//
// Terminals report only which buttons are currently held. Tracker turns
// that stream of button states into press, drag and release actions and
// remembers where the drag started and which modifiers were held at the
// press:
//
//	var t mouse.Tracker
//	ev := t.Update(mouse.Position{X: 3, Y: 1}, mouse.ButtonLeft, key.ModAlt)
//	// ev.Action == mouse.ActionPress
//	ev = t.Update(mouse.Position{X: 9, Y: 4}, mouse.ButtonLeft, key.ModAlt)
//	// ev.Action == mouse.ActionDrag; t.State().StartPos == {3, 1}
//
// # Thread Safety
//
// Tracker is not safe for concurrent use; it belongs to the event loop.
package mouse
