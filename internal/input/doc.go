// Package input routes key, mouse and paste events to a multi-cursor
// editing session.
//
// The Dispatcher decides, event by event, whether the multi-cursor engine
// handles an input or whether it falls through to the host's own
// single-cursor editing. It has two effective states:
//
//   - Inactive (one cursor): only the occurrence gestures, add-cursor
//     gestures and column drags are intercepted. Arrows, typing, Backspace
//     and plain clicks belong to the host.
//   - Active (several cursors): navigation, typing, Enter, Tab, Backspace,
//     Delete, copy and paste apply to every cursor. Escape or a plain click
//     returns to a single cursor; the click is then passed on so the host
//     still moves its caret.
//
// # Usage
//
//	d := input.NewDispatcher(session, view,
//	    input.WithKeymap(parsed),
//	    input.WithClipboard(input.SystemClipboard{}),
//	    input.WithNotifier(status.Show),
//	)
//	if !d.ProcessKey(ev) {
//	    host.HandleKey(ev)
//	}
//
// # Thread Safety
//
// A Dispatcher belongs to the goroutine that delivers input events. Only
// Stats may be read from other goroutines.
package input
