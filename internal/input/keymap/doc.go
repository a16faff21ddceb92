// Package keymap maps key presses to multi-cursor actions.
//
// # Key Concepts
//
// Keymap: A named collection of bindings.
//
// Binding: Maps a key spec such as "ctrl+d" or "<A-Up>" to an action name.
//
// ParsedKeymap: A keymap whose key specs have been parsed into key.Event
// values, ready for lookup.
//
// # Binding Precedence
//
// When two bindings match the same key press, the one added later wins,
// so user bindings appended after the defaults override them.
//
// # Usage
//
//	km := keymap.Default()
//	km.Add("ctrl+g", keymap.ActionSelectNext)
//	parsed, err := km.Parse()
//	if err != nil {
//	    return err
//	}
//	if b, ok := parsed.Lookup(ev); ok {
//	    // Execute b.Action
//	}
package keymap
