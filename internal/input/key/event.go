package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without
// Ctrl, Alt or Meta.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.IsModified()
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// String returns the canonical binding form, e.g. "ctrl+d" or "alt+up".
// The result parses back to an equal event.
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "ctrl")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "alt")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "meta")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "shift")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, strings.ToLower(e.Key.String()))
	}
	return strings.Join(parts, "+")
}

// Matches reports whether the pressed key e triggers binding b.
// Shift is ignored for characters, and Ctrl or Alt letter bindings match
// regardless of case.
func (e Event) Matches(b Event) bool {
	if e.Key != b.Key {
		return false
	}
	if e.Key != KeyRune {
		return e.Modifiers == b.Modifiers
	}
	const significant = ModCtrl | ModAlt | ModMeta
	if e.Modifiers&significant != b.Modifiers&significant {
		return false
	}
	if e.Modifiers&significant != 0 {
		return unicode.ToLower(e.Rune) == unicode.ToLower(b.Rune)
	}
	return e.Rune == b.Rune
}

// IsEscape returns true if this is the Escape key (with no modifiers).
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
