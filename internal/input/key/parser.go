package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "esc", "Tab", "Backspace", "Space", "F5"
//   - With modifiers: "ctrl+d", "Alt+Up", "Ctrl+Shift+P"
//   - Vim-style: "<C-d>", "<A-Up>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	// "+" alone is the plus key; "ctrl++" is Ctrl with plus.
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// parseVimStyle parses Vim-style notation like "C-d", "A-Up", "CR".
func parseVimStyle(inner string) (Event, error) {
	parts := strings.Split(strings.TrimSpace(inner), "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a", "m":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "d":
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKeyWithModifiers(keyPart, mods)
}

// parseModifierStyle parses "ctrl+d" style notation.
func parseModifierStyle(spec string) (Event, error) {
	var modPart, keyPart string
	if strings.HasSuffix(spec, "++") {
		modPart, keyPart = spec[:len(spec)-2], "+"
	} else {
		i := strings.LastIndex(spec, "+")
		modPart, keyPart = spec[:i], spec[i+1:]
	}

	mods, err := ParseModifiers(modPart)
	if err != nil {
		return Event{}, err
	}
	if mods == ModNone {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

// parseKeyWithModifiers parses a key part with already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "plus":
		return NewRuneEvent('+', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	r := runes[0]
	switch {
	case mods.HasCtrl() || mods.HasAlt() || mods.HasMeta():
		r = unicode.ToLower(r)
	case unicode.IsUpper(r):
		// Uppercase letters have implicit Shift
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
