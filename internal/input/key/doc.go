// Package key provides key event types and binding parsing.
//
// This package defines the types used to describe keyboard input:
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: the Ctrl, Alt, Shift and Meta modifier set
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Bindings in configuration files can be written as:
//
//   - Simple keys: "a", "Enter", "esc"
//   - With modifiers: "ctrl+d", "Alt+Up", "ctrl+shift+p"
//   - Vim-style: "<C-d>", "<A-Up>", "<Esc>"
//
// Parse turns a specification into an Event; Event.Matches compares a
// pressed key against a parsed binding.
package key
