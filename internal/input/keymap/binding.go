package keymap

import (
	"github.com/dshills/multicaret/internal/input/key"
)

// Binding maps a key spec such as "ctrl+d", "<C-d>" or "alt+up" to an
// action name such as "cursors.selectNext".
type Binding struct {
	Keys        string
	Action      string
	Description string
}

// ParsedBinding is a binding with its key spec already parsed.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Match reports whether ev triggers the binding.
func (pb *ParsedBinding) Match(ev key.Event) bool {
	return pb != nil && ev.Matches(pb.Event)
}
