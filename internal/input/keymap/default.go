package keymap

// Actions understood by the input dispatcher.
const (
	ActionSelectNext = "cursors.selectNext"
	ActionSelectAll  = "cursors.selectAll"
	ActionClear      = "cursors.clear"
	ActionAddAbove   = "cursors.addAbove"
	ActionAddBelow   = "cursors.addBelow"
	ActionCopy       = "clipboard.copy"
	ActionPaste      = "clipboard.paste"
)

// Default returns the default multi-cursor bindings.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "ctrl+d", Action: ActionSelectNext, Description: "Select next occurrence"},
			{Keys: "alt+d", Action: ActionSelectAll, Description: "Select all occurrences"},
			{Keys: "esc", Action: ActionClear, Description: "Return to a single cursor"},
			{Keys: "ctrl+c", Action: ActionCopy, Description: "Copy every selection"},
			{Keys: "ctrl+v", Action: ActionPaste, Description: "Paste at every cursor"},
			{Keys: "alt+up", Action: ActionAddAbove, Description: "Add cursor above"},
			{Keys: "alt+down", Action: ActionAddBelow, Description: "Add cursor below"},
		},
	}
}
