package key

import "testing"

func TestEventIsChar(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"letter", NewRuneEvent('a', ModNone), true},
		{"shifted letter", NewRuneEvent('A', ModShift), true},
		{"ctrl letter", NewRuneEvent('a', ModCtrl), false},
		{"alt letter", NewRuneEvent('a', ModAlt), false},
		{"control rune", NewRuneEvent('\x01', ModNone), false},
		{"special", NewSpecialEvent(KeyEnter, ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsChar(); got != tt.want {
				t.Errorf("IsChar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('d', ModCtrl), "ctrl+d"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent(' ', ModNone), "space"},
		{NewSpecialEvent(KeyUp, ModAlt), "alt+up"},
		{NewSpecialEvent(KeyTab, ModShift), "shift+tab"},
		{NewSpecialEvent(KeyEscape, ModNone), "esc"},
		{NewSpecialEvent(KeyF5, ModCtrl), "ctrl+f5"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := Parse(tt.want)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.want, err)
			continue
		}
		if !tt.event.Matches(back) {
			t.Errorf("Parse(%q) = %#v, does not match %#v", tt.want, back, tt.event)
		}
	}
}

func TestEventMatches(t *testing.T) {
	ctrlD := MustParse("ctrl+d")

	tests := []struct {
		name    string
		event   Event
		binding Event
		want    bool
	}{
		{"exact", NewRuneEvent('d', ModCtrl), ctrlD, true},
		{"ctrl ignores case", NewRuneEvent('D', ModCtrl|ModShift), ctrlD, true},
		{"missing ctrl", NewRuneEvent('d', ModNone), ctrlD, false},
		{"extra alt", NewRuneEvent('d', ModCtrl|ModAlt), ctrlD, false},
		{"plain char", NewRuneEvent('x', ModNone), MustParse("x"), true},
		{"plain char case", NewRuneEvent('X', ModShift), MustParse("x"), false},
		{"special", NewSpecialEvent(KeyUp, ModAlt), MustParse("alt+up"), true},
		{"special modifiers differ", NewSpecialEvent(KeyUp, ModNone), MustParse("alt+up"), false},
		{"different key", NewSpecialEvent(KeyDown, ModAlt), MustParse("alt+up"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Matches(tt.binding); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventIsEscape(t *testing.T) {
	if !NewSpecialEvent(KeyEscape, ModNone).IsEscape() {
		t.Error("plain Escape should be Escape")
	}
	if NewSpecialEvent(KeyEscape, ModAlt).IsEscape() {
		t.Error("Alt+Escape should not be Escape")
	}
}
