package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/multicaret/internal/input/key"
)

func TestNewKeymap(t *testing.T) {
	km := NewKeymap("test")

	if km.Name != "test" {
		t.Errorf("Name = %q, want %q", km.Name, "test")
	}
	if len(km.Bindings) != 0 {
		t.Errorf("Bindings should be empty, got %d", len(km.Bindings))
	}
}

func TestKeymapBuilders(t *testing.T) {
	km := NewKeymap("test").
		WithSource("config").
		Add("ctrl+d", ActionSelectNext).
		Add("alt+d", ActionSelectAll)

	if km.Source != "config" {
		t.Errorf("Source = %q, want %q", km.Source, "config")
	}
	if len(km.Bindings) != 2 {
		t.Fatalf("Bindings = %d, want 2", len(km.Bindings))
	}
	if km.Bindings[1] != (Binding{Keys: "alt+d", Action: ActionSelectAll}) {
		t.Errorf("Bindings[1] = %+v", km.Bindings[1])
	}
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		action  string
		wantErr bool
	}{
		{"valid", "ctrl+d", ActionSelectNext, false},
		{"vim style", "<A-Up>", ActionAddAbove, false},
		{"empty keys", "", ActionClear, true},
		{"empty action", "esc", "", true},
		{"bad modifier", "hyper+d", ActionSelectNext, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewKeymap("t").Add(tt.keys, tt.action).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseWrapsKeyErrors(t *testing.T) {
	_, err := NewKeymap("t").Add("ctrl+", ActionCopy).Parse()
	if !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("Parse() error = %v, want ErrInvalidSpec", err)
	}
}

func TestDefaultLookup(t *testing.T) {
	parsed, err := Default().Parse()
	if err != nil {
		t.Fatalf("Default().Parse() error = %v", err)
	}

	tests := []struct {
		event  key.Event
		action string
	}{
		{key.NewRuneEvent('d', key.ModCtrl), ActionSelectNext},
		{key.NewRuneEvent('D', key.ModCtrl|key.ModShift), ActionSelectNext},
		{key.NewRuneEvent('d', key.ModAlt), ActionSelectAll},
		{key.NewSpecialEvent(key.KeyEscape, key.ModNone), ActionClear},
		{key.NewRuneEvent('c', key.ModCtrl), ActionCopy},
		{key.NewRuneEvent('v', key.ModCtrl), ActionPaste},
		{key.NewSpecialEvent(key.KeyUp, key.ModAlt), ActionAddAbove},
		{key.NewSpecialEvent(key.KeyDown, key.ModAlt), ActionAddBelow},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			b, ok := parsed.Lookup(tt.event)
			if !ok {
				t.Fatalf("Lookup(%s) found nothing", tt.event)
			}
			if b.Action != tt.action {
				t.Errorf("Lookup(%s) = %q, want %q", tt.event, b.Action, tt.action)
			}
		})
	}
}

func TestLookupMisses(t *testing.T) {
	parsed, err := Default().Parse()
	if err != nil {
		t.Fatal(err)
	}
	misses := []key.Event{
		key.NewRuneEvent('d', key.ModNone),
		key.NewSpecialEvent(key.KeyUp, key.ModNone),
		key.NewSpecialEvent(key.KeyEscape, key.ModShift),
	}
	for _, ev := range misses {
		if b, ok := parsed.Lookup(ev); ok {
			t.Errorf("Lookup(%s) = %q, want no match", ev, b.Action)
		}
	}

	var nilKeymap *ParsedKeymap
	if _, ok := nilKeymap.Lookup(key.NewRuneEvent('d', key.ModCtrl)); ok {
		t.Error("nil keymap matched")
	}
}

func TestLaterBindingWins(t *testing.T) {
	km := Default().Add("ctrl+d", ActionSelectAll)
	parsed, err := km.Parse()
	if err != nil {
		t.Fatal(err)
	}
	b, ok := parsed.Lookup(key.NewRuneEvent('d', key.ModCtrl))
	if !ok || b.Action != ActionSelectAll {
		t.Errorf("Lookup = %q, %v; want %q", b.Action, ok, ActionSelectAll)
	}
}
