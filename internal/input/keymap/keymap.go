package keymap

import (
	"fmt"

	"github.com/dshills/multicaret/internal/input/key"
)

// Keymap is an ordered list of bindings. Later bindings shadow earlier
// ones for the same key.
type Keymap struct {
	Name     string
	Source   string // "default", "config", ...
	Bindings []Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// WithSource records where the keymap came from.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add appends a binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with pre-parsed key events.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding: b,
			Event:   ev,
		})
	}

	return parsed, nil
}

// Lookup returns the binding triggered by ev. Later bindings take
// precedence over earlier ones.
func (pk *ParsedKeymap) Lookup(ev key.Event) (Binding, bool) {
	if pk == nil {
		return Binding{}, false
	}
	for i := len(pk.ParsedBindings) - 1; i >= 0; i-- {
		if pk.ParsedBindings[i].Match(ev) {
			return pk.ParsedBindings[i].Binding, true
		}
	}
	return Binding{}, false
}
