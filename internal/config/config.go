package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/keymap"
)

// Config holds every multicaret setting.
type Config struct {
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Keymap  KeymapConfig  `toml:"keymap" yaml:"keymap"`
	Mouse   MouseConfig   `toml:"mouse" yaml:"mouse"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Plugins PluginsConfig `toml:"plugins" yaml:"plugins"`
}

// EngineConfig holds the cursor engine limits.
type EngineConfig struct {
	// MaxCursors caps the number of simultaneous cursors.
	MaxCursors int `toml:"max_cursors" yaml:"max_cursors"`

	// MaxPatternLength caps the occurrence search pattern, in characters.
	MaxPatternLength int `toml:"max_pattern_length" yaml:"max_pattern_length"`

	// CaseSensitive makes occurrence search match case exactly.
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
}

// KeymapConfig holds the multi-cursor key bindings. Each value is a key
// spec such as "ctrl+d" or "<A-Up>"; an empty value unbinds the action.
type KeymapConfig struct {
	SelectNext  string `toml:"select_next" yaml:"select_next"`
	SelectAll   string `toml:"select_all" yaml:"select_all"`
	Clear       string `toml:"clear" yaml:"clear"`
	Copy        string `toml:"copy" yaml:"copy"`
	Paste       string `toml:"paste" yaml:"paste"`
	CursorAbove string `toml:"cursor_above" yaml:"cursor_above"`
	CursorBelow string `toml:"cursor_below" yaml:"cursor_below"`

	// Bindings are extra bindings added after the named ones.
	Bindings []BindingConfig `toml:"bindings" yaml:"bindings"`
}

// BindingConfig is one extra key binding.
type BindingConfig struct {
	Keys   string `toml:"keys" yaml:"keys"`
	Action string `toml:"action" yaml:"action"`
}

// MouseConfig names the modifiers for mouse gestures, such as "ctrl" or
// "alt+shift".
type MouseConfig struct {
	AddCursor    string `toml:"add_cursor" yaml:"add_cursor"`
	ColumnSelect string `toml:"column_select" yaml:"column_select"`
}

// LoggingConfig controls the log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives the log. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// PluginsConfig lists Lua scripts to run at startup.
type PluginsConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled"`
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxCursors:       engine.DefaultMaxCursors,
			MaxPatternLength: engine.DefaultMaxPatternLength,
		},
		Keymap: KeymapConfig{
			SelectNext:  "ctrl+d",
			SelectAll:   "alt+d",
			Clear:       "esc",
			Copy:        "ctrl+c",
			Paste:       "ctrl+v",
			CursorAbove: "alt+up",
			CursorBelow: "alt+down",
		},
		Mouse: MouseConfig{
			AddCursor:    "ctrl",
			ColumnSelect: "alt",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Plugins: PluginsConfig{
			Enabled: true,
		},
	}
}

// Validate checks every setting and returns all failures joined. Each
// failure matches ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.Engine.MaxCursors <= 0 {
		invalid("engine.max_cursors", "must be positive", c.Engine.MaxCursors)
	}
	if c.Engine.MaxPatternLength <= 0 {
		invalid("engine.max_pattern_length", "must be positive", c.Engine.MaxPatternLength)
	}

	for _, b := range c.Keymap.bindings() {
		if _, err := key.Parse(b.keys); err != nil {
			invalid(b.path, err.Error(), b.keys)
		}
	}
	for i, b := range c.Keymap.Bindings {
		if _, err := key.Parse(b.Keys); err != nil {
			invalid(fmt.Sprintf("keymap.bindings[%d].keys", i), err.Error(), b.Keys)
		}
		if b.Action == "" {
			invalid(fmt.Sprintf("keymap.bindings[%d].action", i), "must not be empty", b.Action)
		}
	}

	addMod, addErr := key.ParseModifiers(c.Mouse.AddCursor)
	if addErr != nil {
		invalid("mouse.add_cursor", addErr.Error(), c.Mouse.AddCursor)
	}
	colMod, colErr := key.ParseModifiers(c.Mouse.ColumnSelect)
	if colErr != nil {
		invalid("mouse.column_select", colErr.Error(), c.Mouse.ColumnSelect)
	}
	if addErr == nil && colErr == nil && addMod != key.ModNone && addMod == colMod {
		invalid("mouse.column_select", "must differ from mouse.add_cursor", c.Mouse.ColumnSelect)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		invalid("logging.level", "unknown level", c.Logging.Level)
	}

	return errors.Join(errs...)
}

// Limits returns the engine limits.
func (c *Config) Limits() engine.Limits {
	return engine.Limits{
		MaxCursors:       c.Engine.MaxCursors,
		MaxPatternLength: c.Engine.MaxPatternLength,
		CaseSensitive:    c.Engine.CaseSensitive,
	}
}

// BuildKeymap builds and parses the key bindings. Extra bindings come
// last and so override the named ones.
func (c *Config) BuildKeymap() (*keymap.ParsedKeymap, error) {
	km := keymap.NewKeymap("config").WithSource("config")
	for _, b := range c.Keymap.bindings() {
		km.Add(b.keys, b.action)
	}
	for _, b := range c.Keymap.Bindings {
		km.Add(b.Keys, b.Action)
	}
	return km.Parse()
}

// MouseModifiers returns the add-cursor and column-select modifiers.
func (c *Config) MouseModifiers() (addCursor, column key.Modifier, err error) {
	if addCursor, err = key.ParseModifiers(c.Mouse.AddCursor); err != nil {
		return 0, 0, fmt.Errorf("mouse.add_cursor: %w", err)
	}
	if column, err = key.ParseModifiers(c.Mouse.ColumnSelect); err != nil {
		return 0, 0, fmt.Errorf("mouse.column_select: %w", err)
	}
	return addCursor, column, nil
}

type namedBinding struct {
	path   string
	keys   string
	action string
}

// bindings lists the named bindings that are set.
func (k KeymapConfig) bindings() []namedBinding {
	all := []namedBinding{
		{"keymap.select_next", k.SelectNext, keymap.ActionSelectNext},
		{"keymap.select_all", k.SelectAll, keymap.ActionSelectAll},
		{"keymap.clear", k.Clear, keymap.ActionClear},
		{"keymap.copy", k.Copy, keymap.ActionCopy},
		{"keymap.paste", k.Paste, keymap.ActionPaste},
		{"keymap.cursor_above", k.CursorAbove, keymap.ActionAddAbove},
		{"keymap.cursor_below", k.CursorBelow, keymap.ActionAddBelow},
	}
	out := all[:0]
	for _, b := range all {
		if b.keys != "" {
			out = append(out, b)
		}
	}
	return out
}
