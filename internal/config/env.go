package config

import (
	"strconv"
	"strings"
)

// LookupFunc returns the value of an environment variable.
type LookupFunc func(name string) (string, bool)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel      = "MULTICARET_LOG_LEVEL"
	EnvLogFile       = "MULTICARET_LOG_FILE"
	EnvMaxCursors    = "MULTICARET_MAX_CURSORS"
	EnvCaseSensitive = "MULTICARET_CASE_SENSITIVE"
)

// ApplyEnv overrides cfg with MULTICARET_* variables. Empty values are
// treated as unset.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v, ok := get(EnvLogFile); ok {
		cfg.Logging.File = v
	}
	if v, ok := get(EnvMaxCursors); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Path: EnvMaxCursors, Message: "not an integer", Value: v}
		}
		cfg.Engine.MaxCursors = n
	}
	if v, ok := get(EnvCaseSensitive); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Path: EnvCaseSensitive, Message: "not a boolean", Value: v}
		}
		cfg.Engine.CaseSensitive = b
	}
	return nil
}
