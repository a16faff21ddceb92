package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/multicaret/internal/engine/cursor"
)

// Default configuration values.
const (
	DefaultMaxCursors       = cursor.DefaultMaxCursors
	DefaultMaxPatternLength = 256
)

// Limits holds the tunables a Session can change while running.
type Limits struct {
	MaxCursors       int
	MaxPatternLength int
	CaseSensitive    bool
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		MaxCursors:       DefaultMaxCursors,
		MaxPatternLength: DefaultMaxPatternLength,
	}
}

// Option configures a Session during creation.
type Option func(*Session)

// WithLogger sets the logger. Sessions log at debug level only.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxCursors sets the maximum number of cursors.
func WithMaxCursors(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.limits.MaxCursors = max
		}
	}
}

// WithMaxPatternLength sets the occurrence search pattern limit in runes.
func WithMaxPatternLength(max int) Option {
	return func(s *Session) {
		if max > 0 {
			s.limits.MaxPatternLength = max
		}
	}
}

// WithCaseSensitive makes occurrence search match case exactly.
func WithCaseSensitive(on bool) Option {
	return func(s *Session) {
		s.limits.CaseSensitive = on
	}
}
