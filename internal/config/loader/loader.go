// Package loader decodes configuration files.
//
// TOML and YAML are supported; the format is chosen from the file
// extension. Decoding goes into a caller-supplied struct that already
// holds defaults, so keys missing from the file keep their default value.
// Unknown keys are rejected.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for a file extension with no decoder.
var ErrUnknownFormat = errors.New("unknown config format")

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format identifies a configuration file format.
type Format int

const (
	// FormatTOML is TOML (.toml).
	FormatTOML Format = iota
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// FileLoader decodes a configuration file into a struct.
type FileLoader interface {
	// LoadFrom decodes path into out. found is false, with a nil error,
	// when the file doesn't exist.
	LoadFrom(path string, out any) (found bool, err error)
}

// ForPath returns the loader for path's format.
func ForPath(fs FileSystem, path string) (FileLoader, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatYAML {
		return NewYAMLLoaderWithFS(fs), nil
	}
	return NewTOMLLoaderWithFS(fs), nil
}

// Load decodes the file at path into out using the OS file system.
func Load(path string, out any) (bool, error) {
	l, err := ForPath(DefaultFS(), path)
	if err != nil {
		return false, err
	}
	return l.LoadFrom(path, out)
}

// readFile reads path, mapping a missing file to found == false.
func readFile(fs FileSystem, path string) ([]byte, bool, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil // File doesn't exist, not an error
		}
		return nil, false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, true, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
