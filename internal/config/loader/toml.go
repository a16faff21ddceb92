package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a new TOML loader.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{fs: DefaultFS()}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem) *TOMLLoader {
	return &TOMLLoader{fs: fs}
}

// LoadFrom decodes the TOML file at path into out.
func (l *TOMLLoader) LoadFrom(path string, out any) (bool, error) {
	data, found, err := readFile(l.fs, path)
	if err != nil || !found {
		return found, err
	}
	return true, l.parse(path, data, out)
}

// LoadFromReader decodes TOML from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data, out)
}

// parse decodes TOML data, rejecting keys that out has no field for.
func (l *TOMLLoader) parse(source string, data []byte, out any) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var decErr *toml.DecodeError
		var strictErr *toml.StrictMissingError
		switch {
		case errors.As(err, &decErr):
			pe.Line, pe.Column = decErr.Position()
		case errors.As(err, &strictErr) && len(strictErr.Errors) > 0:
			pe.Line, pe.Column = strictErr.Errors[0].Position()
			pe.Message = "unknown key " + keyPath(strictErr.Errors[0].Key())
		}
		return pe
	}
	return nil
}

func keyPath(k toml.Key) string {
	s := ""
	for i, part := range k {
		if i > 0 {
			s += "."
		}
		s += part
	}
	return s
}
