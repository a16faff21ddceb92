package input

import (
	"github.com/atotto/clipboard"
)

// Clipboard reads and writes text shared with other programs.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard contents.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard contents.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a system clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// MemoryClipboard keeps clipboard contents in process. It is the fallback
// when no system clipboard is available.
type MemoryClipboard struct {
	text string
}

// ReadAll returns the stored text.
func (m *MemoryClipboard) ReadAll() (string, error) {
	return m.text, nil
}

// WriteAll stores text.
func (m *MemoryClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

// DefaultClipboard returns the system clipboard when one is available and
// an in-process clipboard otherwise.
func DefaultClipboard() Clipboard {
	sys := SystemClipboard{}
	if sys.Available() {
		return sys
	}
	return &MemoryClipboard{}
}
