package buffer

// Option configures a Buffer.
type Option func(*Buffer)

// WithRedrawFunc sets a callback invoked on every redraw the buffer performs.
func WithRedrawFunc(fn func()) Option {
	return func(b *Buffer) {
		b.onRedraw = fn
	}
}

// WithChangeFunc sets a callback invoked for every applied change.
// Changes made inside a batch are delivered when the batch closes.
func WithChangeFunc(fn func(Change)) Option {
	return func(b *Buffer) {
		b.onChange = fn
	}
}

// DetectLineEnding returns the most common line ending in text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			crlfCount++
			i++
		case text[i] == '\r':
			crCount++
		case text[i] == '\n':
			lfCount++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR
	}
	return LineEndingLF
}
