package buffer

import (
	"io"
	"sort"
	"strings"
)

// LineEnding specifies the line ending style of the file a Buffer was
// loaded from. Buffer content itself always uses LF.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is an in-memory Text.
type Buffer struct {
	text       string
	lineStarts []Offset
	linesDirty bool

	selStart Offset
	selEnd   Offset

	batchDepth    int
	redrawPending bool
	redraws       int
	pending       []Change

	revision   RevisionID
	lineEnding LineEnding

	onRedraw func()
	onChange func(Change)
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{linesDirty: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer holding s. Line endings are detected,
// remembered and normalized to LF.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lineEnding = DetectLineEnding(s)
	b.text = normalizeLineEndings(s)
	return b
}

// NewBufferFromReader creates a buffer from r.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: a CRLF pair may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Text returns the whole document.
func (b *Buffer) Text() string {
	return b.text
}

// Encoded returns the document with the original line endings restored.
func (b *Buffer) Encoded() string {
	if b.lineEnding == LineEndingLF {
		return b.text
	}
	return strings.ReplaceAll(b.text, "\n", b.lineEnding.Sequence())
}

// LineEnding returns the line ending detected on load.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// Revision returns the number of changes applied so far.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// Redraws returns how many redraws the buffer has performed.
func (b *Buffer) Redraws() int {
	return b.redraws
}

// InBatch reports whether a batch scope is open.
func (b *Buffer) InBatch() bool {
	return b.batchDepth > 0
}

// Len implements Text.
func (b *Buffer) Len() int {
	return len(b.text)
}

// ReadRange implements Text. Out-of-range bounds are clamped.
func (b *Buffer) ReadRange(start, end Offset) string {
	r := NewRange(start, end).Clamp(len(b.text))
	return b.text[r.Start:r.End]
}

// ReplaceRange implements Text. Out-of-range bounds are clamped.
func (b *Buffer) ReplaceRange(start, end Offset, text string) {
	r := NewRange(start, end).Clamp(len(b.text))
	if r.IsEmpty() && text == "" {
		return
	}

	old := b.text[r.Start:r.End]
	b.text = b.text[:r.Start] + text + b.text[r.End:]
	b.linesDirty = true
	b.revision++

	b.notify(Change{Range: r, OldText: old, NewText: text, Revision: b.revision})
}

// LineCount implements Text.
func (b *Buffer) LineCount() int {
	return len(b.lines())
}

// LineFromOffset implements Text.
func (b *Buffer) LineFromOffset(offset Offset) int {
	starts := b.lines()
	offset = clamp(offset, 0, len(b.text))
	// First line whose start is past offset, minus one.
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
}

// LineStartOffset implements Text. Lines past the end map to the document end.
func (b *Buffer) LineStartOffset(line int) Offset {
	starts := b.lines()
	if line < 0 {
		return 0
	}
	if line >= len(starts) {
		return len(b.text)
	}
	return starts[line]
}

// LineLength implements Text.
func (b *Buffer) LineLength(startOffset Offset) int {
	startOffset = clamp(startOffset, 0, len(b.text))
	if i := strings.IndexByte(b.text[startOffset:], '\n'); i >= 0 {
		return i
	}
	return len(b.text) - startOffset
}

// NativeSelection implements Text.
func (b *Buffer) NativeSelection() (start, end Offset) {
	return b.selStart, b.selEnd
}

// SetNativeSelection implements Text.
func (b *Buffer) SetNativeSelection(start, end Offset) {
	b.selStart = clamp(start, 0, len(b.text))
	b.selEnd = clamp(end, 0, len(b.text))
}

// BeginBatch implements Text.
func (b *Buffer) BeginBatch() {
	b.batchDepth++
}

// EndBatch implements Text. Changes queued inside the outermost scope are
// delivered to the change hook when it closes.
func (b *Buffer) EndBatch() {
	if b.batchDepth == 0 {
		return
	}
	b.batchDepth--
	if b.batchDepth > 0 {
		return
	}
	pending := b.pending
	b.pending = nil
	if b.onChange != nil {
		for _, c := range pending {
			b.onChange(c)
		}
	}
}

// RequestRedraw implements Text.
func (b *Buffer) RequestRedraw() {
	if b.batchDepth > 0 {
		b.redrawPending = true
		return
	}
	b.redrawPending = false
	b.redraws++
	if b.onRedraw != nil {
		b.onRedraw()
	}
}

func (b *Buffer) notify(c Change) {
	if b.batchDepth > 0 {
		b.pending = append(b.pending, c)
		b.redrawPending = true
		return
	}
	if b.onChange != nil {
		b.onChange(c)
	}
	b.RequestRedraw()
}

// lines returns the cached line start table, rebuilding it after edits.
func (b *Buffer) lines() []Offset {
	if !b.linesDirty {
		return b.lineStarts
	}
	starts := b.lineStarts[:0]
	starts = append(starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	b.lineStarts = starts
	b.linesDirty = false
	return starts
}
