package buffer

import "fmt"

// Offset is a byte offset into the document.
type Offset = int

// Range represents a byte range in the document.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// NewRange creates a range, swapping the bounds if they are reversed.
func NewRange(start, end Offset) Range {
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset lies in [Start, End].
// The end bound is inclusive so a caret sitting right after a range counts.
func (r Range) Contains(offset Offset) bool {
	return offset >= r.Start && offset <= r.End
}

// Clamp limits both bounds to [0, max].
func (r Range) Clamp(max Offset) Range {
	return Range{Start: clamp(r.Start, 0, max), End: clamp(r.End, 0, max)}
}

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
