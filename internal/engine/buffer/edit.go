package buffer

import "fmt"

// Change describes one ReplaceRange call as seen by the host.
// Hosts feed these into their own undo stacks; a batch edit shows up as one
// Change per cursor, exactly like ordinary typing would.
type Change struct {
	Range    Range  // Replaced range, in pre-change coordinates
	OldText  string // Text that was removed
	NewText  string // Text that was inserted
	Revision RevisionID
}

// String returns a compact description of the change.
func (c Change) String() string {
	return fmt.Sprintf("%s %q -> %q", c.Range, c.OldText, c.NewText)
}

// Delta returns the change in document length.
func (c Change) Delta() int {
	return len(c.NewText) - c.Range.Len()
}

// NewRange returns the range the inserted text occupies after the change.
func (c Change) NewRange() Range {
	return Range{Start: c.Range.Start, End: c.Range.Start + len(c.NewText)}
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	return Change{
		Range:   c.NewRange(),
		OldText: c.NewText,
		NewText: c.OldText,
	}
}

// RevisionID increases by one with every change applied to a Buffer.
type RevisionID uint64
