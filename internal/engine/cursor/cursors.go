package cursor

import "sort"

// DefaultMaxCursors is the cursor limit used when none is given.
const DefaultMaxCursors = 100

// Set is the ordered collection of cursors editing one document.
type Set struct {
	cursors     []Cursor
	primary     int
	active      bool
	column      *ColumnRegion
	lastPattern string
	max         int
}

// NewSet creates a set with a single caret at pos.
// A non-positive maxCursors selects DefaultMaxCursors.
func NewSet(pos Offset, maxCursors int) *Set {
	s := &Set{}
	s.SetMax(maxCursors)
	s.Init(pos)
	return s
}

// Init resets the set to a single caret at pos, dropping column mode and
// the last search pattern.
func (s *Set) Init(pos Offset) {
	if s == nil {
		return
	}
	s.cursors = []Cursor{Caret(pos)}
	s.primary = 0
	s.active = false
	s.column = nil
	s.lastPattern = ""
}

// Max returns the cursor limit.
func (s *Set) Max() int {
	if s == nil {
		return 0
	}
	return s.max
}

// SetMax changes the cursor limit. A set already holding more cursors than
// the new limit is cleared to its primary cursor.
func (s *Set) SetMax(n int) {
	if s == nil {
		return
	}
	if n <= 0 {
		n = DefaultMaxCursors
	}
	s.max = n
	if len(s.cursors) > n {
		s.ClearToPrimary()
	}
}

// Len returns the number of cursors.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cursors)
}

// Active returns true while more than one cursor exists.
func (s *Set) Active() bool {
	return s != nil && s.active
}

// Full returns true when no further cursor can be added.
func (s *Set) Full() bool {
	return s != nil && len(s.cursors) >= s.max
}

// PrimaryIndex returns the index of the primary cursor.
func (s *Set) PrimaryIndex() int {
	if s == nil {
		return 0
	}
	return s.primary
}

// Primary returns the primary cursor.
func (s *Set) Primary() Cursor {
	if s == nil || len(s.cursors) == 0 {
		return Cursor{}
	}
	return s.cursors[s.primary]
}

// At returns the cursor at index i.
func (s *Set) At(i int) (Cursor, bool) {
	if s == nil || i < 0 || i >= len(s.cursors) {
		return Cursor{}, false
	}
	return s.cursors[i], true
}

// All returns a copy of every cursor in order.
func (s *Set) All() []Cursor {
	if s == nil {
		return nil
	}
	out := make([]Cursor, len(s.cursors))
	copy(out, s.cursors)
	return out
}

// LastPattern returns the text last used for occurrence expansion.
func (s *Set) LastPattern() string {
	if s == nil {
		return ""
	}
	return s.lastPattern
}

// SetLastPattern records the occurrence search text.
func (s *Set) SetLastPattern(p string) {
	if s != nil {
		s.lastPattern = p
	}
}

// Add appends a caret at pos and re-sorts.
// Fails when the set is full or a caret already sits at pos.
func (s *Set) Add(pos Offset) bool {
	if s == nil || s.Full() {
		return false
	}
	for _, c := range s.cursors {
		if !c.HasSelection() && c.Position == pos {
			return false
		}
	}
	s.cursors = append(s.cursors, Caret(pos))
	s.Sort()
	return true
}

// AddWithSelection appends a selection over [start, end) and re-sorts.
// Only the capacity is checked; overlapping or identical selections are
// accepted and left for the caller to filter.
func (s *Set) AddWithSelection(start, end Offset) bool {
	if s == nil || s.Full() {
		return false
	}
	s.cursors = append(s.cursors, Selection(start, end))
	s.Sort()
	return true
}

// RemoveAt removes the cursor at index. The last cursor is never removed.
// Removing the primary makes the new last cursor primary.
func (s *Set) RemoveAt(index int) bool {
	if s == nil || len(s.cursors) <= 1 || index < 0 || index >= len(s.cursors) {
		return false
	}
	s.cursors = append(s.cursors[:index], s.cursors[index+1:]...)
	switch {
	case index == s.primary:
		s.primary = len(s.cursors) - 1
	case index < s.primary:
		s.primary--
	}
	s.updateActive()
	return true
}

// FindAt returns the index of the first cursor hit by pos, or -1.
func (s *Set) FindAt(pos Offset) int {
	if s == nil {
		return -1
	}
	for i, c := range s.cursors {
		if c.Contains(pos) {
			return i
		}
	}
	return -1
}

// FindRange returns the index of the first cursor covering exactly r, or -1.
func (s *Set) FindRange(r Range) int {
	if s == nil {
		return -1
	}
	for i, c := range s.cursors {
		if c.Range() == r {
			return i
		}
	}
	return -1
}

// MaxSelectionEnd returns the largest selection end over all cursors.
func (s *Set) MaxSelectionEnd() Offset {
	if s == nil {
		return 0
	}
	end := 0
	for _, c := range s.cursors {
		if c.Range().End > end {
			end = c.Range().End
		}
	}
	return end
}

// Sort orders cursors by EffectivePos. Ties keep their previous order and
// the primary index follows the primary cursor.
func (s *Set) Sort() {
	if s == nil || len(s.cursors) == 0 {
		return
	}
	perm := make([]int, len(s.cursors))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return s.cursors[perm[i]].EffectivePos() < s.cursors[perm[j]].EffectivePos()
	})

	sorted := make([]Cursor, len(s.cursors))
	primary := 0
	for i, from := range perm {
		sorted[i] = s.cursors[from]
		if from == s.primary {
			primary = i
		}
	}
	s.cursors = sorted
	s.primary = primary
	s.updateActive()
}

// ClearToPrimary drops every cursor except the primary, which becomes a
// caret at its position. A set with a single cursor is left untouched.
func (s *Set) ClearToPrimary() {
	if s == nil || len(s.cursors) == 0 {
		return
	}
	s.column = nil
	if len(s.cursors) == 1 {
		return
	}
	s.cursors = []Cursor{s.cursors[s.primary].Collapse()}
	s.primary = 0
	s.updateActive()
}

// Update replaces the cursor at index without re-sorting. Callers that move
// cursors past their neighbours must call Sort afterwards.
func (s *Set) Update(index int, c Cursor) bool {
	if s == nil || index < 0 || index >= len(s.cursors) {
		return false
	}
	s.cursors[index] = c
	return true
}

// SetPrimaryCursor overwrites the primary cursor and re-sorts.
func (s *Set) SetPrimaryCursor(c Cursor) {
	if s == nil || len(s.cursors) == 0 {
		return
	}
	s.cursors[s.primary] = c
	s.Sort()
}

// Replace discards every cursor and installs cursors, truncated to the
// limit, with primary as the primary index. An empty slice is rejected.
func (s *Set) Replace(cursors []Cursor, primary int) bool {
	if s == nil || len(cursors) == 0 {
		return false
	}
	if len(cursors) > s.max {
		cursors = cursors[:s.max]
	}
	if primary < 0 || primary >= len(cursors) {
		primary = 0
	}
	s.cursors = append([]Cursor(nil), cursors...)
	s.primary = primary
	s.Sort()
	return true
}

// MergeDuplicates removes cursors covering the same range as an earlier
// cursor. When the primary has a duplicate the primary survives.
func (s *Set) MergeDuplicates() int {
	if s == nil || len(s.cursors) < 2 {
		return 0
	}
	kept := s.cursors[:0]
	primary := 0
	removed := 0
	for i, c := range s.cursors {
		dup := -1
		for k := len(kept) - 1; k >= 0 && kept[k].EffectivePos() == c.EffectivePos(); k-- {
			if kept[k].SameRange(c) {
				dup = k
				break
			}
		}
		if dup < 0 {
			if i == s.primary {
				primary = len(kept)
			}
			kept = append(kept, c)
			continue
		}
		removed++
		if i == s.primary {
			primary = dup
		}
	}
	s.cursors = kept
	s.primary = primary
	s.updateActive()
	return removed
}

func (s *Set) updateActive() {
	s.active = len(s.cursors) > 1
}
