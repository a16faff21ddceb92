package cursor

// ColumnRegion is a rectangular selection in line/column coordinates.
// The corners are kept as dragged; Normalize orders them.
type ColumnRegion struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Normalize returns the region with lines and columns each ordered
// independently, so the drag may run in any direction.
func (r ColumnRegion) Normalize() (loLine, hiLine, loCol, hiCol int) {
	loLine, hiLine = r.StartLine, r.EndLine
	if loLine > hiLine {
		loLine, hiLine = hiLine, loLine
	}
	loCol, hiCol = r.StartCol, r.EndCol
	if loCol > hiCol {
		loCol, hiCol = hiCol, loCol
	}
	return loLine, hiLine, max(loCol, 0), max(hiCol, 0)
}

// Lines returns the number of lines the region spans.
func (r ColumnRegion) Lines() int {
	lo, hi, _, _ := r.Normalize()
	return hi - lo + 1
}

// Column returns the column region being dragged, if any.
func (s *Set) Column() (ColumnRegion, bool) {
	if s == nil || s.column == nil {
		return ColumnRegion{}, false
	}
	return *s.column, true
}

// SetColumn enters column mode with region r.
func (s *Set) SetColumn(r ColumnRegion) {
	if s != nil {
		s.column = &r
	}
}

// EndColumn leaves column mode. The cursors it produced stay.
func (s *Set) EndColumn() {
	if s != nil {
		s.column = nil
	}
}
