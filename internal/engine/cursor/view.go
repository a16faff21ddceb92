package cursor

// View is a read-only snapshot of a Set for renderers.
type View struct {
	cursors []Cursor
	primary int
	active  bool
	column  *ColumnRegion
}

// View returns a snapshot of the set. Later mutations of the set do not
// affect it.
func (s *Set) View() View {
	if s == nil {
		return View{}
	}
	v := View{cursors: s.All(), primary: s.primary, active: s.active}
	if s.column != nil {
		r := *s.column
		v.column = &r
	}
	return v
}

// Len returns the number of cursors.
func (v View) Len() int {
	return len(v.cursors)
}

// Active returns true if the snapshot holds more than one cursor.
func (v View) Active() bool {
	return v.active
}

// PrimaryIndex returns the index of the primary cursor.
func (v View) PrimaryIndex() int {
	return v.primary
}

// Primary returns the primary cursor.
func (v View) Primary() Cursor {
	if len(v.cursors) == 0 {
		return Cursor{}
	}
	return v.cursors[v.primary]
}

// At returns the cursor at index i.
func (v View) At(i int) Cursor {
	if i < 0 || i >= len(v.cursors) {
		return Cursor{}
	}
	return v.cursors[i]
}

// Column returns the column region being dragged, if any.
func (v View) Column() (ColumnRegion, bool) {
	if v.column == nil {
		return ColumnRegion{}, false
	}
	return *v.column, true
}

// Secondary calls fn for every cursor except the primary, in order.
// The host draws the primary itself.
func (v View) Secondary(fn func(i int, c Cursor)) {
	for i, c := range v.cursors {
		if i != v.primary {
			fn(i, c)
		}
	}
}
