// Package cursor provides the multi-cursor data model.
//
// A Cursor is either a caret or a forward range selection. A Set holds an
// ordered list of cursors together with the primary cursor, the active flag,
// an optional column region and the last occurrence search pattern.
//
// Set maintains these invariants after every method returns:
//
//   - cursors are sorted ascending by EffectivePos
//   - there is always at least one cursor and never more than the limit
//   - Active reports exactly whether more than one cursor exists
//   - the primary index always denotes a valid cursor
//
// Sorting is stable and tracks the primary cursor by identity rather than by
// offset, so two cursors sharing an offset never make the primary ambiguous.
//
// Basic usage:
//
//	set := cursor.NewSet(0, cursor.DefaultMaxCursors)
//	set.Add(10)
//	set.AddWithSelection(20, 25)
//	set.Active()  // true
//	set.ClearToPrimary()
//
// Set holds offsets only and never touches document text. Text-aware
// operations live in the engine package.
//
// Thread Safety:
//
// Cursor and View are value types and safe to share. Set is not
// thread-safe and must be confined to the goroutine that owns the document.
package cursor
