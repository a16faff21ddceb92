package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/multicaret/internal/engine"
	"github.com/dshills/multicaret/internal/engine/cursor"
)

// ModuleName is the global and require name of the cursor module.
const ModuleName = "mc"

// Module implements the mc API over a session.
type Module struct {
	session *engine.Session
}

// NewModule creates the module for session.
func NewModule(session *engine.Session) *Module {
	return &Module{session: session}
}

// Register installs the module as a global in L and returns its table.
func (m *Module) Register(L *lua.LState) *lua.LTable {
	mod := L.NewTable()

	L.SetField(mod, "count", L.NewFunction(m.count))
	L.SetField(mod, "active", L.NewFunction(m.active))
	L.SetField(mod, "cursors", L.NewFunction(m.cursors))
	L.SetField(mod, "primary", L.NewFunction(m.primary))
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetField(mod, "add_selection", L.NewFunction(m.addSelection))
	L.SetField(mod, "remove", L.NewFunction(m.remove))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "select_next", L.NewFunction(m.selectNext))
	L.SetField(mod, "select_all", L.NewFunction(m.selectAll))
	L.SetField(mod, "column", L.NewFunction(m.column))
	L.SetField(mod, "type", L.NewFunction(m.typeText))
	L.SetField(mod, "backspace", L.NewFunction(m.backspace))
	L.SetField(mod, "delete", L.NewFunction(m.deleteForward))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "pattern", L.NewFunction(m.pattern))

	L.SetGlobal(ModuleName, mod)
	return mod
}

// fail pushes false and the error text.
func fail(L *lua.LState, err error) int {
	L.Push(lua.LFalse)
	L.Push(lua.LString(err.Error()))
	return 2
}

func cursorTable(L *lua.LState, c cursor.Cursor) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "pos", lua.LNumber(c.Position))
	L.SetField(tbl, "start", lua.LNumber(c.SelectionStart))
	L.SetField(tbl, "end", lua.LNumber(c.SelectionEnd))
	return tbl
}

// checkOffset reads argument n as an offset inside the document.
func (m *Module) checkOffset(L *lua.LState, n int) int {
	off := L.CheckInt(n)
	if off < 0 || off > m.session.Text().Len() {
		L.ArgError(n, "offset out of range")
	}
	return off
}

// checkPositive reads argument n as a 1-based number.
func checkPositive(L *lua.LState, n int) int {
	v := L.CheckInt(n)
	if v < 1 {
		L.ArgError(n, "must be 1 or more")
	}
	return v
}

// count() -> n
func (m *Module) count(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.Cursors().Len()))
	return 1
}

// active() -> bool
func (m *Module) active(L *lua.LState) int {
	L.Push(lua.LBool(m.session.Active()))
	return 1
}

// cursors() -> {{pos=, start=, end=}, ...}
// Cursors are listed in document order.
func (m *Module) cursors(L *lua.LState) int {
	tbl := L.NewTable()
	for i, c := range m.session.Cursors().All() {
		tbl.RawSetInt(i+1, cursorTable(L, c))
	}
	L.Push(tbl)
	return 1
}

// primary() -> {pos=, start=, end=, index=}
func (m *Module) primary(L *lua.LState) int {
	set := m.session.Cursors()
	tbl := cursorTable(L, set.Primary())
	L.SetField(tbl, "index", lua.LNumber(set.PrimaryIndex()+1))
	L.Push(tbl)
	return 1
}

// add(pos) -> true | false, reason
func (m *Module) add(L *lua.LState) int {
	pos := m.checkOffset(L, 1)
	if !m.session.AddCursor(pos) {
		if m.session.Cursors().Full() {
			return fail(L, engine.ErrCursorLimit)
		}
		return fail(L, ErrCursorExists)
	}
	L.Push(lua.LTrue)
	return 1
}

// add_selection(start, end) -> true | false, reason
func (m *Module) addSelection(L *lua.LState) int {
	start := m.checkOffset(L, 1)
	end := m.checkOffset(L, 2)

	if !m.session.Active() {
		m.session.SyncFromNative()
	}
	set := m.session.Cursors()
	if set.FindRange(cursor.Selection(start, end).Range()) >= 0 {
		return fail(L, ErrCursorExists)
	}
	if !set.AddWithSelection(start, end) {
		return fail(L, engine.ErrCursorLimit)
	}
	m.session.Text().RequestRedraw()
	L.Push(lua.LTrue)
	return 1
}

// remove(index) -> true | false, reason
func (m *Module) remove(L *lua.LState) int {
	i := checkPositive(L, 1)
	set := m.session.Cursors()
	if i > set.Len() {
		L.ArgError(1, "cursor index out of range")
		return 0
	}
	if !m.session.RemoveCursor(i - 1) {
		return fail(L, ErrLastCursor)
	}
	L.Push(lua.LTrue)
	return 1
}

// clear()
func (m *Module) clear(L *lua.LState) int {
	m.session.Clear()
	return 0
}

// select_next() -> cursor | false, reason
func (m *Module) selectNext(L *lua.LState) int {
	if !m.session.Active() {
		m.session.SyncFromNative()
	}
	c, err := m.session.SelectNext()
	if err != nil {
		return fail(L, err)
	}
	L.Push(cursorTable(L, c))
	return 1
}

// select_all() -> added | false, reason
func (m *Module) selectAll(L *lua.LState) int {
	if !m.session.Active() {
		m.session.SyncFromNative()
	}
	n, err := m.session.SelectAll()
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

// column(start_line, start_col, end_line, end_col) -> n | false, reason
// Columns count characters.
func (m *Module) column(L *lua.LState) int {
	sl := checkPositive(L, 1)
	sc := checkPositive(L, 2)
	el := checkPositive(L, 3)
	ec := checkPositive(L, 4)

	n, err := m.session.ColumnSelect(sl-1, sc-1, el-1, ec-1)
	m.session.EndColumn()
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

// type(text) -> true | false, reason
func (m *Module) typeText(L *lua.LState) int {
	text := L.CheckString(1)
	return m.edit(L, m.session.Type(text))
}

// backspace() -> true | false, reason
func (m *Module) backspace(L *lua.LState) int {
	return m.edit(L, m.session.Delete(engine.Backward))
}

// delete() -> true | false, reason
func (m *Module) deleteForward(L *lua.LState) int {
	return m.edit(L, m.session.Delete(engine.Forward))
}

func (m *Module) edit(L *lua.LState, err error) int {
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

// text() -> document
func (m *Module) text(L *lua.LState) int {
	t := m.session.Text()
	L.Push(lua.LString(t.ReadRange(0, t.Len())))
	return 1
}

// pattern() -> last search pattern | nil
func (m *Module) pattern(L *lua.LState) int {
	p := m.session.Cursors().LastPattern()
	if p == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(p))
	return 1
}
