package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	// modules resolvable through require
	modules map[string]lua.LValue

	output func(string)
}

// NewSandbox creates a sandbox for L. output receives each line written by
// the Lua print function; nil discards it.
func NewSandbox(L *lua.LState, output func(string)) *Sandbox {
	return &Sandbox{
		L:       L,
		modules: make(map[string]lua.LValue),
		output:  output,
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	for _, name := range []string{"string", "table", "math"} {
		if v := s.L.GetGlobal(name); v != lua.LNil {
			s.modules[name] = v
		}
	}

	s.installPrint()
	s.installRequire()
}

// Provide makes value resolvable as require(name).
func (s *Sandbox) Provide(name string, value lua.LValue) {
	s.modules[name] = value
}

// Modules returns the names require can resolve.
func (s *Sandbox) Modules() []string {
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	return names
}

// installPrint replaces print with one that hands each line to the sandbox
// output function.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if s.output != nil {
			s.output(strings.Join(parts, "\t"))
		}
		return 0
	}))
}

// installRequire replaces require with a lookup in the provided modules.
// Nothing is ever loaded from disk.
func (s *Sandbox) installRequire() {
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		mod, ok := s.modules[name]
		if !ok {
			// L.RaiseError does not return.
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(mod)
		return 1
	}))
}
