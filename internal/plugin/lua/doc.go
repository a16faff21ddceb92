// Package lua runs user scripts against a multi-cursor session.
//
// Scripts see a global table named mc (also available through
// require("mc")) that drives the session's cursors:
//
//	local n = mc.select_all()
//	if n then
//	    mc.type("renamed")
//	end
//
// Operations that can fail at runtime return false and a reason string.
// Bad arguments raise Lua errors. Cursor indices, lines and columns are
// 1-based; offsets are byte offsets from 0.
//
// # Sandbox
//
// Only the base, string, table and math libraries are opened. dofile,
// loadfile, load and loadstring are removed, require only resolves
// modules registered with the sandbox, and print goes to the state's
// logger instead of stdout.
//
// # Thread Safety
//
// gopher-lua's LState is not goroutine-safe and neither is the session.
// State serializes its own calls, but scripts must run on the goroutine
// that delivers input events for the session.
package lua
