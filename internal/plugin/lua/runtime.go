// Package lua exposes the remapping engine to user Lua scripts.
//
// Scripts see a single global table named "remap":
//
//	remap.map("normal", "gg", "<C-a>")
//	remap.unmap("normal", "gg")
//	remap.feed("gg")
//	remap.pending()
//	remap.mappings("normal")
//
// The runtime is intended for configuration scripts run at startup, not
// for concurrent use; gopher-lua states are single-threaded.
package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/remap/internal/input/maptable"
	"github.com/dshills/remap/internal/input/notation"
	"github.com/dshills/remap/internal/input/resolver"
)

// Runtime wraps a Lua state with the remap module registered.
type Runtime struct {
	L     *lua.LState
	table *maptable.Table
	res   *resolver.Resolver
}

// NewRuntime creates a Lua runtime bound to the given table and
// resolver. The resolver may be nil, in which case feed and pending are
// not registered.
func NewRuntime(table *maptable.Table, res *resolver.Resolver) *Runtime {
	r := &Runtime{
		L:     lua.NewState(),
		table: table,
		res:   res,
	}
	r.register()
	return r
}

// Close releases the Lua state.
func (r *Runtime) Close() {
	r.L.Close()
}

// DoFile executes a Lua script file.
func (r *Runtime) DoFile(path string) error {
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("lua script %s: %w", path, err)
	}
	return nil
}

// DoString executes a Lua string.
func (r *Runtime) DoString(code string) error {
	if err := r.L.DoString(code); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// register installs the remap module as a global table.
func (r *Runtime) register() {
	mod := r.L.NewTable()

	r.L.SetField(mod, "map", r.L.NewFunction(func(L *lua.LState) int {
		mode := L.CheckString(1)
		from := L.CheckString(2)
		to := L.CheckString(3)
		r.table.Insert(mode, from, to)
		return 0
	}))

	r.L.SetField(mod, "unmap", r.L.NewFunction(func(L *lua.LState) int {
		mode := L.CheckString(1)
		from := L.CheckString(2)
		L.Push(lua.LBool(r.table.Delete(mode, from)))
		return 1
	}))

	r.L.SetField(mod, "mappings", r.L.NewFunction(func(L *lua.LState) int {
		mode := L.OptString(1, "")
		list := L.NewTable()
		for _, m := range r.table.Mappings(mode) {
			entry := L.NewTable()
			L.SetField(entry, "mode", lua.LString(m.Mode))
			L.SetField(entry, "from", lua.LString(notation.Unparse(m.Input)))
			L.SetField(entry, "to", lua.LString(notation.Unparse(m.Output)))
			list.Append(entry)
		}
		L.Push(list)
		return 1
	}))

	if r.res != nil {
		r.L.SetField(mod, "feed", r.L.NewFunction(func(L *lua.LState) int {
			keys := L.CheckString(1)
			result := r.res.Submit(notation.Parse(keys))
			L.Push(lua.LString(result.String()))
			return 1
		}))

		r.L.SetField(mod, "pending", r.L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LString(r.res.Pending()))
			return 1
		}))
	}

	r.L.SetGlobal("remap", mod)
}
