package script

import (
	"context"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// newState creates a sandboxed interpreter bound to ctx.
func (c *Client) newState(ctx context.Context) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	openSafeLibraries(L)
	c.installPrint(L)
	L.SetContext(ctx)
	return L
}

// openSafeLibraries opens only safe Lua standard libraries and removes the
// base functions that load code from disk or strings.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (c *Client) installPrint(L *lua.LState) {
	out := c.print
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		if out == nil {
			return 0
		}
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		out(strings.Join(parts, "\t"))
		return 0
	}))
}
