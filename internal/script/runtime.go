// Package script runs user-supplied Lua hooks over element tags.
//
// A script may define two global functions:
//
//	function rewrite(key, value) return value end  -- nil keeps the value
//	function include(tags) return true end         -- falsy drops the element
package script

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Runtime manages the Lua interpreter and the hook callbacks
type Runtime struct {
	L       *lua.LState
	mu      sync.Mutex
	rewrite lua.LValue
	include lua.LValue
}

// NewRuntime creates a Lua runtime with the osmclean helper API registered
func NewRuntime() *Runtime {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	r := &Runtime{L: L}
	registerTransforms(L)
	return r
}

// Close releases Lua resources
func (r *Runtime) Close() {
	r.L.Close()
}

// LoadFile loads and executes a Lua script from disk
func (r *Runtime) LoadFile(path string) error {
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("failed to load Lua file: %w", err)
	}
	r.extractCallbacks()
	return nil
}

// LoadString loads and executes Lua code from a string
func (r *Runtime) LoadString(code string) error {
	if err := r.L.DoString(code); err != nil {
		return fmt.Errorf("failed to load Lua code: %w", err)
	}
	r.extractCallbacks()
	return nil
}

func (r *Runtime) extractCallbacks() {
	if fn := r.L.GetGlobal("rewrite"); fn.Type() == lua.LTFunction {
		r.rewrite = fn
	}
	if fn := r.L.GetGlobal("include"); fn.Type() == lua.LTFunction {
		r.include = fn
	}
}

// HasRewrite reports whether the script defines rewrite(key, value)
func (r *Runtime) HasRewrite() bool {
	return r.rewrite != nil
}

// HasInclude reports whether the script defines include(tags)
func (r *Runtime) HasInclude() bool {
	return r.include != nil
}

// Rewrite calls rewrite(key, value). A nil or missing result keeps the value.
func (r *Runtime) Rewrite(key, value string) (string, error) {
	if r.rewrite == nil {
		return value, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.L.CallByParam(lua.P{
		Fn:      r.rewrite,
		NRet:    1,
		Protect: true,
	}, lua.LString(key), lua.LString(value)); err != nil {
		return "", fmt.Errorf("lua rewrite error for %q: %w", key, err)
	}

	ret := r.L.Get(-1)
	r.L.Pop(1)

	switch v := ret.(type) {
	case *lua.LNilType:
		return value, nil
	case lua.LString:
		return string(v), nil
	case lua.LNumber:
		return v.String(), nil
	default:
		return "", fmt.Errorf("lua rewrite for %q returned %s, want string", key, ret.Type())
	}
}

// Include calls include(tags) with the element's tags as a Lua table
func (r *Runtime) Include(tags map[string]string) (bool, error) {
	if r.include == nil {
		return true, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.L.CallByParam(lua.P{
		Fn:      r.include,
		NRet:    1,
		Protect: true,
	}, r.tagsToLua(tags)); err != nil {
		return false, fmt.Errorf("lua include error: %w", err)
	}

	ret := r.L.Get(-1)
	r.L.Pop(1)
	return lua.LVAsBool(ret), nil
}

// tagsToLua builds the tag table in sorted key order so scripts iterating
// with pairs see a stable order across runs
func (r *Runtime) tagsToLua(tags map[string]string) *lua.LTable {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := r.L.CreateTable(0, len(tags))
	for _, k := range keys {
		tbl.RawSetString(k, lua.LString(tags[k]))
	}
	return tbl
}
