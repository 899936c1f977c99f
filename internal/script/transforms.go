package script

import (
	"regexp"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// registerTransforms exposes string helpers as osmclean.* and as globals
func registerTransforms(L *lua.LState) {
	api := L.NewTable()
	api.RawSetString("version", lua.LString("1.0.0"))

	fns := map[string]lua.LGFunction{
		"trim":         luaTrim,
		"lower":        luaLower,
		"upper":        luaUpper,
		"title":        luaTitle,
		"clean_spaces": luaCleanSpaces,
		"truncate":     luaTruncate,
		"starts_with":  luaStartsWith,
	}
	for name, fn := range fns {
		L.SetField(api, name, L.NewFunction(fn))
	}
	L.SetGlobal("osmclean", api)

	// Also register common functions at top level for convenience
	L.SetGlobal("trim", L.NewFunction(luaTrim))
	L.SetGlobal("clean_spaces", L.NewFunction(luaCleanSpaces))
}

func luaTrim(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimSpace(L.CheckString(1))))
	return 1
}

func luaLower(L *lua.LState) int {
	L.Push(lua.LString(strings.ToLower(L.CheckString(1))))
	return 1
}

func luaUpper(L *lua.LState) int {
	L.Push(lua.LString(strings.ToUpper(L.CheckString(1))))
	return 1
}

// luaTitle upper-cases the first letter of each space-separated word
func luaTitle(L *lua.LState) int {
	words := strings.Fields(L.CheckString(1))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	L.Push(lua.LString(strings.Join(words, " ")))
	return 1
}

// luaCleanSpaces normalizes whitespace (collapse multiple spaces, trim)
func luaCleanSpaces(L *lua.LState) int {
	s := whitespaceRegex.ReplaceAllString(L.CheckString(1), " ")
	L.Push(lua.LString(strings.TrimSpace(s)))
	return 1
}

// luaTruncate truncates string to max length in runes
func luaTruncate(L *lua.LState) int {
	s := L.CheckString(1)
	maxLen := L.CheckInt(2)

	runes := []rune(s)
	if len(runes) <= maxLen {
		L.Push(lua.LString(s))
	} else {
		L.Push(lua.LString(string(runes[:maxLen])))
	}
	return 1
}

func luaStartsWith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasPrefix(L.CheckString(1), L.CheckString(2))))
	return 1
}
