// Package automation drives plugin parameters from a Lua script.
//
// A script defines a global function automate(t) that receives the block
// start time in seconds and returns a table of parameter short names to
// values:
//
//	function automate(t)
//	  return { base = 220 * 2 ^ (t / 4), waveform = t < 2 and "sine" or "saw" }
//	end
//
// Numbers are plain parameter values (Hz, dB, ratios). Strings go through
// the parameter's display parser, so "saw", "-6 dB" and "+5%" all work.
// Returning nil leaves every parameter alone. The current plain value of any
// parameter is readable with param(name).
package automation

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/justyntemme/wavecompositor/pkg/framework/param"
)

// ErrNoAutomateFunc is returned when a script has no global automate function
var ErrNoAutomateFunc = errors.New("script does not define function automate(t)")

// ErrUnknownParameter is returned when a script names a parameter that does not exist
var ErrUnknownParameter = errors.New("unknown parameter")

// Script is a loaded automation script bound to a parameter registry.
// It is not safe for concurrent use.
type Script struct {
	name     string
	state    *lua.LState
	automate *lua.LFunction
	params   *param.Registry
}

// LoadFile runs the script at path and binds it to params
func LoadFile(path string, params *param.Registry) (*Script, error) {
	s := newScript(path, params)
	if err := s.state.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s.bind()
}

// LoadString runs source and binds it to params; name is used in errors
func LoadString(name, source string, params *param.Registry) (*Script, error) {
	s := newScript(name, params)
	if err := s.state.DoString(source); err != nil {
		s.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return s.bind()
}

func newScript(name string, params *param.Registry) *Script {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	// No io or os: scripts compute values, nothing else.
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	s := &Script{name: name, state: L, params: params}
	L.SetGlobal("param", L.NewFunction(s.luaParam))
	return s
}

func (s *Script) bind() (*Script, error) {
	fn, ok := s.state.GetGlobal("automate").(*lua.LFunction)
	if !ok {
		s.Close()
		return nil, fmt.Errorf("%s: %w", s.name, ErrNoAutomateFunc)
	}
	s.automate = fn
	return s, nil
}

// luaParam implements param(name) -> plain value
func (s *Script) luaParam(L *lua.LState) int {
	name := L.CheckString(1)
	p := s.params.FindByName(name)
	if p == nil {
		L.ArgError(1, fmt.Sprintf("unknown parameter %q", name))
		return 0
	}
	L.Push(lua.LNumber(p.GetPlainValue()))
	return 1
}

// Name returns the script path or name
func (s *Script) Name() string {
	return s.name
}

// Apply calls automate(t) and writes the returned values to the registry.
// Every entry is checked before any is written, so a bad entry leaves the
// parameters unchanged.
func (s *Script) Apply(t float64) error {
	L := s.state
	if err := L.CallByParam(lua.P{
		Fn:      s.automate,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(t)); err != nil {
		return fmt.Errorf("%s: automate(%g): %w", s.name, t, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	switch v := ret.(type) {
	case *lua.LNilType:
		return nil
	case *lua.LTable:
		return s.applyTable(v, t)
	default:
		return fmt.Errorf("%s: automate(%g) returned %s, want table or nil", s.name, t, ret.Type())
	}
}

type update struct {
	p          *param.Parameter
	normalized float64
}

func (s *Script) applyTable(tbl *lua.LTable, t float64) error {
	var (
		updates []update
		err     error
	)
	tbl.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		var u update
		u, err = s.resolve(k, v)
		updates = append(updates, u)
	})
	if err != nil {
		return fmt.Errorf("%s: automate(%g): %w", s.name, t, err)
	}

	for _, u := range updates {
		u.p.SetValue(u.normalized)
	}
	return nil
}

func (s *Script) resolve(k, v lua.LValue) (update, error) {
	key, ok := k.(lua.LString)
	if !ok {
		return update{}, fmt.Errorf("table key %v is not a parameter name", k)
	}
	p := s.params.FindByName(string(key))
	if p == nil {
		return update{}, fmt.Errorf("%w %q", ErrUnknownParameter, string(key))
	}

	switch val := v.(type) {
	case lua.LNumber:
		return update{p: p, normalized: p.Normalize(float64(val))}, nil
	case lua.LString:
		n, err := p.ParseValue(string(val))
		if err != nil {
			return update{}, err
		}
		return update{p: p, normalized: n}, nil
	default:
		return update{}, fmt.Errorf("parameter %q: value has type %s", string(key), v.Type())
	}
}

// Close releases the Lua state
func (s *Script) Close() {
	if s.state != nil {
		s.state.Close()
		s.state = nil
	}
}
