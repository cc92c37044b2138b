// Package expr compiles user supplied function bodies into sample functions.
//
// A body is Lua code run as the body of function(x, t), where x is the phase
// in [0, 1] and t the frame time in milliseconds; it must return a number.
// Only the base, math and string libraries are available and the file and
// module loaders are removed. A single evaluation that runs longer than
// EvalTimeout is aborted.
package expr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oscope/scope/source"

	lua "github.com/yuin/gopher-lua"
)

// EvalTimeout bounds one call of Program.Eval.
const EvalTimeout = 25 * time.Millisecond

var (
	ErrCompile = errors.New("expr: compile failed")
	ErrTimeout = errors.New("expr: evaluation timed out")
)

// Program is a compiled body. It is not safe for concurrent use.
type Program struct {
	l  *lua.LState
	fn *lua.LFunction
}

var stripped = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// Compile parses body and returns a callable program.
func Compile(body string) (*Program, error) {
	l := newState()

	chunk, err := l.LoadString("return function(x, t)\n" + body + "\nend")
	if err != nil {
		l.Close()
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	if err := l.CallByParam(lua.P{Fn: chunk, NRet: 1, Protect: true}); err != nil {
		l.Close()
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	fn, ok := l.Get(-1).(*lua.LFunction)
	l.Pop(1)
	if !ok {
		l.Close()
		return nil, ErrCompile
	}
	return &Program{l: l, fn: fn}, nil
}

func newState() *lua.LState {
	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
		{lua.StringLibName, lua.OpenString},
	} {
		l.Push(l.NewFunction(lib.open))
		l.Push(lua.LString(lib.name))
		l.Call(1, 0)
	}
	for _, name := range stripped {
		l.SetGlobal(name, lua.LNil)
	}
	return l
}

// Eval runs the program for phase x at time t.
func (p *Program) Eval(x, t float64) (float64, error) {
	if p == nil || p.l == nil {
		return 0, fmt.Errorf("%w: program closed", source.ErrEvaluation)
	}
	ctx, cancel := context.WithTimeout(context.Background(), EvalTimeout)
	defer cancel()
	p.l.SetContext(ctx)
	err := p.l.CallByParam(lua.P{Fn: p.fn, NRet: 1, Protect: true}, lua.LNumber(x), lua.LNumber(t))
	p.l.RemoveContext()
	if err != nil {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %w", source.ErrEvaluation, ErrTimeout)
		}
		return 0, fmt.Errorf("%w: %v", source.ErrEvaluation, err)
	}

	ret := p.l.Get(-1)
	p.l.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: returned %s, want number", source.ErrEvaluation, ret.Type())
	}
	return float64(n), nil
}

// Func adapts the program to a source.Func.
func (p *Program) Func() source.Func {
	return p.Eval
}

// Close releases the interpreter. It is safe to call more than once.
func (p *Program) Close() {
	if p == nil || p.l == nil {
		return
	}
	p.l.Close()
	p.l = nil
	p.fn = nil
}
