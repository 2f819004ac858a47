package evaluator

import (
	"fmt"
	"sort"

	"github.com/funvibe/funssa/internal/config"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/token"
)

func newError(format string, a ...interface{}) error {
	return diagnostics.NewError(diagnostics.ErrR003, token.Token{}, fmt.Sprintf(format, a...))
}

// Builtins is every builtin function, by name.
var Builtins = map[string]*Builtin{
	config.LenFuncName:     {Name: config.LenFuncName, Fn: builtinLen},
	config.AbsFuncName:     {Name: config.AbsFuncName, Fn: builtinAbs},
	config.MinFuncName:     {Name: config.MinFuncName, Fn: builtinMinMax(-1)},
	config.MaxFuncName:     {Name: config.MaxFuncName, Fn: builtinMinMax(1)},
	config.UnrollMacroName: {Name: config.UnrollMacroName, Fn: builtinUnroll},
}

// BuiltinNames lists the builtins, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(Builtins))
	for name := range Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterBuiltins registers built-in functions into the environment.
func RegisterBuiltins(env *Environment) {
	for name, builtin := range Builtins {
		env.Set(name, builtin)
	}
}

func builtinLen(e *Evaluator, args ...Object) (Object, error) {
	if len(args) != 1 {
		return nil, newError("len() takes exactly one argument (%d given)", len(args))
	}
	switch arg := args[0].(type) {
	case *String:
		return &Integer{Value: int64(len([]rune(arg.Value)))}, nil
	case *Tuple:
		return &Integer{Value: int64(len(arg.Elements))}, nil
	}
	return nil, newError("object of type '%s' has no len()", args[0].Type())
}

func builtinAbs(e *Evaluator, args ...Object) (Object, error) {
	if len(args) != 1 {
		return nil, newError("abs() takes exactly one argument (%d given)", len(args))
	}
	v, ok := asInt(args[0])
	if !ok {
		return nil, newError("bad operand type for abs(): '%s'", args[0].Type())
	}
	if v < 0 {
		v = -v
	}
	return &Integer{Value: v}, nil
}

// builtinMinMax picks the smallest (sign -1) or largest (sign 1) argument,
// or element when given a single tuple. Ties keep the first.
func builtinMinMax(sign int) BuiltinFunction {
	name := config.MaxFuncName
	if sign < 0 {
		name = config.MinFuncName
	}
	return func(e *Evaluator, args ...Object) (Object, error) {
		if len(args) == 1 {
			if t, ok := args[0].(*Tuple); ok {
				args = t.Elements
			}
		}
		if len(args) == 0 {
			return nil, newError("%s() arg is an empty sequence", name)
		}
		best := args[0]
		for _, arg := range args[1:] {
			c, err := compare(best, arg)
			if err != nil {
				return nil, err
			}
			if c*sign < 0 {
				best = arg
			}
		}
		return best, nil
	}
}

func compare(a, b Object) (int, error) {
	if ai, ok := asInt(a); ok {
		if bi, ok := asInt(b); ok {
			switch {
			case ai < bi:
				return -1, nil
			case ai > bi:
				return 1, nil
			}
			return 0, nil
		}
	}
	if as, ok := a.(*String); ok {
		if bs, ok := b.(*String); ok {
			switch {
			case as.Value < bs.Value:
				return -1, nil
			case as.Value > bs.Value:
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, newError("'<' not supported between instances of '%s' and '%s'", a.Type(), b.Type())
}

// builtinUnroll is the runtime meaning of the unroll marker: unroll(n) and
// unroll(a, b) are the integer ranges [0, n) and [a, b), as a tuple.
func builtinUnroll(e *Evaluator, args ...Object) (Object, error) {
	bounds := make([]int64, len(args))
	for i, arg := range args {
		v, ok := asInt(arg)
		if !ok {
			return nil, newError("%s() arguments must be integers, not '%s'", config.UnrollMacroName, arg.Type())
		}
		bounds[i] = v
	}
	var lo, hi int64
	switch len(bounds) {
	case 1:
		hi = bounds[0]
	case 2:
		lo, hi = bounds[0], bounds[1]
	default:
		return nil, newError("%s() takes 1 or 2 arguments (%d given)", config.UnrollMacroName, len(args))
	}
	elems := []Object{}
	for i := lo; i < hi; i++ {
		elems = append(elems, &Integer{Value: i})
	}
	return &Tuple{Elements: elems}, nil
}
