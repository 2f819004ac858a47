package evaluator

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/parser"
)

// call runs src's top level and then calls f with args.
func call(t *testing.T, src string, args ...interface{}) (Object, error) {
	t.Helper()
	module, err := parser.ParseSource(src)
	assert.NilError(t, err)

	env := NewGlobalEnvironment()
	eval := New()
	assert.NilError(t, eval.EvalModule(module, env))

	fn, ok := env.Get("f")
	assert.Assert(t, ok, "module defines no f")
	objs := make([]Object, len(args))
	for i, a := range args {
		objs[i] = FromGo(a)
	}
	return eval.Call(fn, objs...)
}

func TestEval(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		args []interface{}
		want string
	}{
		{name: "floor division", src: "def f(x):\n    return x // 2\n", args: []interface{}{-7}, want: "-4"},
		{name: "slash divides like floor", src: "def f(x):\n    return x / 2\n", args: []interface{}{7}, want: "3"},
		{name: "modulo takes divisor sign", src: "def f(x, y):\n    return x % y\n", args: []interface{}{-7, 3}, want: "2"},
		{name: "negative divisor", src: "def f(x, y):\n    return x % y, x // y\n", args: []interface{}{7, -2}, want: "(-1, -4)"},
		{name: "and yields operand", src: "def f(x):\n    return x and 'yes'\n", args: []interface{}{0}, want: "0"},
		{name: "and yields last", src: "def f(x):\n    return x and 'yes'\n", args: []interface{}{1}, want: `"yes"`},
		{name: "or yields operand", src: "def f(x):\n    return x or 'no'\n", args: []interface{}{""}, want: `"no"`},
		{name: "or short circuits", src: "def f(x):\n    return x or missing\n", args: []interface{}{2}, want: "2"},
		{name: "conditional", src: "def f(x):\n    return 'a' if x > 0 else 'b'\n", args: []interface{}{0}, want: `"b"`},
		{name: "not", src: "def f(x):\n    return not x, not ()\n", args: []interface{}{[]interface{}{1}}, want: "(False, True)"},
		{name: "bool arithmetic", src: "def f(x):\n    return True + x\n", args: []interface{}{1}, want: "2"},
		{name: "bool equals int", src: "def f(x):\n    return x == 1\n", args: []interface{}{true}, want: "True"},
		{name: "string ops", src: "def f(s):\n    return s + '!' * 2, s < 'b'\n", args: []interface{}{"a"}, want: `("a!!", True)`},
		{name: "tuple concat", src: "def f(x):\n    return (x,) + (2, 3)\n", args: []interface{}{1}, want: "(1, 2, 3)"},
		{name: "no return", src: "def f(x):\n    y = x\n", args: []interface{}{1}, want: "None"},
		{name: "bare return", src: "def f(x):\n    return\n", args: []interface{}{1}, want: "None"},
		{name: "globals", src: "K = 10\ndef f(x):\n    return x + K\n", args: []interface{}{1}, want: "11"},
		{
			name: "closure",
			src:  "def f(x):\n    def g(y):\n        return x + y\n    return g(2)\n",
			args: []interface{}{1},
			want: "3",
		},
		{
			name: "recursion",
			src:  "def f(n):\n    if n <= 1:\n        return 1\n    return n * f(n - 1)\n",
			args: []interface{}{5},
			want: "120",
		},
		{
			name: "while",
			src:  "def f(n):\n    s = 0\n    while n > 0:\n        s = s + n\n        n = n - 1\n    return s\n",
			args: []interface{}{4},
			want: "10",
		},
		{
			name: "for over unroll",
			src:  "def f(n):\n    s = 0\n    for i in unroll(1, n):\n        s = s + i\n    return s\n",
			args: []interface{}{4},
			want: "6",
		},
		{
			name: "for over string",
			src:  "def f(s):\n    n = 0\n    for c in s:\n        n = n + 1\n    return n, c\n",
			args: []interface{}{"abc"},
			want: `(3, "c")`,
		},
		{
			name: "except binds message",
			src:  "def f(x):\n    try:\n        y = 1 // x\n    except ZeroDivisionError as e:\n        return e\n    return y\n",
			args: []interface{}{0},
			want: `"division by zero"`,
		},
		{
			name: "finally return wins",
			src:  "def f(x):\n    try:\n        return x\n    finally:\n        return x + 1\n",
			args: []interface{}{1},
			want: "2",
		},
		{
			name: "with binds alias",
			src:  "def f(x):\n    with x + 1 as y:\n        return y\n",
			args: []interface{}{1},
			want: "2",
		},
		{
			name: "class instance",
			src:  "class C:\n    k = 1\ndef f(x):\n    return C()\n",
			args: []interface{}{1},
			want: "<C object>",
		},
		{
			name: "builtins",
			src:  "def f(s):\n    return len(s), abs(-2), min(3, 1, 2), max((1, 5, 2)), unroll(2, 5)\n",
			args: []interface{}{"abc"},
			want: "(3, 2, 1, 5, (2, 3, 4))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := call(t, tc.src, tc.args...)
			assert.NilError(t, err)
			assert.Equal(t, res.Inspect(), tc.want)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		args []interface{}
		code diagnostics.ErrorCode
		msg  string
	}{
		{
			name: "unassigned local",
			src:  "def f(x):\n    if x:\n        y = 1\n    return y\n",
			args: []interface{}{0},
			code: diagnostics.ErrR002,
			msg:  `name "y" is not defined`,
		},
		{
			name: "local shadows global",
			src:  "y = 5\ndef f(x):\n    if x:\n        y = 1\n    return y\n",
			args: []interface{}{0},
			code: diagnostics.ErrR002,
		},
		{name: "division by zero", src: "def f(x):\n    return 1 % x\n", args: []interface{}{0}, code: diagnostics.ErrR001, msg: "division by zero"},
		{
			name: "arity",
			src:  "def f(x):\n    return f()\n",
			args: []interface{}{0},
			code: diagnostics.ErrR003,
			msg:  "f() takes 1 argument but 0 were given",
		},
		{name: "operand types", src: "def f(x):\n    return x + 'a'\n", args: []interface{}{1}, code: diagnostics.ErrR003, msg: "unsupported operand"},
		{name: "not callable", src: "def f(x):\n    return x(1)\n", args: []interface{}{1}, code: diagnostics.ErrR003, msg: "not callable"},
		{name: "not iterable", src: "def f(x):\n    for i in x:\n        pass\n", args: []interface{}{1}, code: diagnostics.ErrR003, msg: "not iterable"},
		{name: "builtin arity", src: "def f(x):\n    return len(x, x)\n", args: []interface{}{"a"}, code: diagnostics.ErrR003, msg: "exactly one argument"},
		{name: "empty max", src: "def f(x):\n    return max(())\n", args: []interface{}{1}, code: diagnostics.ErrR003, msg: "empty sequence"},
		{name: "recursion depth", src: "def f(x):\n    return f(x)\n", args: []interface{}{1}, code: diagnostics.ErrR001, msg: "maximum recursion depth"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := call(t, tc.src, tc.args...)
			assert.Assert(t, diagnostics.HasCode(err, tc.code), "got %v", err)
			if tc.msg != "" {
				assert.Check(t, is.ErrorContains(err, tc.msg))
			}
		})
	}
}

func TestErrorLocation(t *testing.T) {
	module, err := parser.ParseSource("def f(x):\n    return abs(x)\n")
	assert.NilError(t, err)
	globals := NewGlobalEnvironment()

	_, err = CallRewritten(globals, module.Function("f"), "f.py", FromGo("s"))
	assert.Check(t, is.ErrorContains(err, "f.py:2:15: error [R003]"))
}

func TestCancelled(t *testing.T) {
	module, err := parser.ParseSource("def f(x):\n    while True:\n        x = x + 1\n")
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eval := New()
	eval.Context = ctx
	fn := eval.Define(module.Function("f"), NewGlobalEnvironment())

	_, err = eval.Call(fn, FromGo(0))
	assert.Check(t, is.ErrorContains(err, "evaluation interrupted"))
}

func TestCallRewrittenKeepsModuleBinding(t *testing.T) {
	module, err := parser.ParseSource("def f(x):\n    return 1\n")
	assert.NilError(t, err)
	globals := NewGlobalEnvironment()
	assert.NilError(t, New().EvalModule(module, globals))
	before, _ := globals.Get("f")

	other, err := parser.ParseSource("def f(x):\n    return 2\n")
	assert.NilError(t, err)
	res, err := CallRewritten(globals, other.Function("f"), "", FromGo(0))
	assert.NilError(t, err)
	assert.Equal(t, res.Inspect(), "2")

	after, _ := globals.Get("f")
	assert.Assert(t, before == after)
}

func TestTruthy(t *testing.T) {
	for _, v := range []interface{}{0, false, "", nil, []interface{}{}} {
		assert.Check(t, !Truthy(FromGo(v)), "%#v", v)
	}
	for _, v := range []interface{}{-1, true, "a", []interface{}{0}} {
		assert.Check(t, Truthy(FromGo(v)), "%#v", v)
	}
}

func TestEqual(t *testing.T) {
	assert.Check(t, Equal(FromGo(true), FromGo(1)))
	assert.Check(t, Equal(FromGo([]interface{}{1, "a"}), FromGo([]interface{}{1, "a"})))
	assert.Check(t, !Equal(FromGo([]interface{}{1}), FromGo([]interface{}{1, 2})))
	assert.Check(t, !Equal(FromGo("1"), FromGo(1)))
	assert.Check(t, Equal(NONE, FromGo(nil)))
	assert.Check(t, !Equal(NONE, FromGo(0)))
}

func TestParseValue(t *testing.T) {
	testCases := map[string]string{
		"12":    "12",
		"-3":    "-3",
		"True":  "True",
		"None":  "None",
		"abc":   `"abc"`,
		"1.5":   `"1.5"`,
		"false": `"false"`,
	}
	for in, want := range testCases {
		assert.Check(t, is.Equal(ParseValue(in).Inspect(), want), in)
	}
}

func TestEnvironment(t *testing.T) {
	outer := NewGlobalEnvironment()
	outer.Set("a", FromGo(1))
	inner := NewEnclosedEnvironment(outer)
	inner.Set("a", FromGo(2))
	inner.Set("b", FromGo(3))

	v, ok := inner.Get("a")
	assert.Assert(t, ok)
	assert.Equal(t, v.Inspect(), "2")
	assert.Assert(t, !outer.Contains("b"))

	keys := inner.Keys()
	assert.Check(t, is.Contains(keys, "len"))
	assert.Check(t, is.Contains(keys, "b"))
	assert.Equal(t, inner.Snapshot()["a"].(Object).Inspect(), "2")
	assert.DeepEqual(t, BuiltinNames(), []string{"abs", "len", "max", "min", "unroll"})
}
