package unroll

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/config"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/evaluator"
	"github.com/funvibe/funssa/internal/parser"
	"github.com/funvibe/funssa/internal/pipeline"
	"github.com/funvibe/funssa/internal/prettyprinter"
	"github.com/funvibe/funssa/internal/ssa"
	"github.com/funvibe/funssa/internal/symbols"
)

func parse(t *testing.T, src string) (*ast.Module, *evaluator.Environment) {
	t.Helper()
	module, err := parser.ParseSource(src)
	assert.NilError(t, err)
	env := evaluator.NewGlobalEnvironment()
	assert.NilError(t, evaluator.New().EvalModule(module, env))
	return module, env
}

func TestUnroll(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "count",
			src:  "def f(x):\n    for i in unroll(3):\n        x = x + i\n    return x\n",
			want: "def f(x):\n    x = x + 0\n    x = x + 1\n    x = x + 2\n    return x\n",
		},
		{
			name: "range with module constant",
			src:  "N = 2\n\ndef f(x):\n    for i in unroll(-1, N):\n        x = x * i\n    return x\n",
			want: "def f(x):\n    x = x * -1\n    x = x * 0\n    x = x * 1\n    return x\n",
		},
		{
			name: "nested",
			src:  "def f(x):\n    for i in unroll(2):\n        for j in unroll(2):\n            x = x + i * j\n    return x\n",
			want: "def f(x):\n    x = x + 0 * 0\n    x = x + 0 * 1\n    x = x + 1 * 0\n    x = x + 1 * 1\n    return x\n",
		},
		{
			name: "inside branch",
			src:  "def f(x):\n    if x:\n        for k in unroll(2):\n            x = x - k\n    return x\n",
			want: "def f(x):\n    if x:\n        x = x - 0\n        x = x - 1\n    return x\n",
		},
		{
			name: "shadowed by nested def",
			src:  "def f(x):\n    for i in unroll(1):\n        def g(i):\n            return i\n        x = g(x) + i\n    return x\n",
			want: "def f(x):\n    def g(i):\n        return i\n    x = g(x) + 0\n    return x\n",
		},
		{
			name: "empty range",
			src:  "def f(x):\n    for i in unroll(0):\n        x = 1\n    return x\n",
			want: "def f(x):\n    return x\n",
		},
		{
			name: "unmarked loop kept",
			src:  "def f(x):\n    for i in x:\n        x = i\n    return x\n",
			want: "def f(x):\n    for i in x:\n        x = i\n    return x\n",
		},
		{
			name: "argument depends on locals",
			src:  "def f(x):\n    for i in unroll(x):\n        pass\n    return x\n",
			want: "def f(x):\n    for i in unroll(x):\n        pass\n    return x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, env := parse(t, tt.src)
			fn := module.Function("f")
			before := prettyprinter.Print(fn)

			u := &Unroller{Env: env}
			out, err := u.Function(fn)
			assert.NilError(t, err)
			assert.Equal(t, prettyprinter.Print(out), tt.want)
			assert.Equal(t, prettyprinter.Print(fn), before)
		})
	}
}

func TestUnrollErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "reassigned loop variable",
			src:  "def f(x):\n    for i in unroll(2):\n        i = i + 1\n    return x\n",
			msg:  "loop variable i is reassigned",
		},
		{
			name: "non-integer bound",
			src:  "S = 'ab'\n\ndef f(x):\n    for i in unroll(S):\n        pass\n    return x\n",
			msg:  "must be integers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, env := parse(t, tt.src)
			_, err := (&Unroller{Env: env}).Function(module.Function("f"))
			assert.Assert(t, diagnostics.HasCode(err, diagnostics.ErrU001), "got %v", err)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

// TestUnrolledLoopConverts runs the unrolled function through ssa and checks
// that it still computes what the loop did.
func TestUnrolledLoopConverts(t *testing.T) {
	src := "def f(x, y):\n    acc = 0\n    for i in unroll(4):\n        if y > i:\n            acc = acc + x\n    return acc\n"
	module, env := parse(t, src)
	fn := module.Function("f")

	unrolled, err := (&Unroller{Env: env}).Function(fn)
	assert.NilError(t, err)
	out, err := ssa.Convert(unrolled, symbols.NewSymbolTable(nil, env.Snapshot()))
	assert.NilError(t, err)

	for _, y := range []int{-1, 0, 2, 9} {
		args := []evaluator.Object{evaluator.FromGo(3), evaluator.FromGo(y)}
		want, err := evaluator.CallRewritten(env, fn, "", args...)
		assert.NilError(t, err)
		got, err := evaluator.CallRewritten(env, out, "", args...)
		assert.NilError(t, err)
		assert.Assert(t, evaluator.Equal(want, got), "y=%d: want %s, got %s", y, want.Inspect(), got.Inspect())
	}
}

func TestProcessor(t *testing.T) {
	src := "def f(x):\n    for i in unroll(2):\n        x = x + i\n    return x\n"
	module, err := parser.ParseSource(src)
	assert.NilError(t, err)

	ctx := &pipeline.PipelineContext{Config: config.Default(), Function: module.Function("f")}
	ctx = (&UnrollProcessor{}).Process(ctx)
	assert.NilError(t, ctx.Err())
	_, isFor := ctx.Function.Body[0].(*ast.ForStatement)
	assert.Assert(t, isFor, "unroll is off by default")

	ctx.Config.Unroll = true
	ctx = (&UnrollProcessor{}).Process(ctx)
	assert.NilError(t, ctx.Err())
	assert.Equal(t, len(ctx.Function.Body), 3)
}
