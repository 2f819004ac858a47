package ssa

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/funvibe/funssa/internal/parser"
	"github.com/funvibe/funssa/internal/symbols"
)

func TestFreeNames(t *testing.T) {
	module, err := parser.ParseSource("def f(a, a0):\n    b = a + a0\n    return b\n")
	assert.NilError(t, err)
	fn := module.Function("f")
	env := symbols.FromNames("len", "x0")

	assert.Assert(t, !IsFreeName(fn, env, "a"))
	assert.Assert(t, !IsFreeName(fn, env, "len"))
	assert.Assert(t, IsFreeName(fn, env, "c"))

	assert.Equal(t, FreeName(fn, env, "c"), "c")
	assert.Equal(t, FreeName(fn, env, "a"), "a1")
	assert.Equal(t, FreeName(fn, env, "x"), "x")
	assert.Equal(t, FreeName(fn, env, ""), "__auto_name_0")

	assert.Assert(t, !IsFreePrefix(fn, env, "a"))
	assert.Assert(t, !IsFreePrefix(fn, env, "x"))
	assert.Assert(t, IsFreePrefix(fn, env, "z"))
	assert.Equal(t, FreePrefix(fn, env, "a"), "a1")
	assert.Equal(t, FreePrefix(fn, env, "x"), "x1")
	assert.Equal(t, FreePrefix(fn, nil, ""), "__auto_prefix_0")
}

func TestAllocatorNeverRepeats(t *testing.T) {
	module, err := parser.ParseSource("def f(a, a1):\n    return a\n")
	assert.NilError(t, err)
	alloc := newAllocator(module.Function("f"), symbols.Empty)

	assert.Equal(t, alloc.fresh("a"), "a0")
	assert.Equal(t, alloc.fresh("a"), "a2")
	assert.Equal(t, alloc.fresh("a1"), "a10")

	seen := map[string]bool{"a0": true, "a2": true, "a10": true}
	for i := 0; i < 20; i++ {
		name := alloc.fresh("a")
		assert.Assert(t, !seen[name], "%s issued twice", name)
		seen[name] = true
	}
}
