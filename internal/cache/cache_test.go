package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func openTemp(t *testing.T, max int) *Cache {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "sub", "cache.db"), max)
	assert.NilError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKey(t *testing.T) {
	a := Key("def f(x):\n    return x\n", "f", "__return_value")
	assert.Equal(t, len(a), 64)
	assert.Equal(t, a, Key("def f(x):\n    return x\n", "f", "__return_value"))
	assert.Assert(t, a != Key("def f(x):\n    return x\n", "f", "r"))
	// Part boundaries matter.
	assert.Assert(t, Key("ab", "c") != Key("a", "bc"))
}

func TestStoreLookup(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t, 0)

	_, ok, err := c.Lookup(ctx, "missing")
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	stored, err := c.Store(ctx, "k1", "f", "def f(x):\n    return x\n")
	assert.NilError(t, err)
	assert.Assert(t, stored.ID != uuid.Nil)

	got, ok, err := c.Lookup(ctx, "k1")
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.DeepEqual(t, got, stored)

	replaced, err := c.Store(ctx, "k1", "f", "changed")
	assert.NilError(t, err)
	assert.Assert(t, replaced.ID != stored.ID)
	n, err := c.Len(ctx)
	assert.NilError(t, err)
	assert.Equal(t, n, 1)
}

func TestPruneKeepsRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t, 0)
	for _, k := range []string{"a", "b", "c", "d"} {
		_, err := c.Store(ctx, k, "f", k)
		assert.NilError(t, err)
	}
	_, ok, err := c.Lookup(ctx, "a")
	assert.NilError(t, err)
	assert.Assert(t, ok)

	removed, err := c.Prune(ctx, 2)
	assert.NilError(t, err)
	assert.Equal(t, removed, 2)

	for k, want := range map[string]bool{"a": true, "b": false, "c": false, "d": true} {
		_, ok, err := c.Lookup(ctx, k)
		assert.NilError(t, err)
		assert.Equal(t, ok, want, "key %s", k)
	}
}

func TestStoreBound(t *testing.T) {
	ctx := context.Background()
	c := openTemp(t, 3)
	for i := 0; i < 10; i++ {
		_, err := c.Store(ctx, Key(string(rune('a'+i))), "f", "out")
		assert.NilError(t, err)
	}
	n, err := c.Len(ctx)
	assert.NilError(t, err)
	assert.Equal(t, n, 3)

	removed, err := c.Clear(ctx)
	assert.NilError(t, err)
	assert.Equal(t, removed, 3)
	n, err = c.Len(ctx)
	assert.NilError(t, err)
	assert.Equal(t, n, 0)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(ctx, path, 0)
	assert.NilError(t, err)
	_, err = c.Store(ctx, "k", "f", "out")
	assert.NilError(t, err)
	assert.NilError(t, c.Close())

	c, err = Open(ctx, path, 0)
	assert.NilError(t, err)
	defer c.Close()
	e, ok, err := c.Lookup(ctx, "k")
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, e.Output, "out")
}
