package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const incSource = `def foo(a, b):
    if b:
        a = a + 1
    return a
`

const incSSA = `def foo(a, b):
    a0 = a + 1
    a1 = a0 if b else a
    __return_value0 = a1
    return __return_value0
`

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "funssa.yaml")
	assert.NilError(t, os.WriteFile(cfg, []byte("cache:\n  path: cache.db\n"), 0o644))
	return &harness{t: t, dir: dir, config: cfg}
}

func (h *harness) file(name, src string) string {
	path := filepath.Join(h.dir, name)
	assert.NilError(h.t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func (h *harness) run(stdin string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	streams := Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut}
	code = Execute(append([]string{"--config", h.config}, args...), streams)
	return code, out.String(), errOut.String()
}

func TestSSA(t *testing.T) {
	h := newHarness(t)
	path := h.file("inc.py", incSource)

	code, out, errOut := h.run("", "ssa", path)
	assert.Equal(t, code, 0, errOut)
	assert.Equal(t, out, incSSA)

	// Served from the cache the second time, with the same output.
	code, out, _ = h.run("", "ssa", path)
	assert.Equal(t, code, 0)
	assert.Equal(t, out, incSSA)

	code, out, _ = h.run("", "cache", "clear")
	assert.Equal(t, code, 0)
	assert.Equal(t, out, "Removed 1 entries\n")
}

func TestSSAStdinAndPrefix(t *testing.T) {
	h := newHarness(t)
	code, out, errOut := h.run(incSource, "--no-cache", "ssa", "--prefix", "r")
	assert.Equal(t, code, 0, errOut)
	assert.Assert(t, is.Contains(out, "r0 = a1\n    return r0\n"))
}

func TestSSAMultipleFiles(t *testing.T) {
	h := newHarness(t)
	good := h.file("good.py", incSource)
	bad := h.file("bad.py", "def f(x):\n    while x:\n        x = x - 1\n    return x\n")
	other := h.file("other.py", "def g(x):\n    return x\n")

	code, out, errOut := h.run("", "ssa", "-j", "2", good, bad, other)
	assert.Equal(t, code, 1)
	assert.Equal(t, out, "# "+good+"\n"+incSSA+"# "+other+"\ndef g(x):\n    __return_value0 = x\n    return __return_value0\n")
	assert.Assert(t, is.Contains(errOut, bad+":2:"))
	assert.Assert(t, is.Contains(errOut, "error [S002]: cannot handle while statement"))
}

func TestCheck(t *testing.T) {
	h := newHarness(t)
	good := h.file("good.py", incSource)
	bad := h.file("bad.py", "def f(x):\n    if x:\n        y = 1\n    return y\n")

	code, out, errOut := h.run("", "check", good, bad)
	assert.Equal(t, code, 1)
	assert.Equal(t, out, good+": ok (foo)\n")
	assert.Assert(t, is.Contains(errOut, `cannot prove name "y" is defined (UnprovableName)`))
}

func TestRun(t *testing.T) {
	h := newHarness(t)
	path := h.file("inc.py", incSource)

	code, out, errOut := h.run("", "run", "--compare", path, "3", "True")
	assert.Equal(t, code, 0, errOut)
	assert.Equal(t, out, "4\n")

	code, out, _ = h.run("", "run", path, "3", "False")
	assert.Equal(t, code, 0)
	assert.Equal(t, out, "3\n")

	code, _, errOut = h.run("", "run", path, "3")
	assert.Equal(t, code, 1)
	assert.Assert(t, is.Contains(errOut, "R003"))
}

func TestRunUnroll(t *testing.T) {
	h := newHarness(t)
	path := h.file("sum.py", "def total(n):\n    acc = 0\n    for i in unroll(4):\n        if n > i:\n            acc = acc + i\n    return acc\n")

	code, _, errOut := h.run("", "run", path, "2")
	assert.Equal(t, code, 1)
	assert.Assert(t, is.Contains(errOut, "[S002]"))

	code, out, errOut := h.run("", "run", "--unroll", "--compare", path, "2")
	assert.Equal(t, code, 0, errOut)
	assert.Equal(t, out, "1\n")
}

func TestDumps(t *testing.T) {
	h := newHarness(t)
	path := h.file("inc.py", incSource)
	code, out, errOut := h.run("", "ssa", "--dump-source", path)
	assert.Equal(t, code, 0)
	assert.Equal(t, out, incSSA)
	assert.Assert(t, is.Contains(errOut, "--- "+path+": input (source) ---\n"+incSource))
	assert.Assert(t, is.Contains(errOut, "--- "+path+": ssa (source) ---\n"+incSSA))
}

func TestBadConfig(t *testing.T) {
	h := newHarness(t)
	assert.NilError(t, os.WriteFile(h.config, []byte("return_prefix: 1abc\n"), 0o644))
	code, _, errOut := h.run("", "ssa", "x.py")
	assert.Equal(t, code, 1)
	assert.Assert(t, is.Contains(errOut, "Error: "))
	assert.Assert(t, is.Contains(errOut, "not a valid identifier"))
}

func TestMissingFile(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("", "ssa", filepath.Join(h.dir, "nope.py"))
	assert.Equal(t, code, 1)
	assert.Assert(t, is.Contains(errOut, "error reading input"))
}

func TestBadPrefixFlag(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run(incSource, "ssa", "--prefix", "ret-")
	assert.Equal(t, code, 1)
	assert.Assert(t, is.Contains(errOut, `--prefix "ret-" is not a valid identifier`))
}
