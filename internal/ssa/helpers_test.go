package ssa

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/evaluator"
	"github.com/funvibe/funssa/internal/parser"
	"github.com/funvibe/funssa/internal/symbols"
)

// testingT is satisfied by *testing.T and *rapid.T.
type testingT interface {
	assert.TestingT
	Fatalf(format string, args ...interface{})
}

func helper(t testingT) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
}

// program is a parsed module whose top level has run.
type program struct {
	globals *evaluator.Environment
	fn      *ast.FunctionDef
	env     symbols.Environment
}

func load(t testing.TB, src string) *program {
	t.Helper()
	module, err := parser.ParseSource(src)
	assert.NilError(t, err)
	globals := evaluator.NewGlobalEnvironment()
	assert.NilError(t, evaluator.New().EvalModule(module, globals))
	fn := module.Function("")
	assert.Assert(t, fn != nil, "no function in source")
	return &program{
		globals: globals,
		fn:      fn,
		env:     symbols.NewSymbolTable(nil, globals.Snapshot()),
	}
}

func (p *program) call(fd *ast.FunctionDef, args ...interface{}) (evaluator.Object, error) {
	objs := make([]evaluator.Object, len(args))
	for i, a := range args {
		objs[i] = evaluator.FromGo(a)
	}
	return evaluator.CallRewritten(p.globals, fd, "", objs...)
}

// assertEquivalent checks that fn and its conversion agree on every argument list.
func assertEquivalent(t testingT, p *program, converted *ast.FunctionDef, argLists [][]interface{}) {
	helper(t)
	for _, args := range argLists {
		want, wantErr := p.call(p.fn, args...)
		got, gotErr := p.call(converted, args...)
		assert.NilError(t, wantErr, "original failed for %v", args)
		assert.NilError(t, gotErr, "converted failed for %v", args)
		assert.Assert(t, evaluator.Equal(want, got), "args %v: original %s, converted %s", args, want.Inspect(), got.Inspect())
	}
}

func boolArgs(n int) [][]interface{} {
	out := [][]interface{}{{}}
	for i := 0; i < n; i++ {
		var next [][]interface{}
		for _, prefix := range out {
			for _, v := range []bool{false, true} {
				args := append(append([]interface{}{}, prefix...), v)
				next = append(next, args)
			}
		}
		out = next
	}
	return out
}

// checkShape fails unless every binding in the body is distinct and the body
// ends in its only return.
func checkShape(t testingT, fd *ast.FunctionDef) {
	helper(t)
	assert.Assert(t, len(fd.Body) > 0)
	seen := make(map[string]bool)
	for i, stmt := range fd.Body {
		switch s := stmt.(type) {
		case *ast.ReturnStatement:
			assert.Equal(t, i, len(fd.Body)-1, "return before the end of the body")
		case *ast.AssignStatement:
			assert.Assert(t, !seen[s.Target.Value], "%s assigned twice", s.Target.Value)
			seen[s.Target.Value] = true
		case *ast.FunctionDef:
			assert.Assert(t, !seen[s.Name], "%s bound twice", s.Name)
			seen[s.Name] = true
		case *ast.ClassDef:
			assert.Assert(t, !seen[s.Name], "%s bound twice", s.Name)
			seen[s.Name] = true
		case *ast.ExpressionStatement:
		default:
			t.Fatalf("unexpected %s statement in converted body", ast.KindName(stmt))
		}
	}
	_, ok := fd.Body[len(fd.Body)-1].(*ast.ReturnStatement)
	assert.Assert(t, ok, "body does not end in a return")
}
