package ssa

import (
	"testing"

	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/evaluator"
	"github.com/funvibe/funssa/internal/parser"
	"github.com/funvibe/funssa/internal/prettyprinter"
	"github.com/funvibe/funssa/internal/symbols"
)

var (
	genParams = []string{"x", "y"}
	genLocals = []string{"a", "b", "c"}
	genVars   = append(append([]string{}, genParams...), genLocals...)
)

// genExpr draws a total expression over ints and bools: nothing in it can
// fail at run time, so evaluating an untaken arm is harmless.
func genExpr(t *rapid.T, depth int) ast.Expression {
	max := 6
	if depth <= 0 {
		max = 1
	}
	switch rapid.IntRange(0, max).Draw(t, "expr") {
	case 0:
		return &ast.IntegerLiteral{Value: int64(rapid.IntRange(-3, 3).Draw(t, "int"))}
	case 1:
		return ast.NewName(rapid.SampledFrom(genVars).Draw(t, "read"), ast.Load)
	case 2:
		return &ast.InfixExpression{
			Operator: rapid.SampledFrom([]string{"+", "-", "*"}).Draw(t, "arith"),
			Left:     genExpr(t, depth-1),
			Right:    genExpr(t, depth-1),
		}
	case 3:
		return &ast.InfixExpression{
			Operator: rapid.SampledFrom([]string{"==", "!=", "<", ">=", "<="}).Draw(t, "compare"),
			Left:     genExpr(t, depth-1),
			Right:    genExpr(t, depth-1),
		}
	case 4:
		return &ast.BoolExpression{
			Operator: rapid.SampledFrom([]string{"and", "or"}).Draw(t, "boolop"),
			Values:   []ast.Expression{genExpr(t, depth-1), genExpr(t, depth-1)},
		}
	case 5:
		return ast.Not(genExpr(t, depth-1))
	default:
		return ast.Select(genExpr(t, depth-1), genExpr(t, depth-1), genExpr(t, depth-1))
	}
}

func genBlock(t *rapid.T, depth int) []ast.Statement {
	n := rapid.IntRange(1, 3).Draw(t, "block")
	stmts := make([]ast.Statement, 0, n)
	for i := 0; i < n; i++ {
		stmts = append(stmts, genStatement(t, depth))
	}
	return stmts
}

func genStatement(t *rapid.T, depth int) ast.Statement {
	max := 2
	if depth <= 0 {
		max = 1
	}
	switch rapid.IntRange(0, max).Draw(t, "stmt") {
	case 0:
		return &ast.AssignStatement{
			Target: ast.NewName(rapid.SampledFrom(genVars).Draw(t, "write"), ast.Store),
			Value:  genExpr(t, 2),
		}
	case 1:
		return &ast.ReturnStatement{Value: genExpr(t, 2)}
	default:
		stmt := &ast.IfStatement{Test: genExpr(t, 1), Body: genBlock(t, depth-1)}
		if rapid.Bool().Draw(t, "else") {
			stmt.Orelse = genBlock(t, depth-1)
		}
		return stmt
	}
}

func genFunction(t *rapid.T) *ast.FunctionDef {
	fd := &ast.FunctionDef{Name: "f"}
	for _, p := range genParams {
		fd.Params = append(fd.Params, ast.NewName(p, ast.Store))
	}
	for _, l := range genLocals {
		if rapid.Bool().Draw(t, "init_"+l) {
			fd.Body = append(fd.Body, &ast.AssignStatement{
				Target: ast.NewName(l, ast.Store),
				Value:  &ast.IntegerLiteral{Value: int64(rapid.IntRange(-3, 3).Draw(t, "init"))},
			})
		}
	}
	fd.Body = append(fd.Body, genBlock(t, 3)...)
	if rapid.IntRange(0, 4).Draw(t, "final") > 0 {
		fd.Body = append(fd.Body, &ast.ReturnStatement{Value: genExpr(t, 2)})
	}
	return fd
}

func TestConversionProperties(t *testing.T) {
	globals := evaluator.NewGlobalEnvironment()
	env := symbols.NewSymbolTable(nil, globals.Snapshot())
	inputs := []int{-1, 0, 2}

	rapid.Check(t, func(t *rapid.T) {
		fd := genFunction(t)
		out, err := Convert(fd, env)
		if err != nil {
			assert.Assert(t, diagnostics.HasCode(err, diagnostics.ErrS003) || diagnostics.HasCode(err, diagnostics.ErrS004),
				"unexpected rejection: %v", err)
			return
		}
		checkShape(t, out)

		// The printed result must read back as the same function.
		module, err := parser.ParseSource(prettyprinter.Print(out))
		assert.NilError(t, err)
		reparsed := module.Function("f")
		assert.Assert(t, reparsed != nil)

		for _, x := range inputs {
			for _, y := range inputs {
				args := []evaluator.Object{evaluator.FromGo(x), evaluator.FromGo(y)}
				want, err := evaluator.CallRewritten(globals, fd, "", args...)
				assert.NilError(t, err, "accepted function reads an unassigned name for x=%d y=%d", x, y)
				got, err := evaluator.CallRewritten(globals, out, "", args...)
				assert.NilError(t, err)
				assert.Assert(t, evaluator.Equal(want, got), "x=%d y=%d: want %s, got %s", x, y, want.Inspect(), got.Inspect())

				again, err := evaluator.CallRewritten(globals, reparsed, "", args...)
				assert.NilError(t, err)
				assert.Assert(t, evaluator.Equal(got, again), "printed form differs for x=%d y=%d", x, y)
			}
		}
	})
}
