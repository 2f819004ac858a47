package ssa

import (
	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/symbols"
)

// transformer rewrites one function body. Its state lives for a single
// invocation and is never shared.
type transformer struct {
	env          symbols.Environment
	alloc        *allocator
	scope        *ScopeChain
	returnPrefix string

	// guards holds the tests of the enclosing branches, negated for else arms.
	guards  []ast.Expression
	returns []pendingReturn
}

func newTransformer(fd *ast.FunctionDef, env symbols.Environment, returnPrefix string) *transformer {
	t := &transformer{
		env:          env,
		alloc:        newAllocator(fd, env),
		scope:        NewScopeChain(),
		returnPrefix: returnPrefix,
	}
	for _, p := range fd.ParamNames() {
		t.scope.Bind(p, p)
	}
	return t
}

func (t *transformer) expr(e ast.Expression) ast.Expression {
	return renameExpression(e, t.scope.Lookup)
}

func (t *transformer) block(stmts []ast.Statement) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, stmt := range stmts {
		rewritten, err := t.statement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, rewritten...)
	}
	return out, nil
}

func (t *transformer) statement(stmt ast.Statement) ([]ast.Statement, error) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		value := t.expr(s.Value)
		name := t.alloc.fresh(s.Target.Value)
		t.scope.Bind(s.Target.Value, name)
		return []ast.Statement{assign(s, name, value)}, nil

	case *ast.ReturnStatement:
		value := t.expr(s.Value)
		name := t.alloc.fresh(t.returnPrefix)
		guards := make([]ast.Expression, len(t.guards))
		for i, g := range t.guards {
			guards[i] = ast.CloneExpression(g)
		}
		t.returns = append(t.returns, pendingReturn{guards: guards, name: name})
		return []ast.Statement{assign(s, name, value)}, nil

	case *ast.ExpressionStatement:
		return []ast.Statement{&ast.ExpressionStatement{Token: s.Token, Value: t.expr(s.Value)}}, nil

	case *ast.IfStatement:
		return t.ifStatement(s)

	case *ast.FunctionDef:
		def := renameDefinition(s, mapLookup(t.bindDefinition(s.Name))).(*ast.FunctionDef)
		def.Name, _ = t.scope.Lookup(s.Name)
		return []ast.Statement{def}, nil

	case *ast.ClassDef:
		def := renameDefinition(s, mapLookup(t.bindDefinition(s.Name))).(*ast.ClassDef)
		def.Name, _ = t.scope.Lookup(s.Name)
		return []ast.Statement{def}, nil

	case *ast.PassStatement:
		return nil, nil

	case *ast.WhileStatement, *ast.ForStatement, *ast.TryStatement, *ast.WithStatement:
		return nil, diagnostics.NewError(diagnostics.ErrS002, s.GetToken(), ast.KindName(s))
	}
	return nil, diagnostics.NewError(diagnostics.ErrS005, stmt.GetToken(), ast.KindName(stmt))
}

// bindDefinition gives a nested def or class a fresh name and returns the
// bindings its body captures, its own new name included.
func (t *transformer) bindDefinition(name string) map[string]string {
	t.scope.Bind(name, t.alloc.fresh(name))
	return t.scope.Snapshot()
}

func (t *transformer) ifStatement(s *ast.IfStatement) ([]ast.Statement, error) {
	test := t.expr(s.Test)
	thenReturns, elseReturns := AlwaysReturns(s.Body), AlwaysReturns(s.Orelse)

	body, thenFrame, err := t.branch(test, s.Body)
	if err != nil {
		return nil, err
	}
	orelse, elseFrame, err := t.branch(ast.Not(ast.CloneExpression(test)), s.Orelse)
	if err != nil {
		return nil, err
	}
	out := append(body, orelse...)

	// Only arms that fall through reach the join, so only they are merged.
	switch {
	case thenReturns && elseReturns:
	case thenReturns:
		t.scope.Adopt(elseFrame)
	case elseReturns:
		t.scope.Adopt(thenFrame)
	default:
		out = append(out, t.mux(s, test, thenFrame, elseFrame)...)
	}
	return out, nil
}

func (t *transformer) branch(guard ast.Expression, stmts []ast.Statement) ([]ast.Statement, *Frame, error) {
	t.scope.Push()
	t.guards = append(t.guards, guard)
	out, err := t.block(stmts)
	t.guards = t.guards[:len(t.guards)-1]
	frame := t.scope.Pop()
	return out, frame, err
}

// mux emits name_n = then_name if test else else_name for every name either
// arm bound. An arm that did not bind the name contributes the binding from
// before the if, or the name itself when only the environment defines it.
// A name with neither is not merged.
func (t *transformer) mux(s *ast.IfStatement, test ast.Expression, thenFrame, elseFrame *Frame) []ast.Statement {
	names := thenFrame.Names()
	for _, name := range elseFrame.Names() {
		if _, ok := thenFrame.Get(name); !ok {
			names = append(names, name)
		}
	}

	var out []ast.Statement
	for _, name := range names {
		before, defined := t.scope.Lookup(name)
		if !defined && t.env.Contains(name) {
			before, defined = name, true
		}
		thenName, inThen := thenFrame.Get(name)
		elseName, inElse := elseFrame.Get(name)
		if !inThen {
			thenName = before
		}
		if !inElse {
			elseName = before
		}
		if (!inThen || !inElse) && !defined {
			continue
		}
		fresh := t.alloc.fresh(name)
		t.scope.Bind(name, fresh)
		value := ast.Select(ast.CloneExpression(test), ast.NewName(thenName, ast.Load), ast.NewName(elseName, ast.Load))
		out = append(out, &ast.AssignStatement{
			Token:  s.Token,
			Target: ast.NewName(fresh, ast.Store),
			Value:  value,
		})
	}
	return out
}

func assign(at ast.Statement, name string, value ast.Expression) *ast.AssignStatement {
	target := ast.NewName(name, ast.Store)
	target.Token.Line, target.Token.Column = at.GetToken().Line, at.GetToken().Column
	return &ast.AssignStatement{Token: at.GetToken(), Target: target, Value: value}
}
