package unroll

import (
	"github.com/funvibe/funssa/internal/ast"
)

// substitute returns a copy of stmt with every read of name replaced by the
// integer value. Nested definitions that bind name themselves keep it.
func substitute(stmt ast.Statement, name string, value int64) ast.Statement {
	c := ast.CloneStatement(stmt)
	substituter{name: name, value: value}.statement(c)
	return c
}

type substituter struct {
	name  string
	value int64
}

func (s substituter) expr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.Identifier:
		if n.Ctx == ast.Load && n.Value == s.name {
			return &ast.IntegerLiteral{Token: n.Token, Value: s.value}
		}
	case *ast.PrefixExpression:
		n.Right = s.expr(n.Right)
	case *ast.InfixExpression:
		n.Left = s.expr(n.Left)
		n.Right = s.expr(n.Right)
	case *ast.BoolExpression:
		s.exprs(n.Values)
	case *ast.CallExpression:
		n.Function = s.expr(n.Function)
		s.exprs(n.Arguments)
	case *ast.ConditionalExpression:
		n.Test = s.expr(n.Test)
		n.Body = s.expr(n.Body)
		n.Orelse = s.expr(n.Orelse)
	case *ast.TupleLiteral:
		s.exprs(n.Elements)
	}
	return e
}

func (s substituter) exprs(es []ast.Expression) {
	for i, e := range es {
		es[i] = s.expr(e)
	}
}

func (s substituter) block(stmts []ast.Statement) {
	for _, stmt := range stmts {
		s.statement(stmt)
	}
}

func (s substituter) statement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.AssignStatement:
		n.Value = s.expr(n.Value)
	case *ast.ReturnStatement:
		n.Value = s.expr(n.Value)
	case *ast.ExpressionStatement:
		n.Value = s.expr(n.Value)
	case *ast.IfStatement:
		n.Test = s.expr(n.Test)
		s.block(n.Body)
		s.block(n.Orelse)
	case *ast.WhileStatement:
		n.Test = s.expr(n.Test)
		s.block(n.Body)
	case *ast.ForStatement:
		n.Iter = s.expr(n.Iter)
		s.block(n.Body)
	case *ast.TryStatement:
		s.block(n.Body)
		for _, h := range n.Handlers {
			h.Type = s.expr(h.Type)
			s.block(h.Body)
		}
		s.block(n.Finally)
	case *ast.WithStatement:
		n.Item = s.expr(n.Item)
		s.block(n.Body)
	case *ast.FunctionDef:
		if binds(n.ParamNames(), n.Body, s.name) {
			return
		}
		s.block(n.Body)
	case *ast.ClassDef:
		// Class-level bindings do not reach into methods.
		classBinds := binds(nil, n.Body, s.name)
		for _, member := range n.Body {
			switch member.(type) {
			case *ast.FunctionDef, *ast.ClassDef:
				s.statement(member)
			default:
				if !classBinds {
					s.statement(member)
				}
			}
		}
	}
}

func binds(params []string, body []ast.Statement, name string) bool {
	for _, p := range params {
		if p == name {
			return true
		}
	}
	for _, b := range ast.BoundNames(body) {
		if b == name {
			return true
		}
	}
	return false
}
