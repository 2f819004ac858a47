package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/funssa/internal/ast"
)

// --- Tree Printer (Output looks like an indented node dump) ---

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// PrintTree dumps the structure of node, one node per line.
func PrintTree(node ast.Node) string {
	p := NewTreePrinter()
	node.Accept(p)
	return p.String()
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) writeLine(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteString("\n")
}

func (p *TreePrinter) nested(label string, nodes ...ast.Node) {
	p.indent++
	if label != "" {
		p.writeLine("%s:", label)
		p.indent++
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.Accept(p)
	}
	if label != "" {
		p.indent--
	}
	p.indent--
}

func stmtNodes(stmts []ast.Statement) []ast.Node {
	out := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprNodes(exprs []ast.Expression) []ast.Node {
	out := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func (p *TreePrinter) VisitModule(n *ast.Module) {
	p.writeLine("Module %s", n.File)
	p.nested("", stmtNodes(n.Body)...)
}

func (p *TreePrinter) VisitFunctionDef(n *ast.FunctionDef) {
	p.writeLine("FunctionDef %s(%s)", n.Name, strings.Join(n.ParamNames(), ", "))
	p.nested("", stmtNodes(n.Body)...)
}

func (p *TreePrinter) VisitClassDef(n *ast.ClassDef) {
	p.writeLine("ClassDef %s", n.Name)
	p.nested("", stmtNodes(n.Body)...)
}

func (p *TreePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.writeLine("If")
	p.nested("test", n.Test)
	p.nested("body", stmtNodes(n.Body)...)
	if len(n.Orelse) > 0 {
		p.nested("orelse", stmtNodes(n.Orelse)...)
	}
}

func (p *TreePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.writeLine("While")
	p.nested("test", n.Test)
	p.nested("body", stmtNodes(n.Body)...)
}

func (p *TreePrinter) VisitForStatement(n *ast.ForStatement) {
	p.writeLine("For %s", n.Target.Value)
	p.nested("iter", n.Iter)
	p.nested("body", stmtNodes(n.Body)...)
}

func (p *TreePrinter) VisitTryStatement(n *ast.TryStatement) {
	p.writeLine("Try")
	p.nested("body", stmtNodes(n.Body)...)
	for _, h := range n.Handlers {
		p.indent++
		name := ""
		if h.Name != nil {
			name = " as " + h.Name.Value
		}
		p.writeLine("ExceptHandler%s", name)
		if h.Type != nil {
			p.nested("type", h.Type)
		}
		p.nested("body", stmtNodes(h.Body)...)
		p.indent--
	}
	if n.Finally != nil {
		p.nested("finally", stmtNodes(n.Finally)...)
	}
}

func (p *TreePrinter) VisitWithStatement(n *ast.WithStatement) {
	alias := ""
	if n.Alias != nil {
		alias = " as " + n.Alias.Value
	}
	p.writeLine("With%s", alias)
	p.nested("item", n.Item)
	p.nested("body", stmtNodes(n.Body)...)
}

func (p *TreePrinter) VisitAssignStatement(n *ast.AssignStatement) {
	p.writeLine("Assign")
	p.nested("", n.Target, n.Value)
}

func (p *TreePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.writeLine("Return")
	p.nested("", n.Value)
}

func (p *TreePrinter) VisitPassStatement(n *ast.PassStatement) {
	p.writeLine("Pass")
}

func (p *TreePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.writeLine("Expr")
	p.nested("", n.Value)
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	p.writeLine("Name %s (%s)", n.Value, n.Ctx)
}

func (p *TreePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.writeLine("Int %d", n.Value)
}

func (p *TreePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.writeLine("Str %q", n.Value)
}

func (p *TreePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.writeLine("Bool %t", n.Value)
}

func (p *TreePrinter) VisitNoneLiteral(n *ast.NoneLiteral) {
	p.writeLine("None")
}

func (p *TreePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.writeLine("UnaryOp %s", n.Operator)
	p.nested("", n.Right)
}

func (p *TreePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	p.writeLine("BinOp %s", n.Operator)
	p.nested("", n.Left, n.Right)
}

func (p *TreePrinter) VisitBoolExpression(n *ast.BoolExpression) {
	p.writeLine("BoolOp %s", n.Operator)
	p.nested("", exprNodes(n.Values)...)
}

func (p *TreePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.writeLine("Call")
	p.nested("func", n.Function)
	if len(n.Arguments) > 0 {
		p.nested("args", exprNodes(n.Arguments)...)
	}
}

func (p *TreePrinter) VisitConditionalExpression(n *ast.ConditionalExpression) {
	p.writeLine("IfExp")
	p.nested("test", n.Test)
	p.nested("body", n.Body)
	p.nested("orelse", n.Orelse)
}

func (p *TreePrinter) VisitTupleLiteral(n *ast.TupleLiteral) {
	p.writeLine("Tuple")
	p.nested("", exprNodes(n.Elements)...)
}
