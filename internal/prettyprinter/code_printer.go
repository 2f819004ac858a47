package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/funssa/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Mirrors the parser.
const (
	precTuple = iota
	precTernary
	precOr
	precAnd
	precNot
	precCompare
	precSum
	precProduct
	precPrefix
	precAtom
)

var operatorPrecedence = map[string]int{
	"or":  precOr,
	"and": precAnd,
	"==":  precCompare,
	"!=":  precCompare,
	"<":   precCompare,
	">":   precCompare,
	"<=":  precCompare,
	">=":  precCompare,
	"+":   precSum,
	"-":   precSum,
	"*":   precProduct,
	"/":   precProduct,
	"//":  precProduct,
	"%":   precProduct,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return precAtom
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node as source.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

// PrintExpression renders an expression without a trailing newline.
func PrintExpression(e ast.Expression) string {
	p := NewCodePrinter()
	p.printExpr(e, precTuple)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.write("\n")
}

func (p *CodePrinter) block(stmts []ast.Statement) {
	p.indent++
	if len(stmts) == 0 {
		p.line("pass")
	}
	for _, s := range stmts {
		s.Accept(p)
	}
	p.indent--
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int) {
	if expr == nil {
		p.write("<???>")
		return
	}
	prec := exprPrecedence(expr)
	needParens := prec < parentPrec
	// A bare tuple is only legal at statement level.
	if tl, ok := expr.(*ast.TupleLiteral); ok && (parentPrec > precTuple || len(tl.Elements) < 2) {
		needParens = true
	}
	if needParens {
		p.write("(")
	}
	switch e := expr.(type) {
	case *ast.InfixExpression:
		// left-associative: the right operand needs parens at equal precedence
		p.printExpr(e.Left, prec)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec+1)
	case *ast.BoolExpression:
		for i, v := range e.Values {
			if i > 0 {
				p.write(" " + e.Operator + " ")
			}
			p.printExpr(v, prec+1)
		}
	case *ast.PrefixExpression:
		if e.Operator == "not" {
			p.write("not ")
		} else {
			p.write(e.Operator)
		}
		p.printExpr(e.Right, prec)
	case *ast.ConditionalExpression:
		p.printExpr(e.Body, precTernary+1)
		p.write(" if ")
		p.printExpr(e.Test, precTernary+1)
		p.write(" else ")
		p.printExpr(e.Orelse, precTernary)
	case *ast.TupleLiteral:
		for i, el := range e.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(el, precTernary)
		}
		if len(e.Elements) == 1 {
			p.write(",")
		}
	default:
		expr.Accept(p)
	}
	if needParens {
		p.write(")")
	}
}

func exprPrecedence(expr ast.Expression) int {
	switch e := expr.(type) {
	case *ast.TupleLiteral:
		return precTuple
	case *ast.ConditionalExpression:
		return precTernary
	case *ast.BoolExpression:
		return getPrecedence(e.Operator)
	case *ast.InfixExpression:
		return getPrecedence(e.Operator)
	case *ast.PrefixExpression:
		if e.Operator == "not" {
			return precNot
		}
		return precPrefix
	}
	return precAtom
}

func (p *CodePrinter) VisitModule(n *ast.Module) {
	for i, s := range n.Body {
		if i > 0 {
			if _, ok := s.(*ast.FunctionDef); ok {
				p.write("\n")
			}
		}
		s.Accept(p)
	}
}

func (p *CodePrinter) VisitFunctionDef(n *ast.FunctionDef) {
	p.line("def " + n.Name + "(" + strings.Join(n.ParamNames(), ", ") + "):")
	p.block(n.Body)
}

func (p *CodePrinter) VisitClassDef(n *ast.ClassDef) {
	p.line("class " + n.Name + ":")
	p.block(n.Body)
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.ifChain(n, "if ")
}

func (p *CodePrinter) ifChain(n *ast.IfStatement, keyword string) {
	p.line(keyword + PrintExpression(n.Test) + ":")
	p.block(n.Body)
	if len(n.Orelse) == 0 {
		return
	}
	if elif, ok := n.Orelse[0].(*ast.IfStatement); ok && len(n.Orelse) == 1 {
		p.ifChain(elif, "elif ")
		return
	}
	p.line("else:")
	p.block(n.Orelse)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.line("while " + PrintExpression(n.Test) + ":")
	p.block(n.Body)
}

func (p *CodePrinter) VisitForStatement(n *ast.ForStatement) {
	p.line("for " + n.Target.Value + " in " + PrintExpression(n.Iter) + ":")
	p.block(n.Body)
}

func (p *CodePrinter) VisitTryStatement(n *ast.TryStatement) {
	p.line("try:")
	p.block(n.Body)
	for _, h := range n.Handlers {
		head := "except"
		if h.Type != nil {
			head += " " + PrintExpression(h.Type)
			if h.Name != nil {
				head += " as " + h.Name.Value
			}
		}
		p.line(head + ":")
		p.block(h.Body)
	}
	if n.Finally != nil {
		p.line("finally:")
		p.block(n.Finally)
	}
}

func (p *CodePrinter) VisitWithStatement(n *ast.WithStatement) {
	head := "with " + PrintExpression(n.Item)
	if n.Alias != nil {
		head += " as " + n.Alias.Value
	}
	p.line(head + ":")
	p.block(n.Body)
}

func (p *CodePrinter) VisitAssignStatement(n *ast.AssignStatement) {
	p.line(n.Target.Value + " = " + PrintExpression(n.Value))
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	if _, ok := n.Value.(*ast.NoneLiteral); ok || n.Value == nil {
		p.line("return")
		return
	}
	p.line("return " + PrintExpression(n.Value))
}

func (p *CodePrinter) VisitPassStatement(n *ast.PassStatement) {
	p.line("pass")
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.line(PrintExpression(n.Value))
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.write("True")
	} else {
		p.write("False")
	}
}

func (p *CodePrinter) VisitNoneLiteral(n *ast.NoneLiteral) {
	p.write("None")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) { p.printExpr(n, precTuple) }
func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression)   { p.printExpr(n, precTuple) }
func (p *CodePrinter) VisitBoolExpression(n *ast.BoolExpression)     { p.printExpr(n, precTuple) }
func (p *CodePrinter) VisitConditionalExpression(n *ast.ConditionalExpression) {
	p.printExpr(n, precTuple)
}
func (p *CodePrinter) VisitTupleLiteral(n *ast.TupleLiteral) { p.printExpr(n, precTuple) }

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.printExpr(n.Function, precAtom)
	p.write("(")
	for i, a := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(a, precTernary)
	}
	p.write(")")
}

// quote renders a string literal with single quotes, escaping what the lexer unescapes.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
