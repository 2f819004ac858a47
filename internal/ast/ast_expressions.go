package ast

import (
	"github.com/funvibe/funssa/internal/token"
)

// ExprContext tells whether an Identifier is read or written.
type ExprContext int

const (
	Load ExprContext = iota
	Store
)

func (c ExprContext) String() string {
	if c == Store {
		return "Store"
	}
	return "Load"
}

// Identifier represents a variable name, e.g. `x` in `x = y`.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
	Ctx   ExprContext
}

func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// NewName builds an identifier with no source position, for generated code.
func NewName(name string, ctx ExprContext) *Identifier {
	return &Identifier{
		Token: token.Token{Type: token.IDENT, Lexeme: name, Literal: name},
		Value: name,
		Ctx:   ctx,
	}
}

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)     { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)     { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// BooleanLiteral represents boolean literals True/False.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)     { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

type NoneLiteral struct {
	Token token.Token
}

func (n *NoneLiteral) Accept(v Visitor)     { v.VisitNoneLiteral(n) }
func (n *NoneLiteral) expressionNode()      {}
func (n *NoneLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NoneLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// PrefixExpression: -x, not x
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)     { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}

// Not wraps e in a logical negation.
func Not(e Expression) *PrefixExpression {
	return &PrefixExpression{
		Token:    token.Token{Type: token.NOT, Lexeme: "not"},
		Operator: "not",
		Right:    e,
	}
}

// InfixExpression covers arithmetic and comparison operators.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)     { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// BoolExpression is a flattened `and`/`or` chain: a and b and c.
type BoolExpression struct {
	Token    token.Token
	Operator string // "and" or "or"
	Values   []Expression
}

func (be *BoolExpression) Accept(v Visitor)     { v.VisitBoolExpression(be) }
func (be *BoolExpression) expressionNode()      {}
func (be *BoolExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BoolExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}

// And conjoins values. A single value is returned as is.
func And(values ...Expression) Expression {
	if len(values) == 1 {
		return values[0]
	}
	return &BoolExpression{
		Token:    token.Token{Type: token.AND, Lexeme: "and"},
		Operator: "and",
		Values:   values,
	}
}

type CallExpression struct {
	Token     token.Token // The '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// ConditionalExpression: body if test else orelse
type ConditionalExpression struct {
	Token  token.Token // The 'if' token
	Test   Expression
	Body   Expression
	Orelse Expression
}

func (ce *ConditionalExpression) Accept(v Visitor)     { v.VisitConditionalExpression(ce) }
func (ce *ConditionalExpression) expressionNode()      {}
func (ce *ConditionalExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *ConditionalExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// Select builds `body if test else orelse`.
func Select(test, body, orelse Expression) *ConditionalExpression {
	return &ConditionalExpression{
		Token:  token.Token{Type: token.IF, Lexeme: "if"},
		Test:   test,
		Body:   body,
		Orelse: orelse,
	}
}

type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) Accept(v Visitor)     { v.VisitTupleLiteral(tl) }
func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token {
	if tl == nil {
		return token.Token{}
	}
	return tl.Token
}
