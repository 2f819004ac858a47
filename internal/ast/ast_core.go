package ast

import (
	"github.com/funvibe/funssa/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
//
// Nodes are never mutated once the parser hands them out. Passes build new
// nodes instead, and a node is owned by exactly one parent.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	GetToken() token.Token
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Module is the root node of every AST our parser produces.
type Module struct {
	File string
	Body []Statement
}

func (m *Module) Accept(v Visitor) { v.VisitModule(m) }
func (m *Module) TokenLiteral() string {
	if len(m.Body) > 0 {
		return m.Body[0].TokenLiteral()
	}
	return ""
}
func (m *Module) GetToken() token.Token {
	if m == nil || len(m.Body) == 0 {
		return token.Token{}
	}
	return m.Body[0].GetToken()
}

// Function returns the first top-level function definition named name, or
// the first one at all when name is empty.
func (m *Module) Function(name string) *FunctionDef {
	for _, stmt := range m.Body {
		if fd, ok := stmt.(*FunctionDef); ok && (name == "" || fd.Name == name) {
			return fd
		}
	}
	return nil
}

// FunctionDef represents a function definition with positional parameters only.
// def name(a, b):
type FunctionDef struct {
	Token  token.Token // The 'def' token
	Name   string
	Params []*Identifier
	Body   []Statement
}

func (fd *FunctionDef) Accept(v Visitor)     { v.VisitFunctionDef(fd) }
func (fd *FunctionDef) statementNode()       {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDef) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// ParamNames returns the parameter names in declaration order.
func (fd *FunctionDef) ParamNames() []string {
	names := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		names[i] = p.Value
	}
	return names
}

// ClassDef represents a class definition. Its body is opaque to the SSA pass.
type ClassDef struct {
	Token token.Token // The 'class' token
	Name  string
	Body  []Statement
}

func (cd *ClassDef) Accept(v Visitor)     { v.VisitClassDef(cd) }
func (cd *ClassDef) statementNode()       {}
func (cd *ClassDef) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDef) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// IfStatement: if test: body else: orelse. An elif chain nests in Orelse.
type IfStatement struct {
	Token  token.Token // The 'if' or 'elif' token
	Test   Expression
	Body   []Statement
	Orelse []Statement
}

func (is *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

type WhileStatement struct {
	Token token.Token
	Test  Expression
	Body  []Statement
}

func (ws *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// ForStatement: for target in iter: body
type ForStatement struct {
	Token  token.Token
	Target *Identifier
	Iter   Expression
	Body   []Statement
}

func (fs *ForStatement) Accept(v Visitor)     { v.VisitForStatement(fs) }
func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// ExceptHandler is one `except [Type] [as name]:` clause.
type ExceptHandler struct {
	Token token.Token
	Type  Expression  // Optional
	Name  *Identifier // Optional
	Body  []Statement
}

type TryStatement struct {
	Token    token.Token
	Body     []Statement
	Handlers []*ExceptHandler
	Finally  []Statement
}

func (ts *TryStatement) Accept(v Visitor)     { v.VisitTryStatement(ts) }
func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// WithStatement: with item [as alias]: body
type WithStatement struct {
	Token token.Token
	Item  Expression
	Alias *Identifier // Optional
	Body  []Statement
}

func (ws *WithStatement) Accept(v Visitor)     { v.VisitWithStatement(ws) }
func (ws *WithStatement) statementNode()       {}
func (ws *WithStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WithStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// AssignStatement binds a single name: target = value
type AssignStatement struct {
	Token  token.Token // The '=' token
	Target *Identifier // Ctx is always Store
	Value  Expression
}

func (as *AssignStatement) Accept(v Visitor)     { v.VisitAssignStatement(as) }
func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

// ReturnStatement. A bare `return` has a NoneLiteral value.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

type PassStatement struct {
	Token token.Token
}

func (ps *PassStatement) Accept(v Visitor)     { v.VisitPassStatement(ps) }
func (ps *PassStatement) statementNode()       {}
func (ps *PassStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PassStatement) GetToken() token.Token {
	if ps == nil {
		return token.Token{}
	}
	return ps.Token
}

// ExpressionStatement is an expression evaluated for its effect, e.g. a call.
type ExpressionStatement struct {
	Token token.Token
	Value Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// KindName returns a short human name for a statement, used in diagnostics.
func KindName(stmt Statement) string {
	switch stmt.(type) {
	case *FunctionDef:
		return "def"
	case *ClassDef:
		return "class"
	case *IfStatement:
		return "if"
	case *WhileStatement:
		return "while"
	case *ForStatement:
		return "for"
	case *TryStatement:
		return "try"
	case *WithStatement:
		return "with"
	case *AssignStatement:
		return "assignment"
	case *ReturnStatement:
		return "return"
	case *PassStatement:
		return "pass"
	case *ExpressionStatement:
		return "expression"
	}
	return "unknown"
}
