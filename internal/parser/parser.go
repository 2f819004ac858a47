package parser

import (
	"fmt"
	"strings"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/token"
)

// MaxRecursionDepth bounds expression nesting so hostile input cannot blow the stack.
const MaxRecursionDepth = 500

const (
	_ int = iota
	LOWEST
	TERNARY // x if c else y
	OR      // or
	AND     // and
	NOT     // not x
	COMPARE // == != < > <= >=
	SUM     // + -
	PRODUCT // * / // %
	PREFIX  // -x
	CALL    // f(x)
)

var precedences = map[token.TokenType]int{
	token.IF:          TERNARY,
	token.OR:          OR,
	token.AND:         AND,
	token.EQ:          COMPARE,
	token.NOT_EQ:      COMPARE,
	token.LT:          COMPARE,
	token.GT:          COMPARE,
	token.LTE:         COMPARE,
	token.GTE:         COMPARE,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.ASTERISK:    PRODUCT,
	token.SLASH:       PRODUCT,
	token.SLASH_SLASH: PRODUCT,
	token.PERCENT:     PRODUCT,
	token.LPAREN:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	depth  int
	errors []*diagnostics.DiagnosticError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.INT:    p.parseIntegerLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBoolean,
		token.FALSE:  p.parseBoolean,
		token.NONE:   p.parseNone,
		token.MINUS:  p.parsePrefixExpression,
		token.PLUS:   p.parsePrefixExpression,
		token.NOT:    p.parseNotExpression,
		token.LPAREN: p.parseGroupedExpression,
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.SLASH_SLASH, token.PERCENT,
	} {
		p.infixParseFns[t] = p.parseInfixExpression
	}
	p.infixParseFns[token.AND] = p.parseBoolExpression
	p.infixParseFns[token.OR] = p.parseBoolExpression
	p.infixParseFns[token.IF] = p.parseConditionalExpression
	p.infixParseFns[token.LPAREN] = p.parseCallExpression

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, diagnostics.NewError(
		diagnostics.ErrP002,
		p.peekToken,
		describe(t),
		describeToken(p.peekToken),
	))
}

func (p *Parser) errorAt(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(code, tok, args...))
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseModule parses the whole token stream.
func (p *Parser) ParseModule() *ast.Module {
	module := &ast.Module{}
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) || (len(p.errors) > 0 && (p.curTokenIs(token.INDENT) || p.curTokenIs(token.DEDENT))) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			module.Body = append(module.Body, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}
	return module
}

// synchronize skips to the end of the current logical line after an error.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func describe(t token.TokenType) string {
	switch t {
	case token.NEWLINE:
		return "end of line"
	case token.INDENT:
		return "indented block"
	case token.DEDENT:
		return "end of block"
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return "identifier"
	}
	if len(t) > 0 && t[0] >= 'A' && t[0] <= 'Z' {
		return fmt.Sprintf("keyword %q", strings.ToLower(string(t)))
	}
	return fmt.Sprintf("%q", string(t))
}

func describeToken(tok token.Token) string {
	if tok.Lexeme != "" && tok.Type != token.NEWLINE {
		return fmt.Sprintf("%q", tok.Lexeme)
	}
	return describe(tok.Type)
}
