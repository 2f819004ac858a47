package parser

import (
	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/token"
)

// parseStatement parses one statement starting at curToken. On return
// curToken is the last token of the statement: the NEWLINE of a simple
// statement or the DEDENT closing a block.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef()
	case token.CLASS:
		return p.parseClassDef()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.INDENT:
		p.errorAt(diagnostics.ErrP001, p.curToken, "indent")
		return nil
	}
	return p.parseSimpleStatement()
}

// parseSimpleStatement parses a one-line statement up to and including its NEWLINE.
func (p *Parser) parseSimpleStatement() ast.Statement {
	var stmt ast.Statement
	switch p.curToken.Type {
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.PASS:
		stmt = &ast.PassStatement{Token: p.curToken}
	default:
		stmt = p.parseAssignOrExpression()
	}
	if stmt == nil {
		return nil
	}
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) {
		stmt.Value = &ast.NoneLiteral{Token: p.curToken}
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpressionList()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseAssignOrExpression() ast.Statement {
	start := p.curToken
	expr := p.parseExpressionList()
	if expr == nil {
		return nil
	}
	if !p.peekTokenIs(token.ASSIGN) {
		return &ast.ExpressionStatement{Token: start, Value: expr}
	}

	target, ok := expr.(*ast.Identifier)
	if !ok {
		p.errorAt(diagnostics.ErrP003, p.peekToken, describeExpr(expr))
		return nil
	}
	p.nextToken()
	stmt := &ast.AssignStatement{
		Token:  p.curToken,
		Target: &ast.Identifier{Token: target.Token, Value: target.Value, Ctx: ast.Store},
	}
	p.nextToken()
	stmt.Value = p.parseExpressionList()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// parseBlock parses the suite after a ':'. Either an indented block or a
// single simple statement on the same line.
func (p *Parser) parseBlock() []ast.Statement {
	if !p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
		stmt := p.parseSimpleStatement()
		if stmt == nil {
			return nil
		}
		return []ast.Statement{stmt}
	}

	p.nextToken() // NEWLINE
	if !p.expectPeek(token.INDENT) {
		return nil
	}
	p.nextToken()

	var body []ast.Statement
	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		body = append(body, stmt)
		p.nextToken()
	}
	return body
}

func (p *Parser) parseFunctionDef() ast.Statement {
	fd := &ast.FunctionDef{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fd.Name = p.curToken.Lexeme
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	fd.Params = []*ast.Identifier{}
	for !p.peekTokenIs(token.RPAREN) {
		if p.peekTokenIs(token.ASTERISK) {
			p.errorAt(diagnostics.ErrP001, p.peekToken, "'*': variadic parameters are not supported")
			return nil
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		fd.Params = append(fd.Params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme, Ctx: ast.Store})
		if p.peekTokenIs(token.ASSIGN) {
			p.errorAt(diagnostics.ErrP001, p.peekToken, "'=': default parameter values are not supported")
			return nil
		}
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) || !p.expectPeek(token.COLON) {
		return nil
	}
	fd.Body = p.parseBlock()
	if fd.Body == nil {
		return nil
	}
	return fd
}

func (p *Parser) parseClassDef() ast.Statement {
	cd := &ast.ClassDef{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	cd.Name = p.curToken.Lexeme
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	cd.Body = p.parseBlock()
	if cd.Body == nil {
		return nil
	}
	return cd
}

// parseIfStatement handles if/elif/else. An elif becomes a nested if in Orelse.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Test = p.parseExpression(LOWEST)
	if stmt.Test == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}

	switch {
	case p.peekTokenIs(token.ELIF):
		p.nextToken()
		elif := p.parseIfStatement()
		if elif == nil {
			return nil
		}
		stmt.Orelse = []ast.Statement{elif}
	case p.peekTokenIs(token.ELSE):
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return nil
		}
		stmt.Orelse = p.parseBlock()
		if stmt.Orelse == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Test = p.parseExpression(LOWEST)
	if stmt.Test == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Target = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme, Ctx: ast.Store}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Iter = p.parseExpression(LOWEST)
	if stmt.Iter == nil || !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}

	for p.peekTokenIs(token.EXCEPT) {
		p.nextToken()
		h := &ast.ExceptHandler{Token: p.curToken}
		if !p.peekTokenIs(token.COLON) {
			p.nextToken()
			h.Type = p.parseExpression(LOWEST)
			if h.Type == nil {
				return nil
			}
			if p.peekTokenIs(token.AS) {
				p.nextToken()
				if !p.expectPeek(token.IDENT) {
					return nil
				}
				h.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme, Ctx: ast.Store}
			}
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		h.Body = p.parseBlock()
		if h.Body == nil {
			return nil
		}
		stmt.Handlers = append(stmt.Handlers, h)
	}

	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return nil
		}
		stmt.Finally = p.parseBlock()
		if stmt.Finally == nil {
			return nil
		}
	}

	if len(stmt.Handlers) == 0 && stmt.Finally == nil {
		p.errorAt(diagnostics.ErrP002, p.peekToken, "'except' or 'finally'", describeToken(p.peekToken))
		return nil
	}
	return stmt
}

func (p *Parser) parseWithStatement() ast.Statement {
	stmt := &ast.WithStatement{Token: p.curToken}
	p.nextToken()
	stmt.Item = p.parseExpression(LOWEST)
	if stmt.Item == nil {
		return nil
	}
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme, Ctx: ast.Store}
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	stmt.Body = p.parseBlock()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}
