package parser

import (
	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.errorAt(diagnostics.ErrP004, p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorAt(diagnostics.ErrP001, p.curToken, describeToken(p.curToken))
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(token.NEWLINE) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

// parseExpressionList parses `a` or the bare tuple `a, b, c`.
func (p *Parser) parseExpressionList() ast.Expression {
	start := p.curToken
	first := p.parseExpression(LOWEST)
	if first == nil || !p.peekTokenIs(token.COMMA) {
		return first
	}

	tuple := &ast.TupleLiteral{Token: start, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.ASSIGN) || p.peekTokenIs(token.RPAREN) {
			break
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, elem)
	}
	return tuple
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme, Ctx: ast.Load}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(int64)
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNone() ast.Expression {
	return &ast.NoneLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseNotExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: "not",
	}
	p.nextToken()
	expression.Right = p.parseExpression(NOT)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseGroupedExpression parses (e), () and (a, b, ...).
func (p *Parser) parseGroupedExpression() ast.Expression {
	start := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: start, Elements: []ast.Expression{}}
	}
	p.nextToken()
	exp := p.parseExpressionList()
	if exp == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	if tuple, ok := exp.(*ast.TupleLiteral); ok {
		tuple.Token = start
	}
	return exp
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseBoolExpression flattens `a and b and c` into one node.
func (p *Parser) parseBoolExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	if be, ok := left.(*ast.BoolExpression); ok && be.Operator == op {
		values := append(append([]ast.Expression{}, be.Values...), right)
		return &ast.BoolExpression{Token: be.Token, Operator: op, Values: values}
	}
	return &ast.BoolExpression{Token: tok, Operator: op, Values: []ast.Expression{left, right}}
}

// parseConditionalExpression parses `body if test else orelse`; it nests to the right.
func (p *Parser) parseConditionalExpression(body ast.Expression) ast.Expression {
	expression := &ast.ConditionalExpression{Token: p.curToken, Body: body}
	p.nextToken()
	expression.Test = p.parseExpression(TERNARY)
	if expression.Test == nil || !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	expression.Orelse = p.parseExpression(LOWEST)
	if expression.Orelse == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Function: function, Arguments: []ast.Expression{}}
	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.errorAt(diagnostics.ErrP001, p.peekToken, "'=': keyword arguments are not supported")
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func describeExpr(e ast.Expression) string {
	switch e.(type) {
	case *ast.TupleLiteral:
		return "tuple"
	case *ast.CallExpression:
		return "function call"
	case *ast.IntegerLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NoneLiteral:
		return "literal"
	}
	return "expression"
}
