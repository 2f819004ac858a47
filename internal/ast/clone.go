package ast

// CloneExpression returns a deep copy of e so the copy can be placed under a
// second parent.
func CloneExpression(e Expression) Expression {
	switch n := e.(type) {
	case nil:
		return nil
	case *Identifier:
		return cloneIdent(n)
	case *IntegerLiteral:
		c := *n
		return &c
	case *StringLiteral:
		c := *n
		return &c
	case *BooleanLiteral:
		c := *n
		return &c
	case *NoneLiteral:
		c := *n
		return &c
	case *PrefixExpression:
		return &PrefixExpression{Token: n.Token, Operator: n.Operator, Right: CloneExpression(n.Right)}
	case *InfixExpression:
		return &InfixExpression{Token: n.Token, Left: CloneExpression(n.Left), Operator: n.Operator, Right: CloneExpression(n.Right)}
	case *BoolExpression:
		return &BoolExpression{Token: n.Token, Operator: n.Operator, Values: cloneExprs(n.Values)}
	case *CallExpression:
		return &CallExpression{Token: n.Token, Function: CloneExpression(n.Function), Arguments: cloneExprs(n.Arguments)}
	case *ConditionalExpression:
		return &ConditionalExpression{Token: n.Token, Test: CloneExpression(n.Test), Body: CloneExpression(n.Body), Orelse: CloneExpression(n.Orelse)}
	case *TupleLiteral:
		return &TupleLiteral{Token: n.Token, Elements: cloneExprs(n.Elements)}
	}
	panic("ast: CloneExpression: unknown expression type")
}

// CloneStatement returns a deep copy of s.
func CloneStatement(s Statement) Statement {
	switch n := s.(type) {
	case *FunctionDef:
		params := make([]*Identifier, len(n.Params))
		for i, p := range n.Params {
			params[i] = cloneIdent(p)
		}
		return &FunctionDef{Token: n.Token, Name: n.Name, Params: params, Body: CloneStatements(n.Body)}
	case *ClassDef:
		return &ClassDef{Token: n.Token, Name: n.Name, Body: CloneStatements(n.Body)}
	case *IfStatement:
		return &IfStatement{Token: n.Token, Test: CloneExpression(n.Test), Body: CloneStatements(n.Body), Orelse: CloneStatements(n.Orelse)}
	case *WhileStatement:
		return &WhileStatement{Token: n.Token, Test: CloneExpression(n.Test), Body: CloneStatements(n.Body)}
	case *ForStatement:
		return &ForStatement{Token: n.Token, Target: cloneIdent(n.Target), Iter: CloneExpression(n.Iter), Body: CloneStatements(n.Body)}
	case *TryStatement:
		handlers := make([]*ExceptHandler, len(n.Handlers))
		for i, h := range n.Handlers {
			handlers[i] = &ExceptHandler{Token: h.Token, Type: CloneExpression(h.Type), Name: cloneIdent(h.Name), Body: CloneStatements(h.Body)}
		}
		return &TryStatement{Token: n.Token, Body: CloneStatements(n.Body), Handlers: handlers, Finally: CloneStatements(n.Finally)}
	case *WithStatement:
		return &WithStatement{Token: n.Token, Item: CloneExpression(n.Item), Alias: cloneIdent(n.Alias), Body: CloneStatements(n.Body)}
	case *AssignStatement:
		return &AssignStatement{Token: n.Token, Target: cloneIdent(n.Target), Value: CloneExpression(n.Value)}
	case *ReturnStatement:
		return &ReturnStatement{Token: n.Token, Value: CloneExpression(n.Value)}
	case *PassStatement:
		return &PassStatement{Token: n.Token}
	case *ExpressionStatement:
		return &ExpressionStatement{Token: n.Token, Value: CloneExpression(n.Value)}
	}
	panic("ast: CloneStatement: unknown statement type")
}

func CloneStatements(stmts []Statement) []Statement {
	if stmts == nil {
		return nil
	}
	out := make([]Statement, len(stmts))
	for i, s := range stmts {
		out[i] = CloneStatement(s)
	}
	return out
}

func cloneExprs(exprs []Expression) []Expression {
	if exprs == nil {
		return nil
	}
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpression(e)
	}
	return out
}

func cloneIdent(id *Identifier) *Identifier {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
