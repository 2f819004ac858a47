package ast

// Visitor is implemented by anything that walks the tree through Accept.
type Visitor interface {
	VisitModule(node *Module)

	// Statements
	VisitFunctionDef(node *FunctionDef)
	VisitClassDef(node *ClassDef)
	VisitIfStatement(node *IfStatement)
	VisitWhileStatement(node *WhileStatement)
	VisitForStatement(node *ForStatement)
	VisitTryStatement(node *TryStatement)
	VisitWithStatement(node *WithStatement)
	VisitAssignStatement(node *AssignStatement)
	VisitReturnStatement(node *ReturnStatement)
	VisitPassStatement(node *PassStatement)
	VisitExpressionStatement(node *ExpressionStatement)

	// Expressions
	VisitIdentifier(node *Identifier)
	VisitIntegerLiteral(node *IntegerLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitNoneLiteral(node *NoneLiteral)
	VisitPrefixExpression(node *PrefixExpression)
	VisitInfixExpression(node *InfixExpression)
	VisitBoolExpression(node *BoolExpression)
	VisitCallExpression(node *CallExpression)
	VisitConditionalExpression(node *ConditionalExpression)
	VisitTupleLiteral(node *TupleLiteral)
}
