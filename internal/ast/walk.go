package ast

// Children returns the direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	addStmts := func(stmts []Statement) {
		for _, s := range stmts {
			out = append(out, s)
		}
	}
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil && !isNilNode(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *Module:
		addStmts(n.Body)
	case *FunctionDef:
		for _, p := range n.Params {
			add(p)
		}
		addStmts(n.Body)
	case *ClassDef:
		addStmts(n.Body)
	case *IfStatement:
		add(n.Test)
		addStmts(n.Body)
		addStmts(n.Orelse)
	case *WhileStatement:
		add(n.Test)
		addStmts(n.Body)
	case *ForStatement:
		add(n.Target, n.Iter)
		addStmts(n.Body)
	case *TryStatement:
		addStmts(n.Body)
		for _, h := range n.Handlers {
			add(h.Type, h.Name)
			addStmts(h.Body)
		}
		addStmts(n.Finally)
	case *WithStatement:
		add(n.Item, n.Alias)
		addStmts(n.Body)
	case *AssignStatement:
		add(n.Target, n.Value)
	case *ReturnStatement:
		add(n.Value)
	case *ExpressionStatement:
		add(n.Value)
	case *PrefixExpression:
		add(n.Right)
	case *InfixExpression:
		add(n.Left, n.Right)
	case *BoolExpression:
		for _, v := range n.Values {
			add(v)
		}
	case *CallExpression:
		add(n.Function)
		for _, a := range n.Arguments {
			add(a)
		}
	case *ConditionalExpression:
		add(n.Test, n.Body, n.Orelse)
	case *TupleLiteral:
		for _, e := range n.Elements {
			add(e)
		}
	}
	return out
}

// isNilNode catches optional *Identifier fields stored in a Node interface.
func isNilNode(n Node) bool {
	id, ok := n.(*Identifier)
	return ok && id == nil
}

// Inspect walks the tree depth-first in source order. If f returns false the
// children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}
