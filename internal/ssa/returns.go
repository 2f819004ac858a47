package ssa

import (
	"github.com/funvibe/funssa/internal/ast"
)

// pendingReturn is one visited return: the branch tests that lead to it and
// the name its value was assigned to.
type pendingReturn struct {
	guards []ast.Expression
	name   string
}

// consolidate folds the returns, in visit order, into one expression:
//
//	r0 if g0 else (r1 if g1 else ... rN)
//
// The last return is the unconditional fallback. A return with no guards
// ends the chain since it is always taken when reached.
func consolidate(returns []pendingReturn) ast.Expression {
	first := returns[0]
	name := ast.NewName(first.name, ast.Load)
	if len(returns) == 1 || len(first.guards) == 0 {
		return name
	}
	return ast.Select(ast.And(first.guards...), name, consolidate(returns[1:]))
}
