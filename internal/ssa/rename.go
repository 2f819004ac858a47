package ssa

import (
	"github.com/funvibe/funssa/internal/ast"
)

// lookupFunc resolves an original name to its SSA name.
type lookupFunc func(name string) (string, bool)

func mapLookup(m map[string]string) lookupFunc {
	return func(name string) (string, bool) {
		ssa, ok := m[name]
		return ssa, ok
	}
}

// renameExpression returns a copy of e with every read renamed through
// lookup. Names lookup does not know stay as they are.
func renameExpression(e ast.Expression, lookup lookupFunc) ast.Expression {
	c := ast.CloneExpression(e)
	renameLoads(c, lookup, nil)
	return c
}

// renameDefinition returns a copy of a nested def or class whose free reads
// are renamed through lookup. Names the definition binds itself (parameters,
// locals) shadow the outer bindings and are left alone.
func renameDefinition(def ast.Statement, lookup lookupFunc) ast.Statement {
	c := ast.CloneStatement(def)
	renameLoads(c, lookup, nil)
	return c
}

func renameLoads(node ast.Node, lookup lookupFunc, shadow map[string]bool) {
	switch n := node.(type) {
	case *ast.Identifier:
		if n.Ctx == ast.Load && !shadow[n.Value] {
			if ssa, ok := lookup(n.Value); ok {
				n.Value = ssa
			}
		}
		return

	case *ast.FunctionDef:
		inner := withLocals(shadow, n.ParamNames(), n.Body)
		for _, s := range n.Body {
			renameLoads(s, lookup, inner)
		}
		return

	case *ast.ClassDef:
		// Class-level names are not visible inside its methods.
		inner := withLocals(shadow, nil, n.Body)
		for _, s := range n.Body {
			switch s.(type) {
			case *ast.FunctionDef, *ast.ClassDef:
				renameLoads(s, lookup, shadow)
			default:
				renameLoads(s, lookup, inner)
			}
		}
		return
	}

	for _, child := range ast.Children(node) {
		renameLoads(child, lookup, shadow)
	}
}

func withLocals(shadow map[string]bool, params []string, body []ast.Statement) map[string]bool {
	inner := make(map[string]bool, len(shadow)+len(params))
	for n := range shadow {
		inner[n] = true
	}
	for _, p := range params {
		inner[p] = true
	}
	for _, b := range ast.BoundNames(body) {
		inner[b] = true
	}
	return inner
}
