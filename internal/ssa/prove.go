package ssa

import (
	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/symbols"
)

// AlwaysReturns reports whether every path through stmts ends in a return:
// some statement is a return, or an if whose arms both always return.
func AlwaysReturns(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ReturnStatement:
			return true
		case *ast.IfStatement:
			if AlwaysReturns(s.Body) && AlwaysReturns(s.Orelse) {
				return true
			}
		}
	}
	return false
}

// Prove checks that every name read in stmts is assigned on all paths
// reaching the read, or is in env. It returns the names guaranteed assigned
// when control falls out of stmts. defined is not modified.
//
// The rule is conservative: after an if, a name counts as defined only if
// every arm that can fall through defines it.
func Prove(env symbols.Environment, defined map[string]bool, stmts []ast.Statement) (map[string]bool, error) {
	names := make(map[string]bool, len(defined))
	for n := range defined {
		names[n] = true
	}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.AssignStatement:
			if err := checkReads(env, names, s.Value); err != nil {
				return nil, err
			}
			names[s.Target.Value] = true

		case *ast.ReturnStatement:
			if err := checkReads(env, names, s.Value); err != nil {
				return nil, err
			}

		case *ast.ExpressionStatement:
			if err := checkReads(env, names, s.Value); err != nil {
				return nil, err
			}

		case *ast.IfStatement:
			if err := checkReads(env, names, s.Test); err != nil {
				return nil, err
			}
			thenNames, err := Prove(env, names, s.Body)
			if err != nil {
				return nil, err
			}
			elseNames, err := Prove(env, names, s.Orelse)
			if err != nil {
				return nil, err
			}
			thenReturns, elseReturns := AlwaysReturns(s.Body), AlwaysReturns(s.Orelse)
			switch {
			case thenReturns && elseReturns:
			case thenReturns:
				for n := range elseNames {
					names[n] = true
				}
			case elseReturns:
				for n := range thenNames {
					names[n] = true
				}
			default:
				for n := range thenNames {
					if elseNames[n] {
						names[n] = true
					}
				}
			}

		case *ast.FunctionDef, *ast.ClassDef:
			// Bound before its body is checked so a def may call itself.
			names[defName(s)] = true
			for _, free := range ast.FreeNames(s) {
				if !names[free] && !env.Contains(free) {
					return nil, diagnostics.NewError(diagnostics.ErrS003, s.GetToken(), free)
				}
			}

		case *ast.PassStatement:

		case *ast.WhileStatement, *ast.ForStatement, *ast.TryStatement, *ast.WithStatement:
			return nil, diagnostics.NewError(diagnostics.ErrS002, s.GetToken(), ast.KindName(s))

		default:
			return nil, diagnostics.NewError(diagnostics.ErrS005, s.GetToken(), ast.KindName(s))
		}
	}
	return names, nil
}

// ProveFunction runs Prove over a whole function body with the parameters
// defined and additionally requires that the body always returns.
func ProveFunction(fd *ast.FunctionDef, env symbols.Environment) error {
	defined := make(map[string]bool, len(fd.Params))
	for _, p := range fd.ParamNames() {
		defined[p] = true
	}
	if _, err := Prove(env, defined, fd.Body); err != nil {
		return err
	}
	if !AlwaysReturns(fd.Body) {
		return diagnostics.NewError(diagnostics.ErrS004, fd.Token, fd.Name)
	}
	return nil
}

func checkReads(env symbols.Environment, names map[string]bool, expr ast.Expression) error {
	var err error
	ast.Inspect(expr, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		id, ok := n.(*ast.Identifier)
		if ok && id.Ctx == ast.Load && !names[id.Value] && !env.Contains(id.Value) {
			err = diagnostics.NewError(diagnostics.ErrS003, id.Token, id.Value)
		}
		return true
	})
	return err
}

func defName(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		return s.Name
	case *ast.ClassDef:
		return s.Name
	}
	return ""
}
