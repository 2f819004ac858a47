// Package unroll expands loops over the unroll marker into straight-line
// code so the ssa pass can handle them:
//
//	for i in unroll(3):
//	    x = x + i
//
// becomes three copies of the body with i replaced by 0, 1 and 2.
package unroll

import (
	"errors"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/config"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/evaluator"
)

// Unroller rewrites for-loops whose iterator is a call to the marker.
// The call's arguments are evaluated in Env, so they may use module-level
// constants but not the function's own locals. Loops whose iterator cannot
// be evaluated there are left alone.
type Unroller struct {
	// Macro is the marker name; empty means config.UnrollMacroName.
	Macro string
	// Env resolves the marker and its arguments; nil means builtins only.
	Env *evaluator.Environment

	// Count is the number of loops expanded so far.
	Count int
}

func (u *Unroller) macro() string {
	if u.Macro == "" {
		return config.UnrollMacroName
	}
	return u.Macro
}

func (u *Unroller) env() *evaluator.Environment {
	if u.Env == nil {
		u.Env = evaluator.NewGlobalEnvironment()
	}
	return u.Env
}

// Function returns a copy of fd with every marked loop expanded, including
// loops in nested branches and definitions. fd is not modified.
func (u *Unroller) Function(fd *ast.FunctionDef) (*ast.FunctionDef, error) {
	body, err := u.Statements(fd.Body)
	if err != nil {
		return nil, err
	}
	out := ast.CloneStatement(fd).(*ast.FunctionDef)
	out.Body = body
	return out, nil
}

// Statements returns a rewritten copy of stmts.
func (u *Unroller) Statements(stmts []ast.Statement) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, stmt := range stmts {
		rewritten, err := u.statement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, rewritten...)
	}
	return out, nil
}

func (u *Unroller) statement(stmt ast.Statement) ([]ast.Statement, error) {
	switch s := stmt.(type) {
	case *ast.ForStatement:
		return u.forStatement(s)

	case *ast.IfStatement:
		body, err := u.Statements(s.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := u.Statements(s.Orelse)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.IfStatement{Token: s.Token, Test: ast.CloneExpression(s.Test), Body: body, Orelse: orelse}}, nil

	case *ast.WhileStatement:
		body, err := u.Statements(s.Body)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.WhileStatement{Token: s.Token, Test: ast.CloneExpression(s.Test), Body: body}}, nil

	case *ast.FunctionDef:
		fd, err := u.Function(s)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{fd}, nil

	case *ast.ClassDef:
		body, err := u.Statements(s.Body)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.ClassDef{Token: s.Token, Name: s.Name, Body: body}}, nil
	}
	return []ast.Statement{ast.CloneStatement(stmt)}, nil
}

func (u *Unroller) forStatement(s *ast.ForStatement) ([]ast.Statement, error) {
	body, err := u.Statements(s.Body)
	if err != nil {
		return nil, err
	}
	values, ok, err := u.iterations(s.Iter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []ast.Statement{&ast.ForStatement{Token: s.Token, Target: ast.CloneExpression(s.Target).(*ast.Identifier), Iter: ast.CloneExpression(s.Iter), Body: body}}, nil
	}

	for _, name := range ast.BoundNames(body) {
		if name == s.Target.Value {
			return nil, diagnostics.NewError(diagnostics.ErrU001, s.Token,
				"cannot unroll loop: loop variable "+name+" is reassigned in its body")
		}
	}

	var out []ast.Statement
	for _, v := range values {
		for _, stmt := range body {
			out = append(out, substitute(stmt, s.Target.Value, v))
		}
	}
	u.Count++
	return out, nil
}

// iterations evaluates a marked iterator. ok is false when iter is not a
// call to the marker or cannot be evaluated without the function's locals.
func (u *Unroller) iterations(iter ast.Expression) (values []int64, ok bool, err error) {
	call, isCall := iter.(*ast.CallExpression)
	if !isCall {
		return nil, false, nil
	}
	callee, isName := call.Function.(*ast.Identifier)
	if !isName || callee.Value != u.macro() {
		return nil, false, nil
	}
	if b, found := u.env().Get(callee.Value); !found {
		return nil, false, nil
	} else if _, builtin := b.(*evaluator.Builtin); !builtin {
		return nil, false, nil
	}

	obj, evalErr := evaluator.New().Eval(call, u.env())
	if evalErr != nil {
		if diagnostics.HasCode(evalErr, diagnostics.ErrR002) {
			return nil, false, nil
		}
		return nil, false, diagnostics.NewError(diagnostics.ErrU001, call.Token,
			"cannot unroll loop: "+errorMessage(evalErr))
	}
	tuple, isTuple := obj.(*evaluator.Tuple)
	if !isTuple {
		return nil, false, diagnostics.NewError(diagnostics.ErrU001, call.Token,
			"cannot unroll loop: iterator is not a sequence")
	}
	for _, el := range tuple.Elements {
		i, isInt := el.(*evaluator.Integer)
		if !isInt {
			return nil, false, diagnostics.NewError(diagnostics.ErrU001, call.Token,
				"cannot unroll loop over non-integer "+string(el.Type()))
		}
		values = append(values, i.Value)
	}
	return values, true, nil
}

func errorMessage(err error) string {
	var de *diagnostics.DiagnosticError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
