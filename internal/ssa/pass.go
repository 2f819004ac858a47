// Package ssa converts a function whose body uses only assignments, returns
// and if/else into static single assignment form.
//
// The result assigns every name once and ends in a single return whose value
// selects among the original return values with nested conditional
// expressions. Branch joins become mux assignments:
//
//	def foo(a, b):              def foo(a, b):
//	    if b:                       a0 = len(a)
//	        a = len(a)      =>      a1 = a0 if b else a
//	    return a                    __return_value0 = a1
//	                                return __return_value0
//
// Every assignment in the result runs unconditionally, so the conversion
// preserves behaviour only when the expressions in the untaken arms are safe
// to evaluate.
package ssa

import (
	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/config"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/symbols"
	"github.com/funvibe/funssa/internal/token"
)

// Pass is the SSA conversion. The zero value uses config.DefaultReturnPrefix.
type Pass struct {
	// ReturnPrefix seeds the names of return values. The pass uses the first
	// of prefix, prefix0, prefix1, ... that no name in the function or the
	// environment starts with.
	ReturnPrefix string
}

// Run converts root, which must be a *ast.FunctionDef. Neither root nor env
// is modified; the result shares no nodes with root.
func (p Pass) Run(root ast.Node, env symbols.Environment) (*ast.FunctionDef, error) {
	fd, ok := root.(*ast.FunctionDef)
	if !ok || fd == nil {
		var tok token.Token
		if !ok && root != nil {
			tok = root.GetToken()
		}
		return nil, diagnostics.NewError(diagnostics.ErrS001, tok, describeNode(root))
	}
	if env == nil {
		env = symbols.Empty
	}

	hint := p.ReturnPrefix
	if hint == "" {
		hint = config.DefaultReturnPrefix
	}
	prefix := FreePrefix(fd, env, hint)

	if err := ProveFunction(fd, env); err != nil {
		return nil, err
	}

	t := newTransformer(fd, env, prefix)
	body, err := t.block(fd.Body)
	if err != nil {
		return nil, err
	}
	if len(t.returns) == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrS004, fd.Token, fd.Name)
	}
	body = append(body, &ast.ReturnStatement{
		Token: token.Token{Type: token.RETURN, Lexeme: "return", Line: fd.Token.Line, Column: fd.Token.Column},
		Value: consolidate(t.returns),
	})

	params := make([]*ast.Identifier, len(fd.Params))
	for i, param := range fd.Params {
		params[i] = ast.CloneExpression(param).(*ast.Identifier)
	}
	return &ast.FunctionDef{Token: fd.Token, Name: fd.Name, Params: params, Body: body}, nil
}

// Convert runs the pass with the default return prefix.
func Convert(fd *ast.FunctionDef, env symbols.Environment) (*ast.FunctionDef, error) {
	return Pass{}.Run(fd, env)
}

func describeNode(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "nothing"
	case *ast.FunctionDef:
		return "nil function"
	case *ast.Module:
		return "module"
	case ast.Statement:
		return ast.KindName(n) + " statement"
	case ast.Expression:
		return "expression"
	}
	return "unknown node"
}
