package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
)

// Eval evaluates an expression in env.
func (e *Evaluator) Eval(node ast.Expression, env *Environment) (Object, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		if val, ok := env.Get(n.Value); ok {
			return val, nil
		}
		return nil, e.newError(diagnostics.ErrR002, n.Token, n.Value)

	case *ast.IntegerLiteral:
		return &Integer{Value: n.Value}, nil

	case *ast.StringLiteral:
		return &String{Value: n.Value}, nil

	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(n.Value), nil

	case *ast.NoneLiteral:
		return NONE, nil

	case *ast.TupleLiteral:
		elems, err := e.evalExpressions(n.Elements, env)
		if err != nil {
			return nil, err
		}
		return &Tuple{Elements: elems}, nil

	case *ast.PrefixExpression:
		right, err := e.Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		return e.evalPrefixExpression(n, right)

	case *ast.InfixExpression:
		left, err := e.Eval(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := e.Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		return e.evalInfixExpression(n, left, right)

	case *ast.BoolExpression:
		// Short-circuits and yields the deciding operand, not a bool.
		var val Object
		for _, operand := range n.Values {
			v, err := e.Eval(operand, env)
			if err != nil {
				return nil, err
			}
			val = v
			if (n.Operator == "and") != Truthy(v) {
				break
			}
		}
		return val, nil

	case *ast.ConditionalExpression:
		test, err := e.Eval(n.Test, env)
		if err != nil {
			return nil, err
		}
		if Truthy(test) {
			return e.Eval(n.Body, env)
		}
		return e.Eval(n.Orelse, env)

	case *ast.CallExpression:
		fn, err := e.Eval(n.Function, env)
		if err != nil {
			return nil, err
		}
		args, err := e.evalExpressions(n.Arguments, env)
		if err != nil {
			return nil, err
		}
		return e.apply(n.Token, fn, args)
	}
	return nil, e.newError(diagnostics.ErrR001, node.GetToken(), "cannot evaluate expression")
}

func (e *Evaluator) evalExpressions(exps []ast.Expression, env *Environment) ([]Object, error) {
	result := make([]Object, 0, len(exps))
	for _, exp := range exps {
		val, err := e.Eval(exp, env)
		if err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, nil
}

func (e *Evaluator) evalPrefixExpression(n *ast.PrefixExpression, right Object) (Object, error) {
	if n.Operator == "not" {
		return nativeBoolToBooleanObject(!Truthy(right)), nil
	}
	v, ok := asInt(right)
	if !ok {
		return nil, e.newError(diagnostics.ErrR003, n.Token, "bad operand type for unary "+n.Operator+": '"+string(right.Type())+"'")
	}
	if n.Operator == "-" {
		v = -v
	}
	return &Integer{Value: v}, nil
}

func (e *Evaluator) evalInfixExpression(n *ast.InfixExpression, left, right Object) (Object, error) {
	switch n.Operator {
	case "==":
		return nativeBoolToBooleanObject(Equal(left, right)), nil
	case "!=":
		return nativeBoolToBooleanObject(!Equal(left, right)), nil
	}

	if l, ok := asInt(left); ok {
		if r, ok := asInt(right); ok {
			return e.evalIntegerInfix(n, l, r)
		}
	}

	switch l := left.(type) {
	case *String:
		switch r := right.(type) {
		case *String:
			return e.evalStringInfix(n, l.Value, r.Value)
		case *Integer:
			if n.Operator == "*" {
				return &String{Value: strings.Repeat(l.Value, int(max(r.Value, 0)))}, nil
			}
		}
	case *Tuple:
		if r, ok := right.(*Tuple); ok && n.Operator == "+" {
			elems := make([]Object, 0, len(l.Elements)+len(r.Elements))
			elems = append(append(elems, l.Elements...), r.Elements...)
			return &Tuple{Elements: elems}, nil
		}
	}
	return nil, e.newError(diagnostics.ErrR003, n.Token,
		"unsupported operand type(s) for "+n.Operator+": '"+string(left.Type())+"' and '"+string(right.Type())+"'")
}

// evalIntegerInfix uses floor division and a modulo that takes the sign of
// the divisor. '/' divides like '//'; there are no floats.
func (e *Evaluator) evalIntegerInfix(n *ast.InfixExpression, l, r int64) (Object, error) {
	switch n.Operator {
	case "+":
		return &Integer{Value: l + r}, nil
	case "-":
		return &Integer{Value: l - r}, nil
	case "*":
		return &Integer{Value: l * r}, nil
	case "/", "//", "%":
		if r == 0 {
			return nil, e.newError(diagnostics.ErrR001, n.Token, "division by zero")
		}
		q, m := l/r, l%r
		if m != 0 && (m < 0) != (r < 0) {
			q--
			m += r
		}
		if n.Operator == "%" {
			return &Integer{Value: m}, nil
		}
		return &Integer{Value: q}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, e.newError(diagnostics.ErrR003, n.Token, "unknown operator: "+n.Operator)
}

func (e *Evaluator) evalStringInfix(n *ast.InfixExpression, l, r string) (Object, error) {
	switch n.Operator {
	case "+":
		return &String{Value: l + r}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, e.newError(diagnostics.ErrR003, n.Token, "unsupported operand type(s) for "+n.Operator+": 'str' and 'str'")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return itoa(n) + " " + word + "s"
}
