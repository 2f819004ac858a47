package evaluator

import (
	"context"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/token"
)

// DefaultMaxCallDepth bounds recursion in evaluated code.
const DefaultMaxCallDepth = 1000

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name string
	Line int
}

type Evaluator struct {
	// Context for cancellation; checked on every loop iteration and call.
	Context context.Context

	// CurrentFile is attached to runtime diagnostics.
	CurrentFile string

	MaxCallDepth int

	// CallStack for error messages
	CallStack []CallFrame
}

func New() *Evaluator {
	return &Evaluator{
		Context:      context.Background(),
		MaxCallDepth: DefaultMaxCallDepth,
	}
}

// NewGlobalEnvironment returns a fresh module scope with the builtins installed.
func NewGlobalEnvironment() *Environment {
	env := NewEnvironment()
	RegisterBuiltins(env)
	return env
}

func (e *Evaluator) newError(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) error {
	err := diagnostics.NewError(code, tok, args...)
	err.File = e.CurrentFile
	return err
}

func (e *Evaluator) cancelled(tok token.Token) error {
	if e.Context == nil {
		return nil
	}
	if err := e.Context.Err(); err != nil {
		return e.newError(diagnostics.ErrR001, tok, "evaluation interrupted: "+err.Error())
	}
	return nil
}

// EvalModule executes a module's top level in env.
func (e *Evaluator) EvalModule(m *ast.Module, env *Environment) error {
	_, _, err := e.execBlock(m.Body, env)
	return err
}

// Define binds a function definition in env as if its def statement ran there.
func (e *Evaluator) Define(fd *ast.FunctionDef, env *Environment) *Function {
	fn := newFunction(fd, env)
	env.Set(fd.Name, fn)
	return fn
}

func newFunction(fd *ast.FunctionDef, env *Environment) *Function {
	params := fd.ParamNames()
	locals := make(map[string]bool, len(params))
	for _, p := range params {
		locals[p] = true
	}
	for _, name := range ast.BoundNames(fd.Body) {
		locals[name] = true
	}
	return &Function{
		Name:   fd.Name,
		Params: params,
		Body:   fd.Body,
		Env:    env,
		Line:   fd.Token.Line,
		locals: locals,
	}
}

// Call applies fn to already evaluated arguments.
func (e *Evaluator) Call(fn Object, args ...Object) (Object, error) {
	return e.apply(token.Token{}, fn, args)
}

func (e *Evaluator) apply(tok token.Token, fn Object, args []Object) (Object, error) {
	if err := e.cancelled(tok); err != nil {
		return nil, err
	}
	switch fn := fn.(type) {
	case *Builtin:
		res, err := fn.Fn(e, args...)
		if err != nil {
			if de, ok := err.(*diagnostics.DiagnosticError); ok && de.Token.Line == 0 {
				de.Token = tok
				de.File = e.CurrentFile
			}
			return nil, err
		}
		return res, nil

	case *Function:
		if len(args) != len(fn.Params) {
			return nil, e.newError(diagnostics.ErrR003, tok,
				fn.Name+"() takes "+plural(len(fn.Params), "argument")+" but "+itoa(len(args))+" were given")
		}
		if len(e.CallStack) >= e.MaxCallDepth {
			return nil, e.newError(diagnostics.ErrR001, tok, "maximum recursion depth exceeded")
		}
		e.CallStack = append(e.CallStack, CallFrame{Name: fn.Name, Line: tok.Line})
		defer func() { e.CallStack = e.CallStack[:len(e.CallStack)-1] }()

		env := newFunctionEnvironment(fn.Env, fn.locals)
		for i, p := range fn.Params {
			env.Set(p, args[i])
		}
		res, returned, err := e.execBlock(fn.Body, env)
		if err != nil {
			return nil, err
		}
		if !returned {
			return NONE, nil
		}
		return res, nil

	case *Class:
		if len(args) != 0 {
			return nil, e.newError(diagnostics.ErrR003, tok, fn.Name+"() takes no arguments")
		}
		return &Instance{Class: fn}, nil
	}
	return nil, e.newError(diagnostics.ErrR003, tok, "'"+string(fn.Type())+"' object is not callable")
}

// execBlock runs stmts in order. returned reports that a return statement ran.
func (e *Evaluator) execBlock(stmts []ast.Statement, env *Environment) (result Object, returned bool, err error) {
	for _, stmt := range stmts {
		result, returned, err = e.execStatement(stmt, env)
		if err != nil || returned {
			return result, returned, err
		}
	}
	return nil, false, nil
}

func (e *Evaluator) execStatement(stmt ast.Statement, env *Environment) (Object, bool, error) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		val, err := e.Eval(s.Value, env)
		if err != nil {
			return nil, false, err
		}
		env.Set(s.Target.Value, val)
		return nil, false, nil

	case *ast.ReturnStatement:
		val, err := e.Eval(s.Value, env)
		if err != nil {
			return nil, false, err
		}
		return val, true, nil

	case *ast.ExpressionStatement:
		_, err := e.Eval(s.Value, env)
		return nil, false, err

	case *ast.PassStatement:
		return nil, false, nil

	case *ast.FunctionDef:
		e.Define(s, env)
		return nil, false, nil

	case *ast.ClassDef:
		return nil, false, e.execClassDef(s, env)

	case *ast.IfStatement:
		test, err := e.Eval(s.Test, env)
		if err != nil {
			return nil, false, err
		}
		if Truthy(test) {
			return e.execBlock(s.Body, env)
		}
		return e.execBlock(s.Orelse, env)

	case *ast.WhileStatement:
		return e.execWhile(s, env)

	case *ast.ForStatement:
		return e.execFor(s, env)

	case *ast.TryStatement:
		return e.execTry(s, env)

	case *ast.WithStatement:
		item, err := e.Eval(s.Item, env)
		if err != nil {
			return nil, false, err
		}
		if s.Alias != nil {
			env.Set(s.Alias.Value, item)
		}
		return e.execBlock(s.Body, env)
	}
	return nil, false, e.newError(diagnostics.ErrR001, stmt.GetToken(), "cannot execute "+ast.KindName(stmt)+" statement")
}

func (e *Evaluator) execClassDef(s *ast.ClassDef, env *Environment) error {
	classEnv := NewEnclosedEnvironment(env)
	if _, _, err := e.execBlock(s.Body, classEnv); err != nil {
		return err
	}
	env.Set(s.Name, &Class{Name: s.Name, Attrs: classEnv.GetStore()})
	return nil
}

func (e *Evaluator) execWhile(s *ast.WhileStatement, env *Environment) (Object, bool, error) {
	for {
		if err := e.cancelled(s.Token); err != nil {
			return nil, false, err
		}
		test, err := e.Eval(s.Test, env)
		if err != nil {
			return nil, false, err
		}
		if !Truthy(test) {
			return nil, false, nil
		}
		res, returned, err := e.execBlock(s.Body, env)
		if err != nil || returned {
			return res, returned, err
		}
	}
}

func (e *Evaluator) execFor(s *ast.ForStatement, env *Environment) (Object, bool, error) {
	iter, err := e.Eval(s.Iter, env)
	if err != nil {
		return nil, false, err
	}
	var items []Object
	switch it := iter.(type) {
	case *Tuple:
		items = it.Elements
	case *String:
		for _, r := range it.Value {
			items = append(items, &String{Value: string(r)})
		}
	default:
		return nil, false, e.newError(diagnostics.ErrR003, s.Iter.GetToken(), "'"+string(iter.Type())+"' object is not iterable")
	}
	for _, item := range items {
		if err := e.cancelled(s.Token); err != nil {
			return nil, false, err
		}
		env.Set(s.Target.Value, item)
		res, returned, err := e.execBlock(s.Body, env)
		if err != nil || returned {
			return res, returned, err
		}
	}
	return nil, false, nil
}

// execTry runs the first handler on any runtime error; the handler name is
// bound to the error message. finally always runs and a return there wins.
func (e *Evaluator) execTry(s *ast.TryStatement, env *Environment) (Object, bool, error) {
	res, returned, err := e.execBlock(s.Body, env)
	if err != nil && len(s.Handlers) > 0 {
		h := s.Handlers[0]
		if h.Name != nil {
			env.Set(h.Name.Value, &String{Value: errorMessage(err)})
		}
		res, returned, err = e.execBlock(h.Body, env)
	}
	if s.Finally != nil {
		fres, freturned, ferr := e.execBlock(s.Finally, env)
		if ferr != nil || freturned {
			return fres, freturned, ferr
		}
	}
	return res, returned, err
}

func errorMessage(err error) string {
	if de, ok := err.(*diagnostics.DiagnosticError); ok {
		return de.Message
	}
	return err.Error()
}
