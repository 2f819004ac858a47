package evaluator

import (
	"errors"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/pipeline"
	"github.com/funvibe/funssa/internal/symbols"
	"github.com/funvibe/funssa/internal/token"
)

// EnvironmentProcessor executes the module's top level and publishes the
// resulting globals, builtins included, as the environment of later stages.
// The function being rewritten is defined like any other, so its own name is
// in the environment too.
type EnvironmentProcessor struct{}

func (ep *EnvironmentProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	module, ok := ctx.AstRoot.(*ast.Module)
	if !ok {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrR001, token.Token{}, "no module to evaluate"))
		return ctx
	}

	eval := New()
	eval.CurrentFile = ctx.FilePath
	env := NewGlobalEnvironment()
	if err := eval.EvalModule(module, env); err != nil {
		ctx.AddError(err)
		return ctx
	}

	ctx.Runtime = env
	ctx.Env = symbols.NewSymbolTable(nil, env.Snapshot())
	ctx.Log().WithField("globals", len(env.Keys())).Debug("evaluated module top level")
	return ctx
}

// RuntimeOf returns the global environment an EnvironmentProcessor stored.
func RuntimeOf(ctx *pipeline.PipelineContext) (*Environment, error) {
	env, ok := ctx.Runtime.(*Environment)
	if !ok {
		return nil, errors.New("module has not been evaluated")
	}
	return env, nil
}

// CallRewritten defines fd in a scope enclosed by globals and calls it. The
// module's own binding of the function name is left alone.
func CallRewritten(globals *Environment, fd *ast.FunctionDef, file string, args ...Object) (Object, error) {
	eval := New()
	eval.CurrentFile = file
	scope := NewEnclosedEnvironment(globals)
	fn := eval.Define(fd, scope)
	return eval.Call(fn, args...)
}
