package unroll

import (
	"github.com/funvibe/funssa/internal/evaluator"
	"github.com/funvibe/funssa/internal/pipeline"
)

// UnrollProcessor expands marked loops in ctx.Function. It is a no-op unless
// the unroll setting is on.
type UnrollProcessor struct{}

func (up *UnrollProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Function == nil || !ctx.Settings().Unroll {
		return ctx
	}

	u := &Unroller{}
	if env, err := evaluator.RuntimeOf(ctx); err == nil {
		u.Env = env
	}
	out, err := u.Function(ctx.Function)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Function = out
	ctx.Log().WithField("func", out.Name).WithField("loops", u.Count).Debug("unrolled loops")
	return ctx
}
