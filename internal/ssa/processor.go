package ssa

import (
	"github.com/funvibe/funssa/internal/pipeline"
	"github.com/funvibe/funssa/internal/symbols"
)

// SSAProcessor converts ctx.Function using ctx.Env as the environment.
type SSAProcessor struct{}

func (sp *SSAProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Function == nil {
		return ctx
	}
	env := ctx.Env
	if env == nil {
		env = symbols.Empty
	}

	pass := Pass{ReturnPrefix: ctx.Settings().ReturnPrefix}
	out, err := pass.Run(ctx.Function, env)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Function = out

	ctx.Log().WithField("func", out.Name).
		WithField("assignments", len(out.Body)-1).
		Debug("converted to ssa")
	return ctx
}
