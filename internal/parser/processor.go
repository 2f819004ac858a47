package parser

import (
	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/lexer"
	"github.com/funvibe/funssa/internal/pipeline"
	"github.com/funvibe/funssa/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "(parser: token stream is nil)"))
		return ctx
	}
	if ctx.Failed() {
		return ctx
	}

	p := New(ctx.Tokens)
	module := p.ParseModule()
	module.File = ctx.FilePath
	for _, err := range p.Errors() {
		ctx.AddError(err)
	}
	if ctx.Failed() {
		return ctx
	}
	ctx.AstRoot = module

	fn := module.Function(ctx.FuncName)
	if fn == nil {
		what := "no function definition"
		if ctx.FuncName != "" {
			what = "no function named " + ctx.FuncName
		}
		ctx.AddError(diagnostics.NewError(diagnostics.ErrS001, token.Token{}, what))
		return ctx
	}
	ctx.Original = fn
	ctx.Function = fn

	ctx.Log().WithField("func", fn.Name).WithField("statements", len(module.Body)).Debug("parsed module")
	return ctx
}

// ParseSource lexes and parses src in one call, for tests and tools.
func ParseSource(src string) (*ast.Module, error) {
	ctx := pipeline.New(&lexer.LexerProcessor{}).Run(&pipeline.PipelineContext{SourceCode: src})
	if ctx.Failed() {
		return nil, ctx.Err()
	}
	p := New(ctx.Tokens)
	module := p.ParseModule()
	for _, e := range p.Errors() {
		ctx.AddError(e)
	}
	if ctx.Failed() {
		return nil, ctx.Err()
	}
	return module, nil
}
