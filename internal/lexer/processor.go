package lexer

import (
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/pipeline"
	"github.com/funvibe/funssa/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Tokens = New(ctx.SourceCode).Tokenize()

	for _, tok := range ctx.Tokens {
		if tok.Type != token.ILLEGAL {
			continue
		}
		msg, _ := tok.Literal.(string)
		err := diagnostics.NewError(diagnostics.ErrL001, tok, msg)
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	ctx.Log().WithField("tokens", len(ctx.Tokens)).Debug("lexed source")
	return ctx
}
