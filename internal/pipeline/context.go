package pipeline

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/funssa/internal/ast"
	"github.com/funvibe/funssa/internal/config"
	"github.com/funvibe/funssa/internal/diagnostics"
	"github.com/funvibe/funssa/internal/symbols"
	"github.com/funvibe/funssa/internal/token"
)

// Dump is a debug snapshot recorded by a stage.
type Dump struct {
	Stage  string
	Kind   string // "source" or "tree"
	Output string
}

// PipelineContext carries everything the stages share for one source file.
type PipelineContext struct {
	SourceCode string
	FilePath   string

	// Settings for the rewrite stages. Nil means config.Default().
	Config *config.Config

	// FuncName selects the top-level function to rewrite; empty picks the first.
	FuncName string

	Tokens  []token.Token
	AstRoot ast.Node

	// Original is the selected function as parsed; Function is the current
	// version after the stages that ran so far.
	Original *ast.FunctionDef
	Function *ast.FunctionDef

	// Env is the read-only view of names visible outside the function.
	Env symbols.Environment

	// Runtime holds the evaluator's global environment once the module's top
	// level has been executed (interface{} so this package stays below the evaluator).
	Runtime interface{}

	Errors []*diagnostics.DiagnosticError
	Dumps  []Dump
	Logger *logrus.Entry
}

func (ctx *PipelineContext) Settings() *config.Config {
	if ctx.Config == nil {
		ctx.Config = config.Default()
	}
	return ctx.Config
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// AddError records err, converting foreign errors to a generic diagnostic.
func (ctx *PipelineContext) AddError(err error) {
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		de = diagnostics.NewError(diagnostics.ErrC001, token.Token{}, err.Error())
	}
	if de.File == "" {
		de.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, de)
}

// Err joins the recorded diagnostics into a single error, or returns nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(ctx.Errors))
	for i, e := range ctx.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Log returns the context logger with the file attached.
func (ctx *PipelineContext) Log() *logrus.Entry {
	if ctx.Logger == nil {
		ctx.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if ctx.FilePath != "" {
		return ctx.Logger.WithField("file", ctx.FilePath)
	}
	return ctx.Logger
}
