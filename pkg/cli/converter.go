package cli

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/funvibe/funssa/internal/cache"
	"github.com/funvibe/funssa/internal/config"
	"github.com/funvibe/funssa/internal/evaluator"
	"github.com/funvibe/funssa/internal/lexer"
	"github.com/funvibe/funssa/internal/parser"
	"github.com/funvibe/funssa/internal/pipeline"
	"github.com/funvibe/funssa/internal/prettyprinter"
	"github.com/funvibe/funssa/internal/ssa"
	"github.com/funvibe/funssa/internal/unroll"
)

// NewPipeline returns the stages from source text to a converted function.
func NewPipeline() *pipeline.Pipeline {
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&evaluator.EnvironmentProcessor{},
		&unroll.UnrollProcessor{},
		&prettyprinter.DumpProcessor{Stage: "input"},
		&ssa.SSAProcessor{},
		&prettyprinter.DumpProcessor{Stage: "ssa"},
	)
}

// Result is the outcome of converting one file.
type Result struct {
	File   string
	Func   string
	Output string
	Cached bool
	Dumps  []pipeline.Dump
}

// Converter runs the pipeline for many files, sharing a cache between them.
// It is safe for concurrent use.
type Converter struct {
	Config *config.Config
	Cache  *cache.Cache // nil disables caching
	Logger *logrus.Entry

	inflight singleflight.Group
}

// Run executes the pipeline without consulting the cache.
func (c *Converter) Run(file, src, funcName string) *pipeline.PipelineContext {
	return NewPipeline().Run(&pipeline.PipelineContext{
		SourceCode: src,
		FilePath:   file,
		FuncName:   funcName,
		Config:     c.Config,
		Logger:     c.Logger,
	})
}

// Convert converts the selected function of src. Identical requests for the
// same file running at the same time share one conversion.
func (c *Converter) Convert(ctx context.Context, file, src, funcName string) (*Result, error) {
	debugging := c.Config.Debug.DumpSource || c.Config.Debug.DumpTree
	key := cache.Key(src, funcName, c.Config.ReturnPrefix, strconv.FormatBool(c.Config.Unroll))

	if c.Cache != nil && !debugging {
		entry, ok, err := c.Cache.Lookup(ctx, key)
		if err != nil {
			c.Logger.WithError(err).Warn("cache lookup failed")
		} else if ok {
			c.Logger.WithField("file", file).WithField("entry", entry.ID).Debug("cache hit")
			return &Result{File: file, Func: entry.Func, Output: entry.Output, Cached: true}, nil
		}
	}

	v, err, _ := c.inflight.Do(file+"\x00"+key, func() (interface{}, error) {
		pctx := c.Run(file, src, funcName)
		if err := pctx.Err(); err != nil {
			return nil, err
		}
		return &Result{
			Func:   pctx.Function.Name,
			Output: prettyprinter.Print(pctx.Function),
			Dumps:  pctx.Dumps,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.(*Result)
	res := &Result{File: file, Func: shared.Func, Output: shared.Output, Dumps: shared.Dumps}

	if c.Cache != nil {
		if _, err := c.Cache.Store(ctx, key, res.Func, res.Output); err != nil {
			c.Logger.WithError(err).Warn("cache store failed")
		}
	}
	return res, nil
}
