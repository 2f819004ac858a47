package pipeline

import (
	"github.com/sirupsen/logrus"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Then returns a new pipeline with more stages appended.
func (p *Pipeline) Then(processors ...Processor) *Pipeline {
	all := make([]Processor, 0, len(p.processors)+len(processors))
	all = append(all, p.processors...)
	all = append(all, processors...)
	return &Pipeline{processors: all}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	if ctx.Logger == nil {
		ctx.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Stages check ctx.Failed() themselves so every stage still gets a
		// chance to report (a dump of the failing tree, for instance).
	}
	return ctx
}
