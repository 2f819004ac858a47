package prettyprinter

import (
	"github.com/funvibe/funssa/internal/pipeline"
)

// DumpProcessor records the current function as source and/or as a tree dump,
// depending on the debug settings. Stage labels the snapshot.
type DumpProcessor struct {
	Stage string
}

func (dp *DumpProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Function == nil {
		return ctx
	}
	settings := ctx.Settings().Debug
	if settings.DumpSource {
		ctx.Dumps = append(ctx.Dumps, pipeline.Dump{Stage: dp.Stage, Kind: "source", Output: Print(ctx.Function)})
	}
	if settings.DumpTree {
		ctx.Dumps = append(ctx.Dumps, pipeline.Dump{Stage: dp.Stage, Kind: "tree", Output: PrintTree(ctx.Function)})
	}
	ctx.Log().WithField("stage", dp.Stage).WithField("dumps", len(ctx.Dumps)).Debug("recorded debug dump")
	return ctx
}
