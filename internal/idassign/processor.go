package idassign

import "github.com/tiplang/tipc/internal/pipeline"

type IDProcessor struct{}

func (ip *IDProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}
	errors := New().Run(ctx.AstRoot)
	for _, err := range errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	ctx.Errors = append(ctx.Errors, errors...)
	return ctx
}
