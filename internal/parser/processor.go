package parser

import (
	"github.com/tiplang/tipc/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		return ctx
	}
	before := len(ctx.Errors)
	p := New(ctx.TokenStream, ctx)
	program := p.ParseProgram()
	program.File = ctx.FilePath
	if len(ctx.Errors) > before {
		// Keep a partial AST unavailable to later stages so they do not
		// report follow-on errors for constructs that never parsed.
		return ctx
	}
	ctx.AstRoot = program
	return ctx
}
