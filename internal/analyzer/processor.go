package analyzer

import (
	"strings"

	"github.com/tiplang/tipc/internal/pipeline"
	"github.com/tiplang/tipc/internal/typesystem"
)

type CheckerProcessor struct{}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	checker := New()
	errs := checker.Check(ctx.AstRoot, ctx.Config.Checker.CollectErrors)
	ctx.Errors = append(ctx.Errors, errs...)

	s := checker.Solver()
	ctx.Solver = s
	ctx.TypeMap = make(map[string]typesystem.Term)
	for _, id := range s.Nodes() {
		// Fresh solver temporaries are plumbing, not program points.
		if strings.HasPrefix(id, "$t") {
			continue
		}
		ctx.TypeMap[id] = typesystem.Resolve(typesystem.Var{ID: id}, s)
	}
	return ctx
}
