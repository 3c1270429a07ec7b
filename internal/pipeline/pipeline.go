package pipeline

import (
	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/config"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/solver"
	"github.com/tiplang/tipc/internal/token"
	"github.com/tiplang/tipc/internal/typesystem"
)

// PipelineContext is the shared state threaded through compilation stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Config     *config.Config

	TokenStream []token.Token
	AstRoot     *ast.Program

	// Solver owns the type forest for this compilation unit. After the
	// check stage it is a read-only query surface; later stages must not
	// call Unify or SetType.
	Solver *solver.UnionFindSolver

	// TypeMap holds the resolved term per solver identifier once the
	// check stage completes.
	TypeMap map[string]typesystem.Term

	Errors []*diagnostics.DiagnosticError
}

// Processor is one compilation stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	if ctx.Config == nil {
		ctx.Config = config.Default()
	}
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages;
		// stages guard on their inputs being present.
	}
	return ctx
}
