package lexer

import (
	"fmt"

	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/pipeline"
	"github.com/tiplang/tipc/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			err := diagnostics.NewError(diagnostics.ErrL001, tok,
				fmt.Sprintf("illegal character %q", tok.Lexeme))
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.TokenStream = tokens
	return ctx
}
