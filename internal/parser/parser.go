package parser

import (
	"fmt"

	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/pipeline"
	"github.com/tiplang/tipc/internal/token"
)

// Operator precedence (higher = binds tighter).
const (
	LOWEST      = iota + 1
	EQUALS      // ==
	LESSGREATER // >
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // *e &x alloc e
	CALL        // f(a)
	ACCESS      // e.f
)

var precedences = map[token.TokenType]int{
	token.EQ:       EQUALS,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   CALL,
	token.DOT:      ACCESS,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	// The lexer always terminates the stream with EOF; synthesize one for
	// direct callers that pass nothing, so the parse loops terminate.
	if len(tokens) == 0 {
		tokens = []token.Token{{Type: token.EOF, Line: 1, Column: 1}}
	}
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.INT:       p.parseNumberLiteral,
		token.LPAREN:    p.parseGroupedExpression,
		token.INPUT:     p.parseInputExpression,
		token.NULL:      p.parseNullLiteral,
		token.ALLOC:     p.parseAllocExpression,
		token.AMPERSAND: p.parseRefExpression,
		token.ASTERISK:  p.parseDerefExpression,
		token.LBRACE:    p.parseRecordLiteral,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.ASTERISK: p.parseBinaryExpression,
		token.SLASH:    p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.LPAREN:   p.parseCallExpression,
		token.DOT:      p.parseAccessExpression,
	}

	// prime curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else if len(p.tokens) > 0 {
		p.peekToken = p.tokens[len(p.tokens)-1]
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP001, p.peekToken,
		fmt.Sprintf("expected %s, got %s", t, p.peekToken.Type))
	return false
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, msg string) {
	err := diagnostics.NewError(code, tok, msg)
	if p.ctx != nil {
		err.File = p.ctx.FilePath
		p.ctx.Errors = append(p.ctx.Errors, err)
	}
}

// ParseProgram parses a sequence of function definitions.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		fn := p.parseFunction()
		if fn == nil {
			p.syncToFunction()
			continue
		}
		program.Functions = append(program.Functions, fn)
	}
	return program
}

// parseFunction parses: name '(' formals ')' '{' statements '}'.
// The last statement of the body must be a return.
func (p *Parser) parseFunction() *ast.Function {
	if !p.curTokenIs(token.IDENT) {
		p.addError(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("expected function name, got %s", p.curToken.Type))
		return nil
	}

	fn := &ast.Function{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.Params = p.parseFormals()
	if fn.Params == nil && !p.curTokenIs(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	if fn.Body == nil {
		return nil
	}

	if n := len(fn.Body.Statements); n == 0 {
		p.addError(diagnostics.ErrP005, fn.Token,
			fmt.Sprintf("function %s has an empty body; a trailing return is required", fn.Name.Value))
	} else if _, ok := fn.Body.Statements[n-1].(*ast.ReturnStatement); !ok {
		p.addError(diagnostics.ErrP005, fn.Body.Statements[n-1].GetToken(),
			fmt.Sprintf("function %s must end with a return statement", fn.Name.Value))
	}

	p.nextToken() // past '}'
	return fn
}

func (p *Parser) parseFormals() []*ast.Identifier {
	formals := []*ast.Identifier{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return formals
	}

	p.nextToken()
	for {
		if !p.curTokenIs(token.IDENT) {
			p.addError(diagnostics.ErrP001, p.curToken,
				fmt.Sprintf("expected parameter name, got %s", p.curToken.Type))
			return nil
		}
		formals = append(formals, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // ','
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return formals
}

// syncToFunction skips tokens until something that can start a new
// function definition, to avoid a cascade of errors after a malformed one.
func (p *Parser) syncToFunction() {
	braces := 0
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.LBRACE:
			braces++
		case token.RBRACE:
			braces--
			if braces <= 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}
