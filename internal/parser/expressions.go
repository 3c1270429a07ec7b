package parser

import (
	"fmt"
	"strconv"

	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/config"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > config.MaxRecursionDepth {
		p.addError(diagnostics.ErrP004, p.curToken,
			"expression too complex: recursion depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(diagnostics.ErrP001, p.curToken,
			fmt.Sprintf("unexpected token %s in expression", p.curToken.Type))
		return nil
	}
	left := prefix()

	for left != nil && !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.addError(diagnostics.ErrL002, p.curToken,
			fmt.Sprintf("could not parse %q as integer", p.curToken.Lexeme))
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseInputExpression() ast.Expression {
	return &ast.InputExpression{Token: p.curToken}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseAllocExpression() ast.Expression {
	expr := &ast.AllocExpression{Token: p.curToken}
	p.nextToken()
	expr.Value = p.parseExpression(PREFIX)
	if expr.Value == nil {
		return nil
	}
	return expr
}

// parseRefExpression parses &x; the address-of operator applies to
// variables only.
func (p *Parser) parseRefExpression() ast.Expression {
	expr := &ast.RefExpression{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	return expr
}

func (p *Parser) parseDerefExpression() ast.Expression {
	expr := &ast.DerefExpression{Token: p.curToken}
	p.nextToken()
	expr.Value = p.parseExpression(PREFIX)
	if expr.Value == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Function: function}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return expr
	}

	p.nextToken()
	for {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		expr.Arguments = append(expr.Arguments, arg)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // ','
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseAccessExpression(record ast.Expression) ast.Expression {
	expr := &ast.AccessExpression{Token: p.curToken, Record: record}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Field = p.curToken.Lexeme
	return expr
}

// parseRecordLiteral parses {a: 1, b: alloc 2}. The empty record {} is
// allowed.
func (p *Parser) parseRecordLiteral() ast.Expression {
	record := &ast.RecordLiteral{Token: p.curToken}
	seen := map[string]bool{}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return record
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		field := &ast.RecordField{Token: p.curToken, Name: p.curToken.Lexeme}
		if seen[field.Name] {
			p.addError(diagnostics.ErrP001, field.Token,
				fmt.Sprintf("duplicate field %s in record literal", field.Name))
			return nil
		}
		seen[field.Name] = true
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if field.Value == nil {
			return nil
		}
		record.Fields = append(record.Fields, field)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return record
}
