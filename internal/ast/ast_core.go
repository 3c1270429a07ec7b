package ast

import (
	"strings"

	"github.com/tiplang/tipc/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression. Every expression
// produces a value and therefore owns a type: Key returns the globally
// unique solver identifier assigned to it by the id pass. For variable
// references the key is the declaring identifier's key, so a reference
// shares its declaration's equivalence class.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
	Key() string
}

// Program is the root node: a list of function definitions.
type Program struct {
	File      string
	Functions []*Function
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

// Function is a function definition: name, formal parameters, and a body
// whose last statement is a return. RetKey names the implicit return slot
// every return statement in the body unifies with.
type Function struct {
	Token  token.Token // the function name token
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
	RetKey string
}

func (f *Function) TokenLiteral() string { return f.Token.Lexeme }
func (f *Function) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// Key returns the function's solver identifier (its global name).
func (f *Function) Key() string { return f.Name.Key() }

func (f *Function) Signature() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Value
	}
	return f.Name.Value + "(" + strings.Join(params, ", ") + ")"
}

// VarStatement declares one or more uninitialized variables.
// var x, y, z;
type VarStatement struct {
	Token token.Token // the 'var' token
	Names []*Identifier
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Lexeme }
func (vs *VarStatement) GetToken() token.Token {
	if vs == nil {
		return token.Token{}
	}
	return vs.Token
}

// AssignStatement assigns through a variable or a dereference.
// x = e; or *p = e;
type AssignStatement struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

// IfStatement with an optional else branch. The condition is an integer;
// the language has no boolean type.
type IfStatement struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

type WhileStatement struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// OutputStatement writes an integer to the program's output stream.
type OutputStatement struct {
	Token token.Token // the 'output' token
	Value Expression
}

func (os *OutputStatement) statementNode()       {}
func (os *OutputStatement) TokenLiteral() string { return os.Token.Lexeme }
func (os *OutputStatement) GetToken() token.Token {
	if os == nil {
		return token.Token{}
	}
	return os.Token
}

// ErrorStatement aborts the program with an integer code.
type ErrorStatement struct {
	Token token.Token // the 'error' token
	Value Expression
}

func (es *ErrorStatement) statementNode()       {}
func (es *ErrorStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ErrorStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

type ReturnStatement struct {
	Token token.Token // the 'return' token
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

type BlockStatement struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}
