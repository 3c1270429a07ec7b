package diagnostics

import (
	"fmt"

	"github.com/tiplang/tipc/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // malformed number literal

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // invalid assignment target
	ErrP003 ErrorCode = "P003" // unterminated construct
	ErrP004 ErrorCode = "P004" // expression nesting too deep
	ErrP005 ErrorCode = "P005" // missing return in function body

	// Scoping / id assignment
	ErrA001 ErrorCode = "A001" // duplicate declaration
	ErrA002 ErrorCode = "A002" // undefined identifier

	// Type checking
	ErrT001 ErrorCode = "T001" // type mismatch
)

// DiagnosticError is a structured compiler diagnostic with a stable code
// and a source position.
type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Line    int
	Column  int
	Message string
}

func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: msg,
	}
}

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: [%s] %s", file, e.Line, e.Column, e.Code, e.Message)
}
