package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/tiplang/tipc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"==": 1,
	">":  2,
	"+":  3,
	"-":  3,
	"*":  4,
	"/":  4,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 5 // unary and atomic forms bind tightest
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) Print(program *ast.Program) string {
	p.buf.Reset()
	for i, fn := range program.Functions {
		if i > 0 {
			p.buf.WriteString("\n")
		}
		p.printFunction(fn)
	}
	return p.buf.String()
}

func (p *CodePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
}

func (p *CodePrinter) printFunction(fn *ast.Function) {
	p.buf.WriteString(fn.Name.Value)
	p.buf.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(param.Value)
	}
	p.buf.WriteString(") {\n")
	p.indent++
	for _, stmt := range fn.Body.Statements {
		p.printStatement(stmt)
	}
	p.indent--
	p.buf.WriteString("}\n")
}

func (p *CodePrinter) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarStatement:
		p.writeIndent()
		p.buf.WriteString("var ")
		for i, name := range s.Names {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(name.Value)
		}
		p.buf.WriteString(";\n")

	case *ast.AssignStatement:
		p.writeIndent()
		p.printExpression(s.Target, 0)
		p.buf.WriteString(" = ")
		p.printExpression(s.Value, 0)
		p.buf.WriteString(";\n")

	case *ast.IfStatement:
		p.writeIndent()
		p.buf.WriteString("if (")
		p.printExpression(s.Condition, 0)
		p.buf.WriteString(") {\n")
		p.printBlockBody(s.Consequence)
		p.writeIndent()
		if s.Alternative != nil {
			p.buf.WriteString("} else {\n")
			p.printBlockBody(s.Alternative)
			p.writeIndent()
		}
		p.buf.WriteString("}\n")

	case *ast.WhileStatement:
		p.writeIndent()
		p.buf.WriteString("while (")
		p.printExpression(s.Condition, 0)
		p.buf.WriteString(") {\n")
		p.printBlockBody(s.Body)
		p.writeIndent()
		p.buf.WriteString("}\n")

	case *ast.OutputStatement:
		p.writeIndent()
		p.buf.WriteString("output ")
		p.printExpression(s.Value, 0)
		p.buf.WriteString(";\n")

	case *ast.ErrorStatement:
		p.writeIndent()
		p.buf.WriteString("error ")
		p.printExpression(s.Value, 0)
		p.buf.WriteString(";\n")

	case *ast.ReturnStatement:
		p.writeIndent()
		p.buf.WriteString("return ")
		p.printExpression(s.Value, 0)
		p.buf.WriteString(";\n")

	case *ast.BlockStatement:
		p.writeIndent()
		p.buf.WriteString("{\n")
		p.printBlockBody(s)
		p.writeIndent()
		p.buf.WriteString("}\n")
	}
}

func (p *CodePrinter) printBlockBody(block *ast.BlockStatement) {
	p.indent++
	for _, stmt := range block.Statements {
		p.printStatement(stmt)
	}
	p.indent--
}

// printExpression renders expr, parenthesizing when its operator binds
// looser than the surrounding context.
func (p *CodePrinter) printExpression(expr ast.Expression, parentPrec int) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.buf.WriteString(e.Value)

	case *ast.NumberLiteral:
		p.buf.WriteString(strconv.FormatInt(e.Value, 10))

	case *ast.InputExpression:
		p.buf.WriteString("input")

	case *ast.NullLiteral:
		p.buf.WriteString("null")

	case *ast.BinaryExpression:
		prec := getPrecedence(e.Operator)
		if prec < parentPrec {
			p.buf.WriteString("(")
		}
		p.printExpression(e.Left, prec)
		p.buf.WriteString(" " + e.Operator + " ")
		p.printExpression(e.Right, prec+1)
		if prec < parentPrec {
			p.buf.WriteString(")")
		}

	case *ast.CallExpression:
		p.printExpression(e.Function, getPrecedence(""))
		p.buf.WriteString("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.printExpression(arg, 0)
		}
		p.buf.WriteString(")")

	case *ast.RefExpression:
		p.buf.WriteString("&")
		p.buf.WriteString(e.Name.Value)

	case *ast.DerefExpression:
		p.buf.WriteString("*")
		p.printExpression(e.Value, getPrecedence(""))

	case *ast.AllocExpression:
		p.buf.WriteString("alloc ")
		p.printExpression(e.Value, getPrecedence(""))

	case *ast.RecordLiteral:
		p.buf.WriteString("{")
		for i, f := range e.Fields {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(f.Name)
			p.buf.WriteString(": ")
			p.printExpression(f.Value, 0)
		}
		p.buf.WriteString("}")

	case *ast.AccessExpression:
		p.printExpression(e.Record, getPrecedence(""))
		p.buf.WriteString(".")
		p.buf.WriteString(e.Field)
	}
}
