package prettyprinter

import (
	"bytes"

	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/typesystem"
)

// --- Typed Printer (declaration listing annotated with inferred types) ---

// TypedPrinter renders, per function, the function's arrow type followed
// by the inferred type of every parameter and declared variable. It only
// reads from the resolver; the solve is already done.
type TypedPrinter struct {
	buf      bytes.Buffer
	resolver typesystem.Resolver
}

func NewTypedPrinter(r typesystem.Resolver) *TypedPrinter {
	return &TypedPrinter{resolver: r}
}

func (p *TypedPrinter) Print(program *ast.Program) string {
	p.buf.Reset()
	for i, fn := range program.Functions {
		if i > 0 {
			p.buf.WriteString("\n")
		}
		p.printFunction(fn)
	}
	return p.buf.String()
}

func (p *TypedPrinter) printFunction(fn *ast.Function) {
	p.buf.WriteString(fn.Signature())
	p.buf.WriteString(": ")
	p.buf.WriteString(p.typeOf(fn.Key()))
	p.buf.WriteString("\n")

	for _, param := range fn.Params {
		p.printDecl(param.Value, param.Key())
	}
	p.printVars(fn.Body)
	p.printDecl("return", fn.RetKey)
}

func (p *TypedPrinter) printVars(block *ast.BlockStatement) {
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.VarStatement:
			for _, name := range s.Names {
				p.printDecl(name.Value, name.Key())
			}
		case *ast.IfStatement:
			p.printVars(s.Consequence)
			if s.Alternative != nil {
				p.printVars(s.Alternative)
			}
		case *ast.WhileStatement:
			p.printVars(s.Body)
		case *ast.BlockStatement:
			p.printVars(s)
		}
	}
}

func (p *TypedPrinter) printDecl(name, key string) {
	p.buf.WriteString("  ")
	p.buf.WriteString(name)
	p.buf.WriteString(": ")
	p.buf.WriteString(p.typeOf(key))
	p.buf.WriteString("\n")
}

func (p *TypedPrinter) typeOf(key string) string {
	return typesystem.Print(typesystem.Var{ID: key}, p.resolver)
}
