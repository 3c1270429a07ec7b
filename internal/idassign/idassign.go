// Package idassign gives every value-producing AST node a globally unique,
// deterministic solver identifier. Program variables resolve to their
// declaring identifier's key so that every reference shares one equivalence
// class; all other value nodes are numbered in a pre-order walk, stable
// across repeated compilations of the same source.
//
// Keys: function names are global ("iterate"), variables are qualified by
// their function ("iterate.n"), the implicit return slot is "iterate.$ret",
// and anonymous value nodes are "e0", "e1", ... in walk order.
package idassign

import (
	"fmt"
	"strconv"

	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/symbols"
)

type Assigner struct {
	counter int
	errors  []*diagnostics.DiagnosticError
}

func New() *Assigner {
	return &Assigner{}
}

// Run assigns identifiers across the whole program and reports duplicate
// declarations and undefined names. The walk continues past errors so all
// naming problems surface in one pass.
func (a *Assigner) Run(prog *ast.Program) []*diagnostics.DiagnosticError {
	globals := symbols.NewScope()
	for _, fn := range prog.Functions {
		next, ok := globals.Define(fn.Name.Value, fn.Name.Value)
		if !ok {
			a.addError(diagnostics.ErrA001, fn.Name,
				fmt.Sprintf("function %s redeclared", fn.Name.Value))
			continue
		}
		globals = next
		fn.Name.ID = fn.Name.Value
	}

	for _, fn := range prog.Functions {
		a.assignFunction(fn, globals)
	}
	return a.errors
}

func (a *Assigner) assignFunction(fn *ast.Function, globals *symbols.Scope) {
	fn.RetKey = fn.Name.Value + ".$ret"

	scope := globals.Child()
	for _, param := range fn.Params {
		key := fn.Name.Value + "." + param.Value
		next, ok := scope.Define(param.Value, key)
		if !ok {
			a.addError(diagnostics.ErrA001, param,
				fmt.Sprintf("parameter %s redeclared", param.Value))
			continue
		}
		scope = next
		param.ID = key
	}

	// Declarations are function-wide, matching the language's scoping:
	// var statements anywhere in the body introduce names visible to the
	// whole function.
	scope = a.collectDecls(fn, fn.Body, scope)

	a.assignBlock(fn.Body, scope)
}

func (a *Assigner) collectDecls(fn *ast.Function, block *ast.BlockStatement, scope *symbols.Scope) *symbols.Scope {
	if block == nil {
		return scope
	}
	for _, stmt := range block.Statements {
		switch stmt := stmt.(type) {
		case *ast.VarStatement:
			for _, name := range stmt.Names {
				key := fn.Name.Value + "." + name.Value
				next, ok := scope.Define(name.Value, key)
				if !ok {
					a.addError(diagnostics.ErrA001, name,
						fmt.Sprintf("variable %s redeclared in %s", name.Value, fn.Name.Value))
					continue
				}
				scope = next
				name.ID = key
			}
		case *ast.IfStatement:
			scope = a.collectDecls(fn, stmt.Consequence, scope)
			scope = a.collectDecls(fn, stmt.Alternative, scope)
		case *ast.WhileStatement:
			scope = a.collectDecls(fn, stmt.Body, scope)
		case *ast.BlockStatement:
			scope = a.collectDecls(fn, stmt, scope)
		}
	}
	return scope
}

func (a *Assigner) assignBlock(block *ast.BlockStatement, scope *symbols.Scope) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		a.assignStmt(stmt, scope)
	}
}

func (a *Assigner) assignStmt(stmt ast.Statement, scope *symbols.Scope) {
	switch stmt := stmt.(type) {
	case *ast.VarStatement:
		// handled by collectDecls
	case *ast.AssignStatement:
		a.assignExpr(stmt.Target, scope)
		a.assignExpr(stmt.Value, scope)
	case *ast.IfStatement:
		a.assignExpr(stmt.Condition, scope)
		a.assignBlock(stmt.Consequence, scope)
		a.assignBlock(stmt.Alternative, scope)
	case *ast.WhileStatement:
		a.assignExpr(stmt.Condition, scope)
		a.assignBlock(stmt.Body, scope)
	case *ast.OutputStatement:
		a.assignExpr(stmt.Value, scope)
	case *ast.ErrorStatement:
		a.assignExpr(stmt.Value, scope)
	case *ast.ReturnStatement:
		a.assignExpr(stmt.Value, scope)
	case *ast.BlockStatement:
		a.assignBlock(stmt, scope)
	}
}

func (a *Assigner) assignExpr(expr ast.Expression, scope *symbols.Scope) {
	switch expr := expr.(type) {
	case nil:
	case *ast.Identifier:
		key, ok := scope.Resolve(expr.Value)
		if !ok {
			a.addError(diagnostics.ErrA002, expr,
				fmt.Sprintf("undefined identifier %s", expr.Value))
			// keep a distinct key so later stages do not conflate
			// unrelated undefined names
			key = "?" + expr.Value
		}
		expr.ID = key
	case *ast.NumberLiteral:
		expr.ID = a.next()
	case *ast.BinaryExpression:
		expr.ID = a.next()
		a.assignExpr(expr.Left, scope)
		a.assignExpr(expr.Right, scope)
	case *ast.CallExpression:
		expr.ID = a.next()
		a.assignExpr(expr.Function, scope)
		for _, arg := range expr.Arguments {
			a.assignExpr(arg, scope)
		}
	case *ast.InputExpression:
		expr.ID = a.next()
	case *ast.AllocExpression:
		expr.ID = a.next()
		a.assignExpr(expr.Value, scope)
	case *ast.RefExpression:
		expr.ID = a.next()
		a.assignExpr(expr.Name, scope)
	case *ast.DerefExpression:
		expr.ID = a.next()
		a.assignExpr(expr.Value, scope)
	case *ast.NullLiteral:
		expr.ID = a.next()
	case *ast.RecordLiteral:
		expr.ID = a.next()
		for _, field := range expr.Fields {
			a.assignExpr(field.Value, scope)
		}
	case *ast.AccessExpression:
		expr.ID = a.next()
		a.assignExpr(expr.Record, scope)
	}
}

func (a *Assigner) next() string {
	id := "e" + strconv.Itoa(a.counter)
	a.counter++
	return id
}

func (a *Assigner) addError(code diagnostics.ErrorCode, node ast.TokenProvider, msg string) {
	a.errors = append(a.errors, diagnostics.NewError(code, node.GetToken(), msg))
}
