package analyzer

import (
	"errors"
	"fmt"

	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/solver"
	"github.com/tiplang/tipc/internal/typesystem"
)

// Checker runs type inference over a program. Every declaration and every
// expression node owns one solver identifier; the inference rules below
// emit equality constraints between those identifiers and the solver
// reconciles them as they arrive. A constraint that cannot be reconciled
// surfaces as a diagnostic at the construct that emitted it.
//
// Inference is fail-fast within a function: the first conflict abandons
// the rest of that function's body, since its classes are already
// poisoned. Remaining functions are still checked when CollectErrors is
// set.
type Checker struct {
	solver *solver.UnionFindSolver
	file   string
	errors []*diagnostics.DiagnosticError
}

func New() *Checker {
	return &Checker{solver: solver.New()}
}

func (c *Checker) Solver() *solver.UnionFindSolver        { return c.solver }
func (c *Checker) Errors() []*diagnostics.DiagnosticError { return c.errors }

// Check infers types for the whole program. With collectErrors false it
// stops at the first function that fails to type.
func (c *Checker) Check(prog *ast.Program, collectErrors bool) []*diagnostics.DiagnosticError {
	c.file = prog.File

	// Declare every function up front so calls may reference functions
	// defined later in the file.
	for _, fn := range prog.Functions {
		c.declareFunction(fn)
	}
	for _, fn := range prog.Functions {
		if err := c.checkFunction(fn); err != nil && !collectErrors {
			break
		}
	}
	return c.errors
}

// declareFunction registers the function's identifier with its arrow type
// built from the parameter and return slots.
func (c *Checker) declareFunction(fn *ast.Function) {
	c.solver.AddNode(fn.Key())
	c.solver.AddNode(fn.RetKey)

	params := make([]typesystem.Term, len(fn.Params))
	for i, p := range fn.Params {
		c.solver.AddNode(p.Key())
		params[i] = typesystem.Var{ID: p.Key()}
	}
	ft := typesystem.Function{Params: params, Return: typesystem.Var{ID: fn.RetKey}}
	if err := c.solver.SetType(fn.Key(), ft); err != nil {
		c.report(fn.Name, fmt.Sprintf("function %s", fn.Name.Value), err)
	}
}

func (c *Checker) checkFunction(fn *ast.Function) error {
	// The entry point exchanges integers with the outside world.
	if fn.Name.Value == "main" {
		for _, p := range fn.Params {
			if err := c.solver.SetType(p.Key(), typesystem.Int{}); err != nil {
				return c.report(p, fmt.Sprintf("parameter %s of main", p.Value), err)
			}
		}
		if err := c.solver.SetType(fn.RetKey, typesystem.Int{}); err != nil {
			return c.report(fn.Name, "return value of main", err)
		}
	}
	return c.checkBlock(fn, fn.Body)
}

func (c *Checker) checkBlock(fn *ast.Function, block *ast.BlockStatement) error {
	for _, stmt := range block.Statements {
		if err := c.checkStmt(fn, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(fn *ast.Function, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarStatement:
		for _, name := range s.Names {
			c.solver.AddNode(name.Key())
		}
		return nil

	case *ast.AssignStatement:
		if err := c.checkExpr(s.Value); err != nil {
			return err
		}
		if err := c.checkExpr(s.Target); err != nil {
			return err
		}
		if err := c.solver.Unify(s.Target.Key(), s.Value.Key()); err != nil {
			return c.report(s, "assignment", err)
		}
		return nil

	case *ast.IfStatement:
		if err := c.checkExpr(s.Condition); err != nil {
			return err
		}
		if err := c.solver.SetType(s.Condition.Key(), typesystem.Int{}); err != nil {
			return c.report(s.Condition, "condition of if", err)
		}
		if err := c.checkBlock(fn, s.Consequence); err != nil {
			return err
		}
		if s.Alternative != nil {
			return c.checkBlock(fn, s.Alternative)
		}
		return nil

	case *ast.WhileStatement:
		if err := c.checkExpr(s.Condition); err != nil {
			return err
		}
		if err := c.solver.SetType(s.Condition.Key(), typesystem.Int{}); err != nil {
			return c.report(s.Condition, "condition of while", err)
		}
		return c.checkBlock(fn, s.Body)

	case *ast.OutputStatement:
		if err := c.checkExpr(s.Value); err != nil {
			return err
		}
		if err := c.solver.SetType(s.Value.Key(), typesystem.Int{}); err != nil {
			return c.report(s.Value, "output value", err)
		}
		return nil

	case *ast.ErrorStatement:
		if err := c.checkExpr(s.Value); err != nil {
			return err
		}
		if err := c.solver.SetType(s.Value.Key(), typesystem.Int{}); err != nil {
			return c.report(s.Value, "error value", err)
		}
		return nil

	case *ast.ReturnStatement:
		if err := c.checkExpr(s.Value); err != nil {
			return err
		}
		if err := c.solver.Unify(s.Value.Key(), fn.RetKey); err != nil {
			return c.report(s, fmt.Sprintf("return value of %s", fn.Name.Value), err)
		}
		return nil

	case *ast.BlockStatement:
		return c.checkBlock(fn, s)

	default:
		return nil
	}
}

func (c *Checker) checkExpr(expr ast.Expression) error {
	c.solver.AddNode(expr.Key())

	switch e := expr.(type) {
	case *ast.Identifier:
		return nil

	case *ast.NumberLiteral:
		if err := c.solver.SetType(e.Key(), typesystem.Int{}); err != nil {
			return c.report(e, "integer literal", err)
		}
		return nil

	case *ast.InputExpression:
		if err := c.solver.SetType(e.Key(), typesystem.Int{}); err != nil {
			return c.report(e, "input", err)
		}
		return nil

	case *ast.BinaryExpression:
		return c.checkBinary(e)

	case *ast.CallExpression:
		return c.checkCall(e)

	case *ast.RefExpression:
		c.solver.AddNode(e.Name.Key())
		ptr := typesystem.Pointer{Inner: typesystem.Var{ID: e.Name.Key()}}
		if err := c.solver.SetType(e.Key(), ptr); err != nil {
			return c.report(e, fmt.Sprintf("reference to %s", e.Name.Value), err)
		}
		return nil

	case *ast.DerefExpression:
		if err := c.checkExpr(e.Value); err != nil {
			return err
		}
		cell := c.solver.Fresh()
		ptr := typesystem.Pointer{Inner: typesystem.Var{ID: cell}}
		if err := c.solver.SetType(e.Value.Key(), ptr); err != nil {
			return c.report(e, "dereference", err)
		}
		if err := c.solver.Unify(e.Key(), cell); err != nil {
			return c.report(e, "dereference", err)
		}
		return nil

	case *ast.AllocExpression:
		if err := c.checkExpr(e.Value); err != nil {
			return err
		}
		ptr := typesystem.Pointer{Inner: typesystem.Var{ID: e.Value.Key()}}
		if err := c.solver.SetType(e.Key(), ptr); err != nil {
			return c.report(e, "alloc", err)
		}
		return nil

	case *ast.NullLiteral:
		ptr := typesystem.Pointer{Inner: typesystem.Var{ID: c.solver.Fresh()}}
		if err := c.solver.SetType(e.Key(), ptr); err != nil {
			return c.report(e, "null", err)
		}
		return nil

	case *ast.RecordLiteral:
		return c.checkRecord(e)

	case *ast.AccessExpression:
		return c.checkAccess(e)

	default:
		return nil
	}
}

func (c *Checker) checkBinary(e *ast.BinaryExpression) error {
	if err := c.checkExpr(e.Left); err != nil {
		return err
	}
	if err := c.checkExpr(e.Right); err != nil {
		return err
	}
	where := fmt.Sprintf("operand of %s", e.Operator)
	if err := c.solver.SetType(e.Left.Key(), typesystem.Int{}); err != nil {
		return c.report(e.Left, where, err)
	}
	if err := c.solver.SetType(e.Right.Key(), typesystem.Int{}); err != nil {
		return c.report(e.Right, where, err)
	}
	if err := c.solver.SetType(e.Key(), typesystem.Int{}); err != nil {
		return c.report(e, fmt.Sprintf("result of %s", e.Operator), err)
	}
	return nil
}

// checkCall constrains the callee to an arrow type whose parameter slots
// are the argument nodes and whose return slot flows into the call node.
func (c *Checker) checkCall(e *ast.CallExpression) error {
	if err := c.checkExpr(e.Function); err != nil {
		return err
	}
	params := make([]typesystem.Term, len(e.Arguments))
	for i, arg := range e.Arguments {
		if err := c.checkExpr(arg); err != nil {
			return err
		}
		params[i] = typesystem.Var{ID: arg.Key()}
	}

	ret := c.solver.Fresh()
	ft := typesystem.Function{Params: params, Return: typesystem.Var{ID: ret}}
	if err := c.solver.SetType(e.Function.Key(), ft); err != nil {
		return c.report(e, callContext(e), err)
	}
	if err := c.solver.Unify(e.Key(), ret); err != nil {
		return c.report(e, callContext(e), err)
	}
	return nil
}

func callContext(e *ast.CallExpression) string {
	if id, ok := e.Function.(*ast.Identifier); ok {
		return fmt.Sprintf("call of %s", id.Value)
	}
	return "call"
}

// checkRecord types a record literal as a closed record: the literal has
// exactly the fields it writes.
func (c *Checker) checkRecord(e *ast.RecordLiteral) error {
	fields := make(map[string]typesystem.Term, len(e.Fields))
	for _, f := range e.Fields {
		if err := c.checkExpr(f.Value); err != nil {
			return err
		}
		fields[f.Name] = typesystem.Var{ID: f.Value.Key()}
	}
	rec := typesystem.Record{Fields: fields}
	if err := c.solver.SetType(e.Key(), rec); err != nil {
		return c.report(e, "record literal", err)
	}
	return nil
}

// checkAccess constrains the subject to an open record containing the
// accessed field; open because the access says nothing about what other
// fields the record may carry.
func (c *Checker) checkAccess(e *ast.AccessExpression) error {
	if err := c.checkExpr(e.Record); err != nil {
		return err
	}
	cell := c.solver.Fresh()
	rec := typesystem.Record{
		Fields: map[string]typesystem.Term{e.Field: typesystem.Var{ID: cell}},
		Open:   true,
	}
	where := fmt.Sprintf("field %s of record", e.Field)
	if err := c.solver.SetType(e.Record.Key(), rec); err != nil {
		return c.report(e, where, err)
	}
	if err := c.solver.Unify(e.Key(), cell); err != nil {
		return c.report(e, where, err)
	}
	return nil
}

// report converts a solver failure into a positioned diagnostic and
// records it. The original *typesystem.TypeError message shape is kept as
// the diagnostic message.
func (c *Checker) report(node ast.TokenProvider, context string, err error) error {
	var te *typesystem.TypeError
	if errors.As(err, &te) {
		err = te.WithContext(context)
	}
	d := diagnostics.NewError(diagnostics.ErrT001, node.GetToken(), err.Error())
	d.File = c.file
	c.errors = append(c.errors, d)
	return err
}
