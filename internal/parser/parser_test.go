package parser

import (
	"strings"
	"testing"

	"github.com/tiplang/tipc/internal/ast"
	"github.com/tiplang/tipc/internal/diagnostics"
	"github.com/tiplang/tipc/internal/lexer"
	"github.com/tiplang/tipc/internal/pipeline"
	"github.com/tiplang/tipc/internal/token"
)

func parseSource(t *testing.T, input string) (*ast.Program, *pipeline.PipelineContext) {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	l := lexer.New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	p := New(tokens, ctx)
	return p.ParseProgram(), ctx
}

func requireNoErrors(t *testing.T, ctx *pipeline.PipelineContext) {
	t.Helper()
	for _, err := range ctx.Errors {
		t.Errorf("unexpected error: %s", err)
	}
	if len(ctx.Errors) > 0 {
		t.FailNow()
	}
}

func firstCode(ctx *pipeline.PipelineContext) diagnostics.ErrorCode {
	if len(ctx.Errors) == 0 {
		return ""
	}
	return ctx.Errors[0].Code
}

func TestParseFunctionDefinition(t *testing.T) {
	input := `iterate(n) {
  var f;
  f = 1;
  while (n > 0) {
    f = f * n;
    n = n - 1;
  }
  return f;
}`
	program, ctx := parseSource(t, input)
	requireNoErrors(t, ctx)

	if len(program.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(program.Functions))
	}
	fn := program.Functions[0]
	if fn.Name.Value != "iterate" {
		t.Errorf("function name = %q", fn.Name.Value)
	}
	if len(fn.Params) != 1 || fn.Params[0].Value != "n" {
		t.Errorf("params = %v", fn.Params)
	}
	if n := len(fn.Body.Statements); n != 4 {
		t.Fatalf("expected 4 body statements, got %d", n)
	}
	if _, ok := fn.Body.Statements[3].(*ast.ReturnStatement); !ok {
		t.Errorf("last statement should be return, got %T", fn.Body.Statements[3])
	}
}

func TestParseMultipleFunctions(t *testing.T) {
	input := `foo() { return 1; }
bar(x, y) { return x; }
main() { return foo(); }`
	program, ctx := parseSource(t, input)
	requireNoErrors(t, ctx)

	if len(program.Functions) != 3 {
		t.Fatalf("expected 3 functions, got %d", len(program.Functions))
	}
	if got := len(program.Functions[1].Params); got != 2 {
		t.Errorf("bar should have 2 params, got %d", got)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	input := `main() { return 1 + 2 * 3 == 7; }`
	program, ctx := parseSource(t, input)
	requireNoErrors(t, ctx)

	ret := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
	eq, ok := ret.Value.(*ast.BinaryExpression)
	if !ok || eq.Operator != "==" {
		t.Fatalf("top operator should be ==, got %v", ret.Value)
	}
	plus, ok := eq.Left.(*ast.BinaryExpression)
	if !ok || plus.Operator != "+" {
		t.Fatalf("left of == should be +, got %v", eq.Left)
	}
	times, ok := plus.Right.(*ast.BinaryExpression)
	if !ok || times.Operator != "*" {
		t.Fatalf("right of + should be *, got %v", plus.Right)
	}
}

func TestParsePointerExpressions(t *testing.T) {
	input := `main() {
  var x, y;
  x = alloc 10;
  y = &x;
  *x = **y + 1;
  return *x;
}`
	program, ctx := parseSource(t, input)
	requireNoErrors(t, ctx)

	body := program.Functions[0].Body.Statements
	alloc := body[1].(*ast.AssignStatement)
	if _, ok := alloc.Value.(*ast.AllocExpression); !ok {
		t.Errorf("x = alloc 10: value is %T", alloc.Value)
	}
	ref := body[2].(*ast.AssignStatement)
	if r, ok := ref.Value.(*ast.RefExpression); !ok || r.Name.Value != "x" {
		t.Errorf("y = &x: value is %v", ref.Value)
	}
	store := body[3].(*ast.AssignStatement)
	if _, ok := store.Target.(*ast.DerefExpression); !ok {
		t.Errorf("*x = ...: target is %T", store.Target)
	}
	inner, ok := store.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("value of *x = should be binary, got %T", store.Value)
	}
	if d, ok := inner.Left.(*ast.DerefExpression); !ok {
		t.Errorf("left operand should be a deref, got %T", inner.Left)
	} else if _, ok := d.Value.(*ast.DerefExpression); !ok {
		t.Errorf("**y should nest two derefs, got %T", d.Value)
	}
}

func TestParseRecords(t *testing.T) {
	input := `main() {
  var r, v;
  r = {a: 1, b: alloc 2};
  v = r.b;
  return r.a;
}`
	program, ctx := parseSource(t, input)
	requireNoErrors(t, ctx)

	body := program.Functions[0].Body.Statements
	lit := body[1].(*ast.AssignStatement).Value.(*ast.RecordLiteral)
	if len(lit.Fields) != 2 {
		t.Fatalf("record literal should have 2 fields, got %d", len(lit.Fields))
	}
	if lit.Fields[0].Name != "a" || lit.Fields[1].Name != "b" {
		t.Errorf("field names = %s, %s", lit.Fields[0].Name, lit.Fields[1].Name)
	}
	acc := body[2].(*ast.AssignStatement).Value.(*ast.AccessExpression)
	if acc.Field != "b" {
		t.Errorf("access field = %q, want b", acc.Field)
	}
}

func TestParseCallArguments(t *testing.T) {
	input := `main() { return f(1, g(), x + 2); }`
	program, ctx := parseSource(t, input)
	requireNoErrors(t, ctx)

	ret := program.Functions[0].Body.Statements[0].(*ast.ReturnStatement)
	call := ret.Value.(*ast.CallExpression)
	if len(call.Arguments) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Arguments))
	}
	if _, ok := call.Arguments[1].(*ast.CallExpression); !ok {
		t.Errorf("second argument should be a nested call, got %T", call.Arguments[1])
	}
}

func TestMissingReturnIsAnError(t *testing.T) {
	_, ctx := parseSource(t, `main() { output 1; }`)
	if firstCode(ctx) != diagnostics.ErrP005 {
		t.Errorf("expected P005, got %v", ctx.Errors)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, ctx := parseSource(t, `main() { 1 = 2; return 0; }`)
	if firstCode(ctx) != diagnostics.ErrP002 {
		t.Errorf("expected P002, got %v", ctx.Errors)
	}
}

func TestUnterminatedBlock(t *testing.T) {
	_, ctx := parseSource(t, `main() { return 0;`)
	if firstCode(ctx) != diagnostics.ErrP003 {
		t.Errorf("expected P003, got %v", ctx.Errors)
	}
}

func TestDuplicateRecordField(t *testing.T) {
	_, ctx := parseSource(t, `main() { return {a: 1, a: 2}; }`)
	if firstCode(ctx) != diagnostics.ErrP001 {
		t.Errorf("expected P001, got %v", ctx.Errors)
	}
}

func TestDeepNestingIsBounded(t *testing.T) {
	depth := 600
	expr := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	_, ctx := parseSource(t, "main() { return "+expr+"; }")
	if firstCode(ctx) != diagnostics.ErrP004 {
		t.Errorf("expected P004, got %v", firstCode(ctx))
	}
}

func TestEmptyTokenStream(t *testing.T) {
	ctx := &pipeline.PipelineContext{}
	program := New(nil, ctx).ParseProgram()
	if len(program.Functions) != 0 {
		t.Errorf("expected no functions, got %d", len(program.Functions))
	}
	if len(ctx.Errors) != 0 {
		t.Errorf("an empty stream is an empty program, got %v", ctx.Errors)
	}
}

func TestRecoveryAcrossFunctions(t *testing.T) {
	input := `broken( { return 1; }
fine() { return 2; }`
	program, ctx := parseSource(t, input)
	if len(ctx.Errors) == 0 {
		t.Fatal("expected at least one error for the malformed function")
	}
	found := false
	for _, fn := range program.Functions {
		if fn.Name.Value == "fine" {
			found = true
		}
	}
	if !found {
		t.Error("parser should recover and still parse the following function")
	}
}
