package prettyprinter

import (
	"strings"
	"testing"

	"github.com/tiplang/tipc/internal/analyzer"
	"github.com/tiplang/tipc/internal/idassign"
	"github.com/tiplang/tipc/internal/lexer"
	"github.com/tiplang/tipc/internal/parser"
	"github.com/tiplang/tipc/internal/pipeline"
)

func compile(t *testing.T, source string, check bool) *pipeline.PipelineContext {
	t.Helper()
	stages := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	}
	if check {
		stages = append(stages, &idassign.IDProcessor{}, &analyzer.CheckerProcessor{})
	}
	ctx := pipeline.New(stages...).Run(&pipeline.PipelineContext{SourceCode: source})
	if len(ctx.Errors) > 0 {
		t.Fatalf("compile errors: %v", ctx.Errors)
	}
	return ctx
}

func TestCodePrinterRoundTrip(t *testing.T) {
	source := `iterate(n) {
  var f;
  f = 1;
  while (n > 0) {
    f = f * n;
    n = n - 1;
  }
  return f;
}
`
	ctx := compile(t, source, false)
	printed := NewCodePrinter().Print(ctx.AstRoot)
	if printed != source {
		t.Errorf("printed form differs from source:\n--- got ---\n%s--- want ---\n%s", printed, source)
	}

	// printing the re-parsed output must be a fixed point
	again := compile(t, printed, false)
	if second := NewCodePrinter().Print(again.AstRoot); second != printed {
		t.Errorf("printing is not stable:\n%s\nvs\n%s", second, printed)
	}
}

func TestCodePrinterParenthesizesByPrecedence(t *testing.T) {
	source := `main() {
  x = (1 + 2) * 3;
  y = 1 + 2 * 3;
  return *p + r.a;
}
`
	ctx := compile(t, source, false)
	printed := NewCodePrinter().Print(ctx.AstRoot)
	want := `main() {
  x = (1 + 2) * 3;
  y = 1 + 2 * 3;
  return *p + r.a;
}
`
	if printed != want {
		t.Errorf("got:\n%s\nwant:\n%s", printed, want)
	}
}

func TestCodePrinterRecordsAndPointers(t *testing.T) {
	source := `main() {
  var r;
  r = {a: alloc 1, b: null};
  *r.a = input;
  return r.b == null;
}
`
	ctx := compile(t, source, false)
	printed := NewCodePrinter().Print(ctx.AstRoot)
	if printed != source {
		t.Errorf("got:\n%s\nwant:\n%s", printed, source)
	}
}

func TestTypedPrinterListsDeclarations(t *testing.T) {
	ctx := compile(t, `iterate(n) {
  var f;
  f = 1;
  while (n > 0) {
    f = f * n;
    n = n - 1;
  }
  return f;
}`, true)

	got := NewTypedPrinter(ctx.Solver).Print(ctx.AstRoot)
	want := `iterate(n): (int) -> int
  n: int
  f: int
  return: int
`
	if got != want {
		t.Errorf("typed listing:\n%s\nwant:\n%s", got, want)
	}
}

func TestTypedPrinterPolymorphicLeftovers(t *testing.T) {
	// p never gets a concrete pointee; it must render as a free variable
	ctx := compile(t, `main() {
  var p;
  p = null;
  return 0;
}`, true)

	got := NewTypedPrinter(ctx.Solver).Print(ctx.AstRoot)
	if !strings.HasPrefix(got, "main(): () -> int\n") {
		t.Errorf("listing should open with the signature line, got:\n%s", got)
	}
	if !strings.Contains(got, "  p: &α") {
		t.Errorf("p should render as a pointer to a free variable, got:\n%s", got)
	}
	if !strings.Contains(got, "  return: int\n") {
		t.Errorf("return slot should be int, got:\n%s", got)
	}
}
