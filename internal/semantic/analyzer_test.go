package semantic

import (
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/lexer"
	"github.com/cwbudde/gdscript-compiler/internal/parser"
)

func analyze(t *testing.T, src string) *Analyzer {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Diagnostics().Errors())
	}
	a := NewAnalyzer()
	a.Analyze(prog)
	return a
}

func TestUndefinedVariableReportsError(t *testing.T) {
	a := analyze(t, "print(missing)\n")
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected an error for an undefined variable")
	}
}

func TestVarDeclIntroducesSymbol(t *testing.T) {
	a := analyze(t, "var x = 5\nprint(x)\n")
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Diagnostics().Errors())
	}
}

func TestDuplicateDefinitionReportsError(t *testing.T) {
	a := analyze(t, "var x = 1\nvar x = 2\n")
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected an error for a duplicate definition")
	}
}

func TestBreakOutsideLoopReportsError(t *testing.T) {
	a := analyze(t, "break\n")
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected an error for break outside a loop")
	}
}

func TestBreakInsideLoopIsFine(t *testing.T) {
	a := analyze(t, "while true:\n\tbreak\n")
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Diagnostics().Errors())
	}
}

func TestReturnOutsideFunctionReportsError(t *testing.T) {
	a := analyze(t, "return 1\n")
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected an error for return outside a function")
	}
}

func TestUndefinedFunctionReportsError(t *testing.T) {
	a := analyze(t, "nonexistent_function(1, 2)\n")
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected an error for an undefined function call")
	}
}

func TestFunctionArgumentCountMismatch(t *testing.T) {
	a := analyze(t, "func add(a, b):\n\treturn a + b\nadd(1)\n")
	if !a.Diagnostics().HasErrors() {
		t.Fatal("expected an error for a function argument count mismatch")
	}
}

func TestClassDeclRegistersClassInfo(t *testing.T) {
	a := analyze(t, "class Foo:\n\tvar x = 1\n\tfunc greet():\n\t\tpass\n")
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Diagnostics().Errors())
	}
	if _, ok := a.Classes()["Foo"]; !ok {
		t.Fatal("expected class Foo to be registered")
	}
}

func TestForInBindsStringLoopVariable(t *testing.T) {
	a := analyze(t, "for c in \"abc\":\n\tprint(c)\n")
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Diagnostics().Errors())
	}
}

func TestNestedScopeShadowingIsAllowed(t *testing.T) {
	a := analyze(t, "var x = 1\nif true:\n\tvar x = 2\n\tprint(x)\n")
	if a.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %v", a.Diagnostics().Errors())
	}
}
