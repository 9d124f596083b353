package codegen

import (
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
	"github.com/cwbudde/gdscript-compiler/internal/lexer"
	"github.com/cwbudde/gdscript-compiler/internal/parser"
)

func build(t *testing.T, src string) (*Builder, []*ir.Function) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Diagnostics().Errors())
	}
	b := New()
	funcs := b.Build(prog)
	return b, funcs
}

func countOp(fn *ir.Function, op ir.OpCode) int {
	n := 0
	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instructions {
			if instr.OpCode == op {
				n++
			}
		}
	}
	return n
}

func TestBuildProducesMainFunction(t *testing.T) {
	_, funcs := build(t, "var x = 1\n")
	if len(funcs) != 1 || funcs[0].Name != "main" {
		t.Fatalf("expected a single main function, got %#v", funcs)
	}
}

func TestBuildEnsuresReturn(t *testing.T) {
	_, funcs := build(t, "var x = 1\n")
	last := funcs[0].LastInstruction()
	if last == nil || last.OpCode != ir.RET {
		t.Fatalf("expected the main function to end in RET, got %#v", last)
	}
}

func TestIfLowersToCompareAndJump(t *testing.T) {
	_, funcs := build(t, "if true:\n\tpass\n")
	main := funcs[0]
	if countOp(main, ir.CMP) != 1 {
		t.Errorf("expected exactly one CMP, got %d", countOp(main, ir.CMP))
	}
	if countOp(main, ir.JE) != 1 {
		t.Errorf("expected exactly one JE, got %d", countOp(main, ir.JE))
	}
}

func TestWhileLoopLowersBreakAndLoopBack(t *testing.T) {
	_, funcs := build(t, "while true:\n\tbreak\n")
	main := funcs[0]
	if countOp(main, ir.JMP) < 2 {
		t.Errorf("expected at least 2 JMP (break + loop-back), got %d", countOp(main, ir.JMP))
	}
}

func TestBreakOutsideLoopReportsCodegenError(t *testing.T) {
	b, _ := build(t, "if true:\n\tbreak\n")
	if !b.Diagnostics().HasErrors() {
		t.Fatal("expected a codegen diagnostic for break outside a loop")
	}
}

func TestFuncDeclProducesSeparateFunction(t *testing.T) {
	_, funcs := build(t, "func add(a, b):\n\treturn a + b\n")
	names := make(map[string]bool)
	for _, fn := range funcs {
		names[fn.Name] = true
	}
	if !names["main"] || !names["add"] {
		t.Fatalf("expected main and add functions, got %#v", names)
	}
}

func TestFuncDeclHasParameters(t *testing.T) {
	_, funcs := build(t, "func add(a, b):\n\treturn a + b\n")
	var addFn *ir.Function
	for _, fn := range funcs {
		if fn.Name == "add" {
			addFn = fn
		}
	}
	if addFn == nil {
		t.Fatal("add function not found")
	}
	if len(addFn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(addFn.Parameters))
	}
}

func TestClassMethodNameIsPrefixed(t *testing.T) {
	src := "class Foo:\n\tvar x = 1\n\tfunc greet():\n\t\treturn x\n"
	_, funcs := build(t, src)
	found := false
	for _, fn := range funcs {
		if fn.Name == "Foo_greet" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Foo_greet method function, got %#v", funcNames(funcs))
	}
}

func TestClassMemberResolvesInMethodBody(t *testing.T) {
	src := "class Foo:\n\tvar x = 1\n\tfunc greet():\n\t\treturn x\n"
	b, _ := build(t, src)
	if b.Diagnostics().HasErrors() {
		t.Fatalf("unexpected codegen errors: %v", b.Diagnostics().Errors())
	}
}

func TestUnresolvedIdentifierReportsCodegenError(t *testing.T) {
	b := New()
	p := parser.New(lexer.New("print(missing)\n"))
	prog := p.ParseProgram()
	b.Build(prog)
	if !b.Diagnostics().HasErrors() {
		t.Fatal("expected a codegen diagnostic for an unresolved identifier")
	}
}

func TestBuiltinCallUsesRuntimeName(t *testing.T) {
	_, funcs := build(t, "print(1)\n")
	main := funcs[0]
	found := false
	for _, blk := range main.Blocks {
		for _, instr := range blk.Instructions {
			if instr.OpCode == ir.CALL && instr.Label == "_builtin_print" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("expected a CALL to _builtin_print")
	}
}

func TestMatchLowersDispatchThenBodies(t *testing.T) {
	src := "match x:\n\t1:\n\t\tpass\n\t2:\n\t\tpass\n"
	b := New()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	funcs := b.Build(prog)
	if countOp(funcs[0], ir.CMP) != 2 {
		t.Errorf("expected 2 CMP (one per case), got %d", countOp(funcs[0], ir.CMP))
	}
}

func TestFinalizeBindsAllGeneralPurposeOperands(t *testing.T) {
	_, funcs := build(t, "var a = 1\nvar b = 2\nvar c = a + b\n")
	for _, fn := range funcs {
		for _, blk := range fn.Blocks {
			for _, instr := range blk.Instructions {
				for _, op := range instr.Operands {
					if op != nil && op.Kind == ir.Virtual {
						t.Fatalf("found an unresolved virtual operand after Finalize: %#v", op)
					}
				}
			}
		}
	}
}

func funcNames(funcs []*ir.Function) []string {
	names := make([]string, len(funcs))
	for i, f := range funcs {
		names[i] = f.Name
	}
	return names
}
