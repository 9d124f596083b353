package regalloc

import (
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

func TestAllocateFromPool(t *testing.T) {
	a := New()
	reg := a.Allocate(ir.General)
	if !reg.Allocated || reg.Name != "rax" {
		t.Fatalf("got %#v, want allocated rax", reg)
	}
}

func TestAllocateExhaustionMintsVirtual(t *testing.T) {
	a := New()
	for i := 0; i < poolSize; i++ {
		a.Allocate(ir.General)
	}
	reg := a.Allocate(ir.General)
	if reg.Allocated || reg.Kind != ir.Virtual {
		t.Fatalf("expected a virtual register once the pool is exhausted, got %#v", reg)
	}
}

func TestFreeReturnsSlotToPool(t *testing.T) {
	a := New()
	reg := a.Allocate(ir.General)
	a.Free(reg)
	if reg.Allocated {
		t.Fatal("expected Free to clear Allocated")
	}
	next := a.Allocate(ir.General)
	if next.Name != "rax" {
		t.Fatalf("expected the freed rax slot to be reused, got %s", next.Name)
	}
}

func TestFreeVirtualIsNoOp(t *testing.T) {
	a := New()
	for i := 0; i < poolSize; i++ {
		a.Allocate(ir.General)
	}
	virt := a.Allocate(ir.General)
	a.Free(virt) // must not panic or corrupt the pool
	if a.generalFree != [poolSize]bool{} {
		t.Fatal("freeing a virtual register must not affect the physical pool")
	}
}

func TestFinalizeRebindsVirtualOperands(t *testing.T) {
	a := New()
	virt := a.mintVirtual(ir.FloatReg)

	fn := ir.NewFunction("main")
	b := fn.NewBlock("entry")
	b.Emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{virt}})

	a.Finalize([]*ir.Function{fn})

	got := b.Instructions[0].Operands[0]
	if got.Kind != ir.FloatReg || !got.Allocated {
		t.Fatalf("expected the virtual operand to be rebound to a physical float register, got %#v", got)
	}
}
