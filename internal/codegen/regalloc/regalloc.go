// Package regalloc implements the simplified linear-scan register
// allocator of spec.md §4.4: a fixed pool of 8 general-purpose and 8
// float physical registers, virtual-register minting on exhaustion, and a
// finalization pass that rebinds virtual operands to physical registers
// once all functions have been lowered. When a pool is still exhausted at
// finalize time, the operand is rebound to another virtual register.
//
// Grounded on gmofishsauce-wut4's lang/gen/regalloc.go virtual-to-physical
// map and free-list design, adapted to this spec's simpler "rebind after
// the fact" allocator: spec.md §4.4 describes no frame/spill-slot
// notion, so the spill-to-stack mechanism of the wut4 allocator is not
// carried over (see DESIGN.md).
package regalloc

import "github.com/cwbudde/gdscript-compiler/internal/ir"

const poolSize = 8

var generalNames = [poolSize]string{"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "r8", "r9"}
var floatNames = [poolSize]string{"xmm0", "xmm1", "xmm2", "xmm3", "xmm4", "xmm5", "xmm6", "xmm7"}

// Allocator hands out physical registers from a fixed pool, minting
// virtual registers once the pool of the requested kind is exhausted.
type Allocator struct {
	generalFree    [poolSize]bool
	floatFree      [poolSize]bool
	allocated      []*ir.Register
	nextVirtualID  int
	virtualTargets map[int]ir.RegisterKind
}

// New creates an allocator with every physical register free.
func New() *Allocator {
	a := &Allocator{virtualTargets: make(map[int]ir.RegisterKind)}
	for i := range a.generalFree {
		a.generalFree[i] = true
		a.floatFree[i] = true
	}
	return a
}

func (a *Allocator) poolFor(kind ir.RegisterKind) (*[poolSize]bool, *[poolSize]string) {
	if kind == ir.FloatReg {
		return &a.floatFree, &floatNames
	}
	return &a.generalFree, &generalNames
}

// Allocate returns the first free physical register of kind, or mints a
// fresh virtual register if the pool is exhausted (spec.md §4.4).
func (a *Allocator) Allocate(kind ir.RegisterKind) *ir.Register {
	free, names := a.poolFor(kind)
	for i, isFree := range free {
		if isFree {
			free[i] = false
			reg := &ir.Register{ID: i, Kind: kind, Name: names[i], Allocated: true}
			a.allocated = append(a.allocated, reg)
			return reg
		}
	}
	return a.mintVirtual(kind)
}

func (a *Allocator) mintVirtual(targetKind ir.RegisterKind) *ir.Register {
	id := a.nextVirtualID
	a.nextVirtualID++
	a.virtualTargets[id] = targetKind
	return &ir.Register{ID: id, Kind: ir.Virtual, Name: "", Allocated: false}
}

// Free marks a physical register's slot free again and removes it from
// the allocated list (spec.md §4.4). Freeing a virtual (unallocated)
// register is a no-op.
func (a *Allocator) Free(reg *ir.Register) {
	if reg == nil || !reg.Allocated {
		return
	}
	free, _ := a.poolFor(reg.Kind)
	free[reg.ID] = true
	reg.Allocated = false

	for i, r := range a.allocated {
		if r == reg {
			a.allocated = append(a.allocated[:i], a.allocated[i+1:]...)
			break
		}
	}
}

// Finalize walks every instruction of every function and rebinds each
// still-virtual operand to the first free physical register of its
// target kind (spec.md §4.4's finalization pass). If that pool has no
// free register, Allocate mints a new virtual register and the operand
// stays virtual. It must run after all functions have been lowered.
func (a *Allocator) Finalize(funcs []*ir.Function) {
	for _, fn := range funcs {
		for _, block := range fn.Blocks {
			for i := range block.Instructions {
				instr := &block.Instructions[i]
				for j, operand := range instr.Operands {
					if operand == nil || operand.Kind != ir.Virtual {
						continue
					}
					target, ok := a.virtualTargets[operand.ID]
					if !ok {
						target = ir.General
					}
					phys := a.Allocate(target)
					instr.Operands[j] = phys
				}
			}
		}
	}
}
