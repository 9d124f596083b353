package codegen

import "github.com/cwbudde/gdscript-compiler/internal/ir"

// EliminateDeadCode strips NOP instructions from every block of every
// function (spec.md §4.4). It runs before emission.
func EliminateDeadCode(funcs []*ir.Function) {
	for _, fn := range funcs {
		for _, block := range fn.Blocks {
			kept := block.Instructions[:0]
			for _, instr := range block.Instructions {
				if instr.OpCode != ir.NOP {
					kept = append(kept, instr)
				}
			}
			block.Instructions = kept
		}
	}
}

// FoldConstants is a reserved hook for constant folding; the minimum
// implementation performs no folding (spec.md §4.4).
func FoldConstants(funcs []*ir.Function) {}
