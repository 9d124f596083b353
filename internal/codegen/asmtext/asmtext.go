// Package asmtext renders lowered IR functions to the textual assembly
// form of spec.md §4.4: one function label followed by each block's
// instructions, one per line.
package asmtext

import (
	"fmt"
	"strings"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

// Render produces the assembly-format text for a whole program's
// functions, in the order they were lowered.
func Render(funcs []*ir.Function) string {
	var sb strings.Builder
	for _, fn := range funcs {
		renderFunction(&sb, fn)
	}
	return sb.String()
}

func renderFunction(sb *strings.Builder, fn *ir.Function) {
	fmt.Fprintf(sb, "%s:\n", fn.Name)
	for _, block := range fn.Blocks {
		for _, instr := range block.Instructions {
			sb.WriteString("    ")
			sb.WriteString(instructionText(instr))
			sb.WriteByte('\n')
		}
	}
}

// instructionText prints mnemonic + operand names; a LABEL instruction
// prints "label:" instead (spec.md §4.4).
func instructionText(instr ir.Instruction) string {
	if instr.OpCode == ir.LABEL {
		return instr.Label + ":"
	}

	parts := make([]string, 0, len(instr.Operands)+1)
	for _, op := range instr.Operands {
		parts = append(parts, operandName(op))
	}
	if instr.HasImmediate {
		parts = append(parts, fmt.Sprintf("%d", instr.Immediate))
	}
	if instr.Label != "" && instr.OpCode != ir.MOV {
		parts = append(parts, instr.Label)
	}

	if len(parts) == 0 {
		return instr.OpCode.String()
	}
	return instr.OpCode.String() + " " + strings.Join(parts, ", ")
}

func operandName(reg *ir.Register) string {
	if reg == nil {
		return "?"
	}
	if reg.Name != "" {
		return reg.Name
	}
	return fmt.Sprintf("v%d", reg.ID)
}
