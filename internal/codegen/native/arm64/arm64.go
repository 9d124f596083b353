// Package arm64 encodes IR instructions into AArch64 machine code.
// Operand selection is fixed to X0 (spec.md §4.4), matching x64's fixed
// RAX, since both back the same placeholder program.
package arm64

import (
	"encoding/binary"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

func word(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// MovRegImm encodes `movz x0, #imm16`.
func MovRegImm(imm uint16) []byte {
	return word(0xD2800000 | uint32(imm)<<5)
}

// MovRegReg encodes `mov x0, x0` (orr x0, xzr, x0).
func MovRegReg() []byte {
	return word(0xAA0003E0)
}

// AddRegReg encodes `add x0, x0, x0`.
func AddRegReg() []byte {
	return word(0x8B000000)
}

// AddRegImm encodes `add x0, x0, #imm12`.
func AddRegImm(imm uint16) []byte {
	return word(0x91000000 | (uint32(imm)&0xFFF)<<10)
}

// SubRegReg encodes `sub x0, x0, x0`.
func SubRegReg() []byte {
	return word(0xCB000000)
}

// SubRegImm encodes `sub x0, x0, #imm12`.
func SubRegImm(imm uint16) []byte {
	return word(0xD1000000 | (uint32(imm)&0xFFF)<<10)
}

// Call encodes `bl #0` (relative branch-with-link, offset patched by the
// linker in a real toolchain; this minimum implementation always emits
// offset zero).
func Call() []byte {
	return word(0x94000000)
}

// Ret encodes `ret` (return to X30).
func Ret() []byte {
	return word(0xD65F03C0)
}

// Nop encodes `nop`.
func Nop() []byte {
	return word(0xD503201F)
}

// Encode lowers a single IR instruction to its AArch64 encoding. AArch64
// has no PUSH/POP (x86-only per spec.md §4.4); they fall back to NOP like
// any other uncovered opcode.
func Encode(instr ir.Instruction) []byte {
	switch instr.OpCode {
	case ir.MOV:
		if instr.HasImmediate {
			return MovRegImm(uint16(instr.Immediate))
		}
		return MovRegReg()
	case ir.ADD:
		if instr.HasImmediate {
			return AddRegImm(uint16(instr.Immediate))
		}
		return AddRegReg()
	case ir.SUB:
		if instr.HasImmediate {
			return SubRegImm(uint16(instr.Immediate))
		}
		return SubRegReg()
	case ir.CALL:
		return Call()
	case ir.RET:
		return Ret()
	case ir.NOP:
		return Nop()
	default:
		return Nop()
	}
}

// ExitZero is the fixed placeholder exit(0) routine for AArch64 Linux:
// `mov x8, #93; mov x0, #0; svc #0` (spec.md §4.4).
func ExitZero() []byte {
	var b []byte
	b = append(b, word(0xD2800BA8)...) // mov x8, #93
	b = append(b, word(0xD2800000)...) // mov x0, #0
	b = append(b, word(0xD4000001)...) // svc #0
	return b
}
