// Package x64 encodes IR instructions into x86-64 machine code. Per
// spec.md §4.4 the minimum implementation fixes operand selection to RAX,
// which is sufficient for the placeholder program every emitted binary
// carries; any opcode beyond the covered set emits a single NOP.
package x64

import "github.com/cwbudde/gdscript-compiler/internal/ir"

// MovRegImm encodes `mov eax, imm32` (opcode B8 +rd, 32-bit immediate,
// no REX.W), which zero-extends the immediate into rax.
func MovRegImm(imm int32) []byte {
	b := []byte{0xB8, 0, 0, 0, 0}
	putInt32(b[1:], imm)
	return b
}

// MovRegReg encodes `mov rax, rax` (REX.W + 89 /r, self-move placeholder).
func MovRegReg() []byte {
	return []byte{0x48, 0x89, 0xC0}
}

// AddRegReg encodes `add rax, rax` (REX.W + 01 /r).
func AddRegReg() []byte {
	return []byte{0x48, 0x01, 0xC0}
}

// AddRegImm encodes `add rax, imm32` (REX.W + 81 /0 id).
func AddRegImm(imm int32) []byte {
	b := []byte{0x48, 0x81, 0xC0, 0, 0, 0, 0}
	putInt32(b[3:], imm)
	return b
}

// SubRegReg encodes `sub rax, rax` (REX.W + 29 /r).
func SubRegReg() []byte {
	return []byte{0x48, 0x29, 0xC0}
}

// SubRegImm encodes `sub rax, imm32` (REX.W + 81 /5 id).
func SubRegImm(imm int32) []byte {
	b := []byte{0x48, 0x81, 0xE8, 0, 0, 0, 0}
	putInt32(b[3:], imm)
	return b
}

// Call encodes a near relative CALL (E8 rel32).
func Call(rel int32) []byte {
	b := []byte{0xE8, 0, 0, 0, 0}
	putInt32(b[1:], rel)
	return b
}

// Ret encodes RET (C3).
func Ret() []byte { return []byte{0xC3} }

// Push encodes `push rax` (50).
func Push() []byte { return []byte{0x50} }

// Pop encodes `pop rax` (58).
func Pop() []byte { return []byte{0x58} }

// Nop encodes NOP (90).
func Nop() []byte { return []byte{0x90} }

func putInt32(b []byte, v int32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// Encode lowers a single IR instruction to its x86-64 encoding. MOV/ADD/SUB
// choose the register-immediate form when the instruction carries an
// immediate, register-register otherwise; any opcode outside the covered
// set (spec.md §4.4) falls back to NOP.
func Encode(instr ir.Instruction) []byte {
	switch instr.OpCode {
	case ir.MOV:
		if instr.HasImmediate {
			return MovRegImm(int32(instr.Immediate))
		}
		return MovRegReg()
	case ir.ADD:
		if instr.HasImmediate {
			return AddRegImm(int32(instr.Immediate))
		}
		return AddRegReg()
	case ir.SUB:
		if instr.HasImmediate {
			return SubRegImm(int32(instr.Immediate))
		}
		return SubRegReg()
	case ir.CALL:
		return Call(0)
	case ir.RET:
		return Ret()
	case ir.PUSH:
		return Push()
	case ir.POP:
		return Pop()
	case ir.NOP:
		return Nop()
	default:
		return Nop()
	}
}

// ExitZero is the fixed placeholder routine embedded when lowering
// produces no bytes (spec.md §4.4): `mov eax, 60; xor edi, edi; syscall`
// — the Linux x86-64 exit(0) convention, reused as the generic placeholder
// across all three container formats.
func ExitZero() []byte {
	return []byte{
		0xB8, 0x3C, 0x00, 0x00, 0x00, // mov eax, 60
		0x31, 0xFF, // xor edi, edi
		0x0F, 0x05, // syscall
	}
}
