package x64

import (
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

func TestMovRegImmEncodesOpcodeAndImmediate(t *testing.T) {
	got := MovRegImm(42)
	want := []byte{0xB8, 42, 0, 0, 0}
	if string(got) != string(want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestEncodeDispatchesByOpcode(t *testing.T) {
	tests := []struct {
		name     string
		instr    ir.Instruction
		wantLen  int
		wantByte byte
	}{
		{"mov imm", ir.Instruction{OpCode: ir.MOV, Immediate: 1, HasImmediate: true}, 5, 0xB8},
		{"mov reg", ir.Instruction{OpCode: ir.MOV}, 3, 0x48},
		{"ret", ir.Instruction{OpCode: ir.RET}, 1, 0xC3},
		{"push", ir.Instruction{OpCode: ir.PUSH}, 1, 0x50},
		{"pop", ir.Instruction{OpCode: ir.POP}, 1, 0x58},
		{"nop", ir.Instruction{OpCode: ir.NOP}, 1, 0x90},
		{"uncovered opcode falls back to nop", ir.Instruction{OpCode: ir.FADD}, 1, 0x90},
	}
	for _, tt := range tests {
		got := Encode(tt.instr)
		if len(got) != tt.wantLen {
			t.Errorf("%s: len = %d, want %d", tt.name, len(got), tt.wantLen)
		}
		if len(got) > 0 && got[0] != tt.wantByte {
			t.Errorf("%s: first byte = %#x, want %#x", tt.name, got[0], tt.wantByte)
		}
	}
}

func TestExitZeroSyscallConvention(t *testing.T) {
	got := ExitZero()
	want := []byte{0xB8, 0x3C, 0x00, 0x00, 0x00, 0x31, 0xFF, 0x0F, 0x05}
	if string(got) != string(want) {
		t.Errorf("got % x, want % x", got, want)
	}
}
