package arm64

import (
	"encoding/binary"
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

func TestMovRegImmEncodesImmediateField(t *testing.T) {
	got := binary.LittleEndian.Uint32(MovRegImm(5))
	want := uint32(0xD2800000 | 5<<5)
	if got != want {
		t.Errorf("got %#08x, want %#08x", got, want)
	}
}

func TestEncodeDispatchesByOpcode(t *testing.T) {
	tests := []struct {
		name string
		instr ir.Instruction
		want uint32
	}{
		{"ret", ir.Instruction{OpCode: ir.RET}, 0xD65F03C0},
		{"nop", ir.Instruction{OpCode: ir.NOP}, 0xD503201F},
		{"uncovered opcode falls back to nop", ir.Instruction{OpCode: ir.PUSH}, 0xD503201F},
	}
	for _, tt := range tests {
		got := binary.LittleEndian.Uint32(Encode(tt.instr))
		if got != tt.want {
			t.Errorf("%s: got %#08x, want %#08x", tt.name, got, tt.want)
		}
	}
}

func TestExitZeroIsThreeInstructions(t *testing.T) {
	got := ExitZero()
	if len(got) != 12 {
		t.Fatalf("expected 3 32-bit instructions (12 bytes), got %d bytes", len(got))
	}
}
