package object

import (
	"encoding/binary"
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

func TestSerializeMagicAndCount(t *testing.T) {
	fn := ir.NewFunction("main")
	fn.NewBlock("entry")
	got := Serialize([]*ir.Function{fn})

	if string(got[:len(Magic)]) != Magic {
		t.Fatalf("expected magic %q, got %q", Magic, got[:len(Magic)])
	}
	count := binary.LittleEndian.Uint32(got[len(Magic):])
	if count != 1 {
		t.Fatalf("expected function count 1, got %d", count)
	}
}

func TestSerializeFunctionNameAndOpcodes(t *testing.T) {
	fn := ir.NewFunction("add")
	b := fn.NewBlock("entry")
	b.Emit(ir.Instruction{OpCode: ir.ADD})
	b.Emit(ir.Instruction{OpCode: ir.RET})

	got := Serialize([]*ir.Function{fn})
	off := len(Magic) + 4 // magic + function count

	nameLen := binary.LittleEndian.Uint32(got[off:])
	off += 4
	name := string(got[off : off+int(nameLen)])
	off += int(nameLen)
	if name != "add" {
		t.Fatalf("expected name %q, got %q", "add", name)
	}

	instrCount := binary.LittleEndian.Uint32(got[off:])
	off += 4
	if instrCount != 2 {
		t.Fatalf("expected 2 instructions, got %d", instrCount)
	}

	op0 := binary.LittleEndian.Uint32(got[off:])
	if ir.OpCode(op0) != ir.ADD {
		t.Errorf("first opcode = %v, want ADD", ir.OpCode(op0))
	}
}

func TestSerializeEmptyProgram(t *testing.T) {
	got := Serialize(nil)
	if string(got[:len(Magic)]) != Magic {
		t.Fatalf("expected magic even for an empty program, got %q", got)
	}
	count := binary.LittleEndian.Uint32(got[len(Magic):])
	if count != 0 {
		t.Fatalf("expected function count 0, got %d", count)
	}
}
