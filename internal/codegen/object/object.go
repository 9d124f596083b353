// Package object serializes lowered IR functions into the proprietary
// GDOBJ object blob format of spec.md §4.4.
package object

import (
	"bytes"
	"encoding/binary"

	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

// Magic is the GDOBJ format's leading identifier.
const Magic = "GDOBJ"

// Serialize encodes funcs as:
//
//	magic "GDOBJ"
//	function_count:u32
//	per function: name_length:u32, name, instruction_count:u32, opcode_id:u32 × N
func Serialize(funcs []*ir.Function) []byte {
	var buf bytes.Buffer
	buf.WriteString(Magic)

	writeU32(&buf, uint32(len(funcs)))
	for _, fn := range funcs {
		writeU32(&buf, uint32(len(fn.Name)))
		buf.WriteString(fn.Name)

		opcodes := make([]uint32, 0)
		for _, block := range fn.Blocks {
			for _, instr := range block.Instructions {
				opcodes = append(opcodes, uint32(instr.OpCode))
			}
		}
		writeU32(&buf, uint32(len(opcodes)))
		for _, op := range opcodes {
			writeU32(&buf, op)
		}
	}
	return buf.Bytes()
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}
