// Package elf builds a minimal Linux ELF executable image per spec.md
// §4.4: a 64-byte ELF header (ET_EXEC), two program headers (loadable
// code RX at 0x400000, loadable data RW at 0x401000), code at file offset
// 0x1000, data at 0x1000 within the data segment, and four section
// headers (null, .text, .data, .shstrtab) starting at 0x2000.
package elf

import "encoding/binary"

const (
	EM_X86_64  = 62
	EM_AARCH64 = 183

	codeVaddr = 0x400000
	dataVaddr = 0x401000

	CodeOffset    = 0x1000
	DataOffset    = 0x1000 // within the data segment's own file region
	SectionHeaderOffset = 0x2000
)

// Build assembles an ET_EXEC ELF image for the given machine (EM_X86_64
// or EM_AARCH64). code is embedded at CodeOffset, data follows in the
// data segment at its own DataOffset.
func Build(machine uint16, code, data []byte) []byte {
	buf := make([]byte, SectionHeaderOffset)

	// e_ident
	buf[0] = 0x7f
	buf[1], buf[2], buf[3] = 'E', 'L', 'F'
	buf[4] = 2 // ELFCLASS64
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT

	binary.LittleEndian.PutUint16(buf[16:], 2)       // e_type: ET_EXEC
	binary.LittleEndian.PutUint16(buf[18:], machine) // e_machine
	binary.LittleEndian.PutUint32(buf[20:], 1)       // e_version
	binary.LittleEndian.PutUint64(buf[24:], codeVaddr+CodeOffset) // e_entry
	binary.LittleEndian.PutUint64(buf[32:], 64)      // e_phoff: right after the ELF header
	binary.LittleEndian.PutUint64(buf[40:], SectionHeaderOffset) // e_shoff
	binary.LittleEndian.PutUint16(buf[52:], 64)      // e_ehsize
	binary.LittleEndian.PutUint16(buf[54:], 56)      // e_phentsize
	binary.LittleEndian.PutUint16(buf[56:], 2)       // e_phnum
	binary.LittleEndian.PutUint16(buf[58:], 64)      // e_shentsize
	binary.LittleEndian.PutUint16(buf[60:], 4)       // e_shnum
	binary.LittleEndian.PutUint16(buf[62:], 3)       // e_shstrndx (.shstrtab)

	// The data segment's own file region begins right after the section
	// header table; DataOffset (0x1000) is its *relative* position within
	// that segment, per spec.md §4.4's "data at 0x1000 within the data
	// segment" (kept distinct from the code segment's identical-looking
	// file offset, which is absolute).
	dataFileOffset := uint64(SectionHeaderOffset) + 4*64 + DataOffset

	ph := buf[64:]
	writeProgramHeader(ph[0:56], 1 /* PT_LOAD */, 5 /* R+X */, CodeOffset, codeVaddr, uint64(len(code)))
	writeProgramHeader(ph[56:112], 1, 6 /* R+W */, dataFileOffset, dataVaddr, uint64(len(data)))

	copy(buf[CodeOffset:], code)

	shdrs := make([]byte, 64*4)
	writeSectionHeader(shdrs[0:64], 0, 0, 0, 0)                                    // null section
	writeSectionHeader(shdrs[64:128], 1, CodeOffset, codeVaddr, uint64(len(code))) // .text
	writeSectionHeader(shdrs[128:192], 6, dataFileOffset, dataVaddr, uint64(len(data))) // .data
	writeSectionHeader(shdrs[192:256], 11, 0, 0, 0)                                // .shstrtab
	buf = append(buf, shdrs...)

	buf = append(buf, make([]byte, DataOffset)...)
	buf = append(buf, data...)

	return buf
}

func writeProgramHeader(h []byte, ptype, flags uint32, fileOff, vaddr, size uint64) {
	binary.LittleEndian.PutUint32(h[0:], ptype)
	binary.LittleEndian.PutUint32(h[4:], flags)
	binary.LittleEndian.PutUint64(h[8:], fileOff)
	binary.LittleEndian.PutUint64(h[16:], vaddr)
	binary.LittleEndian.PutUint64(h[24:], vaddr) // paddr, identity with vaddr
	binary.LittleEndian.PutUint64(h[32:], size)
	binary.LittleEndian.PutUint64(h[40:], size)
	binary.LittleEndian.PutUint64(h[48:], 0x1000) // alignment
}

// writeSectionHeader writes a section header with sh_name left as a byte
// offset placeholder into a .shstrtab this minimum implementation never
// populates with real names.
func writeSectionHeader(h []byte, nameOffset uint32, fileOff, addr, size uint64) {
	binary.LittleEndian.PutUint32(h[0:], nameOffset)
	binary.LittleEndian.PutUint64(h[24:], fileOff)
	binary.LittleEndian.PutUint64(h[16:], addr)
	binary.LittleEndian.PutUint64(h[32:], size)
}
