// Package macho builds a minimal Mach-O executable image per spec.md
// §4.4: magic 0xfeedfacf, filetype MH_EXECUTE, three load commands
// (__TEXT/__text, __DATA/__data, LC_MAIN at entry offset 0xf50). Code
// sits at file offset 0xf50, data at 0x1000.
package macho

import "encoding/binary"

const (
	MagicLE      = 0xfeedfacf
	CPUX86_64    = 0x01000007
	CPUARM64     = 0x0100000c
	FileTypeExec = 2 // MH_EXECUTE

	CodeOffset = 0xf50
	DataOffset = 0x1000

	cmdSegment64 = 0x19
	cmdMain      = 0x80000028
)

// Build assembles a Mach-O executable for the given CPU type (CPUX86_64
// or CPUARM64). code is embedded at CodeOffset, data at DataOffset.
func Build(cpuType uint32, code, data []byte) []byte {
	buf := make([]byte, DataOffset)

	binary.LittleEndian.PutUint32(buf[0:], MagicLE)
	binary.LittleEndian.PutUint32(buf[4:], cpuType)
	binary.LittleEndian.PutUint32(buf[8:], 0) // CPU subtype: ALL
	binary.LittleEndian.PutUint32(buf[12:], FileTypeExec)
	binary.LittleEndian.PutUint32(buf[16:], 3) // ncmds: __TEXT, __DATA, LC_MAIN
	binary.LittleEndian.PutUint32(buf[24:], 0) // flags
	binary.LittleEndian.PutUint32(buf[28:], 0) // reserved

	const headerSize = 32
	off := headerSize

	off += writeSegment64(buf[off:], "__TEXT", CodeOffset, uint64(len(code)), "__text")
	off += writeSegment64(buf[off:], "__DATA", DataOffset, uint64(len(data)), "__data")
	writeMain(buf[off:], CodeOffset)

	copy(buf[CodeOffset:], code)
	buf = append(buf, data...)
	return buf
}

// writeSegment64 writes a minimal LC_SEGMENT_64 command carrying one
// section, and returns the command's total size.
func writeSegment64(h []byte, segName string, fileOff uint64, size uint64, sectName string) int {
	const segCmdSize = 72 + 80 // segment_command_64 + one section_64

	binary.LittleEndian.PutUint32(h[0:], cmdSegment64)
	binary.LittleEndian.PutUint32(h[4:], segCmdSize)
	copy(h[8:24], segName)
	binary.LittleEndian.PutUint64(h[24:], fileOff) // vmaddr (identity-mapped placeholder)
	binary.LittleEndian.PutUint64(h[32:], size)     // vmsize
	binary.LittleEndian.PutUint64(h[40:], fileOff)  // fileoff
	binary.LittleEndian.PutUint64(h[48:], size)      // filesize
	binary.LittleEndian.PutUint32(h[64:], 1)         // nsects

	sect := h[72:]
	copy(sect[0:16], sectName)
	copy(sect[16:32], segName)
	binary.LittleEndian.PutUint64(sect[32:], fileOff)
	binary.LittleEndian.PutUint64(sect[40:], size)
	binary.LittleEndian.PutUint32(sect[48:], uint32(fileOff))

	return segCmdSize
}

// writeMain writes LC_MAIN with the given entry file offset.
func writeMain(h []byte, entryOffset uint64) {
	const cmdSize = 24
	binary.LittleEndian.PutUint32(h[0:], cmdMain)
	binary.LittleEndian.PutUint32(h[4:], cmdSize)
	binary.LittleEndian.PutUint64(h[8:], entryOffset)
	binary.LittleEndian.PutUint64(h[16:], 0) // stacksize: use default
}
