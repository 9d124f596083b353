package macho

import (
	"encoding/binary"
	"testing"
)

func TestBuildHeaderFields(t *testing.T) {
	got := Build(CPUX86_64, []byte{0x90}, []byte{0x01})

	if magic := binary.LittleEndian.Uint32(got[0:]); magic != MagicLE {
		t.Errorf("magic = %#x, want %#x", magic, MagicLE)
	}
	if cpu := binary.LittleEndian.Uint32(got[4:]); cpu != CPUX86_64 {
		t.Errorf("cputype = %#x, want %#x", cpu, CPUX86_64)
	}
	if ft := binary.LittleEndian.Uint32(got[12:]); ft != FileTypeExec {
		t.Errorf("filetype = %d, want %d", ft, FileTypeExec)
	}
	if ncmds := binary.LittleEndian.Uint32(got[16:]); ncmds != 3 {
		t.Errorf("ncmds = %d, want 3", ncmds)
	}
}

func TestBuildARM64CPUType(t *testing.T) {
	got := Build(CPUARM64, nil, nil)
	if cpu := binary.LittleEndian.Uint32(got[4:]); cpu != CPUARM64 {
		t.Errorf("cputype = %#x, want %#x", cpu, CPUARM64)
	}
}

func TestBuildSegmentCommands(t *testing.T) {
	code := []byte{0x90, 0x90}
	data := []byte{0x01, 0x02, 0x03}
	got := Build(CPUX86_64, code, data)

	const headerSize = 32
	textCmd := got[headerSize:]
	if cmd := binary.LittleEndian.Uint32(textCmd[0:]); cmd != cmdSegment64 {
		t.Errorf("first load command = %#x, want LC_SEGMENT_64 %#x", cmd, cmdSegment64)
	}
	if name := string(textCmd[8:14]); name != "__TEXT" {
		t.Errorf("segname = %q, want __TEXT", name)
	}
	if fileOff := binary.LittleEndian.Uint64(textCmd[40:]); fileOff != CodeOffset {
		t.Errorf("__TEXT fileoff = %#x, want %#x", fileOff, CodeOffset)
	}
	if size := binary.LittleEndian.Uint64(textCmd[48:]); size != uint64(len(code)) {
		t.Errorf("__TEXT filesize = %d, want %d", size, len(code))
	}

	const segCmdSize = 72 + 80
	dataCmd := textCmd[segCmdSize:]
	if name := string(dataCmd[8:14]); name != "__DATA" {
		t.Errorf("segname = %q, want __DATA", name)
	}
	if fileOff := binary.LittleEndian.Uint64(dataCmd[40:]); fileOff != DataOffset {
		t.Errorf("__DATA fileoff = %#x, want %#x", fileOff, DataOffset)
	}

	mainCmd := dataCmd[segCmdSize:]
	if cmd := binary.LittleEndian.Uint32(mainCmd[0:]); cmd != cmdMain {
		t.Errorf("third load command = %#x, want LC_MAIN %#x", cmd, cmdMain)
	}
	if entry := binary.LittleEndian.Uint64(mainCmd[8:]); entry != CodeOffset {
		t.Errorf("entryoff = %#x, want %#x", entry, CodeOffset)
	}
}

func TestBuildEmbedsCodeAndDataAtFixedOffsets(t *testing.T) {
	code := []byte{0xAA, 0xBB}
	data := []byte{0xCC, 0xDD, 0xEE}
	got := Build(CPUX86_64, code, data)

	if string(got[CodeOffset:CodeOffset+len(code)]) != string(code) {
		t.Errorf("code not found at CodeOffset")
	}
	if string(got[DataOffset:DataOffset+len(data)]) != string(data) {
		t.Errorf("data not found at DataOffset")
	}
}
