// Package compiler is the public facade over the lex → parse → analyze →
// codegen → emit pipeline (spec.md §2). It is the one entry point the
// driver and embedders call; everything else in the module is an
// internal collaborator.
package compiler

import (
	"fmt"

	"github.com/cwbudde/gdscript-compiler/internal/codegen"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/asmtext"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/native/arm64"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/native/elf"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/native/macho"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/native/pe"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/native/x64"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/object"
	"github.com/cwbudde/gdscript-compiler/internal/errors"
	"github.com/cwbudde/gdscript-compiler/internal/ir"
	"github.com/cwbudde/gdscript-compiler/internal/lexer"
	"github.com/cwbudde/gdscript-compiler/internal/parser"
	"github.com/cwbudde/gdscript-compiler/internal/semantic"
)

// Platform selects the target triple for executable/object emission
// (spec.md §6).
type Platform string

const (
	PlatformWindows   Platform = "windows"
	PlatformMacOS     Platform = "macos"
	PlatformMacOSArm  Platform = "macos-arm"
	PlatformLinux     Platform = "linux"
	PlatformLinuxArm  Platform = "linux-arm"
)

var platformAliases = map[string]Platform{
	"windows": PlatformWindows, "win64": PlatformWindows,
	"macos": PlatformMacOS, "mac64": PlatformMacOS,
	"macos-arm": PlatformMacOSArm, "mac-arm": PlatformMacOSArm,
	"linux": PlatformLinux, "linux64": PlatformLinux,
	"linux-arm": PlatformLinuxArm, "linux-arm64": PlatformLinuxArm,
}

// ParsePlatform resolves a CLI --platform value to a Platform, per spec.md
// §6's accepted aliases.
func ParsePlatform(s string) (Platform, error) {
	if s == "" {
		return PlatformMacOS, nil
	}
	if p, ok := platformAliases[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unsupported target %q", s)
}

// Format selects which artifact(s) Compile produces (spec.md §6).
type Format string

const (
	FormatAssembly   Format = "assembly"
	FormatObject     Format = "object"
	FormatExecutable Format = "executable"
)

var formatAliases = map[string]Format{
	"assembly": FormatAssembly, "asm": FormatAssembly,
	"object": FormatObject, "obj": FormatObject,
	"executable": FormatExecutable, "exe": FormatExecutable,
}

// ParseFormat resolves a CLI --format value to a Format.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatObject, nil
	}
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Options configures a single Compile call.
type Options struct {
	Platform Platform
	Format   Format
}

// Result carries every artifact Compile produced for the requested
// Format. Only the field(s) implied by Options.Format are populated.
type Result struct {
	Assembly       string
	Object         []byte
	Executable     []byte
	ExecutableExt  string // ".exe", ".app", or "" (spec.md §6)
}

// Compile runs the full pipeline over source and stops at the first phase
// that reports an error, returning the accumulated diagnostics either way
// (spec.md §7's propagation policy: the driver queries hasErrors after
// each phase).
func Compile(source, filename string, opts Options) (*Result, []*errors.CompilerError, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if l.Diagnostics().HasErrors() {
		return nil, errors.FromSink(l.Diagnostics(), source, filename), fmt.Errorf("lexing failed")
	}
	if p.Diagnostics().HasErrors() {
		return nil, errors.FromSink(p.Diagnostics(), source, filename), fmt.Errorf("parsing failed")
	}

	analyzer := semantic.NewAnalyzer()
	semSink := analyzer.Analyze(program)
	if semSink.HasErrors() {
		return nil, errors.FromSink(semSink, source, filename), fmt.Errorf("semantic analysis failed")
	}

	builder := codegen.New()
	funcs := builder.Build(program)
	if builder.Diagnostics().HasErrors() {
		return nil, errors.FromSink(builder.Diagnostics(), source, filename), fmt.Errorf("codegen failed")
	}

	codegen.EliminateDeadCode(funcs)
	codegen.FoldConstants(funcs)

	result, err := emit(funcs, opts)
	if err != nil {
		return nil, nil, err
	}

	var warnings []*errors.CompilerError
	warnings = append(warnings, errors.FromSink(semSink, source, filename)...)
	warnings = append(warnings, errors.FromSink(builder.Diagnostics(), source, filename)...)
	return result, warnings, nil
}

func emit(funcs []*ir.Function, opts Options) (*Result, error) {
	res := &Result{}

	if opts.Format == FormatAssembly {
		res.Assembly = asmtext.Render(funcs)
		return res, nil
	}

	res.Object = object.Serialize(funcs)
	if opts.Format == FormatObject {
		return res, nil
	}

	code, data := placeholderProgram(opts.Platform)
	exe, ext, err := buildExecutable(opts.Platform, code, data)
	if err != nil {
		return nil, err
	}
	res.Executable = exe
	res.ExecutableExt = ext
	return res, nil
}

// placeholderProgram returns the fixed exit(0) routine embedded when IR
// lowering produces no native bytes, the common case in this minimum
// implementation (spec.md §4.4).
func placeholderProgram(p Platform) (code, data []byte) {
	if p == PlatformMacOSArm || p == PlatformLinuxArm {
		return arm64.ExitZero(), nil
	}
	return x64.ExitZero(), nil
}

func buildExecutable(p Platform, code, data []byte) ([]byte, string, error) {
	switch p {
	case PlatformWindows:
		return pe.Build(code, data), ".exe", nil
	case PlatformMacOS:
		return macho.Build(macho.CPUX86_64, code, data), ".app", nil
	case PlatformMacOSArm:
		return macho.Build(macho.CPUARM64, code, data), ".app", nil
	case PlatformLinux:
		return elf.Build(elf.EM_X86_64, code, data), "", nil
	case PlatformLinuxArm:
		return elf.Build(elf.EM_AARCH64, code, data), "", nil
	default:
		return nil, "", fmt.Errorf("unsupported target %q", p)
	}
}
