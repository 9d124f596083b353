package compiler

import (
	"strings"
	"testing"
)

func TestParsePlatformAliases(t *testing.T) {
	tests := map[string]Platform{
		"":            PlatformMacOS,
		"windows":     PlatformWindows,
		"win64":       PlatformWindows,
		"macos":       PlatformMacOS,
		"mac64":       PlatformMacOS,
		"macos-arm":   PlatformMacOSArm,
		"mac-arm":     PlatformMacOSArm,
		"linux":       PlatformLinux,
		"linux64":     PlatformLinux,
		"linux-arm":   PlatformLinuxArm,
		"linux-arm64": PlatformLinuxArm,
	}
	for in, want := range tests {
		got, err := ParsePlatform(in)
		if err != nil {
			t.Errorf("ParsePlatform(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePlatform(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParsePlatformUnknownFails(t *testing.T) {
	if _, err := ParsePlatform("amiga"); err == nil {
		t.Error("expected an error for an unsupported platform")
	}
}

func TestParseFormatAliases(t *testing.T) {
	tests := map[string]Format{
		"":           FormatObject,
		"assembly":   FormatAssembly,
		"asm":        FormatAssembly,
		"object":     FormatObject,
		"obj":        FormatObject,
		"executable": FormatExecutable,
		"exe":        FormatExecutable,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormatUnknownFails(t *testing.T) {
	if _, err := ParseFormat("hex"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestCompileProducesAssembly(t *testing.T) {
	res, warnings, err := Compile("var x = 1\n", "main.gd", Options{Format: FormatAssembly})
	if err != nil {
		t.Fatalf("unexpected error: %v (warnings: %v)", err, warnings)
	}
	if res.Assembly == "" {
		t.Error("expected non-empty rendered assembly")
	}
}

func TestCompileProducesObject(t *testing.T) {
	res, _, err := Compile("var x = 1\n", "main.gd", Options{Format: FormatObject})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Object) == 0 {
		t.Error("expected non-empty serialized object")
	}
}

func TestCompileProducesExecutablePerPlatform(t *testing.T) {
	tests := []struct {
		platform Platform
		wantExt  string
	}{
		{PlatformWindows, ".exe"},
		{PlatformMacOS, ".app"},
		{PlatformMacOSArm, ".app"},
		{PlatformLinux, ""},
		{PlatformLinuxArm, ""},
	}
	for _, tt := range tests {
		res, _, err := Compile("var x = 1\n", "main.gd", Options{Format: FormatExecutable, Platform: tt.platform})
		if err != nil {
			t.Errorf("%v: unexpected error: %v", tt.platform, err)
			continue
		}
		if len(res.Executable) == 0 {
			t.Errorf("%v: expected non-empty executable bytes", tt.platform)
		}
		if res.ExecutableExt != tt.wantExt {
			t.Errorf("%v: ExecutableExt = %q, want %q", tt.platform, res.ExecutableExt, tt.wantExt)
		}
	}
}

func TestCompileStopsAtLexError(t *testing.T) {
	_, errs, err := Compile("var x = \"unterminated\n", "main.gd", Options{Format: FormatObject})
	if err == nil {
		t.Fatal("expected lexing to fail")
	}
	if !strings.Contains(err.Error(), "lexing") {
		t.Errorf("expected a lexing-phase error, got %v", err)
	}
	if len(errs) == 0 {
		t.Error("expected at least one diagnostic")
	}
}

func TestCompileStopsAtParseError(t *testing.T) {
	_, errs, err := Compile("func (\n", "main.gd", Options{Format: FormatObject})
	if err == nil {
		t.Fatal("expected parsing to fail")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("expected a parsing-phase error, got %v", err)
	}
	if len(errs) == 0 {
		t.Error("expected at least one diagnostic")
	}
}

func TestCompileStopsAtSemanticError(t *testing.T) {
	_, errs, err := Compile("print(undefined_variable)\n", "main.gd", Options{Format: FormatObject})
	if err == nil {
		t.Fatal("expected semantic analysis to fail")
	}
	if !strings.Contains(err.Error(), "semantic") {
		t.Errorf("expected a semantic-phase error, got %v", err)
	}
	if len(errs) == 0 {
		t.Error("expected at least one diagnostic")
	}
}

func TestCompileUnsupportedPlatformFails(t *testing.T) {
	_, _, err := Compile("var x = 1\n", "main.gd", Options{Format: FormatExecutable, Platform: Platform("atari")})
	if err == nil {
		t.Fatal("expected an error for an unsupported executable target")
	}
}
