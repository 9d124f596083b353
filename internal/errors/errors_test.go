package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/diag"
	"github.com/cwbudde/gdscript-compiler/internal/token"
)

func TestFromDiagnosticCopiesFields(t *testing.T) {
	d := diag.Diagnostic{Severity: diag.Error, Message: "bad", Pos: token.Position{Line: 2, Column: 4}}
	e := FromDiagnostic(d, "source", "file.gd")

	if e.Message != "bad" || e.File != "file.gd" || e.Pos.Line != 2 {
		t.Errorf("got %#v", e)
	}
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	e := &CompilerError{
		Severity: diag.Error,
		Message:  "unexpected token",
		Source:   "var x\nx = 1 +\n",
		File:     "main.gd",
		Pos:      token.Position{Line: 2, Column: 8},
	}
	got := e.Format(false)

	if !strings.Contains(got, "Error in main.gd:2:8") {
		t.Errorf("missing header, got %q", got)
	}
	if !strings.Contains(got, "x = 1 +") {
		t.Errorf("missing source line excerpt, got %q", got)
	}
	if !strings.Contains(got, "^") {
		t.Errorf("missing caret, got %q", got)
	}
	if !strings.Contains(got, "unexpected token") {
		t.Errorf("missing message, got %q", got)
	}
}

func TestFormatWithoutFileUsesLineFallback(t *testing.T) {
	e := &CompilerError{Severity: diag.Error, Message: "oops", Pos: token.Position{Line: 1, Column: 1}}
	got := e.Format(false)
	if !strings.Contains(got, "Error at line 1:1") {
		t.Errorf("got %q", got)
	}
}

func TestFormatWarningUsesWarningLabel(t *testing.T) {
	e := &CompilerError{Severity: diag.Warning, Message: "unused", Pos: token.Position{Line: 1, Column: 1}}
	got := e.Format(false)
	if !strings.Contains(got, "Warning at line 1:1") {
		t.Errorf("got %q", got)
	}
}

func TestFormatColorAddsAnsiCodes(t *testing.T) {
	e := &CompilerError{Severity: diag.Error, Message: "oops", Source: "x\n", Pos: token.Position{Line: 1, Column: 1}}
	got := e.Format(true)
	if !strings.Contains(got, "\033[1;31m") || !strings.Contains(got, "\033[1m") {
		t.Errorf("expected ANSI codes in colored output, got %q", got)
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	e := &CompilerError{Severity: diag.Error, Message: "boom", Pos: token.Position{Line: 1, Column: 1}}
	var err error = e
	if err.Error() == "" {
		t.Error("expected non-empty Error() output")
	}
}

func TestFormatErrorsJoinsWithBlankLines(t *testing.T) {
	e1 := &CompilerError{Severity: diag.Error, Message: "first", Pos: token.Position{Line: 1, Column: 1}}
	e2 := &CompilerError{Severity: diag.Error, Message: "second", Pos: token.Position{Line: 2, Column: 1}}
	got := FormatErrors([]*CompilerError{e1, e2}, false)

	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("expected both messages present, got %q", got)
	}
	if !strings.Contains(got, "first\n\n") {
		t.Errorf("expected a blank line between the two errors, got %q", got)
	}
}

func TestFromSinkConvertsEveryDiagnostic(t *testing.T) {
	s := diag.NewSink()
	s.Error(token.Position{Line: 1}, "err one")
	s.Warn(token.Position{Line: 2}, "warn one")

	out := FromSink(s, "source", "f.gd")
	if len(out) != 2 {
		t.Fatalf("expected 2 converted errors, got %d", len(out))
	}
	if out[0].Message != "err one" || out[1].Message != "warn one" {
		t.Errorf("unexpected conversion: %#v", out)
	}
}
