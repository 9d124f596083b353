// Package errors formats compiler diagnostics with source context for
// terminal output: a file:line:column header, the offending source line,
// and a caret pointing at the column. Grounded on the teacher's
// internal/errors package, which performs exactly this formatting for
// DWScript compiler errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/gdscript-compiler/internal/diag"
	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// CompilerError is a single diagnostic with enough context to render a
// caret-annotated message.
type CompilerError struct {
	Severity diag.Severity
	Message  string
	Source   string
	File     string
	Pos      token.Position
}

// FromDiagnostic adapts a diag.Diagnostic into a displayable CompilerError.
func FromDiagnostic(d diag.Diagnostic, source, file string) *CompilerError {
	return &CompilerError{
		Severity: d.Severity,
		Message:  d.Message,
		Source:   source,
		File:     file,
		Pos:      d.Pos,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line excerpt and caret. If color
// is true, ANSI codes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	label := "Error"
	if e.Severity == diag.Warning {
		label = "Warning"
	}

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", label, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", label, e.Pos.Line, e.Pos.Column))
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatErrors renders a batch of errors separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Format(color))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FromSink converts every diagnostic in a sink into CompilerErrors.
func FromSink(s *diag.Sink, source, file string) []*CompilerError {
	all := s.All()
	out := make([]*CompilerError, 0, len(all))
	for _, d := range all {
		out = append(out, FromDiagnostic(d, source, file))
	}
	return out
}
