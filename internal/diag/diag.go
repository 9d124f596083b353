// Package diag implements the diagnostics sink shared by every compiler
// pass (spec.md §2 "Diagnostics sink", ~2% of the core). It is
// deliberately tiny: an ordered, append-only collection of errors and
// warnings that a pass accumulates during its single traversal, and that
// the driver inspects afterward to decide whether to continue (spec.md
// §7 propagation policy).
package diag

import (
	"fmt"

	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// Severity distinguishes diagnostics that block the pipeline from ones
// that merely get reported.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single error or warning produced by a pass.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
}

// Sink collects diagnostics in discovery order. Diagnostics are never
// removed or reordered once added, matching spec.md §5's ordering
// guarantee ("diagnostics appear in the order their phase discovered
// them").
type Sink struct {
	items []Diagnostic
}

// NewSink returns an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error records an error-severity diagnostic.
func (s *Sink) Error(pos token.Position, message string) {
	s.items = append(s.items, Diagnostic{Severity: Error, Message: message, Pos: pos})
}

// Errorf records a formatted error-severity diagnostic.
func (s *Sink) Errorf(pos token.Position, format string, args ...any) {
	s.Error(pos, fmt.Sprintf(format, args...))
}

// Warn records a warning-severity diagnostic.
func (s *Sink) Warn(pos token.Position, message string) {
	s.items = append(s.items, Diagnostic{Severity: Warning, Message: message, Pos: pos})
}

// Warnf records a formatted warning-severity diagnostic.
func (s *Sink) Warnf(pos token.Position, format string, args ...any) {
	s.Warn(pos, fmt.Sprintf(format, args...))
}

// All returns every diagnostic recorded so far, in discovery order.
func (s *Sink) All() []Diagnostic {
	return s.items
}

// Errors returns only the error-severity diagnostics, in discovery order.
func (s *Sink) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.items {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics, in discovery
// order.
func (s *Sink) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range s.items {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any error-severity diagnostic was recorded.
// The driver gates progression to the next pass on this (spec.md §7).
func (s *Sink) HasErrors() bool {
	for _, d := range s.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Merge appends another sink's diagnostics onto this one, preserving
// relative order.
func (s *Sink) Merge(other *Sink) {
	if other == nil {
		return
	}
	s.items = append(s.items, other.items...)
}
