// Package ast defines the tagged-variant Abstract Syntax Tree node types
// produced by the parser and consumed by the semantic analyzer and code
// generator. Each node kind is its own Go struct (no shared base class,
// no downcasting) implementing the Node interface, following the
// teacher's internal/ast package layout.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// Node is the interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action. Declarations (var,
// const, func, class, signal, enum) are statements too, per spec.md §3.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// Param is an embedded record describing one function/lambda parameter.
type Param struct {
	Name       string
	TypeName   string // textual form, e.g. "Array[String]"; empty if untyped
	Default    Expression
	NamePos    token.Position
}

// MatchCase is an embedded record: one pattern/body pair of a match
// statement.
type MatchCase struct {
	Pattern Expression
	Body    Statement
}

func joinParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := p.Name
		if p.TypeName != "" {
			s += ": " + p.TypeName
		}
		if p.Default != nil {
			s += " = " + p.Default.String()
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}
