package ast

import (
	"strings"

	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// Annotation is a `@name` marker collected by the parser and attached to
// the declaration that follows it (spec.md §4.2; has no effect on
// semantics or codegen per spec.md §9 Open Questions).
type Annotation struct {
	Token token.Token
	Name  string
}

// VarDecl is `var name[: type] [= initializer]` or the const-equivalent.
type VarDecl struct {
	Token       token.Token // "var" or "const"
	Name        string
	TypeName    string // empty when untyped ("a := 1" or "var a")
	Initializer Expression
	IsConst     bool
	IsStatic    bool
	Annotations []Annotation
}

func (d *VarDecl) statementNode()      {}
func (d *VarDecl) TokenLiteral() string { return d.Token.Literal }
func (d *VarDecl) String() string {
	kw := "var"
	if d.IsConst {
		kw = "const"
	}
	out := kw + " " + d.Name
	if d.TypeName != "" {
		out += ": " + d.TypeName
	}
	if d.Initializer != nil {
		out += " = " + d.Initializer.String()
	}
	return out
}
func (d *VarDecl) Pos() token.Position { return d.Token.Pos }

// FuncDecl is `func name(params) [-> returnType]: body`.
type FuncDecl struct {
	Token       token.Token // the "func" token
	Name        string
	Params      []Param
	ReturnType  string
	Body        Statement
	IsStatic    bool
	Annotations []Annotation
}

func (d *FuncDecl) statementNode()      {}
func (d *FuncDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FuncDecl) String() string {
	out := "func " + d.Name + "(" + joinParams(d.Params) + ")"
	if d.ReturnType != "" {
		out += " -> " + d.ReturnType
	}
	out += ":\n" + d.Body.String()
	return out
}
func (d *FuncDecl) Pos() token.Position { return d.Token.Pos }

// ClassDecl is `class Name [extends Base]: members...`. Top-level
// `class_name Name` and `extends Base` statements produce degenerate
// ClassDecls carrying only that metadata (spec.md §4.2), with Members
// left empty.
type ClassDecl struct {
	Token      token.Token
	Name       string
	BaseName   string
	Members    []Statement // exclusively declarations, per spec.md §3
	IsTopLevel bool        // true for a bare class_name/extends statement
}

func (d *ClassDecl) statementNode()      {}
func (d *ClassDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ClassDecl) String() string {
	out := "class " + d.Name
	if d.BaseName != "" {
		out += " extends " + d.BaseName
	}
	out += ":\n"
	for _, m := range d.Members {
		out += "    " + m.String() + "\n"
	}
	return out
}
func (d *ClassDecl) Pos() token.Position { return d.Token.Pos }

// SignalDecl is `signal name(params)`.
type SignalDecl struct {
	Token  token.Token
	Name   string
	Params []Param
}

func (d *SignalDecl) statementNode()      {}
func (d *SignalDecl) TokenLiteral() string { return d.Token.Literal }
func (d *SignalDecl) String() string {
	return "signal " + d.Name + "(" + joinParams(d.Params) + ")"
}
func (d *SignalDecl) Pos() token.Position { return d.Token.Pos }

// EnumMember is one `Name [= value]` entry of an enum declaration.
type EnumMember struct {
	Name  string
	Value Expression // nil when the value is implicit (previous + 1)
}

// EnumDecl is `enum [Name] { MemberA, MemberB = v, ... }`.
type EnumDecl struct {
	Token   token.Token
	Name    string // empty for an anonymous enum
	Members []EnumMember
}

func (d *EnumDecl) statementNode()      {}
func (d *EnumDecl) TokenLiteral() string { return d.Token.Literal }
func (d *EnumDecl) String() string {
	parts := make([]string, len(d.Members))
	for i, m := range d.Members {
		if m.Value != nil {
			parts[i] = m.Name + " = " + m.Value.String()
		} else {
			parts[i] = m.Name
		}
	}
	return "enum " + d.Name + " {" + strings.Join(parts, ", ") + "}"
}
func (d *EnumDecl) Pos() token.Position { return d.Token.Pos }
