package ast

import (
	"strings"

	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// Identifier references a name: a variable, function, class, or parameter.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()          {}
func (i *Identifier) TokenLiteral() string     { return i.Token.Literal }
func (i *Identifier) String() string           { return i.Value }
func (i *Identifier) Pos() token.Position      { return i.Token.Pos }

// IntegerLiteral is an integer literal value.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntegerLiteral) String() string       { return l.Token.Literal }
func (l *IntegerLiteral) Pos() token.Position  { return l.Token.Pos }

// FloatLiteral is a floating-point literal value.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) String() string       { return l.Token.Literal }
func (l *FloatLiteral) Pos() token.Position  { return l.Token.Pos }

// StringLiteral is a string literal value (escapes already resolved by
// the lexer).
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos }

// BoolLiteral is a boolean literal (true/false).
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BoolLiteral) String() string       { return l.Token.Literal }
func (l *BoolLiteral) Pos() token.Position  { return l.Token.Pos }

// NullLiteral is the null literal.
type NullLiteral struct {
	Token token.Token
}

func (l *NullLiteral) expressionNode()      {}
func (l *NullLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *NullLiteral) String() string       { return "null" }
func (l *NullLiteral) Pos() token.Position  { return l.Token.Pos }

// BinaryExpr is a binary operation such as `a + b` or `x < y`.
type BinaryExpr struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpr) expressionNode()      {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}
func (e *BinaryExpr) Pos() token.Position { return e.Token.Pos }

// UnaryExpr is a prefix unary operation such as `-x`, `not x`, `+x`.
type UnaryExpr struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (e *UnaryExpr) expressionNode()      {}
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) String() string       { return "(" + e.Operator + e.Operand.String() + ")" }
func (e *UnaryExpr) Pos() token.Position  { return e.Token.Pos }

// TernaryExpr is GDScript's postfix conditional: `true_expr if cond else
// false_expr`.
type TernaryExpr struct {
	Token     token.Token // the "if" token
	TrueExpr  Expression
	Condition Expression
	FalseExpr Expression
}

func (e *TernaryExpr) expressionNode()      {}
func (e *TernaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *TernaryExpr) String() string {
	return "(" + e.TrueExpr.String() + " if " + e.Condition.String() + " else " + e.FalseExpr.String() + ")"
}
func (e *TernaryExpr) Pos() token.Position { return e.Token.Pos }

// CallExpr is a function or method call: `callee(args...)`.
type CallExpr struct {
	Token    token.Token // the "(" token
	Callee   Expression
	Args     []Expression
}

func (e *CallExpr) expressionNode()      {}
func (e *CallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}
func (e *CallExpr) Pos() token.Position { return e.Token.Pos }

// MemberExpr is `object.name`.
type MemberExpr struct {
	Token  token.Token // the "." token
	Object Expression
	Name   string
}

func (e *MemberExpr) expressionNode()      {}
func (e *MemberExpr) TokenLiteral() string { return e.Token.Literal }
func (e *MemberExpr) String() string       { return e.Object.String() + "." + e.Name }
func (e *MemberExpr) Pos() token.Position  { return e.Token.Pos }

// IndexExpr is `object[index]`.
type IndexExpr struct {
	Token  token.Token // the "[" token
	Object Expression
	Index  Expression
}

func (e *IndexExpr) expressionNode()      {}
func (e *IndexExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IndexExpr) String() string       { return e.Object.String() + "[" + e.Index.String() + "]" }
func (e *IndexExpr) Pos() token.Position  { return e.Token.Pos }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    token.Token // the "[" token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (e *ArrayLiteral) Pos() token.Position { return e.Token.Pos }

// DictEntry is one key/value pair of a dict literal.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k1: v1, k2: v2, ...}`.
type DictLiteral struct {
	Token   token.Token // the "{" token
	Entries []DictEntry
}

func (e *DictLiteral) expressionNode()      {}
func (e *DictLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *DictLiteral) String() string {
	parts := make([]string, len(e.Entries))
	for i, ent := range e.Entries {
		parts[i] = ent.Key.String() + ": " + ent.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (e *DictLiteral) Pos() token.Position { return e.Token.Pos }

// LambdaExpr is an anonymous `func(params): body` expression.
type LambdaExpr struct {
	Token      token.Token // the "func" token
	Params     []Param
	ReturnType string
	Body       Statement
}

func (e *LambdaExpr) expressionNode()      {}
func (e *LambdaExpr) TokenLiteral() string { return e.Token.Literal }
func (e *LambdaExpr) String() string {
	return "func(" + joinParams(e.Params) + "): " + e.Body.String()
}
func (e *LambdaExpr) Pos() token.Position { return e.Token.Pos }
