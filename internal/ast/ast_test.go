package ast

import (
	"testing"

	"github.com/cwbudde/gdscript-compiler/internal/token"
)

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&VarDecl{
				Token:       token.Token{Type: token.VAR, Literal: "var"},
				Name:        "x",
				Initializer: &IntegerLiteral{Token: token.Token{Literal: "5"}, Value: 5},
			},
		},
	}
	want := "var x = 5\n"
	if got := prog.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestProgramTokenLiteralAndPosDelegateToFirstStatement(t *testing.T) {
	stmt := &VarDecl{
		Token: token.Token{Type: token.VAR, Literal: "var", Pos: token.Position{Line: 3, Column: 1}},
		Name:  "x",
	}
	prog := &Program{Statements: []Statement{stmt}}
	if got := prog.TokenLiteral(); got != "var" {
		t.Errorf("TokenLiteral() = %q, want %q", got, "var")
	}
	if got := prog.Pos(); got.Line != 3 {
		t.Errorf("Pos() = %v, want line 3", got)
	}
}

func TestEmptyProgramDefaults(t *testing.T) {
	prog := &Program{}
	if got := prog.TokenLiteral(); got != "" {
		t.Errorf("empty program TokenLiteral() = %q, want empty", got)
	}
	if got := prog.Pos(); got.Line != 1 || got.Column != 1 {
		t.Errorf("empty program Pos() = %v, want {1 1}", got)
	}
}

func TestIdentifierString(t *testing.T) {
	id := &Identifier{Token: token.Token{Literal: "foo"}, Value: "foo"}
	if id.String() != "foo" {
		t.Errorf("got %q, want %q", id.String(), "foo")
	}
	if id.TokenLiteral() != "foo" {
		t.Errorf("TokenLiteral() = %q, want %q", id.TokenLiteral(), "foo")
	}
}

func TestIntegerLiteralString(t *testing.T) {
	lit := &IntegerLiteral{Token: token.Token{Literal: "42"}, Value: 42}
	if lit.String() != "42" {
		t.Errorf("got %q, want %q", lit.String(), "42")
	}
}

func TestStringLiteralStringAddsQuotes(t *testing.T) {
	lit := &StringLiteral{Value: "hello"}
	if got := lit.String(); got != `"hello"` {
		t.Errorf("got %q, want %q", got, `"hello"`)
	}
}

func TestNullLiteralString(t *testing.T) {
	lit := &NullLiteral{}
	if lit.String() != "null" {
		t.Errorf("got %q, want %q", lit.String(), "null")
	}
}

func TestBinaryExprStringParenthesizes(t *testing.T) {
	expr := &BinaryExpr{
		Left:     &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
		Operator: "+",
		Right:    &IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
	}
	want := "(1 + 2)"
	if got := expr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnaryExprString(t *testing.T) {
	expr := &UnaryExpr{Operator: "-", Operand: &IntegerLiteral{Token: token.Token{Literal: "5"}, Value: 5}}
	if got := expr.String(); got != "(-5)" {
		t.Errorf("got %q, want %q", got, "(-5)")
	}
}

func TestTernaryExprString(t *testing.T) {
	expr := &TernaryExpr{
		TrueExpr:  &Identifier{Value: "a"},
		Condition: &Identifier{Value: "cond"},
		FalseExpr: &Identifier{Value: "b"},
	}
	want := "(a if cond else b)"
	if got := expr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCallExprStringJoinsArgs(t *testing.T) {
	expr := &CallExpr{
		Callee: &Identifier{Value: "f"},
		Args: []Expression{
			&IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
			&IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
		},
	}
	want := "f(1, 2)"
	if got := expr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMemberExprString(t *testing.T) {
	expr := &MemberExpr{Object: &Identifier{Value: "obj"}, Name: "field"}
	if got := expr.String(); got != "obj.field" {
		t.Errorf("got %q, want %q", got, "obj.field")
	}
}

func TestIndexExprString(t *testing.T) {
	expr := &IndexExpr{Object: &Identifier{Value: "arr"}, Index: &IntegerLiteral{Token: token.Token{Literal: "0"}, Value: 0}}
	if got := expr.String(); got != "arr[0]" {
		t.Errorf("got %q, want %q", got, "arr[0]")
	}
}

func TestArrayLiteralString(t *testing.T) {
	lit := &ArrayLiteral{Elements: []Expression{
		&IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1},
		&IntegerLiteral{Token: token.Token{Literal: "2"}, Value: 2},
	}}
	want := "[1, 2]"
	if got := lit.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDictLiteralString(t *testing.T) {
	lit := &DictLiteral{Entries: []DictEntry{
		{Key: &StringLiteral{Value: "a"}, Value: &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1}},
	}}
	want := `{"a": 1}`
	if got := lit.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLambdaExprString(t *testing.T) {
	expr := &LambdaExpr{
		Params: []Param{{Name: "x"}},
		Body:   &ExpressionStmt{Expr: &Identifier{Value: "x"}},
	}
	want := "func(x): x"
	if got := expr.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJoinParamsWithTypeAndDefault(t *testing.T) {
	params := []Param{
		{Name: "a"},
		{Name: "b", TypeName: "int"},
		{Name: "c", TypeName: "int", Default: &IntegerLiteral{Token: token.Token{Literal: "1"}, Value: 1}},
	}
	want := "a, b: int, c: int = 1"
	if got := joinParams(params); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
