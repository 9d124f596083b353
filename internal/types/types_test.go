package types

import "testing"

func TestTypeInfoString(t *testing.T) {
	tests := []struct {
		t    *TypeInfo
		want string
	}{
		{TInt, "int"},
		{TString, "string"},
		{Custom_("Player"), "Player"},
		{nil, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !TInt.Equal(TInt) {
		t.Error("TInt should equal TInt")
	}
	if TInt.Equal(TFloat) {
		t.Error("TInt should not equal TFloat")
	}
	if !Custom_("Foo").Equal(Custom_("Foo")) {
		t.Error("same-named customs should be equal")
	}
	if Custom_("Foo").Equal(Custom_("Bar")) {
		t.Error("differently-named customs should not be equal")
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name          string
		source, target *TypeInfo
		want          bool
	}{
		{"identity", TInt, TInt, true},
		{"variant source", TVariant, TInt, true},
		{"variant target", TInt, TVariant, true},
		{"int to float", TInt, TFloat, true},
		{"float to int", TFloat, TInt, true},
		{"anything to string", TInt, TString, true},
		{"node to object", TNode, TObject, true},
		{"object to node", TObject, TNode, true},
		{"bool to int incompatible", TBool, TInt, false},
		{"nil source", nil, TInt, false},
	}
	for _, tt := range tests {
		if got := Compatible(tt.source, tt.target); got != tt.want {
			t.Errorf("%s: Compatible() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBinaryResultArithmetic(t *testing.T) {
	if got := BinaryResult("+", TInt, TInt); got.BaseKind != Int {
		t.Errorf("int+int = %s, want int", got)
	}
	if got := BinaryResult("+", TInt, TFloat); got.BaseKind != Float {
		t.Errorf("int+float = %s, want float", got)
	}
	if got := BinaryResult("+", TString, TInt); got.BaseKind != String {
		t.Errorf("string+int = %s, want string", got)
	}
}

func TestBinaryResultComparison(t *testing.T) {
	if got := BinaryResult("==", TInt, TInt); got.BaseKind != Bool {
		t.Errorf("int==int = %s, want bool", got)
	}
}

func TestBinaryResultVariantPropagates(t *testing.T) {
	if got := BinaryResult("+", TVariant, TInt); got.BaseKind != Variant {
		t.Errorf("variant+int = %s, want variant", got)
	}
}

func TestUnaryResult(t *testing.T) {
	if got := UnaryResult("not", TBool); got.BaseKind != Bool {
		t.Errorf("not bool = %s, want bool", got)
	}
	if got := UnaryResult("-", TInt); got.BaseKind != Int {
		t.Errorf("-int = %s, want int", got)
	}
}
