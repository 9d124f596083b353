// Package types defines the semantic analyzer's type representation and
// the compatibility/result-type rules of spec.md §4.3.
package types

// BaseKind enumerates the type universe spec.md §3 defines.
type BaseKind int

const (
	Void BaseKind = iota
	Int
	Float
	String
	Bool
	Array
	Dict
	Vector2
	Vector3
	Node
	Object
	Variant
	Custom
	Lambda
	Unknown
)

var baseKindNames = map[BaseKind]string{
	Void:    "void",
	Int:     "int",
	Float:   "float",
	String:  "string",
	Bool:    "bool",
	Array:   "array",
	Dict:    "dict",
	Vector2: "vector2",
	Vector3: "vector3",
	Node:    "node",
	Object:  "object",
	Variant: "variant",
	Custom:  "custom",
	Lambda:  "lambda",
	Unknown: "unknown",
}

func (k BaseKind) String() string {
	if n, ok := baseKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// TypeInfo is the analyzer's representation of a type. Equality ignores
// GenericParams (spec.md §3).
type TypeInfo struct {
	BaseKind     BaseKind
	CustomName   string
	GenericParams []*TypeInfo
}

// Built-in singletons, reused everywhere a plain built-in type is needed.
var (
	TVoid    = &TypeInfo{BaseKind: Void}
	TInt     = &TypeInfo{BaseKind: Int}
	TFloat   = &TypeInfo{BaseKind: Float}
	TString  = &TypeInfo{BaseKind: String}
	TBool    = &TypeInfo{BaseKind: Bool}
	TArray   = &TypeInfo{BaseKind: Array}
	TDict    = &TypeInfo{BaseKind: Dict}
	TVector2 = &TypeInfo{BaseKind: Vector2}
	TVector3 = &TypeInfo{BaseKind: Vector3}
	TNode    = &TypeInfo{BaseKind: Node}
	TObject  = &TypeInfo{BaseKind: Object}
	TVariant = &TypeInfo{BaseKind: Variant}
	TUnknown = &TypeInfo{BaseKind: Unknown}
)

// Custom_ builds a TypeInfo for a user-defined class/enum name.
func Custom_(name string) *TypeInfo {
	return &TypeInfo{BaseKind: Custom, CustomName: name}
}

// String renders a type for diagnostics, e.g. "int" or "MyClass".
func (t *TypeInfo) String() string {
	if t == nil {
		return "unknown"
	}
	if t.BaseKind == Custom {
		return t.CustomName
	}
	return t.BaseKind.String()
}

// Equal compares two types, ignoring GenericParams per spec.md §3.
func (t *TypeInfo) Equal(other *TypeInfo) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.BaseKind != other.BaseKind {
		return false
	}
	if t.BaseKind == Custom {
		return t.CustomName == other.CustomName
	}
	return true
}

func isNumeric(t *TypeInfo) bool {
	return t.BaseKind == Int || t.BaseKind == Float
}

// Compatible implements spec.md §4.3's assignment/parameter-passing
// compatibility rules:
//   - a type is compatible with itself
//   - variant is mutually compatible with every type
//   - int and float are mutually compatible
//   - any type is a compatible source for string (stringification)
//   - node and object are mutually compatible
func Compatible(source, target *TypeInfo) bool {
	if source == nil || target == nil {
		return false
	}
	if source.Equal(target) {
		return true
	}
	if source.BaseKind == Variant || target.BaseKind == Variant {
		return true
	}
	if isNumeric(source) && isNumeric(target) {
		return true
	}
	if target.BaseKind == String {
		return true
	}
	if (source.BaseKind == Node && target.BaseKind == Object) ||
		(source.BaseKind == Object && target.BaseKind == Node) {
		return true
	}
	return false
}

// BinaryResult computes the result type of a binary operator applied to
// two operand types, per spec.md §4.3.
func BinaryResult(op string, left, right *TypeInfo) *TypeInfo {
	if left == nil || right == nil {
		return TVariant
	}
	if left.BaseKind == Variant || right.BaseKind == Variant {
		return TVariant
	}

	switch op {
	case "+":
		if left.BaseKind == String || right.BaseKind == String {
			return TString
		}
		return arithmeticResult(left, right)
	case "-", "*", "/":
		return arithmeticResult(left, right)
	case "%":
		if left.BaseKind == String && right.BaseKind == Array {
			return TString
		}
		return arithmeticResult(left, right)
	case "==", "!=", "<", "<=", ">", ">=":
		if isNumeric(left) && isNumeric(right) {
			return TBool
		}
		if left.BaseKind == String && right.BaseKind == String {
			return TBool
		}
		return TBool
	case "and", "or":
		return TBool
	case "in":
		return TBool
	default:
		return TVariant
	}
}

func arithmeticResult(left, right *TypeInfo) *TypeInfo {
	if left.BaseKind == Float || right.BaseKind == Float {
		return TFloat
	}
	return TInt
}

// UnaryResult computes the result type of a unary operator (spec.md
// §4.3): -/+ preserve the numeric type, not/! yields bool.
func UnaryResult(op string, operand *TypeInfo) *TypeInfo {
	if operand == nil {
		return TVariant
	}
	switch op {
	case "not":
		return TBool
	case "-", "+":
		if isNumeric(operand) {
			return operand
		}
		return operand
	default:
		return TVariant
	}
}
