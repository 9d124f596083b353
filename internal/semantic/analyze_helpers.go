package semantic

import (
	"strings"

	"github.com/cwbudde/gdscript-compiler/internal/token"
	"github.com/cwbudde/gdscript-compiler/internal/types"
)

var builtinTypeNames = map[string]*types.TypeInfo{
	"void":       types.TVoid,
	"int":        types.TInt,
	"float":      types.TFloat,
	"string":     types.TString,
	"bool":       types.TBool,
	"array":      types.TArray,
	"dictionary": types.TDict,
	"vector2":    types.TVector2,
	"vector3":    types.TVector3,
	"node":       types.TNode,
	"object":     types.TObject,
	"variant":    types.TVariant,
	// GDScript-style aliases accepted alongside the canonical names above.
	"Array":   types.TArray,
	"Dictionary": types.TDict,
	"String":  types.TString,
	"int_":    types.TInt,
}

// resolveTypeName turns the parser's textual type annotation (e.g.
// "Array[String]") into a TypeInfo, without reporting diagnostics — used
// where the absence of a type is itself meaningful (untyped var/param).
// Unknown-name diagnostics are raised by resolveTypeNameChecked instead.
func resolveTypeName(name string) *types.TypeInfo {
	if name == "" {
		return types.TVariant
	}
	base := name
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		base = name[:idx]
	}
	if t, ok := builtinTypeNames[base]; ok {
		return t
	}
	return types.Custom_(base)
}

// resolveTypeNameChecked behaves like resolveTypeName but additionally
// records an "unknown type" error when the base name is neither a
// built-in nor a registered class (spec.md §4.3, §7).
func (a *Analyzer) resolveTypeNameChecked(name string, pos token.Position) *types.TypeInfo {
	if name == "" {
		return types.TVariant
	}
	base := name
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		base = name[:idx]
	}
	if t, ok := builtinTypeNames[base]; ok {
		return t
	}
	if _, ok := a.classes[base]; ok {
		return types.Custom_(base)
	}
	a.sink.Errorf(pos, "Unknown type '%s'", base)
	return types.TUnknown
}
