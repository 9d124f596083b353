package semantic

import (
	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/types"
)

// analyzeExpr infers (and checks) the type of an expression, recording
// diagnostics for undefined identifiers, argument-count/type mismatches,
// non-iterable/non-indexable operands, etc. (spec.md §4.3, §7).
func (a *Analyzer) analyzeExpr(ctx context, expr ast.Expression) *types.TypeInfo {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.TInt
	case *ast.FloatLiteral:
		return types.TFloat
	case *ast.StringLiteral:
		return types.TString
	case *ast.BoolLiteral:
		return types.TBool
	case *ast.NullLiteral:
		return types.TVariant
	case *ast.Identifier:
		return a.analyzeIdentifier(ctx, e)
	case *ast.BinaryExpr:
		return a.analyzeBinary(ctx, e)
	case *ast.UnaryExpr:
		operand := a.analyzeExpr(ctx, e.Operand)
		return types.UnaryResult(e.Operator, operand)
	case *ast.TernaryExpr:
		return a.analyzeTernary(ctx, e)
	case *ast.CallExpr:
		return a.analyzeCall(ctx, e)
	case *ast.MemberExpr:
		return a.analyzeMember(ctx, e)
	case *ast.IndexExpr:
		return a.analyzeIndex(ctx, e)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			a.analyzeExpr(ctx, el)
		}
		return types.TArray
	case *ast.DictLiteral:
		for _, ent := range e.Entries {
			a.analyzeExpr(ctx, ent.Key)
			a.analyzeExpr(ctx, ent.Value)
		}
		return types.TDict
	case *ast.LambdaExpr:
		return a.analyzeLambda(ctx, e)
	default:
		return types.TUnknown
	}
}

func (a *Analyzer) analyzeIdentifier(ctx context, id *ast.Identifier) *types.TypeInfo {
	if id.Value == "self" {
		if ctx.currentClass != nil {
			return types.Custom_(ctx.currentClass.Name)
		}
		return types.TVariant
	}
	sym, ok := ctx.scope.Lookup(id.Value)
	if !ok {
		a.sink.Errorf(id.Pos(), "Undefined variable '%s'", id.Value)
		return types.TUnknown
	}
	if !sym.IsInitialized {
		a.sink.Warnf(id.Pos(), "Use of '%s' before initialization", id.Value)
	}
	return sym.Type
}

func (a *Analyzer) analyzeBinary(ctx context, e *ast.BinaryExpr) *types.TypeInfo {
	left := a.analyzeExpr(ctx, e.Left)
	right := a.analyzeExpr(ctx, e.Right)
	return types.BinaryResult(e.Operator, left, right)
}

func (a *Analyzer) analyzeTernary(ctx context, e *ast.TernaryExpr) *types.TypeInfo {
	cond := a.analyzeExpr(ctx, e.Condition)
	if !isBooleanish(cond) {
		a.sink.Warnf(e.Condition.Pos(), "Non-boolean condition in ternary expression")
	}
	trueType := a.analyzeExpr(ctx, e.TrueExpr)
	falseType := a.analyzeExpr(ctx, e.FalseExpr)
	if !types.Compatible(trueType, falseType) && !types.Compatible(falseType, trueType) {
		a.sink.Warnf(e.Pos(), "Heterogeneous ternary branches: %s vs %s", trueType, falseType)
	}
	if trueType.BaseKind == types.Variant || falseType.BaseKind == types.Variant {
		return types.TVariant
	}
	return trueType
}

func isBooleanish(t *types.TypeInfo) bool {
	return t != nil && (t.BaseKind == types.Bool || t.BaseKind == types.Variant)
}

func (a *Analyzer) analyzeCall(ctx context, e *ast.CallExpr) *types.TypeInfo {
	for _, arg := range e.Args {
		a.analyzeExpr(ctx, arg)
	}

	ident, isIdent := e.Callee.(*ast.Identifier)
	if !isIdent {
		a.analyzeExpr(ctx, e.Callee)
		return types.TVariant
	}

	sig, ok := ctx.scope.LookupFunction(ident.Value)
	if !ok {
		a.sink.Errorf(e.Pos(), "Undefined function '%s'", ident.Value)
		return types.TUnknown
	}

	if !sig.IsVariadic && len(e.Args) != len(sig.ParameterTypes) {
		a.sink.Errorf(e.Pos(), "Function '%s' expects %d argument(s), got %d", ident.Value, len(sig.ParameterTypes), len(e.Args))
	} else if !sig.IsVariadic {
		for i, arg := range e.Args {
			argType := a.analyzeExpr(ctx, arg)
			if !types.Compatible(argType, sig.ParameterTypes[i]) {
				a.sink.Errorf(arg.Pos(), "Argument %d to '%s' has type %s, expected %s", i+1, ident.Value, argType, sig.ParameterTypes[i])
			}
		}
	}
	return sig.ReturnType
}

func (a *Analyzer) analyzeMember(ctx context, e *ast.MemberExpr) *types.TypeInfo {
	objType := a.analyzeExpr(ctx, e.Object)
	if objType != nil && objType.BaseKind == types.Custom {
		if cls, ok := a.classes[objType.CustomName]; ok {
			if member, ok := a.lookupClassMember(cls, e.Name); ok {
				return member.Type
			}
		}
	}
	return types.TVariant
}

func (a *Analyzer) lookupClassMember(cls *ClassInfo, name string) (*Symbol, bool) {
	for c := cls; c != nil; {
		if m, ok := c.Members[name]; ok {
			return m, true
		}
		if c.BaseClassName == "" {
			break
		}
		c = a.classes[c.BaseClassName]
	}
	return nil, false
}

func (a *Analyzer) analyzeIndex(ctx context, e *ast.IndexExpr) *types.TypeInfo {
	objType := a.analyzeExpr(ctx, e.Object)
	a.analyzeExpr(ctx, e.Index)
	if objType == nil {
		return types.TVariant
	}
	switch objType.BaseKind {
	case types.Array, types.Dict, types.String, types.Variant:
		return types.TVariant
	default:
		a.sink.Errorf(e.Pos(), "Type %s is not indexable", objType)
		return types.TVariant
	}
}

func (a *Analyzer) analyzeLambda(ctx context, e *ast.LambdaExpr) *types.TypeInfo {
	lambdaScope := NewScope(ctx.scope)
	for _, param := range e.Params {
		lambdaScope.Define(&Symbol{
			Name:            param.Name,
			Type:            resolveTypeName(param.TypeName),
			IsInitialized:   true,
			DeclarationLine: linePos(param.NamePos),
		})
	}
	retType := resolveTypeName(e.ReturnType)
	innerCtx := ctx.withScope(lambdaScope).enterFunction(retType)
	a.analyzeStatement(innerCtx, e.Body)
	return &types.TypeInfo{BaseKind: types.Lambda}
}
