package semantic

import (
	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/types"
)

// analyzeStatement walks a statement, recording diagnostics and updating
// scopes as it recurses (spec.md §4.3).
func (a *Analyzer) analyzeStatement(ctx context, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		a.analyzeExpr(ctx, s.Expr)
	case *ast.BlockStmt:
		a.analyzeBlock(ctx, s)
	case *ast.IfStmt:
		a.analyzeIf(ctx, s)
	case *ast.WhileStmt:
		a.analyzeWhile(ctx, s)
	case *ast.ForInStmt:
		a.analyzeForIn(ctx, s)
	case *ast.MatchStmt:
		a.analyzeMatch(ctx, s)
	case *ast.ReturnStmt:
		a.analyzeReturn(ctx, s)
	case *ast.BreakStmt:
		if !ctx.inLoop {
			a.sink.Errorf(s.Pos(), "'break' outside of a loop")
		}
	case *ast.ContinueStmt:
		if !ctx.inLoop {
			a.sink.Errorf(s.Pos(), "'continue' outside of a loop")
		}
	case *ast.PassStmt:
		// no-op
	case *ast.VarDecl:
		a.analyzeVarDecl(ctx, s)
	case *ast.FuncDecl:
		a.analyzeFuncDecl(ctx, s, nil)
	case *ast.ClassDecl:
		a.analyzeClassDecl(ctx, s)
	case *ast.SignalDecl:
		a.analyzeSignalDecl(ctx, s)
	case *ast.EnumDecl:
		a.analyzeEnumDecl(ctx, s)
	}
}

func (a *Analyzer) analyzeBlock(ctx context, b *ast.BlockStmt) {
	blockScope := NewScope(ctx.scope)
	inner := ctx.withScope(blockScope)
	for _, stmt := range b.Statements {
		a.analyzeStatement(inner, stmt)
	}
}

func (a *Analyzer) analyzeIf(ctx context, s *ast.IfStmt) {
	condType := a.analyzeExpr(ctx, s.Condition)
	if !isBooleanish(condType) {
		a.sink.Warnf(s.Condition.Pos(), "Non-boolean condition in if statement")
	}
	a.analyzeStatement(ctx, s.Then)
	if s.Else != nil {
		a.analyzeStatement(ctx, s.Else)
	}
}

func (a *Analyzer) analyzeWhile(ctx context, s *ast.WhileStmt) {
	condType := a.analyzeExpr(ctx, s.Condition)
	if !isBooleanish(condType) {
		a.sink.Warnf(s.Condition.Pos(), "Non-boolean condition in while statement")
	}
	a.analyzeStatement(ctx.enterLoop(), s.Body)
}

// analyzeForIn introduces a loop-variable symbol whose type is string
// when iterating a string and variant otherwise (spec.md §4.3).
func (a *Analyzer) analyzeForIn(ctx context, s *ast.ForInStmt) {
	iterType := a.analyzeExpr(ctx, s.Iterable)
	switch {
	case iterType == nil:
	case iterType.BaseKind == types.Array, iterType.BaseKind == types.Dict,
		iterType.BaseKind == types.String, iterType.BaseKind == types.Variant:
		// iterable, fallthrough to binding below
	default:
		a.sink.Errorf(s.Iterable.Pos(), "Type %s is not iterable", iterType)
	}

	loopVarType := types.TVariant
	if iterType != nil && iterType.BaseKind == types.String {
		loopVarType = types.TString
	}

	loopScope := NewScope(ctx.scope)
	loopScope.Define(&Symbol{
		Name:            s.VarName,
		Type:            loopVarType,
		IsInitialized:   true,
		DeclarationLine: linePos(s.Pos()),
	})
	a.analyzeStatement(ctx.withScope(loopScope).enterLoop(), s.Body)
}

// analyzeMatch analyzes the scrutinee, then each case pattern (as an
// expression) and body, warning when a pattern's type cannot possibly
// match the scrutinee's (spec.md §4.3).
func (a *Analyzer) analyzeMatch(ctx context, s *ast.MatchStmt) {
	scrutType := a.analyzeExpr(ctx, s.Scrutinee)
	for _, c := range s.Cases {
		patType := a.analyzeExpr(ctx, c.Pattern)
		if !types.Compatible(patType, scrutType) {
			a.sink.Warnf(c.Pattern.Pos(), "Pattern type %s may not match expression type %s", patType, scrutType)
		}
		a.analyzeStatement(ctx, c.Body)
	}
}

func (a *Analyzer) analyzeReturn(ctx context, s *ast.ReturnStmt) {
	expected, ok := ctx.expectedReturn()
	if !ok {
		a.sink.Errorf(s.Pos(), "'return' outside of a function")
		if s.Value != nil {
			a.analyzeExpr(ctx, s.Value)
		}
		return
	}

	var actual *types.TypeInfo
	if s.Value != nil {
		actual = a.analyzeExpr(ctx, s.Value)
	} else {
		actual = types.TVoid
	}

	if !types.Compatible(actual, expected) {
		a.sink.Errorf(s.Pos(), "Return type %s does not match expected %s", actual, expected)
	}
}

func (a *Analyzer) analyzeVarDecl(ctx context, d *ast.VarDecl) {
	declaredType := a.resolveTypeNameChecked(d.TypeName, d.Pos())
	var initType *types.TypeInfo
	if d.Initializer != nil {
		initType = a.analyzeExpr(ctx, d.Initializer)
	}

	symType := declaredType
	if d.TypeName == "" {
		// Untyped declaration: infer from the initializer, defaulting to
		// variant when there is none (spec.md §8 scenario S2).
		if initType != nil {
			symType = initType
		} else {
			symType = types.TVariant
		}
	} else if initType != nil && !types.Compatible(initType, declaredType) {
		a.sink.Errorf(d.Initializer.Pos(), "Cannot assign %s to variable of type %s", initType, declaredType)
	}

	sym := &Symbol{
		Name:            d.Name,
		Type:            symType,
		IsConstant:      d.IsConst,
		IsStatic:        d.IsStatic,
		IsInitialized:   d.Initializer != nil,
		DeclarationLine: linePos(d.Pos()),
	}
	if !ctx.scope.Define(sym) {
		a.sink.Errorf(d.Pos(), "Duplicate definition of '%s'", d.Name)
	}
}

// analyzeFuncDecl registers the function's signature (in the innermost
// scope reachable before its body is walked, so recursive calls resolve)
// and then analyzes its body in a fresh child scope with parameters
// bound. If cls is non-nil the function is a method and an implicit
// `self` binding of the class's own type is added.
func (a *Analyzer) analyzeFuncDecl(ctx context, d *ast.FuncDecl, cls *ClassInfo) {
	sig := a.buildFunctionSignature(d)
	if !ctx.scope.DefineFunction(sig) {
		a.sink.Errorf(d.Pos(), "Duplicate definition of function '%s'", d.Name)
	}
	a.walkFunctionBody(ctx, d, sig, cls)
}

// walkFunctionBody binds parameters (and an implicit `self` for instance
// methods) in a fresh child scope and analyzes the body. Signature
// registration is the caller's responsibility, since class methods
// register into ClassInfo.Methods during pass 1 (see analyzeClassDecl)
// rather than into a Scope.
func (a *Analyzer) walkFunctionBody(ctx context, d *ast.FuncDecl, sig *FunctionSignature, cls *ClassInfo) {
	fnScope := NewScope(ctx.scope)
	if cls != nil && !d.IsStatic {
		fnScope.Define(&Symbol{Name: "self", Type: types.Custom_(cls.Name), IsInitialized: true, DeclarationLine: linePos(d.Pos())})
	}
	for i, param := range d.Params {
		fnScope.Define(&Symbol{
			Name:            param.Name,
			Type:            sig.ParameterTypes[i],
			IsInitialized:   true,
			DeclarationLine: linePos(param.NamePos),
		})
	}

	innerCtx := ctx.withScope(fnScope).enterFunction(sig.ReturnType)
	if cls != nil {
		innerCtx.currentClass = cls
	}
	a.analyzeStatement(innerCtx, d.Body)
}

func (a *Analyzer) buildFunctionSignature(d *ast.FuncDecl) *FunctionSignature {
	paramTypes := make([]*types.TypeInfo, len(d.Params))
	for i, param := range d.Params {
		paramTypes[i] = a.resolveTypeNameChecked(param.TypeName, param.NamePos)
	}
	return &FunctionSignature{
		Name:            d.Name,
		ParameterTypes:  paramTypes,
		ReturnType:      a.resolveTypeNameChecked(d.ReturnType, d.Pos()),
		IsStatic:        d.IsStatic,
		DeclarationLine: linePos(d.Pos()),
	}
}

func (a *Analyzer) analyzeSignalDecl(ctx context, d *ast.SignalDecl) {
	// Signals contribute to the enclosing class's signal list only;
	// at top level they are recorded as a no-arg-checked function
	// signature so `emit_signal`-style calls type-check leniently.
	sig := &FunctionSignature{Name: d.Name, ReturnType: types.TVoid, IsVariadic: true, DeclarationLine: linePos(d.Pos())}
	ctx.scope.DefineFunction(sig)
}

func (a *Analyzer) analyzeEnumDecl(ctx context, d *ast.EnumDecl) {
	for _, m := range d.Members {
		if m.Value != nil {
			a.analyzeExpr(ctx, m.Value)
		}
		ctx.scope.Define(&Symbol{Name: m.Name, Type: types.TInt, IsConstant: true, IsInitialized: true, DeclarationLine: linePos(d.Pos())})
	}
}
