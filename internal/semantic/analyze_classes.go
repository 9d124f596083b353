package semantic

import (
	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/types"
)

// analyzeClassDecl performs the two-pass class analysis of spec.md §4.3:
// pass 1 registers every method signature and member-variable symbol;
// pass 2 analyzes each method body with its signature and parameters
// bound in a fresh child scope. This allows forward references between
// methods (spec.md §8 scenario S4).
func (a *Analyzer) analyzeClassDecl(ctx context, d *ast.ClassDecl) {
	if d.IsTopLevel {
		// A bare `class_name Name` or top-level `extends Base` carries
		// only metadata and has no members to analyze (spec.md §4.2).
		return
	}

	cls := newClassInfo(d.Name, d.BaseName, linePos(d.Pos()))
	if _, exists := a.classes[d.Name]; exists {
		a.sink.Errorf(d.Pos(), "Duplicate definition of class '%s'", d.Name)
	}
	a.classes[d.Name] = cls

	if d.BaseName != "" {
		if _, ok := a.classes[d.BaseName]; !ok {
			a.sink.Errorf(d.Pos(), "Unknown base class '%s'", d.BaseName)
		}
	}

	// Pass 1: register member variables and method signatures.
	var methods []*ast.FuncDecl
	for _, member := range d.Members {
		switch m := member.(type) {
		case *ast.VarDecl:
			memberType := a.resolveTypeNameChecked(m.TypeName, m.Pos())
			if m.TypeName == "" {
				memberType = a.inferredMemberType(ctx, m)
			}
			sym := &Symbol{
				Name:            m.Name,
				Type:            memberType,
				IsConstant:      m.IsConst,
				IsStatic:        m.IsStatic,
				IsInitialized:   m.Initializer != nil,
				DeclarationLine: linePos(m.Pos()),
			}
			if _, exists := cls.Members[m.Name]; exists {
				a.sink.Errorf(m.Pos(), "Duplicate member '%s' in class '%s'", m.Name, d.Name)
			}
			cls.Members[m.Name] = sym
		case *ast.FuncDecl:
			sig := a.buildFunctionSignature(m)
			if _, exists := cls.Methods[m.Name]; exists {
				a.sink.Errorf(m.Pos(), "Duplicate method '%s' in class '%s'", m.Name, d.Name)
			}
			cls.Methods[m.Name] = sig
			methods = append(methods, m)
		case *ast.SignalDecl:
			cls.Signals = append(cls.Signals, m.Name)
		case *ast.EnumDecl:
			a.analyzeEnumDecl(ctx, m)
		case *ast.ClassDecl:
			a.analyzeClassDecl(ctx, m)
		}
	}

	// Pass 2: analyze each method body with its own signature bound.
	classScope := NewScope(ctx.scope)
	for name, member := range cls.Members {
		classScope.Define(&Symbol{
			Name:            name,
			Type:            member.Type,
			IsConstant:      member.IsConstant,
			IsStatic:        member.IsStatic,
			IsInitialized:   member.IsInitialized,
			DeclarationLine: member.DeclarationLine,
		})
	}
	for _, m := range methods {
		classScope.DefineFunction(cls.Methods[m.Name])
	}
	classCtx := ctx.withScope(classScope)
	classCtx.currentClass = cls

	for _, m := range methods {
		sig := cls.Methods[m.Name]
		a.walkFunctionBody(classCtx, m, sig, cls)
	}
}

// inferredMemberType analyzes an untyped member's initializer to infer
// its type, same rule as a top-level untyped var (spec.md §4.3).
func (a *Analyzer) inferredMemberType(ctx context, m *ast.VarDecl) *types.TypeInfo {
	if m.Initializer == nil {
		return types.TVariant
	}
	return a.analyzeExpr(ctx, m.Initializer)
}
