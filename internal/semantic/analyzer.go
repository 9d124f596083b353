package semantic

import (
	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/diag"
	"github.com/cwbudde/gdscript-compiler/internal/types"
)

// Analyzer walks the AST, builds nested scopes, resolves symbols, infers
// and checks types, and records class/function signatures (spec.md
// §4.3).
type Analyzer struct {
	global  *Scope
	classes map[string]*ClassInfo
	sink    *diag.Sink
}

// context carries the per-walk analysis state explicitly (current scope,
// loop/return context, enclosing class) instead of mutating implicit
// fields on the Analyzer during recursion — the re-architecture spec.md
// §9 calls for.
type context struct {
	scope           *Scope
	inLoop          bool
	expectedReturns []*types.TypeInfo // stack; top is current function's return type
	currentClass    *ClassInfo
}

func (c context) withScope(s *Scope) context {
	c.scope = s
	return c
}

func (c context) enterLoop() context {
	c.inLoop = true
	return c
}

func (c context) enterFunction(ret *types.TypeInfo) context {
	stack := make([]*types.TypeInfo, len(c.expectedReturns)+1)
	copy(stack, c.expectedReturns)
	stack[len(stack)-1] = ret
	c.expectedReturns = stack
	c.inLoop = false
	return c
}

func (c context) expectedReturn() (*types.TypeInfo, bool) {
	if len(c.expectedReturns) == 0 {
		return nil, false
	}
	return c.expectedReturns[len(c.expectedReturns)-1], true
}

// NewAnalyzer creates an Analyzer with the built-in type and function
// table seeded (spec.md §4.3).
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		global:  NewScope(nil),
		classes: make(map[string]*ClassInfo),
		sink:    diag.NewSink(),
	}
	a.registerBuiltins()
	return a
}

// Diagnostics returns the semantic-phase diagnostics sink.
func (a *Analyzer) Diagnostics() *diag.Sink { return a.sink }

// Classes returns the global class table built during analysis. The code
// generator does not consult it.
func (a *Analyzer) Classes() map[string]*ClassInfo { return a.classes }

// GlobalScope exposes the top-level scope built during analysis. The code
// generator does not consult it; codegen reports an identifier missing
// from its own scopes as unresolved.
func (a *Analyzer) GlobalScope() *Scope { return a.global }

func (a *Analyzer) registerBuiltins() {
	builtinTypes := []string{"void", "int", "float", "string", "bool", "array", "dictionary", "vector2", "vector3", "node", "object", "variant"}
	_ = builtinTypes // documents the seeded type table named in spec.md §4.3

	a.global.DefineFunction(&FunctionSignature{
		Name:       "print",
		ReturnType: types.TVoid,
		IsVariadic: true,
	})
	a.global.DefineFunction(&FunctionSignature{
		Name:           "range",
		ParameterTypes: []*types.TypeInfo{types.TInt},
		ReturnType:     types.TArray,
	})
	a.global.DefineFunction(&FunctionSignature{
		Name:           "len",
		ParameterTypes: []*types.TypeInfo{types.TVariant},
		ReturnType:     types.TInt,
	})
	a.global.DefineFunction(&FunctionSignature{
		Name:           "str",
		ParameterTypes: []*types.TypeInfo{types.TVariant},
		ReturnType:     types.TString,
	})
}

// Analyze runs semantic analysis over a parsed program, returning the
// accumulated diagnostics sink. Errors block code generation; warnings do
// not (spec.md §4.3, §7).
func (a *Analyzer) Analyze(prog *ast.Program) *diag.Sink {
	ctx := context{scope: a.global}
	for _, stmt := range prog.Statements {
		a.analyzeStatement(ctx, stmt)
	}
	return a.sink
}
