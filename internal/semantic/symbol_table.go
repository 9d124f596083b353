// Package semantic implements name resolution, type inference/checking,
// and diagnostics over the parsed AST (spec.md §4.3).
package semantic

import (
	"github.com/cwbudde/gdscript-compiler/internal/token"
	"github.com/cwbudde/gdscript-compiler/internal/types"
)

// Symbol is a named binding in a scope.
type Symbol struct {
	Name            string
	Type            *types.TypeInfo
	IsConstant      bool
	IsStatic        bool
	IsInitialized   bool
	DeclarationLine int
}

// FunctionSignature records a function or method's call shape.
type FunctionSignature struct {
	Name            string
	ParameterTypes  []*types.TypeInfo
	ReturnType      *types.TypeInfo
	IsStatic        bool
	IsVariadic      bool
	DeclarationLine int
}

// ClassInfo is the global record of a class declaration, stored by name
// in the analyzer's class table (spec.md §3).
type ClassInfo struct {
	Name            string
	BaseClassName   string
	Members         map[string]*Symbol
	Methods         map[string]*FunctionSignature
	Signals         []string
	DeclarationLine int
}

func newClassInfo(name, base string, line int) *ClassInfo {
	return &ClassInfo{
		Name:          name,
		BaseClassName: base,
		Members:       make(map[string]*Symbol),
		Methods:       make(map[string]*FunctionSignature),
		DeclarationLine: line,
	}
}

// Scope is a naming environment with a single parent link, forming a
// tree rooted at the analyzer's global scope (spec.md §3). Child scopes
// are created on entry to a block/function/class/lambda/for-loop and
// dropped on exit; dropping a child never affects its parent.
type Scope struct {
	symbols   map[string]*Symbol
	functions map[string]*FunctionSignature
	parent    *Scope
}

// NewScope creates a scope with the given parent (nil for the global
// scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		symbols:   make(map[string]*Symbol),
		functions: make(map[string]*FunctionSignature),
		parent:    parent,
	}
}

// Define adds a symbol to this scope. It reports false if a symbol with
// the same name already exists in this exact scope (shadowing within a
// scope is rejected, per spec.md §3 — shadowing a parent's symbol in a
// child scope is allowed).
func (s *Scope) Define(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	return true
}

// DefineFunction adds a function signature to this scope, subject to the
// same same-scope shadowing rule as Define.
func (s *Scope) DefineFunction(sig *FunctionSignature) bool {
	if _, exists := s.functions[sig.Name]; exists {
		return false
	}
	s.functions[sig.Name] = sig
	return true
}

// Lookup walks the parent chain to resolve a symbol by name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupFunction walks the parent chain to resolve a function signature
// by name.
func (s *Scope) LookupFunction(name string) (*FunctionSignature, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sig, ok := scope.functions[name]; ok {
			return sig, true
		}
	}
	return nil, false
}

// LookupLocal resolves a symbol only within this exact scope, ignoring
// ancestors.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// linePos is a small helper turning a token.Position into the line number
// stored on Symbol/FunctionSignature/ClassInfo records.
func linePos(pos token.Position) int {
	return pos.Line
}
