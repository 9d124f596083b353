// Package codegen lowers the AST into the IR of spec.md §4.4: lowering is
// syntax-directed, each expression lowering returns a Register holding the
// value, and each statement lowering emits instructions into the current
// basic block. Grounded on the teacher's internal/bytecode compiler pass
// (ast.go's Compile* walk in CWBudde-go-dws), adapted from a stack-bytecode
// emitter to a three-address IR builder.
package codegen

import (
	"fmt"

	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/codegen/regalloc"
	"github.com/cwbudde/gdscript-compiler/internal/diag"
	"github.com/cwbudde/gdscript-compiler/internal/ir"
)

// builtinNames is the codegen's own table of runtime-backed built-ins
// (spec.md §4.4 Calls), distinct from the semantic analyzer's built-in
// symbol table.
var builtinNames = map[string]string{
	"print": "_builtin_print",
	"len":   "_builtin_len",
	"range": "_builtin_range",
	"str":   "_builtin_str",
	"int":   "_builtin_int",
	"float": "_builtin_float",
}

type varScope struct {
	vars   map[string]*ir.Register
	parent *varScope
}

func newVarScope(parent *varScope) *varScope {
	return &varScope{vars: make(map[string]*ir.Register), parent: parent}
}

func (s *varScope) define(name string, reg *ir.Register) {
	s.vars[name] = reg
}

func (s *varScope) lookup(name string) (*ir.Register, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if reg, ok := sc.vars[name]; ok {
			return reg, true
		}
	}
	return nil, false
}

// Builder lowers a parsed, analyzed program into a flat list of IR
// functions. One Builder lowers exactly one program.
type Builder struct {
	alloc     *regalloc.Allocator
	sink      *diag.Sink
	functions []*ir.Function

	fn    *ir.Function
	block *ir.BasicBlock
	scope *varScope

	labelCounter  int
	lambdaCounter int

	breakLabels    []string
	continueLabels []string
}

// New creates a Builder with its own codegen-phase diagnostics sink
// (spec.md §5: each pass owns its diagnostics sink).
func New() *Builder {
	return &Builder{alloc: regalloc.New(), sink: diag.NewSink()}
}

// Diagnostics returns the codegen-phase diagnostics sink.
func (b *Builder) Diagnostics() *diag.Sink { return b.sink }

// Build lowers the program's top-level statements into a synthetic "main"
// function alongside any functions and methods declared within it, then
// runs the register allocator's finalization pass (spec.md §4.4).
func (b *Builder) Build(prog *ast.Program) []*ir.Function {
	mainFn := ir.NewFunction("main")
	b.functions = append(b.functions, mainFn)
	b.enterFunction(mainFn)

	for _, stmt := range prog.Statements {
		b.lowerStatement(stmt)
	}
	b.ensureReturn()
	b.exitFunction()

	b.alloc.Finalize(b.functions)
	return b.functions
}

// enterFunction points the builder at fn, ready to receive its entry
// block and a fresh top-level scope. Used both for Build's synthetic main
// and for nested func/method/lambda lowering.
func (b *Builder) enterFunction(fn *ir.Function) {
	b.fn = fn
	b.labelCounter = 0
	b.block = fn.NewBlock(b.newLabel("entry"))
	b.scope = newVarScope(nil)
}

func (b *Builder) exitFunction() {}

// newLabel mints a unique label of the form "prefix_N" within the current
// function (spec.md §4.4).
func (b *Builder) newLabel(prefix string) string {
	n := b.labelCounter
	b.labelCounter++
	return fmt.Sprintf("%s_%d", prefix, n)
}

func (b *Builder) emit(instr ir.Instruction) {
	b.block.Emit(instr)
}

func (b *Builder) emitLabel(name string) {
	b.emit(ir.Instruction{OpCode: ir.LABEL, Label: name})
}

func (b *Builder) emitJump(op ir.OpCode, target string) {
	b.emit(ir.Instruction{OpCode: op, Label: target})
}

// pushScope/popScope bracket a lexical block (spec.md §5: child scopes are
// dropped on exit and never referenced again).
func (b *Builder) pushScope() { b.scope = newVarScope(b.scope) }
func (b *Builder) popScope()  { b.scope = b.scope.parent }

// ensureReturn appends a RET to the current function if its last
// instruction is not already one, preceded by a MOV of 0 into the return
// register. The MOV is emitted for every function; the declared return
// type is not consulted, so void functions get it too.
func (b *Builder) ensureReturn() {
	last := b.fn.LastInstruction()
	if last != nil && last.OpCode == ir.RET {
		return
	}
	if b.fn.ReturnRegister == nil {
		b.fn.ReturnRegister = b.alloc.Allocate(ir.General)
	}
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{b.fn.ReturnRegister}, Immediate: 0, HasImmediate: true})
	b.emit(ir.Instruction{OpCode: ir.RET})
}

// ---- statements ----

func (b *Builder) lowerStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		reg := b.lowerExpr(s.Expr)
		b.alloc.Free(reg)
	case *ast.BlockStmt:
		b.pushScope()
		for _, child := range s.Statements {
			b.lowerStatement(child)
		}
		b.popScope()
	case *ast.IfStmt:
		b.lowerIf(s)
	case *ast.WhileStmt:
		b.lowerWhile(s)
	case *ast.ForInStmt:
		b.lowerForIn(s)
	case *ast.MatchStmt:
		b.lowerMatch(s)
	case *ast.ReturnStmt:
		b.lowerReturn(s)
	case *ast.BreakStmt:
		if len(b.breakLabels) == 0 {
			b.sink.Errorf(s.Pos(), "'break' outside of a loop")
			return
		}
		b.emitJump(ir.JMP, b.breakLabels[len(b.breakLabels)-1])
	case *ast.ContinueStmt:
		if len(b.continueLabels) == 0 {
			b.sink.Errorf(s.Pos(), "'continue' outside of a loop")
			return
		}
		b.emitJump(ir.JMP, b.continueLabels[len(b.continueLabels)-1])
	case *ast.PassStmt:
		b.emit(ir.Instruction{OpCode: ir.NOP})
	case *ast.VarDecl:
		b.lowerVarDecl(s)
	case *ast.FuncDecl:
		b.lowerFuncDecl(s, "", false, nil)
	case *ast.ClassDecl:
		b.lowerClassDecl(s)
	case *ast.SignalDecl:
		// Signal registration happens at runtime via _register_signal
		// (spec.md §6); there is no per-declaration IR to emit here.
	case *ast.EnumDecl:
		// Each member is bound to a register holding its integer value:
		// an integer-literal value is used as written, any other member
		// takes the previous value plus one (starting at 0).
		next := int64(0)
		for _, m := range s.Members {
			if lit, ok := m.Value.(*ast.IntegerLiteral); ok {
				next = lit.Value
			}
			reg := b.alloc.Allocate(ir.General)
			b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: next, HasImmediate: true})
			b.scope.define(m.Name, reg)
			next++
		}
	default:
		b.sink.Errorf(stmt.Pos(), "codegen: unknown statement kind %T", s)
	}
}

func (b *Builder) lowerIf(s *ast.IfStmt) {
	cond := b.lowerExpr(s.Condition)
	elseLbl := b.newLabel("else")
	endLbl := b.newLabel("endif")

	b.emit(ir.Instruction{OpCode: ir.CMP, Operands: []*ir.Register{cond}, Immediate: 0, HasImmediate: true})
	b.emitJump(ir.JE, elseLbl)
	b.alloc.Free(cond)

	b.lowerStatement(s.Then)
	b.emitJump(ir.JMP, endLbl)
	b.emitLabel(elseLbl)
	if s.Else != nil {
		b.lowerStatement(s.Else)
	}
	b.emitLabel(endLbl)
}

func (b *Builder) lowerWhile(s *ast.WhileStmt) {
	loopLbl := b.newLabel("loop")
	endLbl := b.newLabel("endloop")

	b.continueLabels = append(b.continueLabels, loopLbl)
	b.breakLabels = append(b.breakLabels, endLbl)

	b.emitLabel(loopLbl)
	cond := b.lowerExpr(s.Condition)
	b.emit(ir.Instruction{OpCode: ir.CMP, Operands: []*ir.Register{cond}, Immediate: 0, HasImmediate: true})
	b.emitJump(ir.JE, endLbl)
	b.alloc.Free(cond)

	b.lowerStatement(s.Body)
	b.emitJump(ir.JMP, loopLbl)
	b.emitLabel(endLbl)

	b.continueLabels = b.continueLabels[:len(b.continueLabels)-1]
	b.breakLabels = b.breakLabels[:len(b.breakLabels)-1]
}

// lowerForIn lowers a simplified iterator-protocol loop against the
// runtime symbols _iterator_valid/_iterator_get/_iterator_next (spec.md
// §4.4, §6).
func (b *Builder) lowerForIn(s *ast.ForInStmt) {
	iterReg := b.lowerExpr(s.Iterable)
	loopLbl := b.newLabel("loop")
	endLbl := b.newLabel("endloop")

	b.pushScope()
	loopVar := b.alloc.Allocate(ir.General)
	b.scope.define(s.VarName, loopVar)

	b.continueLabels = append(b.continueLabels, loopLbl)
	b.breakLabels = append(b.breakLabels, endLbl)

	b.emitLabel(loopLbl)
	validReg := b.callRuntime("_iterator_valid", []*ir.Register{iterReg})
	b.emit(ir.Instruction{OpCode: ir.CMP, Operands: []*ir.Register{validReg}, Immediate: 0, HasImmediate: true})
	b.emitJump(ir.JE, endLbl)
	b.alloc.Free(validReg)

	got := b.callRuntime("_iterator_get", []*ir.Register{iterReg})
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{loopVar, got}})
	b.alloc.Free(got)

	b.lowerStatement(s.Body)

	b.alloc.Free(b.callRuntime("_iterator_next", []*ir.Register{iterReg}))
	b.emitJump(ir.JMP, loopLbl)
	b.emitLabel(endLbl)

	b.continueLabels = b.continueLabels[:len(b.continueLabels)-1]
	b.breakLabels = b.breakLabels[:len(b.breakLabels)-1]
	b.alloc.Free(iterReg)
	b.popScope()
}

// lowerMatch emits the dispatch-then-bodies shape of spec.md §4.4: every
// case's pattern is compared against the scrutinee up front, falling
// through to the end label if none match, then each matched case's body
// is emitted once, also falling through to the end.
func (b *Builder) lowerMatch(s *ast.MatchStmt) {
	scrut := b.lowerExpr(s.Scrutinee)
	endLbl := b.newLabel("endmatch")
	caseLabels := make([]string, len(s.Cases))

	for i, c := range s.Cases {
		pat := b.lowerExpr(c.Pattern)
		caseLbl := b.newLabel("case")
		caseLabels[i] = caseLbl
		b.emit(ir.Instruction{OpCode: ir.CMP, Operands: []*ir.Register{scrut, pat}})
		b.emitJump(ir.JE, caseLbl)
		b.alloc.Free(pat)
	}
	b.emitJump(ir.JMP, endLbl)

	for i, c := range s.Cases {
		b.emitLabel(caseLabels[i])
		b.lowerStatement(c.Body)
		b.emitJump(ir.JMP, endLbl)
	}
	b.emitLabel(endLbl)
	b.alloc.Free(scrut)
}

func (b *Builder) lowerReturn(s *ast.ReturnStmt) {
	if b.fn.ReturnRegister == nil {
		b.fn.ReturnRegister = b.alloc.Allocate(ir.General)
	}
	if s.Value != nil {
		v := b.lowerExpr(s.Value)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{b.fn.ReturnRegister, v}})
		b.alloc.Free(v)
	} else {
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{b.fn.ReturnRegister}, Immediate: 0, HasImmediate: true})
	}
	b.emit(ir.Instruction{OpCode: ir.RET})
}

func (b *Builder) lowerVarDecl(d *ast.VarDecl) {
	reg := b.alloc.Allocate(ir.General)
	if d.Initializer != nil {
		v := b.lowerExpr(d.Initializer)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg, v}})
		b.alloc.Free(v)
	} else {
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: 0, HasImmediate: true})
	}
	b.scope.define(d.Name, reg)
}

// lowerFuncDecl lowers a function or method into its own ir.Function,
// saving and restoring the builder's lowering context around it so the
// caller's current block/scope are untouched (spec.md §4.4). classPrefix
// is "" for a free function; isMethod injects the implicit self
// parameter for non-static methods. imported, when non-nil, is a class's
// member scope (built by lowerClassDecl) that becomes the parent of the
// method's own scope, so member names resolve without qualification.
func (b *Builder) lowerFuncDecl(d *ast.FuncDecl, classPrefix string, isMethod bool, imported *varScope) {
	name := d.Name
	if classPrefix != "" {
		name = classPrefix + "_" + d.Name
	}

	savedFn, savedBlock, savedScope := b.fn, b.block, b.scope
	savedLabelCounter := b.labelCounter
	savedBreak, savedContinue := b.breakLabels, b.continueLabels
	b.breakLabels, b.continueLabels = nil, nil

	fn := ir.NewFunction(name)
	b.functions = append(b.functions, fn)
	b.fn = fn
	b.labelCounter = 0
	b.block = fn.NewBlock(b.newLabel("entry"))
	b.scope = newVarScope(imported)

	if isMethod && !d.IsStatic {
		selfReg := b.alloc.Allocate(ir.General)
		fn.Parameters = append(fn.Parameters, selfReg)
		b.scope.define("self", selfReg)
	}
	for _, param := range d.Params {
		preg := b.alloc.Allocate(ir.General)
		fn.Parameters = append(fn.Parameters, preg)
		b.scope.define(param.Name, preg)
	}

	b.lowerStatement(d.Body)
	b.ensureReturn()

	b.fn, b.block, b.scope = savedFn, savedBlock, savedScope
	b.labelCounter = savedLabelCounter
	b.breakLabels, b.continueLabels = savedBreak, savedContinue
}

// lowerClassDecl registers every member variable as a class-scoped
// register before lowering any method, then lowers each method with the
// member registers imported into its own scope (spec.md §4.4).
func (b *Builder) lowerClassDecl(d *ast.ClassDecl) {
	if d.IsTopLevel {
		return
	}

	memberRegs := make(map[string]*ir.Register)
	var methods []*ast.FuncDecl
	for _, member := range d.Members {
		switch m := member.(type) {
		case *ast.VarDecl:
			reg := b.alloc.Allocate(ir.General)
			if m.Initializer != nil {
				v := b.lowerExpr(m.Initializer)
				b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg, v}})
				b.alloc.Free(v)
			} else {
				b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: 0, HasImmediate: true})
			}
			memberRegs[m.Name] = reg
		case *ast.FuncDecl:
			methods = append(methods, m)
		case *ast.ClassDecl:
			b.lowerClassDecl(m)
		}
	}

	importedScope := newVarScope(nil)
	for name, reg := range memberRegs {
		importedScope.define(name, reg)
	}
	for _, m := range methods {
		b.lowerFuncDecl(m, d.Name, true, importedScope)
	}
}

// ---- expressions ----

func (b *Builder) lowerExpr(expr ast.Expression) *ir.Register {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		reg := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: e.Value, HasImmediate: true})
		return reg
	case *ast.FloatLiteral:
		reg := b.alloc.Allocate(ir.FloatReg)
		// Floats are carried through the integer-only IR immediate field
		// scaled by 1000 (spec.md §3 leaves the in-memory float encoding
		// unspecified; this fixed-point placeholder keeps ir.Instruction
		// single-shaped for both numeric kinds; see DESIGN.md).
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: int64(e.Value * 1000), HasImmediate: true})
		return reg
	case *ast.StringLiteral:
		reg := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Label: e.Value, Immediate: 0, HasImmediate: true})
		return reg
	case *ast.BoolLiteral:
		reg := b.alloc.Allocate(ir.General)
		v := int64(0)
		if e.Value {
			v = 1
		}
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: v, HasImmediate: true})
		return reg
	case *ast.NullLiteral:
		reg := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: 0, HasImmediate: true})
		return reg
	case *ast.Identifier:
		if reg, ok := b.scope.lookup(e.Value); ok {
			return reg
		}
		b.sink.Errorf(e.Pos(), "codegen: unresolved identifier '%s'", e.Value)
		reg := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: 0, HasImmediate: true})
		return reg
	case *ast.BinaryExpr:
		return b.lowerBinary(e)
	case *ast.UnaryExpr:
		return b.lowerUnary(e)
	case *ast.TernaryExpr:
		return b.lowerTernary(e)
	case *ast.CallExpr:
		return b.lowerCall(e)
	case *ast.MemberExpr:
		return b.lowerMember(e)
	case *ast.IndexExpr:
		obj := b.lowerExpr(e.Object)
		idx := b.lowerExpr(e.Index)
		dest := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.LOAD, Operands: []*ir.Register{dest, obj, idx}})
		b.alloc.Free(obj)
		b.alloc.Free(idx)
		return dest
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			b.alloc.Free(b.lowerExpr(el))
		}
		dest := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{dest}, Immediate: int64(len(e.Elements)), HasImmediate: true})
		return dest
	case *ast.DictLiteral:
		for _, ent := range e.Entries {
			b.alloc.Free(b.lowerExpr(ent.Key))
			b.alloc.Free(b.lowerExpr(ent.Value))
		}
		dest := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{dest}, Immediate: int64(len(e.Entries)), HasImmediate: true})
		return dest
	case *ast.LambdaExpr:
		return b.lowerLambda(e)
	default:
		b.sink.Errorf(expr.Pos(), "codegen: unknown expression kind %T", e)
		reg := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: 0, HasImmediate: true})
		return reg
	}
}

var assignmentOps = map[string]bool{
	"=": true, ":=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
}

func (b *Builder) lowerBinary(e *ast.BinaryExpr) *ir.Register {
	if assignmentOps[e.Operator] {
		return b.lowerAssignment(e)
	}

	lhs := b.lowerExpr(e.Left)
	rhs := b.lowerExpr(e.Right)
	dest := b.alloc.Allocate(ir.General)
	b.emit(ir.Instruction{OpCode: binaryOpCode(e.Operator), Operands: []*ir.Register{dest, lhs, rhs}})
	b.alloc.Free(lhs)
	b.alloc.Free(rhs)
	return dest
}

func binaryOpCode(op string) ir.OpCode {
	switch op {
	case "+":
		return ir.ADD
	case "-":
		return ir.SUB
	case "*":
		return ir.MUL
	case "/":
		return ir.DIV
	case "%":
		return ir.MOD
	case "and":
		return ir.AND
	case "or":
		return ir.OR
	case "==", "!=", "<", "<=", ">", ">=", "in":
		return ir.CMP
	default:
		return ir.MOV
	}
}

// lowerAssignment lowers `lhs op= rhs` by writing into the identifier's
// existing register (or defining a fresh one for plain `=`/`:=` against a
// name not yet in scope). Assignment to anything other than a bare
// identifier is unspecified by spec.md §9 and is evaluated for side
// effects only, returning the right-hand value.
func (b *Builder) lowerAssignment(e *ast.BinaryExpr) *ir.Register {
	rhs := b.lowerExpr(e.Right)

	ident, ok := e.Left.(*ast.Identifier)
	if !ok {
		b.alloc.Free(b.lowerExpr(e.Left))
		return rhs
	}

	target, exists := b.scope.lookup(ident.Value)
	if !exists {
		target = b.alloc.Allocate(ir.General)
		b.scope.define(ident.Value, target)
	}

	switch e.Operator {
	case "=", ":=":
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{target, rhs}})
	case "+=":
		b.emit(ir.Instruction{OpCode: ir.ADD, Operands: []*ir.Register{target, target, rhs}})
	case "-=":
		b.emit(ir.Instruction{OpCode: ir.SUB, Operands: []*ir.Register{target, target, rhs}})
	case "*=":
		b.emit(ir.Instruction{OpCode: ir.MUL, Operands: []*ir.Register{target, target, rhs}})
	case "/=":
		b.emit(ir.Instruction{OpCode: ir.DIV, Operands: []*ir.Register{target, target, rhs}})
	case "%=":
		b.emit(ir.Instruction{OpCode: ir.MOD, Operands: []*ir.Register{target, target, rhs}})
	}
	b.alloc.Free(rhs)
	return target
}

func (b *Builder) lowerUnary(e *ast.UnaryExpr) *ir.Register {
	operand := b.lowerExpr(e.Operand)
	dest := b.alloc.Allocate(ir.General)
	switch e.Operator {
	case "not":
		b.emit(ir.Instruction{OpCode: ir.NOT, Operands: []*ir.Register{dest, operand}})
	case "-":
		zero := b.alloc.Allocate(ir.General)
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{zero}, Immediate: 0, HasImmediate: true})
		b.emit(ir.Instruction{OpCode: ir.SUB, Operands: []*ir.Register{dest, zero, operand}})
		b.alloc.Free(zero)
	default: // unary +
		b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{dest, operand}})
	}
	b.alloc.Free(operand)
	return dest
}

func (b *Builder) lowerTernary(e *ast.TernaryExpr) *ir.Register {
	cond := b.lowerExpr(e.Condition)
	elseLbl := b.newLabel("ternelse")
	endLbl := b.newLabel("ternend")
	dest := b.alloc.Allocate(ir.General)

	b.emit(ir.Instruction{OpCode: ir.CMP, Operands: []*ir.Register{cond}, Immediate: 0, HasImmediate: true})
	b.emitJump(ir.JE, elseLbl)
	b.alloc.Free(cond)

	t := b.lowerExpr(e.TrueExpr)
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{dest, t}})
	b.alloc.Free(t)
	b.emitJump(ir.JMP, endLbl)

	b.emitLabel(elseLbl)
	f := b.lowerExpr(e.FalseExpr)
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{dest, f}})
	b.alloc.Free(f)

	b.emitLabel(endLbl)
	return dest
}

// lowerCall dispatches against the codegen's built-in table first, then
// falls back to the callee's own name, per spec.md §4.4.
func (b *Builder) lowerCall(e *ast.CallExpr) *ir.Register {
	var targetName string
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if runtimeName, ok := builtinNames[callee.Value]; ok {
			targetName = runtimeName
		} else {
			targetName = callee.Value
		}
	case *ast.MemberExpr:
		targetName = callee.Name
	default:
		targetName = "_indirect_call"
	}

	args := make([]*ir.Register, len(e.Args))
	for i, a := range e.Args {
		args[i] = b.lowerExpr(a)
	}
	return b.callRuntime(targetName, args)
}

// callRuntime emits the fixed call convention of spec.md §4.4: PUSH each
// argument in reverse order, CALL the target, POP each argument back off,
// and return the (placeholder) result register.
func (b *Builder) callRuntime(targetName string, args []*ir.Register) *ir.Register {
	for i := len(args) - 1; i >= 0; i-- {
		b.emit(ir.Instruction{OpCode: ir.PUSH, Operands: []*ir.Register{args[i]}})
	}
	b.emit(ir.Instruction{OpCode: ir.CALL, Label: targetName})
	for range args {
		b.emit(ir.Instruction{OpCode: ir.POP})
	}
	for _, a := range args {
		b.alloc.Free(a)
	}

	dest := b.alloc.Allocate(ir.General)
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{dest}, Immediate: 0, HasImmediate: true})
	return dest
}

// lowerMember resolves `object.name` against the current scope under the
// member's own name, relying on lowerClassDecl having imported the
// class's member registers into every method scope. A member that isn't
// found (e.g. on an external/foreign object) falls back to a zero value.
func (b *Builder) lowerMember(e *ast.MemberExpr) *ir.Register {
	if reg, ok := b.scope.lookup(e.Name); ok {
		return reg
	}
	b.alloc.Free(b.lowerExpr(e.Object))
	reg := b.alloc.Allocate(ir.General)
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{reg}, Immediate: 0, HasImmediate: true})
	return reg
}

// lowerLambda lowers the body as a fresh function under a synthesized
// name, then leaves a placeholder zero value in the enclosing scope since
// the function pointer is not linked at this stage (spec.md §4.4).
func (b *Builder) lowerLambda(e *ast.LambdaExpr) *ir.Register {
	name := fmt.Sprintf("lambda_%d", b.lambdaCounter)
	b.lambdaCounter++

	savedFn, savedBlock, savedScope := b.fn, b.block, b.scope
	savedLabelCounter := b.labelCounter
	savedBreak, savedContinue := b.breakLabels, b.continueLabels
	b.breakLabels, b.continueLabels = nil, nil

	fn := ir.NewFunction(name)
	b.functions = append(b.functions, fn)
	b.enterFunction(fn)
	for _, param := range e.Params {
		preg := b.alloc.Allocate(ir.General)
		fn.Parameters = append(fn.Parameters, preg)
		b.scope.define(param.Name, preg)
	}
	b.lowerStatement(e.Body)
	b.ensureReturn()

	b.fn, b.block, b.scope = savedFn, savedBlock, savedScope
	b.labelCounter = savedLabelCounter
	b.breakLabels, b.continueLabels = savedBreak, savedContinue

	result := b.alloc.Allocate(ir.General)
	b.emit(ir.Instruction{OpCode: ir.MOV, Operands: []*ir.Register{result}, Immediate: 0, HasImmediate: true})
	return result
}
