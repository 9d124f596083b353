// Package parser implements a recursive-descent parser with explicit
// precedence climbing over the GDScript-like grammar in spec.md §4.2.
//
// Key patterns, mirrored from the teacher's internal/parser package:
//   - Lookahead: cur()/peekAt(n) inspect the current and upcoming tokens
//     without consuming them.
//   - Error recovery: a missing token records a diagnostic and advances
//     once (never stalls); an unexpected token in expression position
//     does the same. synchronize() recovers to the next statement
//     boundary and is used only after a `static` that is not followed
//     by `func` or `var`.
//   - A forced-advance heuristic detects a parser stuck at the same
//     token index across 100 top-level iterations.
package parser

import (
	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/diag"
	"github.com/cwbudde/gdscript-compiler/internal/lexer"
	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// stuckLoopLimit is the number of top-level iterations the parser
// tolerates at an unchanged token index before forcing an advance
// (spec.md §4.2).
const stuckLoopLimit = 100

// Parser consumes a pre-lexed token stream and produces an AST.
type Parser struct {
	tokens []token.Token
	pos    int
	sink   *diag.Sink

	pendingAnnotations []ast.Annotation
}

// New creates a Parser over the full token stream produced by l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{
		tokens: l.Tokenize(),
		sink:   diag.NewSink(),
	}
}

// NewFromTokens creates a Parser directly from an already-lexed token
// stream, useful for tests.
func NewFromTokens(toks []token.Token) *Parser {
	return &Parser{tokens: toks, sink: diag.NewSink()}
}

// Diagnostics returns the parse-phase diagnostics sink.
func (p *Parser) Diagnostics() *diag.Sink { return p.sink }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) atEnd() bool {
	return p.cur().Type == token.EOF
}

func (p *Parser) check(t token.Type) bool {
	return p.cur().Type == t
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches t, otherwise records an
// error naming the expected kind and the current line, then advances once
// so the parser never stalls (spec.md §4.2).
func (p *Parser) expect(t token.Type) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.sink.Errorf(p.cur().Pos, "Expected %s but found %s", t, p.cur().Type)
	return p.advance()
}

// skipNewlines consumes any run of NEWLINE tokens, used between
// statements (container literals use skipContainerNewlines).
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

var declarationKeywords = map[token.Type]bool{
	token.CLASS:  true,
	token.FUNC:   true,
	token.VAR:    true,
	token.CONST:  true,
	token.FOR:    true,
	token.IF:     true,
	token.WHILE:  true,
	token.RETURN: true,
}

// synchronize recovers from a parse error by advancing to the next
// NEWLINE or the start of a declaration keyword (spec.md §4.2).
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.cur().Type == token.NEWLINE {
			p.advance()
			return
		}
		if declarationKeywords[p.cur().Type] {
			return
		}
		p.advance()
	}
}

// ParseProgram parses the full token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()

	lastPos := -1
	stuckCount := 0

	for !p.atEnd() {
		if p.pos == lastPos {
			stuckCount++
			if stuckCount >= stuckLoopLimit {
				p.sink.Errorf(p.cur().Pos, "Parser stalled at token %s; forcing advance", p.cur().Type)
				p.advance()
				stuckCount = 0
			}
		} else {
			stuckCount = 0
		}
		lastPos = p.pos

		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}

	return prog
}

// parseTopLevelStatement handles the few constructs legal only at file
// scope (class_name, top-level extends) before falling back to the
// general statement dispatch.
func (p *Parser) parseTopLevelStatement() ast.Statement {
	switch p.cur().Type {
	case token.CLASS_NAME:
		return p.parseClassNameDecl()
	case token.EXTENDS:
		return p.parseExtendsDecl()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseClassNameDecl() ast.Statement {
	tok := p.advance() // class_name
	nameTok := p.expect(token.IDENT)
	p.skipNewlines()
	return &ast.ClassDecl{Token: tok, Name: nameTok.Literal, IsTopLevel: true}
}

func (p *Parser) parseExtendsDecl() ast.Statement {
	tok := p.advance() // extends
	nameTok := p.expect(token.IDENT)
	p.skipNewlines()
	return &ast.ClassDecl{Token: tok, BaseName: nameTok.Literal, IsTopLevel: true}
}

// parseStatement dispatches on the current token kind (spec.md §4.2).
func (p *Parser) parseStatement() ast.Statement {
	// Collect any run of annotations and attach them to the declaration
	// that follows.
	for p.check(token.ANNOTATION) {
		tok := p.advance()
		p.pendingAnnotations = append(p.pendingAnnotations, ast.Annotation{Token: tok, Name: tok.Literal})
		p.skipNewlines()
	}

	switch p.cur().Type {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForInStmt()
	case token.MATCH:
		return p.parseMatchStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		tok := p.advance()
		p.skipNewlines()
		return &ast.BreakStmt{Token: tok}
	case token.CONTINUE:
		tok := p.advance()
		p.skipNewlines()
		return &ast.ContinueStmt{Token: tok}
	case token.PASS:
		tok := p.advance()
		p.skipNewlines()
		return &ast.PassStmt{Token: tok}
	case token.VAR, token.CONST:
		return p.parseVarDecl(false)
	case token.FUNC:
		return p.parseFuncDecl(false)
	case token.CLASS:
		return p.parseClassDecl()
	case token.SIGNAL:
		return p.parseSignalDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.STATIC:
		return p.parseStaticDecl()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseStaticDecl() ast.Statement {
	p.advance() // static
	switch p.cur().Type {
	case token.FUNC:
		return p.parseFuncDecl(true)
	case token.VAR:
		return p.parseVarDecl(true)
	default:
		p.sink.Errorf(p.cur().Pos, "Expected func or var after static but found %s", p.cur().Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) takeAnnotations() []ast.Annotation {
	anns := p.pendingAnnotations
	p.pendingAnnotations = nil
	return anns
}

func (p *Parser) parseExpressionStmt() ast.Statement {
	tok := p.cur()
	expr := p.parseAssignment()
	p.skipNewlines()
	return &ast.ExpressionStmt{Token: tok, Expr: expr}
}

// parseBlock requires an INDENT on entry and a DEDENT on exit, skipping
// NEWLINE tokens between statements (spec.md §4.2).
func (p *Parser) parseBlock() ast.Statement {
	indentTok := p.expect(token.INDENT)
	block := &ast.BlockStmt{Token: indentTok}
	p.skipNewlines()

	for !p.check(token.DEDENT) && !p.atEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return block
}

// parseSuite parses the body that follows a trailing ':' — either a
// block (after NEWLINE INDENT) or a single inline statement on the same
// line.
func (p *Parser) parseSuite() ast.Statement {
	if p.check(token.NEWLINE) {
		p.advance()
		return p.parseBlock()
	}
	return p.parseStatement()
}
