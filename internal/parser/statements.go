package parser

import (
	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/token"
)

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.advance() // if
	cond := p.parseExpression()
	p.expect(token.COLON)
	then := p.parseSuite()

	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}

	switch p.cur().Type {
	case token.ELIF:
		stmt.Else = p.parseElifChain()
	case token.ELSE:
		p.advance()
		p.expect(token.COLON)
		stmt.Else = p.parseSuite()
	}
	return stmt
}

// parseElifChain turns a chain of elif clauses into nested IfStmts whose
// Else holds the next elif (or trailing else), matching the recursive
// shape of the then/else invariant in spec.md §3.
func (p *Parser) parseElifChain() ast.Statement {
	tok := p.advance() // elif
	cond := p.parseExpression()
	p.expect(token.COLON)
	then := p.parseSuite()

	stmt := &ast.IfStmt{Token: tok, Condition: cond, Then: then}
	switch p.cur().Type {
	case token.ELIF:
		stmt.Else = p.parseElifChain()
	case token.ELSE:
		p.advance()
		p.expect(token.COLON)
		stmt.Else = p.parseSuite()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	tok := p.advance() // while
	cond := p.parseExpression()
	p.expect(token.COLON)
	body := p.parseSuite()
	return &ast.WhileStmt{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForInStmt() ast.Statement {
	tok := p.advance() // for
	nameTok := p.expect(token.IDENT)
	p.expect(token.IN)
	iterable := p.parseExpression()
	p.expect(token.COLON)
	body := p.parseSuite()
	return &ast.ForInStmt{Token: tok, VarName: nameTok.Literal, Iterable: iterable, Body: body}
}

func (p *Parser) parseMatchStmt() ast.Statement {
	tok := p.advance() // match
	scrutinee := p.parseExpression()
	p.expect(token.COLON)
	p.expect(token.NEWLINE)
	p.expect(token.INDENT)
	p.skipNewlines()

	stmt := &ast.MatchStmt{Token: tok, Scrutinee: scrutinee}
	for !p.check(token.DEDENT) && !p.atEnd() {
		pattern := p.parseExpression()
		p.expect(token.COLON)
		body := p.parseSuite()
		stmt.Cases = append(stmt.Cases, ast.MatchCase{Pattern: pattern, Body: body})
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.advance() // return
	var value ast.Expression
	if !p.check(token.NEWLINE) && !p.atEnd() {
		value = p.parseExpression()
	}
	p.skipNewlines()
	return &ast.ReturnStmt{Token: tok, Value: value}
}

func (p *Parser) parseVarDecl(isStatic bool) ast.Statement {
	tok := p.advance() // var or const
	nameTok := p.expect(token.IDENT)

	decl := &ast.VarDecl{
		Token:       tok,
		Name:        nameTok.Literal,
		IsConst:     tok.Type == token.CONST,
		IsStatic:    isStatic,
		Annotations: p.takeAnnotations(),
	}

	if p.match(token.COLON) {
		decl.TypeName = p.parseTypeAnnotation()
	}
	if p.match(token.ASSIGN) || p.match(token.WALRUS) {
		decl.Initializer = p.parseExpression()
	}
	p.skipNewlines()
	return decl
}

// parseTypeAnnotation accepts an identifier optionally followed by
// `[ identifier ]`, storing the textual form (spec.md §4.2).
func (p *Parser) parseTypeAnnotation() string {
	nameTok := p.expect(token.IDENT)
	name := nameTok.Literal
	if p.match(token.LBRACKET) {
		innerTok := p.expect(token.IDENT)
		p.expect(token.RBRACKET)
		name = name + "[" + innerTok.Literal + "]"
	}
	return name
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	p.skipContainerNewlines()
	for !p.check(token.RPAREN) && !p.atEnd() {
		nameTok := p.expect(token.IDENT)
		param := ast.Param{Name: nameTok.Literal, NamePos: nameTok.Pos}
		if p.match(token.COLON) {
			param.TypeName = p.parseTypeAnnotation()
		}
		if p.match(token.ASSIGN) {
			param.Default = p.parseExpression()
		}
		params = append(params, param)
		p.skipContainerNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipContainerNewlines()
	}
	p.skipContainerNewlines()
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFuncDecl(isStatic bool) ast.Statement {
	tok := p.advance() // func
	nameTok := p.expect(token.IDENT)
	params := p.parseParamList()

	decl := &ast.FuncDecl{
		Token:       tok,
		Name:        nameTok.Literal,
		Params:      params,
		IsStatic:    isStatic,
		Annotations: p.takeAnnotations(),
	}
	if p.match(token.ARROW) {
		decl.ReturnType = p.parseTypeAnnotation()
	}
	p.expect(token.COLON)
	decl.Body = p.parseSuite()
	return decl
}

func (p *Parser) parseClassDecl() ast.Statement {
	tok := p.advance() // class
	nameTok := p.expect(token.IDENT)
	decl := &ast.ClassDecl{Token: tok, Name: nameTok.Literal}

	if p.match(token.EXTENDS) {
		baseTok := p.expect(token.IDENT)
		decl.BaseName = baseTok.Literal
	}
	p.expect(token.COLON)
	p.expect(token.NEWLINE)
	p.expect(token.INDENT)
	p.skipNewlines()

	for !p.check(token.DEDENT) && !p.atEnd() {
		member := p.parseStatement()
		if member == nil {
			continue
		}
		if !isDeclaration(member) {
			p.sink.Errorf(member.Pos(), "Non-declaration statement inside class body")
		}
		decl.Members = append(decl.Members, member)
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return decl
}

func isDeclaration(s ast.Statement) bool {
	switch s.(type) {
	case *ast.VarDecl, *ast.FuncDecl, *ast.ClassDecl, *ast.SignalDecl, *ast.EnumDecl:
		return true
	default:
		return false
	}
}

func (p *Parser) parseSignalDecl() ast.Statement {
	tok := p.advance() // signal
	nameTok := p.expect(token.IDENT)
	decl := &ast.SignalDecl{Token: tok, Name: nameTok.Literal}
	if p.check(token.LPAREN) {
		decl.Params = p.parseParamList()
	}
	p.skipNewlines()
	return decl
}

func (p *Parser) parseEnumDecl() ast.Statement {
	tok := p.advance() // enum
	decl := &ast.EnumDecl{Token: tok}
	if p.check(token.IDENT) {
		decl.Name = p.advance().Literal
	}
	p.expect(token.LBRACE)
	p.skipContainerNewlines()
	for !p.check(token.RBRACE) && !p.atEnd() {
		nameTok := p.expect(token.IDENT)
		member := ast.EnumMember{Name: nameTok.Literal}
		if p.match(token.ASSIGN) {
			member.Value = p.parseExpression()
		}
		decl.Members = append(decl.Members, member)
		p.skipContainerNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipContainerNewlines()
	}
	p.skipContainerNewlines()
	p.expect(token.RBRACE)
	p.skipNewlines()
	return decl
}

// skipContainerNewlines consumes NEWLINE/INDENT/DEDENT tokens that appear
// inside container literals and parameter lists spanning multiple lines
// (spec.md §4.2's container-literal tolerance rule).
func (p *Parser) skipContainerNewlines() {
	for p.check(token.NEWLINE) || p.check(token.INDENT) || p.check(token.DEDENT) {
		p.advance()
	}
}
