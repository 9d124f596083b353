package parser

import (
	"strconv"

	"github.com/cwbudde/gdscript-compiler/internal/ast"
	"github.com/cwbudde/gdscript-compiler/internal/token"
)

// parseExpression is the grammar entry point; assignment has the lowest
// precedence (spec.md §4.2).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

var assignOps = map[token.Type]bool{
	token.ASSIGN:     true,
	token.WALRUS:     true,
	token.PLUS_EQ:    true,
	token.MINUS_EQ:   true,
	token.STAR_EQ:    true,
	token.SLASH_EQ:   true,
	token.PERCENT_EQ: true,
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseTernary()
	if assignOps[p.cur().Type] {
		opTok := p.advance()
		right := p.parseAssignment()
		// The `:=` operator's semantics when the LHS is not an identifier
		// are unspecified by spec.md §9; it is preserved here simply as
		// an assignment-shaped binary expression.
		return &ast.BinaryExpr{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseTernary() ast.Expression {
	trueExpr := p.parseOr()
	if p.check(token.IF) {
		tok := p.advance()
		cond := p.parseOr()
		p.expect(token.ELSE)
		falseExpr := p.parseTernary()
		return &ast.TernaryExpr{Token: tok, TrueExpr: trueExpr, Condition: cond, FalseExpr: falseExpr}
	}
	return trueExpr
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(token.OR) || p.check(token.OR_OR) {
		opTok := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: "or", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(token.AND) || p.check(token.AND_AND) {
		opTok := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: "and", Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(token.EQ) || p.check(token.NEQ) {
		opTok := p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseTerm()
	for p.check(token.LT) || p.check(token.LE) || p.check(token.GT) || p.check(token.GE) || p.check(token.IN) {
		opTok := p.advance()
		right := p.parseTerm()
		op := opTok.Literal
		if opTok.Type == token.IN {
			op = "in"
		}
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right := p.parseFactor()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseFactor() ast.Expression {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		opTok := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur().Type {
	case token.NOT, token.BANG, token.MINUS, token.PLUS:
		opTok := p.advance()
		operand := p.parseUnary()
		op := opTok.Literal
		if opTok.Type == token.NOT || opTok.Type == token.BANG {
			op = "not"
		}
		return &ast.UnaryExpr{Token: opTok, Operator: op, Operand: operand}
	default:
		return p.parseCall()
	}
}

func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case token.LPAREN:
			tok := p.advance()
			args := p.parseArgs()
			p.expect(token.RPAREN)
			expr = &ast.CallExpr{Token: tok, Callee: expr, Args: args}
		case token.DOT:
			tok := p.advance()
			nameTok := p.expect(token.IDENT)
			expr = &ast.MemberExpr{Token: tok, Object: expr, Name: nameTok.Literal}
		case token.LBRACKET:
			tok := p.advance()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.IndexExpr{Token: tok, Object: expr, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	p.skipContainerNewlines()
	for !p.check(token.RPAREN) && !p.atEnd() {
		args = append(args, p.parseExpression())
		p.skipContainerNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipContainerNewlines()
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		v, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case token.FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.FloatLiteral{Token: tok, Value: v}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.BOOL:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: tok.Literal == "true"}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.IDENT, token.SELF:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseDictLiteral()
	case token.FUNC:
		return p.parseLambda()
	default:
		p.sink.Errorf(tok.Pos, "Unexpected token %s", tok.Type)
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // [
	lit := &ast.ArrayLiteral{Token: tok}
	p.skipContainerNewlines()
	for !p.check(token.RBRACKET) && !p.atEnd() {
		lit.Elements = append(lit.Elements, p.parseExpression())
		p.skipContainerNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipContainerNewlines()
	}
	p.skipContainerNewlines()
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseDictLiteral() ast.Expression {
	tok := p.advance() // {
	lit := &ast.DictLiteral{Token: tok}
	p.skipContainerNewlines()
	for !p.check(token.RBRACE) && !p.atEnd() {
		key := p.parseExpression()
		p.expect(token.COLON)
		value := p.parseExpression()
		lit.Entries = append(lit.Entries, ast.DictEntry{Key: key, Value: value})
		p.skipContainerNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipContainerNewlines()
	}
	p.skipContainerNewlines()
	p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parseLambda() ast.Expression {
	tok := p.advance() // func
	params := p.parseParamList()
	lam := &ast.LambdaExpr{Token: tok, Params: params}
	if p.match(token.ARROW) {
		lam.ReturnType = p.parseTypeAnnotation()
	}
	p.expect(token.COLON)
	lam.Body = p.parseSuite()
	return lam
}
