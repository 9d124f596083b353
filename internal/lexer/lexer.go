// Package lexer turns GDScript-like source text into a token stream,
// synthesizing the indentation-sensitive control tokens (NEWLINE, INDENT,
// DEDENT) the parser relies on.
//
// # Unicode and column positions
//
// Column positions are rune counts, not byte offsets: a multi-byte UTF-8
// sequence (e.g. an identifier containing 'é') advances the column by one,
// matching the teacher convention of reporting positions that are stable
// across platforms rather than display-width accurate.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/cwbudde/gdscript-compiler/internal/diag"
	"github.com/cwbudde/gdscript-compiler/internal/token"
)

const tabWidth = 4

// Lexer scans GDScript-like source text into tokens.
type Lexer struct {
	input        string
	pos          int // byte offset of ch
	readPos      int // byte offset of next rune
	ch           rune
	line         int
	column       int
	atLineStart  bool
	indents      []int
	pendingDedent int
	lastWasNewline bool
	emittedAny   bool
	sink         *diag.Sink
}

// New creates a Lexer over input, ready to produce tokens via Next.
func New(input string) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		column:  0,
		indents: []int{0},
		sink:    diag.NewSink(),
	}
	l.atLineStart = true
	l.readChar()
	return l
}

// Diagnostics returns the lex-phase diagnostics sink (errors only, per
// spec.md §4.1 "lex errors are collected but lexing continues").
func (l *Lexer) Diagnostics() *diag.Sink { return l.sink }

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.pos = l.readPos
	l.readPos += size
	l.ch = r
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.readChar()
}

func (l *Lexer) here() token.Position {
	return token.Position{Line: l.line, Column: l.column + 1, Offset: l.pos}
}

// Tokenize consumes the entire input and returns the full token stream.
// Lex errors are recorded in Diagnostics but never stop the scan, per
// spec.md §4.1's failure semantics.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}
	return toks
}

// Next produces the next token, including any synthetic indentation
// tokens due at the current position.
func (l *Lexer) Next() token.Token {
	if l.pendingDedent > 0 {
		l.pendingDedent--
		return token.Token{Type: token.DEDENT, Literal: "", Pos: l.here()}
	}

	if l.atLineStart {
		if t, ok := l.scanIndentation(); ok {
			return t
		}
	}

	l.skipIntraLineWhitespace()

	if l.ch == '#' {
		l.skipComment()
		// A comment-only line never affects indentation and is followed
		// immediately by the newline handling below.
	}

	pos := l.here()

	if l.ch == 0 {
		if !l.lastWasNewline && l.emittedAny {
			l.lastWasNewline = true
			return token.Token{Type: token.NEWLINE, Literal: "\n", Pos: pos}
		}
		// Unwind any outstanding indentation levels above 0.
		if len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			return token.Token{Type: token.DEDENT, Literal: "", Pos: pos}
		}
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	}

	if l.ch == '\n' {
		l.advance()
		l.atLineStart = true
		l.lastWasNewline = true
		l.emittedAny = true
		return token.Token{Type: token.NEWLINE, Literal: "\n", Pos: pos}
	}

	l.emittedAny = true
	l.lastWasNewline = false

	switch {
	case isDigit(l.ch):
		return l.scanNumber()
	case l.ch == '"' || l.ch == '\'':
		return l.scanString()
	case l.ch == '@':
		return l.scanAnnotation()
	case isIdentStart(l.ch):
		return l.scanIdentifier()
	default:
		return l.scanOperator()
	}
}

// skipIntraLineWhitespace skips spaces, tabs, and carriage returns between
// tokens on the same line (spec.md §4.1).
func (l *Lexer) skipIntraLineWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.advance()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.advance()
	}
}

// scanIndentation measures leading whitespace on a freshly started line
// and emits INDENT/DEDENT tokens per spec.md §4.1. It returns ok=false
// when the line requires no indentation token (blank line, same level).
func (l *Lexer) scanIndentation() (token.Token, bool) {
	l.atLineStart = false

	width := 0
	for l.ch == ' ' || l.ch == '\t' {
		if l.ch == '\t' {
			width += tabWidth
		} else {
			width++
		}
		l.advance()
	}

	if l.ch == '\n' || l.ch == '#' || l.ch == 0 {
		// Blank (or comment-only) line: no indentation token.
		return token.Token{}, false
	}

	top := l.indents[len(l.indents)-1]
	pos := l.here()

	switch {
	case width > top:
		l.indents = append(l.indents, width)
		return token.Token{Type: token.INDENT, Literal: "", Pos: pos}, true
	case width < top:
		popped := 0
		for len(l.indents) > 0 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			popped++
		}
		if len(l.indents) == 0 || l.indents[len(l.indents)-1] != width {
			l.sink.Errorf(pos, "Invalid indentation level")
			l.indents = append(l.indents, width)
		}
		if popped > 1 {
			l.pendingDedent = popped - 1
		}
		return token.Token{Type: token.DEDENT, Literal: "", Pos: pos}, true
	default:
		return token.Token{}, false
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= utf8.RuneSelf
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (l *Lexer) scanNumber() token.Token {
	pos := l.here()
	var sb strings.Builder
	isFloat := false

	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		sb.WriteRune(l.ch)
		l.advance()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.advance()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		save := sb.String()
		savePos, saveReadPos, saveCh, saveLine, saveCol := l.pos, l.readPos, l.ch, l.line, l.column
		var exp strings.Builder
		exp.WriteRune(l.ch)
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			exp.WriteRune(l.ch)
			l.advance()
		}
		if isDigit(l.ch) {
			for isDigit(l.ch) {
				exp.WriteRune(l.ch)
				l.advance()
			}
			sb.WriteString(exp.String())
			isFloat = true
		} else {
			// Not actually an exponent; rewind.
			l.pos, l.readPos, l.ch, l.line, l.column = savePos, saveReadPos, saveCh, saveLine, saveCol
			sb.Reset()
			sb.WriteString(save)
		}
	}

	typ := token.INT
	if isFloat {
		typ = token.FLOAT
	}
	return token.Token{Type: typ, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) scanString() token.Token {
	pos := l.here()
	quote := l.ch
	l.advance()

	var sb strings.Builder
	for l.ch != quote {
		if l.ch == 0 {
			l.sink.Errorf(pos, "Unterminated string literal")
			return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
		}
		if l.ch == '\n' {
			sb.WriteRune('\n')
			l.advance()
			continue
		}
		if l.ch == '\\' {
			l.advance()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\':
				sb.WriteRune('\\')
			case '"':
				sb.WriteRune('"')
			case '\'':
				sb.WriteRune('\'')
			default:
				// Unrecognized escape: the backslash is dropped silently
				// and the following character is taken literally (see
				// spec.md §9 Open Questions).
				sb.WriteRune(l.ch)
			}
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	l.advance() // consume closing quote
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) scanAnnotation() token.Token {
	pos := l.here()
	var sb strings.Builder
	sb.WriteRune('@')
	l.advance()
	if !isIdentStart(l.ch) {
		l.sink.Errorf(pos, "Invalid annotation")
		return token.Token{Type: token.INVALID, Literal: sb.String(), Pos: pos}
	}
	for isIdentPart(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	return token.Token{Type: token.ANNOTATION, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) scanIdentifier() token.Token {
	pos := l.here()
	var sb strings.Builder
	for isIdentPart(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	lit := sb.String()

	if kw, ok := token.Keywords[lit]; ok {
		switch kw {
		case token.TRUE, token.FALSE:
			return token.Token{Type: token.BOOL, Literal: lit, Pos: pos}
		case token.NULL_KW:
			return token.Token{Type: token.NULL, Literal: lit, Pos: pos}
		default:
			return token.Token{Type: kw, Literal: lit, Pos: pos}
		}
	}
	return token.Token{Type: token.IDENT, Literal: lit, Pos: pos}
}

// twoCharOps maps a first character plus a required second character to
// the resulting token type, used for lookahead-based multi-character
// operator recognition (spec.md §4.1).
type twoCharOp struct {
	second rune
	typ    token.Type
}

var twoCharOps = map[rune][]twoCharOp{
	':': {{'=', token.WALRUS}},
	'=': {{'=', token.EQ}},
	'!': {{'=', token.NEQ}},
	'<': {{'=', token.LE}, {'<', token.SHL}},
	'>': {{'=', token.GE}, {'>', token.SHR}},
	'-': {{'>', token.ARROW}, {'=', token.MINUS_EQ}},
	'+': {{'=', token.PLUS_EQ}},
	'*': {{'=', token.STAR_EQ}},
	'/': {{'=', token.SLASH_EQ}},
	'%': {{'=', token.PERCENT_EQ}},
	'&': {{'&', token.AND_AND}},
	'|': {{'|', token.OR_OR}},
}

var singleCharOps = map[rune]token.Type{
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
	',': token.COMMA,
	':': token.COLON,
	'.': token.DOT,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'&': token.AMP,
	'|': token.PIPE,
	'^': token.CARET,
	'~': token.TILDE,
	'=': token.ASSIGN,
	'<': token.LT,
	'>': token.GT,
	'!': token.BANG,
}

func (l *Lexer) scanOperator() token.Token {
	pos := l.here()
	ch := l.ch

	if candidates, ok := twoCharOps[ch]; ok {
		next := l.peekChar()
		for _, c := range candidates {
			if c.second == next {
				lit := string(ch) + string(next)
				l.advance()
				l.advance()
				return token.Token{Type: c.typ, Literal: lit, Pos: pos}
			}
		}
	}

	if typ, ok := singleCharOps[ch]; ok {
		l.advance()
		return token.Token{Type: typ, Literal: string(ch), Pos: pos}
	}

	l.sink.Errorf(pos, "Unexpected character %q", ch)
	l.advance()
	return token.Token{Type: token.INVALID, Literal: string(ch), Pos: pos}
}
