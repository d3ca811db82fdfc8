// Package lexer turns source text into a stream of tokens.
package lexer

import (
	"iter"

	"github.com/pontaoski/monkey/types"
)

// Lexer is a byte cursor over a single source text. It holds no error state:
// bytes it does not recognise come back as ILLEGAL tokens.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte

	loc types.Position
}

func NewLexer(input string, filename string) *Lexer {
	l := &Lexer{
		input: input,
		loc:   types.Position{Line: 1, Column: 0, Filename: filename},
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.loc.Line++
		l.loc.Column = 0
	}

	if l.readPos >= len(l.input) {
		l.ch = 0
		if l.pos < len(l.input) {
			l.loc.Column++
		}
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		return
	}

	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
	l.loc.Column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.pos
	for !l.atEOF() && pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber consumes a run of digits, and a fractional part if the run is
// followed by '.' and another digit.
func (l *Lexer) readNumber() (types.TokenKind, string) {
	start := l.pos
	l.readWhile(isDigit)
	if l.ch != '.' || !isDigit(l.peekChar()) {
		return types.INT, l.input[start:l.pos]
	}
	l.readChar()
	l.readWhile(isDigit)
	return types.FLOAT, l.input[start:l.pos]
}

func (l *Lexer) single(kind types.TokenKind) types.Token {
	tok := types.Token{
		Kind:     kind,
		Literal:  string(l.ch),
		Location: types.SingleCharSpan(l.loc),
	}
	l.readChar()
	return tok
}

// twoChar builds either the two-character operator (when the next byte is
// second) or the single-character one.
func (l *Lexer) twoChar(second byte, double, single types.TokenKind) types.Token {
	if l.peekChar() != second {
		return l.single(single)
	}

	from := l.loc
	first := l.ch
	l.readChar()
	tok := types.Token{
		Kind:     double,
		Literal:  string([]byte{first, l.ch}),
		Location: types.Span{From: from, To: l.loc},
	}
	l.readChar()
	return tok
}

// NextToken returns the next token in the input. Once the input is exhausted
// every call returns an EOF token.
func (l *Lexer) NextToken() types.Token {
	l.skipWhitespace()

	if l.atEOF() {
		return types.Token{Kind: types.EOF, Location: types.SingleCharSpan(l.loc)}
	}

	switch l.ch {
	case '=':
		return l.twoChar('=', types.EQ, types.ASSIGN)
	case '!':
		return l.twoChar('=', types.NOTEQ, types.BANG)
	case '<':
		return l.twoChar('=', types.LE, types.LT)
	case '>':
		return l.twoChar('=', types.GE, types.GT)
	}

	data := map[byte]types.TokenKind{
		'+': types.PLUS,
		'-': types.MINUS,
		'*': types.ASTERISK,
		'/': types.SLASH,
		',': types.COMMA,
		';': types.SEMICOLON,
		'(': types.LPAREN,
		')': types.RPAREN,
		'{': types.LBRACE,
		'}': types.RBRACE,
	}

	if kind, ok := data[l.ch]; ok {
		return l.single(kind)
	}

	from := l.loc
	switch {
	case isLetter(l.ch):
		lit := l.readWhile(isLetter)
		return types.Token{Kind: types.LookupIdent(lit), Literal: lit, Location: types.Span{From: from, To: l.lastLoc(from, lit)}}
	case isDigit(l.ch):
		kind, lit := l.readNumber()
		return types.Token{Kind: kind, Literal: lit, Location: types.Span{From: from, To: l.lastLoc(from, lit)}}
	}

	return l.single(types.ILLEGAL)
}

// lastLoc is the position of the final byte of a token that started at from.
// Identifiers and numbers never span lines.
func (l *Lexer) lastLoc(from types.Position, lit string) types.Position {
	to := from
	to.Column += len(lit) - 1
	return to
}

// All yields every token up to, but not including, EOF.
func (l *Lexer) All() iter.Seq[types.Token] {
	return func(yield func(types.Token) bool) {
		for {
			tok := l.NextToken()
			if tok.Kind == types.EOF {
				return
			}
			if !yield(tok) {
				return
			}
		}
	}
}
