package expr

import (
	"golang.org/x/text/unicode/norm"
)

// Lexer splits an expression into tokens.
type Lexer struct {
	src string
	off int
}

// NewLexer returns a lexer over src after NFKC normalisation, so full-width
// digits and operators read as their ASCII forms.
func NewLexer(src string) *Lexer {
	return &Lexer{src: norm.NFKC.String(src)}
}

// Source returns the normalised input the spans refer to.
func (lx *Lexer) Source() string { return lx.src }

func (lx *Lexer) peek() byte {
	if lx.off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off]
}

func (lx *Lexer) peekAt(n int) byte {
	if lx.off+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off+n]
}

func (lx *Lexer) token(kind Kind, start int) Token {
	return Token{Kind: kind, Span: Span{start, lx.off}, Text: lx.src[start:lx.off]}
}

func (lx *Lexer) fail(start int, msg string) (Token, error) {
	sp := Span{start, lx.off}
	return Token{Kind: Invalid, Span: sp, Text: lx.src[start:lx.off]}, &SyntaxError{Span: sp, Msg: msg}
}

// Next returns the next token, EOF at the end of input.
func (lx *Lexer) Next() (Token, error) {
	for isSpace(lx.peek()) {
		lx.off++
	}
	start := lx.off
	if lx.off >= len(lx.src) {
		return lx.token(EOF, start), nil
	}

	ch := lx.peek()
	switch {
	case isDec(ch):
		return lx.scanNumber()
	case isIdentStart(ch):
		for isIdentPart(lx.peek()) {
			lx.off++
		}
		return lx.token(Ident, start), nil
	case ch == '"' || ch == '\'':
		return lx.scanString(ch)
	case ch == ':' && isIdentStart(lx.peekAt(1)):
		lx.off++
		for isIdentPart(lx.peek()) {
			lx.off++
		}
		return lx.token(SymbolLit, start), nil
	}

	lx.off++
	switch ch {
	case '(':
		return lx.token(LParen, start), nil
	case ')':
		return lx.token(RParen, start), nil
	case ',':
		return lx.token(Comma, start), nil
	case '+':
		return lx.token(Plus, start), nil
	case '-':
		return lx.token(Minus, start), nil
	case '*':
		if lx.peek() == '*' {
			lx.off++
			return lx.token(StarStar, start), nil
		}
		return lx.token(Star, start), nil
	case '/':
		return lx.token(Slash, start), nil
	case '%':
		return lx.token(Percent, start), nil
	case '&':
		return lx.token(Amp, start), nil
	case '^':
		return lx.token(Caret, start), nil
	case '|':
		return lx.token(Pipe, start), nil
	case '<':
		if lx.peek() == '<' {
			lx.off++
			return lx.token(Shl, start), nil
		}
	case '>':
		if lx.peek() == '>' {
			lx.off++
			return lx.token(Shr, start), nil
		}
	}
	return lx.fail(start, "unexpected character "+quoteByte(ch))
}

// scanNumber reads 0, 123, 1_000, 0b101, 0o17, 0xff, 1.5, 1e-3, 1.5e+10 and
// the rational suffix 3r. Underscore placement is checked by the parser.
func (lx *Lexer) scanNumber() (Token, error) {
	start := lx.off

	if lx.peek() == '0' {
		var digit func(byte) bool
		switch lx.peekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.off += 2
			for digit(lx.peek()) || lx.peek() == '_' {
				lx.off++
			}
			if lx.off == start+2 {
				return lx.fail(start, "expected digits after base prefix")
			}
			return lx.finishNumber(start, IntLit)
		}
	}

	kind := IntLit
	lx.scanDigits()
	if lx.peek() == '.' && isDec(lx.peekAt(1)) {
		kind = FloatLit
		lx.off++
		lx.scanDigits()
	}
	if c := lx.peek(); c == 'e' || c == 'E' {
		next := lx.peekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.peekAt(2))) {
			kind = FloatLit
			lx.off += 2
			lx.scanDigits()
		}
	}
	return lx.finishNumber(start, kind)
}

func (lx *Lexer) finishNumber(start int, kind Kind) (Token, error) {
	if kind == IntLit && lx.peek() == 'r' && !isIdentPart(lx.peekAt(1)) {
		tok := lx.token(RationalLit, start)
		lx.off++
		tok.Span.End = lx.off
		return tok, nil
	}
	if isIdentPart(lx.peek()) {
		for isIdentPart(lx.peek()) {
			lx.off++
		}
		return lx.fail(start, "bad number literal")
	}
	return lx.token(kind, start), nil
}

func (lx *Lexer) scanDigits() {
	for isDec(lx.peek()) || lx.peek() == '_' {
		lx.off++
	}
}

func (lx *Lexer) scanString(quote byte) (Token, error) {
	start := lx.off
	lx.off++
	for lx.off < len(lx.src) {
		ch := lx.src[lx.off]
		lx.off++
		switch ch {
		case '\\':
			if lx.off < len(lx.src) {
				lx.off++
			}
		case quote:
			return lx.token(StringLit, start), nil
		}
	}
	return lx.fail(start, "unterminated string")
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDec(b byte) bool   { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentPart(b byte) bool { return isIdentStart(b) || isDec(b) }

func quoteByte(b byte) string {
	if b < 0x20 || b >= 0x7f {
		return "0x" + string("0123456789abcdef"[b>>4]) + string("0123456789abcdef"[b&0xf])
	}
	return "'" + string(b) + "'"
}
