package expr

import "fmt"

// Kind is the token type.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	IntLit      // 12, 0x1f, 1_000
	FloatLit    // 1.5, 1e3
	RationalLit // 3r
	StringLit   // "abc"
	SymbolLit   // :abc
	Ident       // coerce, Rational
	LParen
	RParen
	Comma
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	Shl
	Shr
	Amp
	Caret
	Pipe
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of input",
	IntLit:      "integer",
	FloatLit:    "float",
	RationalLit: "rational",
	StringLit:   "string",
	SymbolLit:   "symbol",
	Ident:       "identifier",
	LParen:      "'('",
	RParen:      "')'",
	Comma:       "','",
	Plus:        "'+'",
	Minus:       "'-'",
	Star:        "'*'",
	StarStar:    "'**'",
	Slash:       "'/'",
	Percent:     "'%'",
	Shl:         "'<<'",
	Shr:         "'>>'",
	Amp:         "'&'",
	Caret:       "'^'",
	Pipe:        "'|'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Span is a half-open byte range in the normalised source.
type Span struct {
	Start, End int
}

// Token is one lexeme.
type Token struct {
	Kind Kind
	Span Span
	Text string
}

// SyntaxError reports malformed input at a position.
type SyntaxError struct {
	Span Span
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Span.Start+1, e.Msg)
}
