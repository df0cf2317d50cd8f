package expr

import "fmt"

// Binding powers; larger binds tighter.
const (
	precBitwiseOr      = 1 // |
	precBitwiseXor     = 2 // ^
	precBitwiseAnd     = 3 // &
	precShift          = 4 // << >>
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
	precUnary          = 7 // -x +x
	precPower          = 8 // ** (right-associative)
)

func binaryPrec(k Kind) (prec int, rightAssoc bool) {
	switch k {
	case Pipe:
		return precBitwiseOr, false
	case Caret:
		return precBitwiseXor, false
	case Amp:
		return precBitwiseAnd, false
	case Shl, Shr:
		return precShift, false
	case Plus, Minus:
		return precAdditive, false
	case Star, Slash, Percent:
		return precMultiplicative, false
	case StarStar:
		return precPower, true
	default:
		return -1, false
	}
}

// Parser is a Pratt parser over a Lexer.
type Parser struct {
	lx  *Lexer
	tok Token
	err error
}

// Parse parses a complete expression.
func Parse(src string) (Node, error) {
	p := &Parser{lx: NewLexer(src)}
	p.advance()
	if p.err != nil {
		return nil, p.err
	}
	n := p.parseExpr(0)
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.Kind != EOF {
		return nil, p.errorf("unexpected %s", p.tok.Kind)
	}
	return n, nil
}

func (p *Parser) advance() {
	if p.err != nil {
		return
	}
	tok, err := p.lx.Next()
	if err != nil {
		p.err = err
	}
	p.tok = tok
}

func (p *Parser) errorf(format string, args ...any) error {
	if p.err == nil {
		p.err = &SyntaxError{Span: p.tok.Span, Msg: fmt.Sprintf(format, args...)}
	}
	return p.err
}

func (p *Parser) expect(k Kind) Token {
	tok := p.tok
	if tok.Kind != k {
		_ = p.errorf("expected %s, found %s", k, tok.Kind)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) parseExpr(minPrec int) Node {
	left := p.parsePrefix()
	for p.err == nil {
		op := p.tok.Kind
		prec, right := binaryPrec(op)
		if prec < 0 || prec < minPrec {
			break
		}
		p.advance()
		next := prec
		if !right {
			next = prec + 1
		}
		rhs := p.parseExpr(next)
		if p.err != nil {
			return nil
		}
		left = &Binary{Op: op, X: left, Y: rhs, Pos: Span{left.Span().Start, rhs.Span().End}}
	}
	return left
}

func (p *Parser) parsePrefix() Node {
	tok := p.tok
	switch tok.Kind {
	case IntLit, FloatLit, RationalLit, StringLit, SymbolLit:
		p.advance()
		return &Literal{Kind: tok.Kind, Text: tok.Text, Pos: tok.Span}
	case Minus, Plus:
		p.advance()
		x := p.parseExpr(precUnary)
		if p.err != nil {
			return nil
		}
		return &Unary{Op: tok.Kind, X: x, Pos: Span{tok.Span.Start, x.Span().End}}
	case LParen:
		p.advance()
		x := p.parseExpr(0)
		p.expect(RParen)
		return x
	case Ident:
		p.advance()
		return p.parseCall(tok)
	default:
		_ = p.errorf("unexpected %s", tok.Kind)
		return nil
	}
}

func (p *Parser) parseCall(name Token) Node {
	p.expect(LParen)
	call := &Call{Name: name.Text}
	for p.err == nil && p.tok.Kind != RParen {
		arg := p.parseExpr(0)
		if p.err != nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if p.tok.Kind != Comma {
			break
		}
		p.advance()
	}
	end := p.expect(RParen)
	call.Pos = Span{name.Span.Start, end.Span.End}
	return call
}
