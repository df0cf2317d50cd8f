package expr

import (
	"fmt"
	"strconv"
	"strings"

	"numtower/internal/bignum"
	"numtower/internal/numeric"
)

// Evaluator computes parsed expressions with a numeric dispatcher.
type Evaluator struct {
	d *numeric.Dispatcher
}

// NewEvaluator returns an evaluator routing operators through d.
// A nil d uses an untraced dispatcher.
func NewEvaluator(d *numeric.Dispatcher) *Evaluator {
	if d == nil {
		d = numeric.NewDispatcher(nil)
	}
	return &Evaluator{d: d}
}

// EvalString parses and evaluates src.
func (e *Evaluator) EvalString(src string) (any, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.Eval(n)
}

// Eval computes n. Numeric failures are returned as *numeric.Error.
func (e *Evaluator) Eval(n Node) (any, error) {
	switch n := n.(type) {
	case *Literal:
		return evalLiteral(n)
	case *Unary:
		x, err := e.Eval(n.X)
		if err != nil {
			return nil, err
		}
		v, ok := x.(numeric.Value)
		if !ok {
			return nil, &numeric.Error{Code: numeric.CodeType, Op: n.Op.String(), Message: fmt.Sprintf("undefined unary operator for %s", Format(x))}
		}
		if n.Op == Plus {
			return v, nil
		}
		return numeric.Neg(v)
	case *Binary:
		x, err := e.Eval(n.X)
		if err != nil {
			return nil, err
		}
		y, err := e.Eval(n.Y)
		if err != nil {
			return nil, err
		}
		op := opSymbol(n.Op)
		v, ok := x.(numeric.Value)
		if !ok {
			return nil, &numeric.Error{Code: numeric.CodeType, Op: op, Message: fmt.Sprintf("undefined method '%s' for %s", op, Format(x))}
		}
		return e.d.Apply(op, v, y)
	case *Call:
		return e.call(n)
	default:
		return nil, fmt.Errorf("expr: unknown node %T", n)
	}
}

func opSymbol(k Kind) string {
	return strings.Trim(k.String(), "'")
}

func (e *Evaluator) call(c *Call) (any, error) {
	args := make([]any, len(c.Args))
	for i, a := range c.Args {
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch c.Name {
	case "Rational":
		if len(args) != 1 && len(args) != 2 {
			return nil, arity(c, "1..2", len(args))
		}
		num, err := intArg(c, args[0])
		if err != nil {
			return nil, err
		}
		den := numeric.IntOf(1)
		if len(args) == 2 {
			if den, err = intArg(c, args[1]); err != nil {
				return nil, err
			}
		}
		return numeric.NewRational(num, den)
	case "coerce", "hidden_coerce":
		if len(args) != 1 {
			return nil, arity(c, "1", len(args))
		}
		v, ok := args[0].(numeric.Value)
		if !ok {
			return nil, &numeric.Error{Code: numeric.CodeType, Op: c.Name, Message: fmt.Sprintf("%s is not a number", Format(args[0]))}
		}
		if c.Name == "coerce" {
			return Coercible{Value: v}, nil
		}
		return Hidden{Value: v}, nil
	case "bignum":
		if len(args) != 1 {
			return nil, arity(c, "1", len(args))
		}
		return e.d.Apply("+", numeric.IntFromBig(bignum.IntFromLimbs(false, []uint32{0, 0, 1})), args[0])
	case "divmod":
		if len(args) != 2 {
			return nil, arity(c, "2", len(args))
		}
		x, ok := args[0].(numeric.Value)
		if !ok {
			return nil, &numeric.Error{Code: numeric.CodeType, Op: "divmod", Message: fmt.Sprintf("undefined method 'divmod' for %s", Format(args[0]))}
		}
		q, r, err := e.d.ApplyDivMod(x, args[1])
		if err != nil {
			return nil, err
		}
		return Tuple{q, r}, nil
	case "fdiv":
		if len(args) != 2 {
			return nil, arity(c, "2", len(args))
		}
		x, ok := args[0].(numeric.Value)
		if !ok {
			return nil, &numeric.Error{Code: numeric.CodeType, Op: "fdiv", Message: fmt.Sprintf("undefined method 'fdiv' for %s", Format(args[0]))}
		}
		return e.d.Apply("fdiv", x, args[1])
	default:
		return nil, &SyntaxError{Span: c.Pos, Msg: fmt.Sprintf("unknown function %q", c.Name)}
	}
}

func arity(c *Call, want string, got int) error {
	return &SyntaxError{Span: c.Pos, Msg: fmt.Sprintf("%s: wrong number of arguments (given %d, expected %s)", c.Name, got, want)}
}

func intArg(c *Call, v any) (numeric.Int, error) {
	i, ok := v.(numeric.Int)
	if !ok {
		return numeric.Int{}, &numeric.Error{Code: numeric.CodeType, Op: c.Name, Message: fmt.Sprintf("can't convert %s into Rational", Format(v))}
	}
	return i, nil
}

func evalLiteral(n *Literal) (any, error) {
	bad := func(err error) error {
		return &SyntaxError{Span: n.Pos, Msg: fmt.Sprintf("bad %s literal %q: %v", n.Kind, n.Text, err)}
	}
	switch n.Kind {
	case IntLit:
		v, err := numeric.ParseInt(n.Text)
		if err != nil {
			return nil, bad(err)
		}
		return v, nil
	case RationalLit:
		v, err := numeric.ParseInt(n.Text)
		if err != nil {
			return nil, bad(err)
		}
		return numeric.RationalOf(v), nil
	case FloatLit:
		text, err := stripUnderscores(n.Text)
		if err != nil {
			return nil, bad(err)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, bad(err)
		}
		return numeric.Float(f), nil
	case StringLit:
		s, err := unquote(n.Text)
		if err != nil {
			return nil, bad(err)
		}
		return s, nil
	case SymbolLit:
		return Symbol(n.Text[1:]), nil
	default:
		return nil, bad(fmt.Errorf("unexpected token"))
	}
}

// stripUnderscores removes digit separators; each must sit between digits.
func stripUnderscores(s string) (string, error) {
	if !strings.Contains(s, "_") {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			sb.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDec(s[i-1]) || !isDec(s[i+1]) {
			return "", fmt.Errorf("misplaced '_'")
		}
	}
	return sb.String(), nil
}

func unquote(lit string) (string, error) {
	if lit[0] == '"' {
		return strconv.Unquote(lit)
	}
	body := lit[1 : len(lit)-1]
	r := strings.NewReplacer(`\\`, `\`, `\'`, `'`)
	return r.Replace(body), nil
}
