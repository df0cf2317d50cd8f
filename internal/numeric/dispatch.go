package numeric

import (
	"math/big"

	"numtower/internal/trace"
)

// Dispatcher routes integer operators across the numeric tower and reports
// each routing decision to its tracer.
type Dispatcher struct {
	tracer trace.Tracer
}

// NewDispatcher returns a dispatcher emitting to t. A nil t disables tracing.
func NewDispatcher(t trace.Tracer) *Dispatcher {
	if t == nil {
		t = trace.Nop
	}
	return &Dispatcher{tracer: t}
}

var defaultDispatcher = NewDispatcher(trace.Nop)

// Div is x / y: floor division for integers, IEEE division for floats,
// exact division for rationals, the coercion protocol otherwise.
func (d *Dispatcher) Div(x Int, y any) (Value, error) { return d.single(opDiv, x, y) }

// Mod is x % y with the sign of y.
func (d *Dispatcher) Mod(x Int, y any) (Value, error) { return d.single(opMod, x, y) }

// DivMod returns the floored quotient and the modulus together.
func (d *Dispatcher) DivMod(x Int, y any) (q, r Value, err error) { return d.apply(opDivMod, x, y) }

func (d *Dispatcher) Add(x Int, y any) (Value, error) { return d.single(opAdd, x, y) }
func (d *Dispatcher) Sub(x Int, y any) (Value, error) { return d.single(opSub, x, y) }
func (d *Dispatcher) Mul(x Int, y any) (Value, error) { return d.single(opMul, x, y) }

// FDiv divides as floats; an integer zero divisor yields ±Inf or NaN.
func (d *Dispatcher) FDiv(x Int, y any) (Value, error) { return d.single(opFDiv, x, y) }

// Pow is x ** y. Negative integer exponents give a Rational.
func (d *Dispatcher) Pow(x Int, y any) (Value, error) { return d.single(opPow, x, y) }

func (d *Dispatcher) And(x Int, y any) (Value, error) { return d.single(opAnd, x, y) }
func (d *Dispatcher) Or(x Int, y any) (Value, error)  { return d.single(opOr, x, y) }
func (d *Dispatcher) Xor(x Int, y any) (Value, error) { return d.single(opXor, x, y) }
func (d *Dispatcher) Shl(x Int, y any) (Value, error) { return d.single(opShl, x, y) }
func (d *Dispatcher) Shr(x Int, y any) (Value, error) { return d.single(opShr, x, y) }

// Div divides with the default, untraced dispatcher.
func Div(x Int, y any) (Value, error) { return defaultDispatcher.Div(x, y) }

func Mod(x Int, y any) (Value, error)             { return defaultDispatcher.Mod(x, y) }
func DivMod(x Int, y any) (q, r Value, err error) { return defaultDispatcher.DivMod(x, y) }
func Add(x Int, y any) (Value, error)             { return defaultDispatcher.Add(x, y) }
func Sub(x Int, y any) (Value, error)             { return defaultDispatcher.Sub(x, y) }
func Mul(x Int, y any) (Value, error)             { return defaultDispatcher.Mul(x, y) }
func FDiv(x Int, y any) (Value, error)            { return defaultDispatcher.FDiv(x, y) }
func Pow(x Int, y any) (Value, error)             { return defaultDispatcher.Pow(x, y) }

// Apply evaluates x op y for any tower value on the left, op being one of
// + - * / % ** & | ^ << >> fdiv.
func (d *Dispatcher) Apply(op string, x Value, y any) (Value, error) {
	o, ok := operators[op]
	if !ok || o == opDivMod {
		return nil, typeError(op, "undefined operator %s", op)
	}
	left, ok := asTower(x)
	if !ok {
		return nil, typeError(op, "undefined method '%s' for %s", op, describe(x))
	}
	return d.single(o, left, y)
}

// ApplyDivMod is DivMod for any tower value on the left.
func (d *Dispatcher) ApplyDivMod(x Value, y any) (q, r Value, err error) {
	left, ok := asTower(x)
	if !ok {
		return nil, nil, typeError("divmod", "undefined method 'divmod' for %s", describe(x))
	}
	return d.apply(opDivMod, left, y)
}

// Neg returns -x for a tower value.
func Neg(x Value) (Value, error) {
	switch v := x.(type) {
	case Int:
		return v.Neg(), nil
	case Float:
		return -v, nil
	case Rational:
		return ratNeg(v), nil
	default:
		return nil, typeError("-@", "undefined method '-@' for %s", describe(x))
	}
}

func (d *Dispatcher) single(o *operator, x Value, y any) (Value, error) {
	v, _, err := d.apply(o, x, y)
	return v, err
}

// apply runs one dispatch: tower operands go straight to a kernel, anything
// else must offer a coercion whose pair is computed without further
// redirection.
func (d *Dispatcher) apply(o *operator, x Value, y any) (Value, Value, error) {
	if v, ok := towerValue(y); ok {
		a, b, route, err := compute(o, x, v)
		d.point(o, route, x, y, err)
		return a, b, err
	}

	hook, route, ok := coercion(y)
	if !ok {
		err := cantCoerce(o.sym, y, x.Kind())
		d.point(o, "fail", x, y, err)
		return nil, nil, err
	}
	pair, err := hook(y, x)
	if err != nil {
		d.point(o, route, x, y, err)
		return nil, nil, err
	}
	left, lok := asTower(pair.Left)
	right, rok := asTower(pair.Right)
	if !lok || !rok {
		err := typeError(o.sym, "coerce must return [x, y] of numerics, %s did not", describe(y))
		d.point(o, route, x, y, err)
		return nil, nil, err
	}
	a, b, _, err := compute(o, left, right)
	d.point(o, route, x, y, err)
	return a, b, err
}

// compute picks the common representation: any Float makes both floats,
// otherwise any Rational makes both rationals, otherwise both are Int.
func compute(o *operator, l, r Value) (Value, Value, string, error) {
	lf, lIsFloat := l.(Float)
	rf, rIsFloat := r.(Float)
	_, lIsRat := l.(Rational)
	_, rIsRat := r.(Rational)

	switch {
	case lIsFloat || rIsFloat:
		if o.floats == nil {
			return nil, nil, "fail", cantCoerce(o.sym, foreignSide(l, r), KindInt)
		}
		if !lIsFloat {
			lf = Float(toFloat(l))
		}
		if !rIsFloat {
			rf = Float(toFloat(r))
		}
		a, b, err := o.floats(float64(lf), float64(rf))
		return a, b, "float", err
	case lIsRat || rIsRat:
		if o.rats == nil {
			return nil, nil, "fail", cantCoerce(o.sym, foreignSide(l, r), KindInt)
		}
		a, b, err := o.rats(toRational(l), toRational(r))
		return a, b, "rational", err
	default:
		a, b, err := o.ints(l.(Int), r.(Int))
		return a, b, "int", err
	}
}

func foreignSide(l, r Value) Value {
	if _, ok := r.(Int); ok {
		return l
	}
	return r
}

func toFloat(v Value) float64 {
	switch x := v.(type) {
	case Int:
		return x.Float64()
	case Float:
		return float64(x)
	case Rational:
		return x.Float64()
	default:
		return 0
	}
}

func toRational(v Value) Rational {
	switch x := v.(type) {
	case Rational:
		return x
	case Int:
		return RationalOf(x)
	default:
		return Rational{}
	}
}

// towerValue recognises members of the tower and the Go types standing in
// for them.
func towerValue(v any) (Value, bool) {
	switch x := v.(type) {
	case Float:
		return x, true
	case float64:
		return Float(x), true
	case float32:
		return Float(x), true
	case Rational:
		return x, true
	case *big.Rat:
		if x == nil {
			return nil, false
		}
		r, err := NewRational(fromStdBig(x.Num()), fromStdBig(x.Denom()))
		if err != nil {
			return nil, false
		}
		return r, true
	}
	if i, ok := IntFromGo(v); ok {
		return i, true
	}
	return nil, false
}

// asTower accepts only the concrete tower types; a coercion pair holding
// anything else is malformed.
func asTower(v Value) (Value, bool) {
	switch v.(type) {
	case Int, Float, Rational:
		return v, true
	default:
		return nil, false
	}
}

func (d *Dispatcher) point(o *operator, route string, x Value, y any, err error) {
	if !d.tracer.Enabled() {
		return
	}
	if err != nil && route != "fail" {
		route += ",fail"
	}
	trace.Point(d.tracer, &trace.Event{
		Scope:  trace.ScopeDispatch,
		Name:   o.sym,
		Detail: "route=" + route,
		Failed: err != nil,
		Extra: map[string]string{
			"a": x.String(),
			"b": operandText(y),
		},
	})
}

func operandText(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return describe(v)
}
