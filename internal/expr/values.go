package expr

import (
	"strconv"
	"strings"

	"numtower/internal/numeric"
)

// Symbol is a :name literal. It is not numeric and cannot be coerced.
type Symbol string

func (s Symbol) String() string   { return ":" + string(s) }
func (s Symbol) TypeName() string { return "Symbol" }

// Coercible wraps a number behind a public Coerce method: dividing 6 by
// coerce(3) computes 6 / 3.
type Coercible struct {
	Value numeric.Value
}

func (c Coercible) Coerce(x numeric.Value) (numeric.Pair, error) {
	return numeric.Pair{Left: x, Right: c.Value}, nil
}

func (c Coercible) String() string   { return "#<Coercible " + c.Value.String() + ">" }
func (c Coercible) TypeName() string { return "Coercible" }

// Hidden wraps a number whose coercion is only reachable through the
// numeric dispatcher; Hidden has no Coerce method.
type Hidden struct {
	Value numeric.Value
}

func (h Hidden) String() string   { return "#<Hidden " + h.Value.String() + ">" }
func (h Hidden) TypeName() string { return "Hidden" }

func init() {
	numeric.RegisterCoercion(func(h Hidden, x numeric.Value) (numeric.Pair, error) {
		return numeric.Pair{Left: x, Right: h.Value}, nil
	})
}

// Tuple is the result of divmod.
type Tuple []any

func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = Format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Format renders an evaluation result: numbers via their own String,
// strings quoted.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case interface{ String() string }:
		return x.String()
	default:
		return "#<object>"
	}
}
