package numeric

import "reflect"

// Kind enumerates the members of the numeric tower.
type Kind uint8

const (
	KindInt Kind = iota + 1
	KindFloat
	KindRational
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindRational:
		return "Rational"
	default:
		return "unknown"
	}
}

// Value is a number the tower can compute with.
type Value interface {
	Kind() Kind
	String() string
}

// Namer lets foreign operands choose the class name used in error messages.
type Namer interface {
	TypeName() string
}

// describe names v the way TypeError messages report operands.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case Namer:
		return x.TypeName()
	case Value:
		return x.Kind().String()
	case string:
		return "String"
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return reflect.TypeOf(v).String()
	}
}
