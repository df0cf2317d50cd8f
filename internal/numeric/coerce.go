package numeric

import (
	"reflect"
	"sync"
)

// Pair is the result of a coercion: both operands in a common representation.
// Left stands for the integer receiver, Right for the foreign operand.
type Pair struct {
	Left  Value
	Right Value
}

// Coercer is implemented by foreign operands that know how to combine with
// the numeric tower. x is the integer on the left-hand side.
type Coercer interface {
	Coerce(x Value) (Pair, error)
}

// CoerceFunc is a hidden coercion for operands of type T.
type CoerceFunc[T any] func(operand T, x Value) (Pair, error)

type coerceHook func(operand any, x Value) (Pair, error)

var (
	hiddenMu     sync.RWMutex
	hiddenCoerce = map[reflect.Type]coerceHook{}
)

// RegisterCoercion installs fn as the coercion for operands of dynamic type T
// without adding a method to T. Only the dispatcher calls it. The returned
// function removes the registration.
func RegisterCoercion[T any](fn CoerceFunc[T]) (unregister func()) {
	typ := reflect.TypeFor[T]()
	hook := func(operand any, x Value) (Pair, error) {
		return fn(operand.(T), x)
	}
	hiddenMu.Lock()
	hiddenCoerce[typ] = hook
	hiddenMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			hiddenMu.Lock()
			delete(hiddenCoerce, typ)
			hiddenMu.Unlock()
		})
	}
}

func lookupHidden(v any) (coerceHook, bool) {
	if v == nil {
		return nil, false
	}
	hiddenMu.RLock()
	defer hiddenMu.RUnlock()
	hook, ok := hiddenCoerce[reflect.TypeOf(v)]
	return hook, ok
}

// coercion finds the capability of v: a Coercer method first, then a hidden
// registration. The string names the route for tracing.
func coercion(v any) (coerceHook, string, bool) {
	if c, ok := v.(Coercer); ok {
		return func(_ any, x Value) (Pair, error) { return c.Coerce(x) }, "coerce", true
	}
	if hook, ok := lookupHidden(v); ok {
		return hook, "hidden_coerce", true
	}
	return nil, "", false
}
