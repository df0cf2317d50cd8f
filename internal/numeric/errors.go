package numeric

import (
	"errors"
	"fmt"

	"numtower/internal/bignum"
)

// Code identifies the kind of numeric failure.
type Code int

// Stable error codes - do not change values.
const (
	CodeZeroDivision Code = 2001 // NUM2001: ZeroDivisionError
	CodeType         Code = 2002 // NUM2002: TypeError
	CodeRange        Code = 2003 // NUM2003: RangeError
)

// String returns the code as "NUM2001" format.
func (c Code) String() string {
	return fmt.Sprintf("NUM%d", int(c))
}

// Kind returns the error class name reported to users.
func (c Code) Kind() string {
	switch c {
	case CodeZeroDivision:
		return "ZeroDivisionError"
	case CodeType:
		return "TypeError"
	case CodeRange:
		return "RangeError"
	default:
		return "Error"
	}
}

// Error is a numeric operation failure.
type Error struct {
	Code    Code
	Op      string // operator symbol, e.g. "/"
	Message string
	Err     error // underlying kernel error, if any
}

// Sentinels for errors.Is; they match any *Error with the same Code.
var (
	ErrZeroDivision = &Error{Code: CodeZeroDivision}
	ErrType         = &Error{Code: CodeType}
	ErrRange        = &Error{Code: CodeRange}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.Kind()
	}
	return fmt.Sprintf("%s: %s", e.Code.Kind(), e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func zeroDivision(op string) *Error {
	return &Error{Code: CodeZeroDivision, Op: op, Message: "divided by 0"}
}

func cantCoerce(op string, v any, into Kind) *Error {
	return &Error{Code: CodeType, Op: op, Message: fmt.Sprintf("%s can't be coerced into %s", describe(v), into)}
}

func typeError(op, format string, args ...any) *Error {
	return &Error{Code: CodeType, Op: op, Message: fmt.Sprintf(format, args...)}
}

// bignumErr maps magnitude kernel failures onto numeric error codes.
func bignumErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, bignum.ErrDivByZero):
		return &Error{Code: CodeZeroDivision, Op: op, Message: "divided by 0", Err: err}
	case errors.Is(err, bignum.ErrMaxLimbs):
		return &Error{Code: CodeRange, Op: op, Message: "integer size limit exceeded", Err: err}
	default:
		return &Error{Code: CodeRange, Op: op, Message: err.Error(), Err: err}
	}
}
