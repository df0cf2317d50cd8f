package bignum

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse reports malformed integer text.
var ErrParse = errors.New("invalid numeric format")

// ParseInt parses an optionally signed integer literal. Underscores between
// digits are ignored and 0x, 0b and 0o prefixes select the base.
func ParseInt(s string) (BigInt, error) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" {
		switch s[0] {
		case '+':
			s = s[1:]
		case '-':
			neg = true
			s = s[1:]
		}
	}
	u, err := ParseUintLiteral(s)
	if err != nil {
		return BigInt{}, err
	}
	return IntFromUint(neg, u), nil
}

// ParseUintLiteral parses an unsigned literal with an optional base prefix.
func ParseUintLiteral(s string) (BigUint, error) {
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
			s = s[2:]
		case 'b', 'B':
			base = 2
			s = s[2:]
		case 'o', 'O':
			base = 8
			s = s[2:]
		}
	}
	return ParseUintBase(s, base)
}

// ParseUintBase parses digits in the given base (2..36). Underscores are
// allowed between digits.
func ParseUintBase(s string, base int) (BigUint, error) {
	if base < 2 || base > len(digitChars) {
		return BigUint{}, fmt.Errorf("%w: base %d out of range 2..36", ErrParse, base)
	}
	if s == "" || s[0] == '_' || s[len(s)-1] == '_' || strings.Contains(s, "__") {
		return BigUint{}, fmt.Errorf("%w: %q", ErrParse, s)
	}

	b := uint32(base) //nolint:gosec // G115: base checked above.
	chunk, width := chunkForBase(b)

	var out BigUint
	var acc uint32
	n := 0
	flush := func(mul uint32) error {
		var err error
		out, err = UintMulSmall(out, mul)
		if err != nil {
			return err
		}
		out, err = UintAddSmall(out, acc)
		acc, n = 0, 0
		return err
	}
	for i := range len(s) {
		ch := s[i]
		if ch == '_' {
			continue
		}
		d, ok := digitValue(ch, b)
		if !ok {
			return BigUint{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		acc = acc*b + d
		n++
		if n == width {
			if err := flush(chunk); err != nil {
				return BigUint{}, err
			}
		}
	}
	if n > 0 {
		mul := uint32(1)
		for range n {
			mul *= b
		}
		if err := flush(mul); err != nil {
			return BigUint{}, err
		}
	}
	return out, nil
}

func digitValue(ch byte, base uint32) (uint32, bool) {
	var d uint32
	switch {
	case ch >= '0' && ch <= '9':
		d = uint32(ch - '0')
	case ch >= 'a' && ch <= 'z':
		d = 10 + uint32(ch-'a')
	case ch >= 'A' && ch <= 'Z':
		d = 10 + uint32(ch-'A')
	default:
		return 0, false
	}
	return d, d < base
}
