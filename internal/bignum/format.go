package bignum

import (
	"fmt"
	"strings"
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// FormatUint returns the decimal representation of u.
func FormatUint(u BigUint) string {
	s, _ := formatUintBase(u, 10) // base 10 is always valid
	return s
}

// FormatInt returns the decimal representation of i.
func FormatInt(i BigInt) string {
	s := FormatUint(i.mag)
	if i.neg {
		return "-" + s
	}
	return s
}

// FormatIntBase returns the representation of i in the given base (2..36),
// using lowercase letters for digits above 9.
func FormatIntBase(i BigInt, base int) (string, error) {
	s, err := formatUintBase(i.mag, base)
	if err != nil {
		return "", err
	}
	if i.neg {
		return "-" + s, nil
	}
	return s, nil
}

func formatUintBase(u BigUint, base int) (string, error) {
	if base < 2 || base > len(digitChars) {
		return "", fmt.Errorf("%w: base %d out of range 2..36", ErrParse, base)
	}
	if u.IsZero() {
		return "0", nil
	}

	chunk, width := chunkForBase(uint32(base)) //nolint:gosec // G115: base checked above.

	cur := u
	var parts []uint32
	for !cur.IsZero() {
		q, r, err := UintDivModSmall(cur, chunk)
		if err != nil {
			return "", err
		}
		parts = append(parts, r)
		cur = q
	}

	var sb strings.Builder
	sb.Grow(len(parts) * width)
	writeChunk(&sb, parts[len(parts)-1], uint32(base), 0) //nolint:gosec // G115: base checked above.
	for i := len(parts) - 2; i >= 0; i-- {
		writeChunk(&sb, parts[i], uint32(base), width) //nolint:gosec // G115: base checked above.
	}
	return sb.String(), nil
}

// chunkForBase returns the largest power of base that fits in a limb and its exponent.
func chunkForBase(base uint32) (chunk uint32, width int) {
	chunk = base
	width = 1
	for uint64(chunk)*uint64(base) <= 1<<32-1 {
		chunk *= base
		width++
	}
	return chunk, width
}

// writeChunk writes v in the given base, left-padded with zeros to pad digits.
func writeChunk(sb *strings.Builder, v, base uint32, pad int) {
	var buf [32]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digitChars[v%base]
		v /= base
	}
	for len(buf)-i < pad {
		i--
		buf[i] = '0'
	}
	sb.Write(buf[i:])
}
