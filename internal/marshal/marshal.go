// Package marshal reads and writes integers in the Ruby Marshal 4.8 format.
//
// Values in the fixnum range [-2^30, 2^30-1] are written as 'i' followed by a
// packed integer. Larger magnitudes use the bignum form: 'l', a sign byte,
// the packed count of 16-bit words and the magnitude bytes, little-endian.
package marshal

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"

	"numtower/internal/bignum"
)

const (
	majorVersion = 4
	minorVersion = 8

	typeFixnum = 'i'
	typeBignum = 'l'

	maxFixnum = 1<<30 - 1
	minFixnum = -(1 << 30)
)

var (
	// ErrFormat reports a malformed or unsupported Marshal stream.
	ErrFormat = errors.New("marshal: bad format")
	// ErrVersion reports a stream with an unknown version header.
	ErrVersion = errors.New("marshal: incompatible version")
)

// Dump returns the complete Marshal stream for v, version header included.
func Dump(v bignum.BigInt) ([]byte, error) {
	return AppendInt([]byte{majorVersion, minorVersion}, v)
}

// Load decodes a complete Marshal stream holding one integer.
func Load(data []byte) (bignum.BigInt, error) {
	if len(data) < 2 {
		return bignum.BigInt{}, fmt.Errorf("%w: short header", ErrFormat)
	}
	if data[0] != majorVersion || data[1] > minorVersion {
		return bignum.BigInt{}, fmt.Errorf("%w: %d.%d", ErrVersion, data[0], data[1])
	}
	r := bytes.NewReader(data[2:])
	v, err := ReadInt(r)
	if err != nil {
		return bignum.BigInt{}, err
	}
	if r.Len() != 0 {
		return bignum.BigInt{}, fmt.Errorf("%w: %d trailing bytes", ErrFormat, r.Len())
	}
	return v, nil
}

// AppendInt appends the Marshal body for v (without header) to dst.
func AppendInt(dst []byte, v bignum.BigInt) ([]byte, error) {
	if small, ok := v.Int64(); ok && small >= minFixnum && small <= maxFixnum {
		dst = append(dst, typeFixnum)
		return appendPacked(dst, small), nil
	}

	sign := byte('+')
	if v.IsNeg() {
		sign = '-'
	}
	limbs := v.Abs().Limbs()
	raw := make([]byte, 0, len(limbs)*4)
	for _, limb := range limbs {
		raw = append(raw, byte(limb), byte(limb>>8), byte(limb>>16), byte(limb>>24))
	}
	for len(raw) > 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	if len(raw)%2 == 1 {
		raw = append(raw, 0)
	}
	words, err := safecast.Conv[int32](len(raw) / 2)
	if err != nil {
		return nil, fmt.Errorf("%w: bignum too long: %w", ErrFormat, err)
	}

	dst = append(dst, typeBignum, sign)
	dst = appendPacked(dst, int64(words))
	return append(dst, raw...), nil
}

// ReadInt decodes one Marshal integer body from r.
func ReadInt(r io.ByteReader) (bignum.BigInt, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return bignum.BigInt{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	switch tag {
	case typeFixnum:
		v, err := readPacked(r)
		if err != nil {
			return bignum.BigInt{}, err
		}
		return bignum.IntFromInt64(v), nil
	case typeBignum:
		return readBignum(r)
	default:
		return bignum.BigInt{}, fmt.Errorf("%w: unexpected type byte %q", ErrFormat, tag)
	}
}

func readBignum(r io.ByteReader) (bignum.BigInt, error) {
	sign, err := r.ReadByte()
	if err != nil {
		return bignum.BigInt{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if sign != '+' && sign != '-' {
		return bignum.BigInt{}, fmt.Errorf("%w: bad bignum sign %q", ErrFormat, sign)
	}
	words, err := readPacked(r)
	if err != nil {
		return bignum.BigInt{}, err
	}
	n, err := safecast.Conv[int](words)
	if err != nil || n < 0 || n > bignum.MaxLimbs*2 {
		return bignum.BigInt{}, fmt.Errorf("%w: bad bignum length %d", ErrFormat, words)
	}

	limbs := make([]uint32, (n+1)/2)
	for i := range n * 2 {
		b, err := r.ReadByte()
		if err != nil {
			return bignum.BigInt{}, fmt.Errorf("%w: truncated bignum: %w", ErrFormat, err)
		}
		limbs[i/4] |= uint32(b) << (8 * (i % 4))
	}
	return bignum.IntFromLimbs(sign == '-', limbs), nil
}

// appendPacked writes v with the Marshal compact integer encoding.
func appendPacked(dst []byte, v int64) []byte {
	switch {
	case v == 0:
		return append(dst, 0)
	case v > 0 && v < 123:
		return append(dst, byte(v+5))
	case v < 0 && v > -124:
		return append(dst, byte(v-5))
	}
	var buf [8]byte
	n := 0
	for n < len(buf) {
		buf[n] = byte(v)
		n++
		v >>= 8
		if v == 0 || v == -1 {
			break
		}
	}
	count := byte(n)
	if v < 0 {
		count = byte(-n)
	}
	dst = append(dst, count)
	return append(dst, buf[:n]...)
}

func readPacked(r io.ByteReader) (int64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	c := int64(int8(b))
	switch {
	case c == 0:
		return 0, nil
	case c > 4:
		return c - 5, nil
	case c < -4:
		return c + 5, nil
	case c > 0:
		var x int64
		for i := range c {
			b, err := r.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("%w: %w", ErrFormat, err)
			}
			x |= int64(b) << (8 * i)
		}
		return x, nil
	default:
		x := int64(-1)
		for i := range -c {
			b, err := r.ReadByte()
			if err != nil {
				return 0, fmt.Errorf("%w: %w", ErrFormat, err)
			}
			x &^= 0xff << (8 * i)
			x |= int64(b) << (8 * i)
		}
		return x, nil
	}
}
