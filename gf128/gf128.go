// Package gf128 implements arithmetic in GF(2^128) defined by
// the irreducible polynomial
//
//	x^128 + x^7 + x^2 + x + 1.
//
// The field has characteristic 2, so addition is performed with
// XOR. Multiplication is polynomial multiplication reduced
// modulo the polynomial.
//
// Elements are exchanged as 16-byte blocks. GCM numbers the
// bits of a block so that the most significant bit of byte 0 is
// the coefficient of x^0 and the least significant bit of byte
// 15 is the coefficient of x^127. XEX (and XTS) use the natural
// little-endian order instead, where bit i of the 128-bit
// little-endian integer is the coefficient of x^i. The two
// orders differ only by reversing the bits within every byte;
// see Reflect.
//
// For more information, see
// https://csrc.nist.gov/publications/detail/sp/800-38d/final
package gf128

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"math/bits"
)

// Size is the size in bytes of an encoded element.
const Size = 16

// ErrDivisionByZero is returned when inverting zero.
var ErrDivisionByZero = errors.New("gf128: division by zero")

// invExp is 2^128 - 2. The multiplicative group has order
// 2^128 - 1, so x^(2^128-2) = x^-1 for all nonzero x.
var invExp = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(2))

// Element is an element of GF(2^128).
//
// The zero value is the additive identity. Elements are values:
// every operation returns a new Element and leaves its operands
// untouched.
type Element struct {
	// lo holds the coefficients of x^0 through x^63 and hi
	// those of x^64 through x^127. Bit i of lo is the
	// coefficient of x^i.
	lo, hi uint64
}

// One returns the multiplicative identity.
func One() Element {
	return Element{lo: 1}
}

// FromUint64s returns the element whose coefficients of x^0
// through x^63 are the bits of lo and whose coefficients of x^64
// through x^127 are the bits of hi.
func FromUint64s(lo, hi uint64) Element {
	return Element{lo: lo, hi: hi}
}

// Uint64s returns the natural-order halves of x.
//
// See FromUint64s.
func (x Element) Uint64s() (lo, hi uint64) {
	return x.lo, x.hi
}

// Reflect reverses the order of the bits within each byte of b.
//
// It maps a block in GCM bit order to the same polynomial in
// natural order, and vice versa.
func Reflect(b [Size]byte) [Size]byte {
	for i, c := range b {
		b[i] = bits.Reverse8(c)
	}
	return b
}

// FromNatural decodes a block in natural (XEX) bit order.
func FromNatural(b [Size]byte) Element {
	return Element{
		lo: binary.LittleEndian.Uint64(b[0:8]),
		hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Natural encodes x in natural (XEX) bit order.
func (x Element) Natural() [Size]byte {
	var b [Size]byte
	binary.LittleEndian.PutUint64(b[0:8], x.lo)
	binary.LittleEndian.PutUint64(b[8:16], x.hi)
	return b
}

// FromBlock decodes a block in GCM bit order.
func FromBlock(b [Size]byte) Element {
	return FromNatural(Reflect(b))
}

// Block encodes x in GCM bit order.
func (x Element) Block() [Size]byte {
	return Reflect(x.Natural())
}

// FromBytes decodes a 16-byte slice in GCM bit order.
func FromBytes(b []byte) (Element, error) {
	if len(b) != Size {
		return Element{}, fmt.Errorf("gf128: invalid element size: %d", len(b))
	}
	return FromBlock(*(*[Size]byte)(b)), nil
}

// Bytes returns x as a 16-byte slice in GCM bit order.
func (x Element) Bytes() []byte {
	b := x.Block()
	return b[:]
}

// FromCoefficients returns the sum of x^e for each e in exps.
//
// Repeated exponents are set once, not added.
func FromCoefficients(exps []int) (Element, error) {
	var z Element
	for _, e := range exps {
		switch {
		case e < 0 || e >= 128:
			return Element{}, fmt.Errorf("gf128: exponent out of range: %d", e)
		case e < 64:
			z.lo |= 1 << uint(e)
		default:
			z.hi |= 1 << uint(e-64)
		}
	}
	return z, nil
}

// Coefficients returns, in ascending order, the exponents of the
// nonzero terms of x.
func (x Element) Coefficients() []int {
	exps := make([]int, 0, bits.OnesCount64(x.lo)+bits.OnesCount64(x.hi))
	for i, w := range [2]uint64{x.lo, x.hi} {
		for w != 0 {
			exps = append(exps, 64*i+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return exps
}

// IsZero reports whether x is the additive identity.
func (x Element) IsZero() bool {
	return x.lo|x.hi == 0
}

// IsOne reports whether x is the multiplicative identity.
func (x Element) IsOne() bool {
	return x.lo == 1 && x.hi == 0
}

// Cmp compares x and y as 128-bit integers in natural order,
// returning -1, 0, or +1.
func (x Element) Cmp(y Element) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return +1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return +1
	}
	return 0
}

// String returns the GCM block encoding of x in hex.
func (x Element) String() string {
	return fmt.Sprintf("%x", x.Block())
}

// Add returns x + y.
func (x Element) Add(y Element) Element {
	return Element{lo: x.lo ^ y.lo, hi: x.hi ^ y.hi}
}

// Mul returns x * y.
func (x Element) Mul(y Element) Element {
	return mul(x, y)
}

// Square returns x * x.
func (x Element) Square() Element {
	return mul(x, x)
}

// MulX returns x * x^1, the "doubling" used by XEX and XTS to
// advance the tweak.
func (x Element) MulX() Element {
	// h is all ones if the coefficient of x^127 is set.
	h := -(x.hi >> 63)

	// x <<= 1
	hi := x.hi<<1 | x.lo>>63
	lo := x.lo << 1

	// x^128 = x^7 + x^2 + x + 1
	lo ^= h & 0x87

	return Element{lo: lo, hi: hi}
}

// Pow returns x^e.
//
// Pow panics if e is negative.
func (x Element) Pow(e *big.Int) Element {
	if e.Sign() < 0 {
		panic("gf128: negative exponent")
	}
	z := One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		z = z.Square()
		if e.Bit(i) == 1 {
			z = z.Mul(x)
		}
	}
	return z
}

// Inverse returns x^-1.
//
// It returns ErrDivisionByZero if x is zero.
func (x Element) Inverse() (Element, error) {
	if x.IsZero() {
		return Element{}, ErrDivisionByZero
	}
	return x.Pow(invExp), nil
}

// Div returns x / y.
//
// It returns ErrDivisionByZero if y is zero.
func (x Element) Div(y Element) (Element, error) {
	inv, err := y.Inverse()
	if err != nil {
		return Element{}, err
	}
	return x.Mul(inv), nil
}

// Sqrt returns the unique y such that y * y = x.
//
// Squaring is the Frobenius automorphism, which has order 128,
// so y = x^(2^127): 127 repeated squarings.
func (x Element) Sqrt() Element {
	for i := 0; i < 127; i++ {
		x = x.Square()
	}
	return x
}

// MarshalBinary implements encoding.BinaryMarshaler using the
// GCM block encoding.
func (x Element) MarshalBinary() ([]byte, error) {
	return x.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (x *Element) UnmarshalBinary(data []byte) error {
	z, err := FromBytes(data)
	if err != nil {
		return err
	}
	*x = z
	return nil
}

// MarshalText implements encoding.TextMarshaler. The text form
// is the standard base64 encoding of the GCM block.
func (x Element) MarshalText() ([]byte, error) {
	b := x.Block()
	out := make([]byte, base64.StdEncoding.EncodedLen(Size))
	base64.StdEncoding.Encode(out, b[:])
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Element) UnmarshalText(text []byte) error {
	b := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(b, text)
	if err != nil {
		return fmt.Errorf("gf128: %w", err)
	}
	return x.UnmarshalBinary(b[:n])
}
