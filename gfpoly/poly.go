// Package gfpoly implements polynomials with coefficients in
// GF(2^128).
//
// A Poly is immutable. Every operation returns a new Poly and
// leaves its operands untouched, so polynomials can be shared
// freely between goroutines.
package gfpoly

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ericlagergren/gcmforge/gf128"
)

var (
	// ErrDivisionByZero is returned when dividing by the zero
	// polynomial or making the zero polynomial monic.
	ErrDivisionByZero = fmt.Errorf("gfpoly: %w", gf128.ErrDivisionByZero)
	// ErrNotSquare is returned by Sqrt when the polynomial has
	// a nonzero odd-degree coefficient.
	ErrNotSquare = errors.New("gfpoly: not a square")
)

// zeroCoeffs is the canonical form of the zero polynomial. It
// must never be modified.
var zeroCoeffs = []gf128.Element{{}}

// Poly is a polynomial over GF(2^128).
//
// The zero value is the zero polynomial.
type Poly struct {
	// c holds the coefficients, constant term first, with
	// trailing zeros trimmed. It is nil or has at least one
	// element.
	c []gf128.Element
}

// New returns the polynomial with the given coefficients,
// constant term first.
func New(coeffs ...gf128.Element) Poly {
	c := make([]gf128.Element, len(coeffs))
	copy(c, coeffs)
	return trim(c)
}

// trim canonicalizes c, taking ownership of it.
func trim(c []gf128.Element) Poly {
	n := len(c)
	for n > 0 && c[n-1].IsZero() {
		n--
	}
	if n == 0 {
		return Poly{}
	}
	return Poly{c: c[:n:n]}
}

// FromBlocks decodes a polynomial from GCM blocks, constant term
// first.
func FromBlocks(blocks [][gf128.Size]byte) Poly {
	c := make([]gf128.Element, len(blocks))
	for i, b := range blocks {
		c[i] = gf128.FromBlock(b)
	}
	return trim(c)
}

// Blocks encodes p as GCM blocks, constant term first.
//
// The zero polynomial is a single zero block.
func (p Poly) Blocks() [][gf128.Size]byte {
	c := p.coeffs()
	b := make([][gf128.Size]byte, len(c))
	for i, x := range c {
		b[i] = x.Block()
	}
	return b
}

// Zero returns the zero polynomial.
func Zero() Poly {
	return Poly{}
}

// One returns the constant polynomial 1.
func One() Poly {
	return Constant(gf128.One())
}

// X returns the polynomial X.
func X() Poly {
	return Poly{c: []gf128.Element{{}, gf128.One()}}
}

// Constant returns the constant polynomial c.
func Constant(c gf128.Element) Poly {
	return trim([]gf128.Element{c})
}

func (p Poly) coeffs() []gf128.Element {
	if len(p.c) == 0 {
		return zeroCoeffs
	}
	return p.c
}

// Coeffs returns a copy of the coefficients of p, constant term
// first.
func (p Poly) Coeffs() []gf128.Element {
	c := p.coeffs()
	out := make([]gf128.Element, len(c))
	copy(out, c)
	return out
}

// Degree returns the degree of p.
//
// The degree of the zero polynomial is 0; use IsZero to tell it
// apart from a nonzero constant.
func (p Poly) Degree() int {
	return len(p.coeffs()) - 1
}

// Coeff returns the coefficient of X^i, which is zero if i is
// out of range.
func (p Poly) Coeff(i int) gf128.Element {
	if i < 0 || i >= len(p.c) {
		return gf128.Element{}
	}
	return p.c[i]
}

// Lead returns the leading coefficient of p.
func (p Poly) Lead() gf128.Element {
	return p.Coeff(p.Degree())
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.c) == 0
}

// IsOne reports whether p is the constant polynomial 1.
func (p Poly) IsOne() bool {
	return len(p.c) == 1 && p.c[0].IsOne()
}

// IsMonic reports whether the leading coefficient of p is 1.
func (p Poly) IsMonic() bool {
	return p.Lead().IsOne()
}

// Equal reports whether p and q are the same polynomial.
func (p Poly) Equal(q Poly) bool {
	if len(p.c) != len(q.c) {
		return false
	}
	for i := range p.c {
		if p.c[i] != q.c[i] {
			return false
		}
	}
	return true
}

// Add returns p + q, which is also p - q.
func (p Poly) Add(q Poly) Poly {
	a, b := p.c, q.c
	if len(a) < len(b) {
		a, b = b, a
	}
	c := make([]gf128.Element, len(a))
	copy(c, a)
	for i, x := range b {
		c[i] = c[i].Add(x)
	}
	return trim(c)
}

// Mul returns p * q.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	c := make([]gf128.Element, len(p.c)+len(q.c)-1)
	for i, x := range p.c {
		if x.IsZero() {
			continue
		}
		for j, y := range q.c {
			c[i+j] = c[i+j].Add(x.Mul(y))
		}
	}
	return trim(c)
}

// Scale returns p * s.
func (p Poly) Scale(s gf128.Element) Poly {
	c := make([]gf128.Element, len(p.c))
	for i, x := range p.c {
		c[i] = x.Mul(s)
	}
	return trim(c)
}

// Pow returns p^k.
func (p Poly) Pow(k uint64) Poly {
	z := One()
	for b := p; k > 0; k >>= 1 {
		if k&1 == 1 {
			z = z.Mul(b)
		}
		if k > 1 {
			b = b.Mul(b)
		}
	}
	return z
}

// DivMod returns the quotient and remainder of p / q.
//
// It returns ErrDivisionByZero if q is the zero polynomial.
func (p Poly) DivMod(q Poly) (quo, rem Poly, err error) {
	if q.IsZero() {
		return Poly{}, Poly{}, ErrDivisionByZero
	}
	inv, err := q.Lead().Inverse()
	if err != nil {
		return Poly{}, Poly{}, err
	}
	quo, rem = divmod(p, q, inv)
	return quo, rem, nil
}

// divmod performs long division of p by q, where inv is the
// inverse of q's leading coefficient.
func divmod(p, q Poly, inv gf128.Element) (quo, rem Poly) {
	n := q.Degree()
	if p.Degree() < n || p.IsZero() {
		return Poly{}, p
	}
	r := make([]gf128.Element, len(p.c))
	copy(r, p.c)
	quot := make([]gf128.Element, len(r)-n)
	for i := len(r) - 1; i >= n; i-- {
		if r[i].IsZero() {
			continue
		}
		s := r[i].Mul(inv)
		quot[i-n] = s
		for j, x := range q.c {
			r[i-n+j] = r[i-n+j].Add(s.Mul(x))
		}
	}
	return trim(quot), trim(r[:n])
}

// Mod returns p mod m.
//
// It returns ErrDivisionByZero if m is the zero polynomial.
func (p Poly) Mod(m Poly) (Poly, error) {
	_, r, err := p.DivMod(m)
	return r, err
}

// PowMod returns p^e mod m, reducing every intermediate product
// modulo m.
//
// It returns ErrDivisionByZero if m is the zero polynomial.
// PowMod panics if e is negative.
func (p Poly) PowMod(e *big.Int, m Poly) (Poly, error) {
	if e.Sign() < 0 {
		panic("gfpoly: negative exponent")
	}
	if m.IsZero() {
		return Poly{}, ErrDivisionByZero
	}
	inv, err := m.Lead().Inverse()
	if err != nil {
		return Poly{}, err
	}
	_, b := divmod(p, m, inv)
	_, z := divmod(One(), m, inv)
	for i := e.BitLen() - 1; i >= 0; i-- {
		_, z = divmod(z.Mul(z), m, inv)
		if e.Bit(i) == 1 {
			_, z = divmod(z.Mul(b), m, inv)
		}
	}
	return z, nil
}

// Derivative returns the formal derivative of p.
//
// In characteristic 2 the terms of even degree vanish.
func (p Poly) Derivative() Poly {
	if len(p.c) < 2 {
		return Poly{}
	}
	c := make([]gf128.Element, len(p.c)-1)
	for i := 1; i < len(p.c); i += 2 {
		c[i-1] = p.c[i]
	}
	return trim(c)
}

// Sqrt returns the polynomial r such that r * r = p.
//
// It returns ErrNotSquare if p has a nonzero coefficient of odd
// degree.
func (p Poly) Sqrt() (Poly, error) {
	c := make([]gf128.Element, (len(p.c)+1)/2)
	for i, x := range p.c {
		if i%2 == 0 {
			c[i/2] = x.Sqrt()
		} else if !x.IsZero() {
			return Poly{}, fmt.Errorf("%w: coefficient %d is nonzero", ErrNotSquare, i)
		}
	}
	return trim(c), nil
}

// Monic returns p scaled so that its leading coefficient is 1.
//
// It returns ErrDivisionByZero if p is the zero polynomial.
func (p Poly) Monic() (Poly, error) {
	if p.IsZero() {
		return Poly{}, ErrDivisionByZero
	}
	if p.IsMonic() {
		return p, nil
	}
	inv, err := p.Lead().Inverse()
	if err != nil {
		return Poly{}, err
	}
	return p.Scale(inv), nil
}

// GCD returns the monic greatest common divisor of a and b.
//
// GCD(0, 0) is 0.
func GCD(a, b Poly) Poly {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}
	for !b.IsZero() {
		inv, _ := b.Lead().Inverse()
		_, r := divmod(a, b, inv)
		a, b = b, r
	}
	if a.IsZero() {
		return a
	}
	m, _ := a.Monic()
	return m
}

// Eval returns p(x).
func (p Poly) Eval(x gf128.Element) gf128.Element {
	var z gf128.Element
	for i := len(p.c) - 1; i >= 0; i-- {
		z = z.Mul(x).Add(p.c[i])
	}
	return z
}

// String returns the GCM encoding of each coefficient in hex,
// constant term first.
func (p Poly) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range p.coeffs() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(x.String())
	}
	b.WriteByte(']')
	return b.String()
}
