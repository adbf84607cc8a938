package factor

import (
	"fmt"

	"github.com/ericlagergren/gcmforge/gfpoly"
)

// SquareFree returns the square-free factorization of f: monic,
// pairwise coprime, square-free polynomials with the
// multiplicity at which each occurs in f.
//
// Constant polynomials have no factors.
func SquareFree(f gfpoly.Poly) ([]Factor, error) {
	f, err := f.Monic()
	if err != nil {
		return nil, ErrZero
	}

	type item struct {
		f    gfpoly.Poly
		mult int
	}
	var z []Factor
	stack := []item{{f: f, mult: 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f := it.f
		c := gfpoly.GCD(f, f.Derivative())
		f = quo(f, c)
		for e := 1; !f.IsOne(); e++ {
			y := gfpoly.GCD(f, c)
			if !f.Equal(y) {
				z = append(z, Factor{Poly: quo(f, y), Exponent: e * it.mult})
			}
			f = y
			c = quo(c, y)
		}
		if c.IsOne() {
			continue
		}
		// The derivative of c is zero, so c is a square.
		s, err := c.Sqrt()
		if err != nil {
			return nil, fmt.Errorf("factor: square-free: %w", err)
		}
		stack = append(stack, item{f: s, mult: 2 * it.mult})
	}
	sortFactors(z)
	return z, nil
}

// quo returns p / q for a nonzero q that divides p.
func quo(p, q gfpoly.Poly) gfpoly.Poly {
	z, _, err := p.DivMod(q)
	if err != nil {
		panic(err)
	}
	return z
}
