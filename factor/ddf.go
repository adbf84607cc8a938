package factor

import (
	"math/big"

	"github.com/ericlagergren/gcmforge/gfpoly"
)

// q is the order of GF(2^128).
var q = new(big.Int).Lsh(big.NewInt(1), 128)

// DistinctDegree returns the distinct-degree factorization of
// the square-free polynomial f. Each Factor holds the product of
// every irreducible factor of f with degree Exponent.
//
// Constant polynomials have no factors.
func DistinctDegree(f gfpoly.Poly) ([]Factor, error) {
	fs, err := f.Monic()
	if err != nil {
		return nil, ErrZero
	}

	var z []Factor
	// xq is X^(q^d) mod fs.
	xq := gfpoly.X()
	for d := 1; fs.Degree() >= 2*d; d++ {
		xq, err = xq.PowMod(q, fs)
		if err != nil {
			return nil, err
		}
		g := gfpoly.GCD(xq.Add(gfpoly.X()), fs)
		if g.IsOne() {
			continue
		}
		z = append(z, Factor{Poly: g, Exponent: d})
		fs = quo(fs, g)
		if xq, err = xq.Mod(fs); err != nil {
			return nil, err
		}
	}
	if !fs.IsOne() {
		z = append(z, Factor{Poly: fs, Exponent: fs.Degree()})
	}
	return z, nil
}
