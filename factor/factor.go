// Package factor factors polynomials over GF(2^128).
//
// Factorization runs in three stages. SquareFree splits a
// polynomial into square-free parts, DistinctDegree splits a
// square-free polynomial into products of irreducibles sharing
// a degree, and EqualDegree (Cantor-Zassenhaus) splits such a
// product into its irreducible factors. Factorize composes them
// and Roots extracts the roots of a polynomial from its linear
// factors.
package factor

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/ericlagergren/gcmforge/gf128"
	"github.com/ericlagergren/gcmforge/gfpoly"
)

var (
	// ErrZero is returned when asked to factor the zero
	// polynomial.
	ErrZero = errors.New("factor: zero polynomial")
	// ErrRetryBudget is returned when EqualDegree fails to split
	// its input within Config.MaxAttempts random draws.
	ErrRetryBudget = errors.New("factor: retry budget exceeded")
)

// Factor is a monic polynomial paired with an exponent.
//
// For SquareFree and Factorize the exponent is the multiplicity
// of the factor. For DistinctDegree it is the common degree of
// the irreducible factors of Poly.
type Factor struct {
	Poly     gfpoly.Poly
	Exponent int
}

func sortFactors(z []Factor) {
	slices.SortFunc(z, func(a, b Factor) bool {
		if c := gfpoly.Compare(a.Poly, b.Poly); c != 0 {
			return c < 0
		}
		return a.Exponent < b.Exponent
	})
}

// Factorize returns the monic irreducible factors of f with
// their multiplicities.
//
// The product of every Poly raised to its Exponent is f divided
// by its leading coefficient.
func Factorize(f gfpoly.Poly, cfg *Config) ([]Factor, error) {
	cfg, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	sff, err := SquareFree(f)
	if err != nil {
		return nil, err
	}
	var z []Factor
	for _, s := range sff {
		ddf, err := DistinctDegree(s.Poly)
		if err != nil {
			return nil, err
		}
		for _, g := range ddf {
			if g.Poly.Degree() == g.Exponent {
				z = append(z, Factor{Poly: g.Poly, Exponent: s.Exponent})
				continue
			}
			edf, err := EqualDegree(g.Poly, g.Exponent, cfg)
			if err != nil {
				return nil, err
			}
			for _, p := range edf {
				z = append(z, Factor{Poly: p, Exponent: s.Exponent})
			}
		}
	}
	sortFactors(z)
	cfg.logger().Debug("factorized",
		"degree", f.Degree(), "factors", len(z))
	return z, nil
}

// Roots returns the distinct roots of f in ascending order.
//
// Only the linear factors of f are split, so Roots is cheaper
// than Factorize for polynomials with high-degree factors.
func Roots(f gfpoly.Poly, cfg *Config) ([]gf128.Element, error) {
	cfg, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	sff, err := SquareFree(f)
	if err != nil {
		return nil, err
	}
	var roots []gf128.Element
	for _, s := range sff {
		ddf, err := DistinctDegree(s.Poly)
		if err != nil {
			return nil, err
		}
		for _, g := range ddf {
			if g.Exponent != 1 {
				continue
			}
			lin, err := EqualDegree(g.Poly, 1, cfg)
			if err != nil {
				return nil, err
			}
			for _, p := range lin {
				// X + c = 0 at X = c.
				roots = append(roots, p.Coeff(0))
			}
		}
	}
	slices.SortFunc(roots, func(a, b gf128.Element) bool {
		return a.Cmp(b) < 0
	})
	cfg.logger().Debug("found roots",
		"degree", f.Degree(), "roots", len(roots))
	return roots, nil
}
