package gfpoly

import (
	"golang.org/x/exp/slices"
)

// Compare orders polynomials by degree and then by their
// coefficients, highest degree first, each compared by its
// natural-order value. It returns -1, 0, or +1.
func Compare(p, q Poly) int {
	if dp, dq := p.Degree(), q.Degree(); dp != dq {
		if dp < dq {
			return -1
		}
		return +1
	}
	for i := p.Degree(); i >= 0; i-- {
		if c := p.Coeff(i).Cmp(q.Coeff(i)); c != 0 {
			return c
		}
	}
	return 0
}

// Sort sorts polys in place in the order defined by Compare.
func Sort(polys []Poly) {
	slices.SortFunc(polys, func(a, b Poly) bool {
		return Compare(a, b) < 0
	})
}
