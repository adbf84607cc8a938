package factor

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ericlagergren/gcmforge/gf128"
	"github.com/ericlagergren/gcmforge/gfpoly"
)

// EqualDegree splits f, a square-free product of irreducible
// polynomials of degree d, into those irreducible factors using
// the Cantor-Zassenhaus algorithm.
//
// The random polynomials are read from cfg.Rand. If f has not
// been completely split after cfg.MaxAttempts draws,
// EqualDegree returns an error wrapping ErrRetryBudget. A nil
// cfg uses DefaultConfig.
func EqualDegree(f gfpoly.Poly, d int, cfg *Config) ([]gfpoly.Poly, error) {
	cfg, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	f, err = f.Monic()
	if err != nil {
		return nil, ErrZero
	}
	n := f.Degree()
	if n == 0 {
		return nil, nil
	}
	if d <= 0 || n%d != 0 {
		return nil, fmt.Errorf("factor: degree %d is not a multiple of %d", n, d)
	}

	log := cfg.logger()

	// e = (q^d - 1) / 3. Since q = 1 (mod 3), the division is
	// exact and h^e is a cube root of unity modulo each
	// irreducible factor.
	e := new(big.Int).Exp(q, big.NewInt(int64(d)), nil)
	e.Sub(e, big.NewInt(1))
	e.Div(e, big.NewInt(3))

	z := []gfpoly.Poly{f}
	for attempt := 0; !split(z, d); attempt++ {
		if attempt >= cfg.MaxAttempts {
			log.Debug("retry budget exceeded",
				"degree", n, "d", d, "factors", len(z))
			return nil, fmt.Errorf("%w: %d factors of %d after %d attempts",
				ErrRetryBudget, len(z), n/d, attempt)
		}
		h, err := randPoly(cfg.Rand, n)
		if err != nil {
			return nil, err
		}
		g, err := h.PowMod(e, f)
		if err != nil {
			return nil, err
		}
		g = g.Add(gfpoly.One())

		next := make([]gfpoly.Poly, 0, len(z)+1)
		for _, u := range z {
			if u.Degree() > d {
				j := gfpoly.GCD(u, g)
				if !j.IsOne() && !j.Equal(u) {
					next = append(next, j, quo(u, j))
					continue
				}
			}
			next = append(next, u)
		}
		z = next
	}
	gfpoly.Sort(z)
	log.Debug("equal-degree factorization",
		"degree", n, "d", d, "factors", len(z))
	return z, nil
}

// split reports whether every polynomial in z has degree d.
func split(z []gfpoly.Poly, d int) bool {
	for _, u := range z {
		if u.Degree() > d {
			return false
		}
	}
	return true
}

// randPoly reads a random polynomial with n coefficients, which
// therefore has degree less than n.
func randPoly(r io.Reader, n int) (gfpoly.Poly, error) {
	buf := make([]byte, n*gf128.Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return gfpoly.Poly{}, fmt.Errorf("factor: reading random polynomial: %w", err)
	}
	c := make([]gf128.Element, n)
	for i := range c {
		c[i], _ = gf128.FromBytes(buf[i*gf128.Size : (i+1)*gf128.Size])
	}
	return gfpoly.New(c...), nil
}
