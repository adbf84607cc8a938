// Package crack recovers the GHASH key of GCM messages that
// reuse a key and nonce, and forges tags with it.
//
// If two messages share a key and nonce, their tags are
//
//	T_i = GHASH_H(A_i, C_i) + E(K, Y0)
//
// and E(K, Y0) cancels in T_1 + T_2. GHASH is a polynomial in H
// whose coefficients are the message blocks, so H is a root of a
// known polynomial. A third message picks the right root when
// there is more than one.
package crack

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ericlagergren/gcmforge/factor"
	"github.com/ericlagergren/gcmforge/gcm"
	"github.com/ericlagergren/gcmforge/gf128"
	"github.com/ericlagergren/gcmforge/gfpoly"
)

var (
	// ErrNoRoot is returned when no root of the equation
	// authenticates the third message.
	ErrNoRoot = errors.New("crack: no candidate key authenticates the third message")
	// ErrDegenerate is returned when the first two messages
	// produce the zero equation, which every key satisfies.
	ErrDegenerate = errors.New("crack: messages do not constrain the key")
)

// Message is a GCM ciphertext with its associated data and tag.
type Message struct {
	Ciphertext     []byte
	AssociatedData []byte
	Tag            [gcm.TagSize]byte
}

// ghash returns GHASH_h over m.
func (m *Message) ghash(h gf128.Element) gf128.Element {
	sum, _ := gcm.GHASH(m.AssociatedData, m.Ciphertext, h)
	return sum
}

// poly returns GHASH over m as a polynomial in H: the blocks in
// reverse order above a zero constant term, so that the length
// block is the coefficient of H.
func (m *Message) poly() gfpoly.Poly {
	var blocks []gf128.Element
	appendPadded := func(data []byte) {
		for len(data) > 0 {
			var b [gf128.Size]byte
			n := copy(b[:], data)
			blocks = append(blocks, gf128.FromBlock(b))
			data = data[n:]
		}
	}
	appendPadded(m.AssociatedData)
	appendPadded(m.Ciphertext)
	blocks = append(blocks, gf128.FromBlock(gcm.LengthBlock(m.AssociatedData, m.Ciphertext)))

	c := make([]gf128.Element, len(blocks)+1)
	for i, b := range blocks {
		c[len(blocks)-i] = b
	}
	return gfpoly.New(c...)
}

// Equation returns the monic polynomial whose roots include the
// GHASH key shared by m1 and m2:
//
//	GHASH_X(m1) + GHASH_X(m2) + T_1 + T_2
func Equation(m1, m2 *Message) (gfpoly.Poly, error) {
	t := gf128.FromBlock(m1.Tag).Add(gf128.FromBlock(m2.Tag))
	p := m1.poly().Add(m2.poly()).Add(gfpoly.Constant(t))
	if p.IsZero() {
		return gfpoly.Poly{}, ErrDegenerate
	}
	return p.Monic()
}

// Result is a recovered GHASH key and tag mask.
type Result struct {
	// H is the GHASH key E(K, 0^128).
	H gf128.Element
	// Mask is E(K, Y0), added to GHASH to produce a tag.
	Mask gf128.Element
}

// Forge returns the tag of ciphertext ct with associated data ad
// under the recovered key and nonce.
func (r *Result) Forge(ad, ct []byte) [gcm.TagSize]byte {
	sum, _ := gcm.GHASH(ad, ct, r.H)
	return sum.Add(r.Mask).Block()
}

// Recover recovers the GHASH key and tag mask shared by three
// messages encrypted with the same key and nonce.
//
// The roots of Equation(m1, m2) are the candidate keys. The
// first candidate whose mask, derived from m1, also produces the
// tag of m3 is returned. If there is none Recover returns
// ErrNoRoot.
//
// A nil cfg uses factor.DefaultConfig.
func Recover(m1, m2, m3 *Message, cfg *factor.Config) (*Result, error) {
	log := logger(cfg)

	eq, err := Equation(m1, m2)
	if err != nil {
		return nil, err
	}
	roots, err := factor.Roots(eq, cfg)
	if err != nil {
		return nil, fmt.Errorf("crack: %w", err)
	}
	log.Debug("factored equation",
		"degree", eq.Degree(), "candidates", len(roots))

	t1 := gf128.FromBlock(m1.Tag)
	t3 := gf128.FromBlock(m3.Tag)
	for _, h := range roots {
		mask := t1.Add(m1.ghash(h))
		if mask.Add(m3.ghash(h)) == t3 {
			log.Debug("accepted candidate", "h", h)
			return &Result{H: h, Mask: mask}, nil
		}
	}
	return nil, fmt.Errorf("%w: %d candidates", ErrNoRoot, len(roots))
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func logger(cfg *factor.Config) *slog.Logger {
	l := discard
	if cfg != nil && cfg.Logger != nil {
		l = cfg.Logger
	}
	return l.With("module", "crack")
}
