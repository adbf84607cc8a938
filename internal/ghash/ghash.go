// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ghash implements GHASH with a table of the first
// sixteen multiples of the key.
package ghash

import (
	"github.com/ericlagergren/gcmforge/gf128"
)

// fieldElement is a natural-order element of GF(2¹²⁸): the
// coefficient of xⁱ is bit i of lo for i < 64 and bit i-64 of
// hi otherwise.
type fieldElement struct {
	lo, hi uint64
}

func fromElement(x gf128.Element) fieldElement {
	lo, hi := x.Uint64s()
	return fieldElement{lo: lo, hi: hi}
}

func (z fieldElement) element() gf128.Element {
	return gf128.FromUint64s(z.lo, z.hi)
}

// GHASH is the GHASH universal hash keyed with H.
type GHASH struct {
	y fieldElement
	// productTable[i] is i*H, where the four bits of i are the
	// coefficients of x⁰ through x³.
	productTable [16]fieldElement
}

// New returns a GHASH keyed with h.
func New(h gf128.Element) *GHASH {
	var t [16]gf128.Element
	t[1] = h
	for i := 2; i < 16; i += 2 {
		t[i] = t[i/2].MulX()
		t[i+1] = t[i].Add(h)
	}
	var g GHASH
	for i, x := range t {
		g.productTable[i] = fromElement(x)
	}
	return &g
}

// reductionTable[i] is i*x¹²⁸ reduced modulo the field
// polynomial, for the four bits shifted out of the top of an
// element.
var reductionTable = []uint16{
	0x0000, 0x0087, 0x010e, 0x0189, 0x021c, 0x029b, 0x0312, 0x0395,
	0x0438, 0x04bf, 0x0536, 0x05b1, 0x0624, 0x06a3, 0x072a, 0x07ad,
}

// mul returns y*H.
func (g *GHASH) mul(y fieldElement) fieldElement {
	var z fieldElement

	for i := 0; i < 2; i++ {
		word := y.hi
		if i == 1 {
			word = y.lo
		}

		// Multiplication works by multiplying z by 16 and adding in
		// one of the precomputed multiples of H, starting from the
		// highest powers of y.
		for j := 0; j < 64; j += 4 {
			msw := z.hi >> 60
			z.hi = z.hi<<4 | z.lo>>60
			z.lo <<= 4
			z.lo ^= uint64(reductionTable[msw])

			t := g.productTable[word>>60]
			z.lo ^= t.lo
			z.hi ^= t.hi
			word <<= 4
		}
	}
	return z
}

// Update extends y with more polynomial terms from blocks, based
// on Horner's rule. There must be a multiple of gf128.Size bytes
// in blocks.
func (g *GHASH) Update(blocks []byte) {
	if len(blocks)%gf128.Size != 0 {
		panic("ghash: invalid block size")
	}
	for len(blocks) > 0 {
		x, _ := gf128.FromBytes(blocks[:gf128.Size])
		lo, hi := x.Uint64s()
		g.y.lo ^= lo
		g.y.hi ^= hi
		g.y = g.mul(g.y)
		blocks = blocks[gf128.Size:]
	}
}

// UpdatePadded is like Update, but zero pads data to a multiple
// of gf128.Size bytes.
func (g *GHASH) UpdatePadded(data []byte) {
	n := len(data) &^ (gf128.Size - 1)
	g.Update(data[:n])
	if n < len(data) {
		var b [gf128.Size]byte
		copy(b[:], data[n:])
		g.Update(b[:])
	}
}

// Sum appends the current hash to b in GCM block order and
// returns the resulting slice.
func (g *GHASH) Sum(b []byte) []byte {
	y := g.y.element().Block()
	return append(b, y[:]...)
}

// Element returns the current hash.
func (g *GHASH) Element() gf128.Element {
	return g.y.element()
}
