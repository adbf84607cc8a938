package gf128

// mulGeneric multiplies x and y with the shift-and-add method:
// for every set bit i of y it adds x*x^i, doubling x (and
// reducing it whenever the doubling would reach x^128) as it
// walks the bits.
func mulGeneric(x, y Element) Element {
	var z Element
	for i := uint(0); i < 128; i++ {
		w := y.lo
		if i >= 64 {
			w = y.hi
		}
		// m is all ones if bit i of y is set.
		m := -(w >> (i % 64) & 1)
		z.lo ^= x.lo & m
		z.hi ^= x.hi & m
		x = x.MulX()
	}
	return z
}

// mulKaratsuba multiplies x and y using three 64x64 carry-less
// multiplications.
func mulKaratsuba(x, y Element) Element {
	// We perform schoolbook multiplication of x and y:
	//
	// (x1,x0)*(y1,y0) = (x1*y1) + (x1*y0 + x0*y1) + (x0*y0)
	//                      H         M       M         L
	//
	// The middle result (M) can be simplified with Karatsuba
	// multiplication:
	//
	// (x1*y0 + x0*y1)  = (x1+x0) * (y1+y0) + (x1*y1) + (x0*y0)
	//        M                                  H         L
	//
	// This requires one less 64-bit multiplication and reuses
	// the existing results H and L.
	h1, h0 := ctmul(x.hi, y.hi)           // H
	l1, l0 := ctmul(x.lo, y.lo)           // L
	m1, m0 := ctmul(x.hi^x.lo, y.hi^y.lo) // M
	m1 ^= h1 ^ l1
	m0 ^= h0 ^ l0

	// The 256-bit product is [x3:x2:x1:x0].
	return reduce(h1, h0^m1, l1^m0, l0)
}

// reduce reduces the 256-bit polynomial [x3:x2:x1:x0] modulo
// x^128 + x^7 + x^2 + x + 1.
func reduce(x3, x2, x1, x0 uint64) Element {
	// x^128 = x^7 + x^2 + x + 1, so the upper half U = [x3:x2]
	// folds into the lower half as U + U*x + U*x^2 + U*x^7.
	//
	// The shifts push up to seven bits of U past x^127; those
	// fold a second time. They are at most degree 6, so the
	// second fold is at most degree 13 and cannot overflow.
	t := x3>>63 ^ x3>>62 ^ x3>>57

	lo := x0 ^ x2 ^ x2<<1 ^ x2<<2 ^ x2<<7
	lo ^= t ^ t<<1 ^ t<<2 ^ t<<7
	hi := x1 ^ x3 ^ (x3<<1 | x2>>63) ^ (x3<<2 | x2>>62) ^ (x3<<7 | x2>>57)
	return Element{lo: lo, hi: hi}
}

// ctmulGeneric returns the 128-bit carry-less product of x and
// y without branching on either operand.
func ctmulGeneric(x, y uint64) (z1, z0 uint64) {
	for i := uint(0); i < 64; i++ {
		m := -(y >> i & 1)
		z0 ^= (x << i) & m
		// For i == 0 the shift is 64, which yields zero.
		z1 ^= (x >> (64 - i)) & m
	}
	return z1, z0
}
