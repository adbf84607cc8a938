package gcm

import (
	"encoding/binary"

	"github.com/ericlagergren/gcmforge/gf128"
)

// LengthBlock returns the final GHASH block: the bit lengths of
// ad and ct as big-endian 64-bit integers.
func LengthBlock(ad, ct []byte) [BlockSize]byte {
	var l [BlockSize]byte
	binary.BigEndian.PutUint64(l[0:8], uint64(len(ad))*8)
	binary.BigEndian.PutUint64(l[8:16], uint64(len(ct))*8)
	return l
}

// GHASH returns GHASH_H(ad, ct) along with the length block it
// hashed last.
//
// The zero-padded blocks of ad, then those of ct, then the
// length block are accumulated with Horner's rule:
//
//	y = (y + X_i) * H
//
// GHASH works for any h, not just one derived from a key, which
// is what makes it usable for testing candidate keys.
func GHASH(ad, ct []byte, h gf128.Element) (sum gf128.Element, l [BlockSize]byte) {
	var y gf128.Element
	update := func(data []byte) {
		for len(data) > 0 {
			var b [BlockSize]byte
			n := copy(b[:], data)
			y = y.Add(gf128.FromBlock(b)).Mul(h)
			data = data[n:]
		}
	}
	update(ad)
	update(ct)
	l = LengthBlock(ad, ct)
	y = y.Add(gf128.FromBlock(l)).Mul(h)
	return y, l
}
