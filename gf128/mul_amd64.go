//go:build gc && !purego

package gf128

import (
	"golang.org/x/sys/cpu"
)

var haveAsm = cpu.X86.HasPCLMULQDQ

// uint128 is the result of ctmulAsm, low word first.
type uint128 struct {
	lo, hi uint64
}

func mul(x, y Element) Element {
	if haveAsm {
		return mulKaratsuba(x, y)
	}
	return mulGeneric(x, y)
}

func ctmul(x, y uint64) (z1, z0 uint64) {
	if haveAsm {
		var z uint128
		ctmulAsm(&z, x, y)
		return z.hi, z.lo
	}
	return ctmulGeneric(x, y)
}
