package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
)

//go:generate go run asm.go -out ../gf128/ctmul_amd64.s -stubs ../gf128/stub_amd64.go -pkg gf128

func main() {
	Package("github.com/ericlagergren/gcmforge/gf128")
	ConstraintExpr("gc,!purego")

	declareCtmul()

	Generate()
}

// declareCtmul emits a single 64x64 carry-less multiply. The
// 128-bit product is stored low word first.
func declareCtmul() {
	TEXT("ctmulAsm", NOSPLIT, "func(z *uint128, x, y uint64)")
	Pragma("noescape")

	z := Load(Param("z"), GP64())
	x := Load(Param("x"), XMM())
	y := Load(Param("y"), XMM())
	PCLMULQDQ(U8(0x00), x, y)
	MOVOU(y, Mem{Base: z})

	RET()
}
