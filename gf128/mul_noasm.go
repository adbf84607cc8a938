//go:build !amd64 || !gc || purego

package gf128

func mul(x, y Element) Element {
	return mulGeneric(x, y)
}

func ctmul(x, y uint64) (z1, z0 uint64) {
	return ctmulGeneric(x, y)
}
