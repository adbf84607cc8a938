// Package xex implements the XEX tweakable block cipher mode
// over SEA-128.
//
// The first half of the key encrypts data and the second half
// encrypts the tweak. After every block the encrypted tweak is
// multiplied by x in GF(2^128) using the natural (little-endian)
// bit order.
package xex

import (
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/ericlagergren/gcmforge/gf128"
	"github.com/ericlagergren/gcmforge/sea128"
)

const (
	// BlockSize is the size in bytes of a block and of a tweak.
	BlockSize = sea128.BlockSize
	// KeySize is the size in bytes of a key: two SEA-128 keys.
	KeySize = 2 * sea128.KeySize
)

// ErrInvalidLength is returned for data that is not a whole
// number of blocks.
var ErrInvalidLength = errors.New("xex: data is not a multiple of the block size")

// Encrypt encrypts data under key and tweak.
func Encrypt(key [KeySize]byte, tweak [BlockSize]byte, data []byte) ([]byte, error) {
	return crypt(key, tweak, data, cipher.Block.Encrypt)
}

// Decrypt decrypts data under key and tweak.
func Decrypt(key [KeySize]byte, tweak [BlockSize]byte, data []byte) ([]byte, error) {
	return crypt(key, tweak, data, cipher.Block.Decrypt)
}

func crypt(key [KeySize]byte, tweak [BlockSize]byte, data []byte,
	fn func(b cipher.Block, dst, src []byte)) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, len(data))
	}
	k1, err := sea128.NewCipher(key[:sea128.KeySize])
	if err != nil {
		return nil, err
	}
	k2, err := sea128.NewCipher(key[sea128.KeySize:])
	if err != nil {
		return nil, err
	}

	var tb [BlockSize]byte
	k2.Encrypt(tb[:], tweak[:])
	t := gf128.Decode(gf128.XEX, tb)

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += BlockSize {
		tb = t.Encode(gf128.XEX)
		dst := out[i : i+BlockSize]
		subtle.XORBytes(dst, data[i:i+BlockSize], tb[:])
		fn(k1, dst, dst)
		subtle.XORBytes(dst, dst, tb[:])
		t = t.MulX()
	}
	return out, nil
}
