// Package sea128 implements SEA-128, a toy block cipher that
// XORs every AES-128 output block with a fixed mask.
package sea128

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"

	ctsubtle "github.com/ericlagergren/subtle"
)

const (
	// BlockSize is the size in bytes of a SEA-128 block.
	BlockSize = aes.BlockSize
	// KeySize is the size in bytes of a SEA-128 key.
	KeySize = 16
)

// mask is 0xc0ffee repeated five times followed by 0x11.
var mask = [BlockSize]byte{
	0xc0, 0xff, 0xee, 0xc0, 0xff, 0xee, 0xc0, 0xff,
	0xee, 0xc0, 0xff, 0xee, 0xc0, 0xff, 0xee, 0x11,
}

type seaCipher struct {
	b cipher.Block
}

var _ cipher.Block = (*seaCipher)(nil)

// NewCipher creates and returns a new cipher.Block.
//
// The key must be KeySize bytes long.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("sea128: invalid key size: %d", len(key))
	}
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &seaCipher{b: b}, nil
}

func (c *seaCipher) BlockSize() int {
	return BlockSize
}

func (c *seaCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("sea128: input not full block")
	}
	if len(dst) < BlockSize {
		panic("sea128: output not full block")
	}
	if ctsubtle.InexactOverlap(dst[:BlockSize], src[:BlockSize]) {
		panic("sea128: invalid buffer overlap")
	}
	c.b.Encrypt(dst, src)
	subtle.XORBytes(dst, dst[:BlockSize], mask[:])
}

func (c *seaCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("sea128: input not full block")
	}
	if len(dst) < BlockSize {
		panic("sea128: output not full block")
	}
	if ctsubtle.InexactOverlap(dst[:BlockSize], src[:BlockSize]) {
		panic("sea128: invalid buffer overlap")
	}
	var tmp [BlockSize]byte
	subtle.XORBytes(tmp[:], src[:BlockSize], mask[:])
	c.b.Decrypt(dst, tmp[:])
}
