// Package gcm implements the Galois/Counter Mode of operation
// over an arbitrary 128-bit block cipher.
//
// Unlike crypto/cipher, the block cipher is a plain function of
// the key and a single block, and the intermediate values of the
// mode (the hash key H and the length block) are returned to the
// caller.
//
// For more information, see
// https://csrc.nist.gov/publications/detail/sp/800-38d/final
package gcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	ctsubtle "github.com/ericlagergren/subtle"

	"github.com/ericlagergren/gcmforge/gf128"
	"github.com/ericlagergren/gcmforge/internal/ghash"
	"github.com/ericlagergren/gcmforge/sea128"
)

const (
	// BlockSize is the size in bytes of a cipher block.
	BlockSize = 16
	// KeySize is the size in bytes of a key.
	KeySize = 16
	// NonceSize is the size in bytes of a nonce.
	NonceSize = 12
	// TagSize is the size in bytes of an authentication tag.
	TagSize = 16

	// maxSize is the largest plaintext that does not wrap the
	// 32-bit counter.
	maxSize = (1<<32 - 2) * BlockSize
)

var (
	// ErrInvalidKeySize is returned for keys that are not
	// KeySize bytes long.
	ErrInvalidKeySize = errors.New("gcm: invalid key size")
	// ErrInvalidNonceSize is returned for nonces that are not
	// NonceSize bytes long.
	ErrInvalidNonceSize = errors.New("gcm: invalid nonce size")
	// ErrInvalidTagSize is returned for tags that are not
	// TagSize bytes long.
	ErrInvalidTagSize = errors.New("gcm: invalid tag size")
	// ErrTooLarge is returned for messages that would wrap the
	// block counter.
	ErrTooLarge = errors.New("gcm: message too large")
)

// BlockFunc encrypts a single block under key.
type BlockFunc func(key *[KeySize]byte, block [BlockSize]byte) [BlockSize]byte

// AES128 is a BlockFunc for AES-128.
func AES128(key *[KeySize]byte, block [BlockSize]byte) [BlockSize]byte {
	return encryptBlock(aes.NewCipher, key, block)
}

// SEA128 is a BlockFunc for SEA-128.
func SEA128(key *[KeySize]byte, block [BlockSize]byte) [BlockSize]byte {
	return encryptBlock(sea128.NewCipher, key, block)
}

func encryptBlock(newCipher func([]byte) (cipher.Block, error), key *[KeySize]byte, block [BlockSize]byte) [BlockSize]byte {
	c, err := newCipher(key[:])
	if err != nil {
		// Only possible for an invalid key size.
		panic(err)
	}
	var out [BlockSize]byte
	c.Encrypt(out[:], block[:])
	return out
}

// Sealed is the result of Seal.
type Sealed struct {
	// Ciphertext is the encrypted plaintext.
	Ciphertext []byte
	// Tag is the authentication tag.
	Tag [TagSize]byte
	// L is the length block hashed last by GHASH.
	L [BlockSize]byte
	// H is the hash key E(K, 0^128).
	H gf128.Element
}

// state holds the per-message values derived from the key and
// nonce.
type state struct {
	fn  BlockFunc
	key [KeySize]byte
	// y0 is the initial counter block N || 1.
	y0 [BlockSize]byte
	h  gf128.Element
}

func newState(fn BlockFunc, key, nonce []byte) (*state, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeySize, len(key))
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNonceSize, len(nonce))
	}
	s := &state{fn: fn}
	copy(s.key[:], key)
	copy(s.y0[:], nonce)
	s.y0[BlockSize-1] = 1
	s.h = gf128.FromBlock(fn(&s.key, [BlockSize]byte{}))
	return s, nil
}

// ctr XORs src with the keystream starting at counter 2 and
// writes the result to dst.
func (s *state) ctr(dst, src []byte) {
	cb := s.y0
	ctr := binary.BigEndian.Uint32(cb[NonceSize:])
	for len(src) > 0 {
		ctr++
		binary.BigEndian.PutUint32(cb[NonceSize:], ctr)
		ks := s.fn(&s.key, cb)
		n := subtle.XORBytes(dst, src, ks[:])
		dst = dst[n:]
		src = src[n:]
	}
}

// tag returns GHASH_H(ad, ct) XOR E(K, Y0) and the length block.
func (s *state) tag(ad, ct []byte) (tag [TagSize]byte, l [BlockSize]byte) {
	l = LengthBlock(ad, ct)
	g := ghash.New(s.h)
	g.UpdatePadded(ad)
	g.UpdatePadded(ct)
	g.Update(l[:])
	sum := g.Sum(nil)
	ek0 := s.fn(&s.key, s.y0)
	subtle.XORBytes(tag[:], sum, ek0[:])
	return tag, l
}

// Seal encrypts and authenticates plaintext, authenticates ad,
// and returns the ciphertext, tag and intermediate values.
func Seal(fn BlockFunc, key, nonce, plaintext, ad []byte) (*Sealed, error) {
	if uint64(len(plaintext)) > maxSize {
		return nil, ErrTooLarge
	}
	s, err := newState(fn, key, nonce)
	if err != nil {
		return nil, err
	}
	ct := make([]byte, len(plaintext))
	s.ctr(ct, plaintext)
	tag, l := s.tag(ad, ct)
	return &Sealed{
		Ciphertext: ct,
		Tag:        tag,
		L:          l,
		H:          s.h,
	}, nil
}

// Open decrypts ciphertext and reports whether tag authenticates
// ciphertext and ad.
//
// The plaintext is returned even if the tag does not match. It
// must not be trusted unless ok is true.
func Open(fn BlockFunc, key, nonce, ciphertext, ad, tag []byte) (plaintext []byte, ok bool, err error) {
	if len(tag) != TagSize {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidTagSize, len(tag))
	}
	if uint64(len(ciphertext)) > maxSize {
		return nil, false, ErrTooLarge
	}
	s, err := newState(fn, key, nonce)
	if err != nil {
		return nil, false, err
	}
	want, _ := s.tag(ad, ciphertext)
	plaintext = make([]byte, len(ciphertext))
	s.ctr(plaintext, ciphertext)
	ok = ctsubtle.ConstantTimeCompare(want[:], tag) == 1
	return plaintext, ok, nil
}
