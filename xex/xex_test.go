package xex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/xts"
	"golang.org/x/exp/rand"

	"github.com/ericlagergren/gcmforge/sea128"
)

// TestFuzzXTS runs fuzz tests against x/crypto/xts, which agrees
// with XEX whenever the tweak is a 64-bit sector number.
func TestFuzzXTS(t *testing.T) {
	d := 2 * time.Second
	if testing.Short() {
		d = 10 * time.Millisecond
	}
	timer := time.NewTimer(d)

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(seed))

	const (
		N = 32
	)
	buf := make([]byte, BlockSize*N)
	for i := 0; ; i++ {
		select {
		case <-timer.C:
			t.Logf("iters: %d", i)
			return
		default:
		}

		var key [KeySize]byte
		rng.Read(key[:])
		sector := rng.Uint64()
		var tweak [BlockSize]byte
		binary.LittleEndian.PutUint64(tweak[:8], sector)

		data := buf[:(rng.Intn(N-1)+1)*BlockSize]
		rng.Read(data)

		c, err := xts.NewCipher(sea128.NewCipher, key[:])
		if err != nil {
			t.Fatal(err)
		}
		want := make([]byte, len(data))
		c.Encrypt(want, data, sector)

		got, err := Encrypt(key, tweak, data)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("expected %x, got %x", want, got)
		}

		pt, err := Decrypt(key, tweak, got)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(pt, data) {
			t.Fatalf("expected %x, got %x", data, pt)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < 100; i++ {
		var key [KeySize]byte
		var tweak [BlockSize]byte
		rng.Read(key[:])
		rng.Read(tweak[:])
		data := make([]byte, rng.Intn(8)*BlockSize)
		rng.Read(data)

		ct, err := Encrypt(key, tweak, data)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) > 0 && bytes.Equal(ct, data) {
			t.Fatal("ciphertext equals plaintext")
		}
		pt, err := Decrypt(key, tweak, ct)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(pt, data) {
			t.Fatalf("expected %x, got %x", data, pt)
		}
	}
}

// TestTweakChaining tests that equal blocks encrypt differently.
func TestTweakChaining(t *testing.T) {
	var key [KeySize]byte
	var tweak [BlockSize]byte
	ct, err := Encrypt(key, tweak, make([]byte, 2*BlockSize))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(ct[:BlockSize], ct[BlockSize:]) {
		t.Fatal("equal blocks have equal ciphertexts")
	}
}

func TestInvalidLength(t *testing.T) {
	var key [KeySize]byte
	var tweak [BlockSize]byte
	for _, n := range []int{1, 15, 17, 33} {
		if _, err := Encrypt(key, tweak, make([]byte, n)); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("%d: expected %v, got %v", n, ErrInvalidLength, err)
		}
		if _, err := Decrypt(key, tweak, make([]byte, n)); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("%d: expected %v, got %v", n, ErrInvalidLength, err)
		}
	}
}
