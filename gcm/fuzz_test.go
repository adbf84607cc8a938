package gcm

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"
	"time"

	tink "github.com/google/tink/go/aead/subtle"
	"golang.org/x/exp/rand"

	"github.com/ericlagergren/gcmforge/sea128"
)

// TestFuzzTink runs fuzz tests against Google Tink's AES-GCM
// implementation.
func TestFuzzTink(t *testing.T) {
	d := 2 * time.Second
	if testing.Short() {
		d = 10 * time.Millisecond
	}
	timer := time.NewTimer(d)

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(seed))

	key := make([]byte, KeySize)
	const (
		N = 200
	)
	pt := make([]byte, N)
	ad := make([]byte, N)
	for i := 0; ; i++ {
		select {
		case <-timer.C:
			t.Logf("iters: %d", i)
			return
		default:
		}

		rng.Read(key)
		pt := pt[:rng.Intn(N)]
		ad := ad[:rng.Intn(N)]
		rng.Read(pt)
		rng.Read(ad)

		a, err := tink.NewAESGCM(key)
		if err != nil {
			t.Fatal(err)
		}
		// iv || ciphertext || tag
		out, err := a.Encrypt(pt, ad)
		if err != nil {
			t.Fatal(err)
		}
		nonce := out[:NonceSize]
		ct := out[NonceSize : len(out)-TagSize]
		tag := out[len(out)-TagSize:]

		s, err := Seal(AES128, key, nonce, pt, ad)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(s.Ciphertext, ct) {
			t.Fatalf("expected %x, got %x", ct, s.Ciphertext)
		}
		if !bytes.Equal(s.Tag[:], tag) {
			t.Fatalf("expected %x, got %x", tag, s.Tag)
		}

		got, ok, err := Open(AES128, key, nonce, ct, ad, tag)
		if err != nil {
			t.Fatal(err)
		}
		if !ok || !bytes.Equal(got, pt) {
			t.Fatalf("expected (%x, true), got (%x, %v)", pt, got, ok)
		}
	}
}

// TestFuzzGCM runs fuzz tests against the GCM code from
// crypto/cipher using both AES-128 and SEA-128.
func TestFuzzGCM(t *testing.T) {
	for _, tc := range []struct {
		name      string
		fn        BlockFunc
		newCipher func([]byte) (cipher.Block, error)
	}{
		{"AES128", AES128, aes.NewCipher},
		{"SEA128", SEA128, sea128.NewCipher},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			testGCM(t, tc.fn, tc.newCipher)
		})
	}
}

func testGCM(t *testing.T, fn BlockFunc, newCipher func([]byte) (cipher.Block, error)) {
	d := 2 * time.Second
	if testing.Short() {
		d = 10 * time.Millisecond
	}
	timer := time.NewTimer(d)

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(seed))

	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	const (
		N = 200
	)
	pt := make([]byte, N)
	ad := make([]byte, N)
	for i := 0; ; i++ {
		select {
		case <-timer.C:
			t.Logf("iters: %d", i)
			return
		default:
		}

		rng.Read(key)
		rng.Read(nonce)
		pt := pt[:rng.Intn(N)]
		ad := ad[:rng.Intn(N)]
		rng.Read(pt)
		rng.Read(ad)

		b, err := newCipher(key)
		if err != nil {
			t.Fatal(err)
		}
		aead, err := cipher.NewGCM(b)
		if err != nil {
			t.Fatal(err)
		}
		want := aead.Seal(nil, nonce, pt, ad)

		s, err := Seal(fn, key, nonce, pt, ad)
		if err != nil {
			t.Fatal(err)
		}
		got := append(append([]byte(nil), s.Ciphertext...), s.Tag[:]...)
		if !bytes.Equal(got, want) {
			t.Fatalf("expected %x, got %x", want, got)
		}
	}
}
