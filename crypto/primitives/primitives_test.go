package primitives

import (
	"bytes"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	v, err := Seal(key, []byte("patient notes go here"))
	if err != nil {
		t.Fatal(err)
	}

	if len(v.Ciphertext) == 0 || len(v.Tag) != TagSize || len(v.Nonce) != NonceSize {
		t.Fatalf("sealed value has empty parts: ct=%d tag=%d nonce=%d",
			len(v.Ciphertext), len(v.Tag), len(v.Nonce))
	}

	plaintext, err := Open(key, v)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(plaintext), "patient notes go here"; got != want {
		t.Fatalf("Open => %q; want %q", got, want)
	}
}

func TestOpenDetectsTampering(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	v, err := Seal(key, []byte("sensitive"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(v *SealedValue)
	}{
		{"ciphertext bit flip", func(v *SealedValue) { v.Ciphertext[0] ^= 0x01 }},
		{"tag bit flip", func(v *SealedValue) { v.Tag[0] ^= 0x01 }},
		{"nonce bit flip", func(v *SealedValue) { v.Nonce[0] ^= 0x01 }},
	}

	for _, tt := range tests {
		corrupted := SealedValue{
			Nonce:      append([]byte(nil), v.Nonce...),
			Ciphertext: append([]byte(nil), v.Ciphertext...),
			Tag:        append([]byte(nil), v.Tag...),
		}
		tt.mutate(&corrupted)

		if _, err := Open(key, corrupted); !IsAuthenticationFailed(err) {
			t.Errorf("%s: Open => %v; want AuthenticationFailed", tt.name, err)
		}
	}
}

func TestOpenWithWrongKey(t *testing.T) {
	key, _ := GenerateKey()
	other, _ := GenerateKey()

	v, err := Seal(key, []byte("sensitive"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Open(other, v); !IsAuthenticationFailed(err) {
		t.Fatalf("Open with wrong key => %v; want AuthenticationFailed", err)
	}
}

func TestSealNonceUniqueness(t *testing.T) {
	key, _ := GenerateKey()

	seen := make(map[string]bool)
	for i := 0; i < 256; i++ {
		v, err := Seal(key, []byte("x"))
		if err != nil {
			t.Fatal(err)
		}
		if seen[string(v.Nonce)] {
			t.Fatalf("nonce repeated after %d seals", i)
		}
		seen[string(v.Nonce)] = true
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != KeySize {
		t.Fatalf("key length => %d; want %d", len(a), KeySize)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two generated keys are identical")
	}
}

func TestKeyZero(t *testing.T) {
	k, _ := GenerateKey()
	k.Zero()
	if !bytes.Equal(k, make([]byte, KeySize)) {
		t.Fatal("Zero left key material behind")
	}
}
