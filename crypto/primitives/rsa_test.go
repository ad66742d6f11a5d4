package primitives

import (
	"bytes"
	"testing"
)

func testWrapper(t *testing.T) *RSAWrapper {
	t.Helper()
	w, err := GenerateRSAWrapper(DefaultRSABits)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	w := testWrapper(t)

	key, _ := GenerateKey()
	blob, err := w.Wrap(key)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(blob, key) {
		t.Fatal("wrapped blob contains raw key material")
	}

	got, err := w.Unwrap(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, key) {
		t.Fatal("unwrapped key differs from original")
	}
}

func TestWrapCapacityBound(t *testing.T) {
	w := testWrapper(t)

	oversized := make(Key, w.Capacity()+1)
	if _, err := w.Wrap(oversized); !IsPayloadTooLarge(err) {
		t.Fatalf("Wrap oversized key => %v; want PayloadTooLarge", err)
	}

	// Exactly at capacity still fits.
	exact := make(Key, w.Capacity())
	if _, err := w.Wrap(exact); err != nil {
		t.Fatalf("Wrap at capacity => %v; want nil", err)
	}
}

func TestUnwrapCorruptedBlob(t *testing.T) {
	w := testWrapper(t)

	key, _ := GenerateKey()
	blob, err := w.Wrap(key)
	if err != nil {
		t.Fatal(err)
	}

	blob[0] ^= 0x01
	if _, err := w.Unwrap(blob); !IsUnwrapFailed(err) {
		t.Fatalf("Unwrap corrupted blob => %v; want UnwrapFailed", err)
	}
}

func TestUnwrapKeyMismatch(t *testing.T) {
	w := testWrapper(t)
	other := testWrapper(t)

	key, _ := GenerateKey()
	blob, err := w.Wrap(key)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.Unwrap(blob); !IsUnwrapFailed(err) {
		t.Fatalf("Unwrap with wrong keypair => %v; want UnwrapFailed", err)
	}
}
