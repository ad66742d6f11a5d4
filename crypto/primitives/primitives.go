// Package primitives wraps the authenticated symmetric cipher and the
// asymmetric key-wrapping scheme used by the encryption strategies behind
// a small uniform surface.
//
// Symmetric values are sealed with AES-256-GCM under a fresh random nonce
// per call. The GCM tag is carried separately from the ciphertext so that
// stored rows can keep (ciphertext, tag, nonce) as distinct columns and
// tampering with either part is independently detectable.
//
// Data keys are wrapped by a KeyWrapper, typically RSA-2048 with OAEP
// padding (see rsa.go) or AWS KMS (see kms.go).
package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
)

const (
	// KeySize is the symmetric key length in bytes (256-bit).
	KeySize = 32

	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12

	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
)

// Key is raw 256-bit symmetric key material. Keys are held only in memory
// and zeroed with Zero when their scope ends.
type Key []byte

// Zero overwrites the key material. Per-row data keys must not outlive
// their single seal or open use, so callers defer this at the call site.
func (k Key) Zero() {
	for i := range k {
		k[i] = 0
	}
}

// GenerateKey returns a new 256-bit key from the secure random source.
func GenerateKey() (Key, error) {
	k := make(Key, KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		return nil, &CryptoError{Kind: EncryptionFailed, Op: "generate key", Err: err}
	}
	return k, nil
}

// SealedValue is the output of one authenticated encryption: the
// ciphertext, the integrity tag, and the nonce the value was sealed under.
// All three are non-empty for any non-plaintext strategy.
type SealedValue struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// KeyWrapper encrypts exactly one symmetric data key under a long-lived
// asymmetric key, and recovers it again. Implementations never see the
// data being protected, only the key.
type KeyWrapper interface {
	Wrap(key Key) ([]byte, error)
	Unwrap(blob []byte) (Key, error)
}

// Seal encrypts plaintext with AES-256-GCM under key. A fresh random
// nonce is drawn per call; since the nonce is random and the benchmark is
// single-threaded, reuse under the same key has negligible probability.
func Seal(key Key, plaintext []byte) (SealedValue, error) {
	aead, err := newGCM(key)
	if err != nil {
		return SealedValue{}, &CryptoError{Kind: EncryptionFailed, Op: "seal", Err: err}
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return SealedValue{}, &CryptoError{Kind: EncryptionFailed, Op: "seal", Err: err}
	}

	// GCM appends the tag to the ciphertext; split it off so the two are
	// stored, and corruptible, independently.
	out := aead.Seal(nil, nonce, plaintext, nil)
	cut := len(out) - TagSize
	return SealedValue{
		Nonce:      nonce,
		Ciphertext: out[:cut],
		Tag:        out[cut:],
	}, nil
}

// Open decrypts a SealedValue. A tag that does not verify, a corrupted
// ciphertext or nonce, or a wrong key all surface as AuthenticationFailed.
func Open(key Key, v SealedValue) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, &CryptoError{Kind: EncryptionFailed, Op: "open", Err: err}
	}
	if len(v.Nonce) != NonceSize {
		return nil, &CryptoError{Kind: AuthenticationFailed, Op: "open"}
	}

	box := make([]byte, 0, len(v.Ciphertext)+len(v.Tag))
	box = append(box, v.Ciphertext...)
	box = append(box, v.Tag...)

	plaintext, err := aead.Open(nil, v.Nonce, box, nil)
	if err != nil {
		return nil, &CryptoError{Kind: AuthenticationFailed, Op: "open", Err: err}
	}
	return plaintext, nil
}

func newGCM(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
