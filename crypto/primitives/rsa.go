package primitives

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
)

// DefaultRSABits is the keypair size used when the caller does not supply
// one. 2048-bit RSA with OAEP-SHA256 leaves 190 bytes of payload capacity,
// comfortably above the 32-byte data keys being wrapped.
const DefaultRSABits = 2048

// RSAWrapper wraps data keys with RSA-OAEP under a keypair generated once
// per benchmark run. The public key encrypts on the write path, the
// private key decrypts on the read path.
type RSAWrapper struct {
	priv *rsa.PrivateKey
}

// GenerateRSAWrapper generates a fresh keypair of the given size.
func GenerateRSAWrapper(bits int) (*RSAWrapper, error) {
	if bits == 0 {
		bits = DefaultRSABits
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, &CryptoError{Kind: WrapFailed, Op: "generate keypair", Err: err}
	}
	return &RSAWrapper{priv: priv}, nil
}

// NewRSAWrapper wraps an existing private key, for runs that load a
// keypair instead of generating one.
func NewRSAWrapper(priv *rsa.PrivateKey) *RSAWrapper {
	return &RSAWrapper{priv: priv}
}

// Capacity returns the maximum payload OAEP can carry under this keypair.
func (w *RSAWrapper) Capacity() int {
	return w.priv.PublicKey.Size() - 2*sha256.Size - 2
}

// Wrap encrypts key under the public key. Keys over the OAEP capacity
// fail with PayloadTooLarge; they are never truncated.
func (w *RSAWrapper) Wrap(key Key) ([]byte, error) {
	if len(key) > w.Capacity() {
		return nil, &CryptoError{Kind: PayloadTooLarge, Op: "wrap key"}
	}
	blob, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, &w.priv.PublicKey, key, nil)
	if err != nil {
		return nil, &CryptoError{Kind: WrapFailed, Op: "wrap key", Err: err}
	}
	return blob, nil
}

// Unwrap decrypts a wrapped blob with the private key. OAEP decryption is
// all-or-nothing, so a corrupted blob or a mismatched key both surface as
// UnwrapFailed.
func (w *RSAWrapper) Unwrap(blob []byte) (Key, error) {
	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, w.priv, blob, nil)
	if err != nil {
		return nil, &CryptoError{Kind: UnwrapFailed, Op: "unwrap key", Err: err}
	}
	return Key(key), nil
}
