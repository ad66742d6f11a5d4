package primitives

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a cryptographic failure. The benchmark treats integrity
// failures differently from everything else, so callers must be able to
// tell an AuthenticationFailed apart from an I/O or primitive fault even
// after the error has been wrapped on its way up.
type Kind int

const (
	// EncryptionFailed is a primitive-level fault during encryption or
	// cipher construction. It never fires on valid input.
	EncryptionFailed Kind = iota + 1

	// AuthenticationFailed means the authentication tag did not verify
	// on decrypt: the ciphertext was tampered with, or the wrong key was
	// supplied. Never to be treated as "row absent".
	AuthenticationFailed

	// WrapFailed is a fault while encrypting a data key under the
	// run-scoped asymmetric key.
	WrapFailed

	// UnwrapFailed means a wrapped key blob could not be decrypted:
	// corrupted blob or private key mismatch.
	UnwrapFailed

	// PayloadTooLarge means the data key exceeds the asymmetric scheme's
	// payload capacity. Wrapping fails outright rather than truncating.
	PayloadTooLarge
)

func (k Kind) String() string {
	switch k {
	case EncryptionFailed:
		return "encryption failed"
	case AuthenticationFailed:
		return "authentication failed"
	case WrapFailed:
		return "wrap failed"
	case UnwrapFailed:
		return "unwrap failed"
	case PayloadTooLarge:
		return "payload too large"
	default:
		return "unknown crypto error"
	}
}

// CryptoError is the error type returned by every operation in this
// package. Op names the operation that failed, Err holds the underlying
// primitive error when there is one.
type CryptoError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Cause implements the causer interface from pkg/errors.
func (e *CryptoError) Cause() error { return e.Err }

// Unwrap allows errors.Is/As traversal.
func (e *CryptoError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, unwinding any pkg/errors wrapping. It
// returns 0 when err is not a CryptoError.
func KindOf(err error) Kind {
	if ce, ok := errors.Cause(err).(*CryptoError); ok {
		return ce.Kind
	}
	var ce *CryptoError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// IsAuthenticationFailed reports whether err is an integrity failure.
func IsAuthenticationFailed(err error) bool { return KindOf(err) == AuthenticationFailed }

// IsWrapFailed reports whether err came from wrapping a data key,
// including the capacity bound.
func IsWrapFailed(err error) bool {
	k := KindOf(err)
	return k == WrapFailed || k == PayloadTooLarge
}

// IsUnwrapFailed reports whether err came from unwrapping a data key.
func IsUnwrapFailed(err error) bool { return KindOf(err) == UnwrapFailed }

// IsPayloadTooLarge reports whether err is the asymmetric capacity bound.
func IsPayloadTooLarge(err error) bool { return KindOf(err) == PayloadTooLarge }
