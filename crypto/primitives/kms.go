package primitives

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/kms"
)

// KMSWrapper wraps data keys with a KMS Customer Master Key instead of a
// local RSA keypair. KMS tracks the key used for encryption internally,
// so the blob alone is enough to unwrap.
//
// Network latency dominates KMS calls, so benchmark numbers taken with
// this wrapper measure the KMS round trip, not the asymmetric primitive.
type KMSWrapper struct {
	// KeyId is the CMK to wrap under.
	KeyId string

	kms *kms.KMS
}

func NewKMSWrapper(c client.ConfigProvider, keyId string) *KMSWrapper {
	return &KMSWrapper{KeyId: keyId, kms: kms.New(c)}
}

// Wrap encrypts the data key under the CMK.
func (w *KMSWrapper) Wrap(key Key) ([]byte, error) {
	resp, err := w.kms.Encrypt(&kms.EncryptInput{
		KeyId:     aws.String(w.KeyId),
		Plaintext: key,
	})
	if err != nil {
		return nil, &CryptoError{Kind: WrapFailed, Op: "kms wrap", Err: err}
	}
	return resp.CiphertextBlob, nil
}

// Unwrap decrypts a blob that was encrypted under the CMK.
func (w *KMSWrapper) Unwrap(blob []byte) (Key, error) {
	resp, err := w.kms.Decrypt(&kms.DecryptInput{
		CiphertextBlob: blob,
	})
	if err != nil {
		return nil, &CryptoError{Kind: UnwrapFailed, Op: "kms unwrap", Err: err}
	}
	return Key(resp.Plaintext), nil
}
