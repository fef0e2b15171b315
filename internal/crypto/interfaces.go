package crypto

import "github.com/oguzhanozgokce/BootMobileSecure/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/key_provider_mock.go -package=mock

// KeyHandle refers to a key held by a [KeyProvider] without exposing it.
type KeyHandle struct {
	id string
}

// ID returns the opaque identifier of the key. It changes whenever the key
// is regenerated.
func (h KeyHandle) ID() string {
	return h.id
}

// IsZero reports whether h was never issued by a provider.
func (h KeyHandle) IsZero() bool {
	return h.id == ""
}

// KeyProvider owns a symmetric AEAD key stored under a fixed alias. Raw key
// material never leaves the provider: callers only ask it to encrypt or
// decrypt.
//
// aad is authenticated but not encrypted; the same value must be supplied to
// Decrypt.
type KeyProvider interface {
	// EnsureKey returns a handle to the key, generating it on first use.
	EnsureKey() (KeyHandle, error)

	// Encrypt seals plaintext under a fresh random nonce. Fails with
	// ErrKeyUnavailable when the handle's key is gone.
	Encrypt(h KeyHandle, plaintext, aad []byte) (models.EncryptedBlob, error)

	// Decrypt opens blob. Fails with ErrDecrypt on any authentication failure
	// and with ErrKeyUnavailable when the key is gone.
	Decrypt(h KeyHandle, blob models.EncryptedBlob, aad []byte) ([]byte, error)
}
