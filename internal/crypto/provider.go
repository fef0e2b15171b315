package crypto

import (
	"errors"
	"fmt"
	"sync"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// keySource is the storage behind an [aeadProvider]. load returns
// errKeyNotFound when nothing is stored under the alias.
type keySource interface {
	load() ([]byte, error)
	store(key []byte) error
}

// aeadProvider implements [KeyProvider] over a keySource. The key is loaded
// for every operation so that an invalidated key is noticed immediately.
type aeadProvider struct {
	alias string
	src   keySource

	mu sync.Mutex // serializes EnsureKey
}

func newAEADProvider(alias string, src keySource) *aeadProvider {
	return &aeadProvider{alias: alias, src: src}
}

func (p *aeadProvider) EnsureKey() (KeyHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key, err := p.src.load()
	if err == nil {
		return KeyHandle{id: keyID(p.alias, key)}, nil
	}
	if !errors.Is(err, errKeyNotFound) {
		return KeyHandle{}, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	key, err = generateKey()
	if err != nil {
		return KeyHandle{}, fmt.Errorf("%w: generate key: %w", ErrCrypto, err)
	}
	if err := p.src.store(key); err != nil {
		return KeyHandle{}, fmt.Errorf("%w: store key: %w", ErrKeyUnavailable, err)
	}

	return KeyHandle{id: keyID(p.alias, key)}, nil
}

// key loads the key referenced by h. A key that was regenerated since h was
// issued is reported as unavailable.
func (p *aeadProvider) key(h KeyHandle) ([]byte, error) {
	if h.IsZero() {
		return nil, fmt.Errorf("%w: empty key handle", ErrKeyUnavailable)
	}

	key, err := p.src.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}
	if keyID(p.alias, key) != h.id {
		return nil, fmt.Errorf("%w: key %s was replaced", ErrKeyUnavailable, h.id)
	}
	return key, nil
}

func (p *aeadProvider) Encrypt(h KeyHandle, plaintext, aad []byte) (models.EncryptedBlob, error) {
	key, err := p.key(h)
	if err != nil {
		return models.EncryptedBlob{}, err
	}

	ciphertext, nonce, err := seal(key, plaintext, aad)
	if err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	return models.EncryptedBlob{Ciphertext: ciphertext, Nonce: nonce, KeyID: h.id}, nil
}

func (p *aeadProvider) Decrypt(h KeyHandle, blob models.EncryptedBlob, aad []byte) ([]byte, error) {
	if blob.KeyID != h.id {
		return nil, fmt.Errorf("%w: blob key %q does not match handle", ErrDecrypt, blob.KeyID)
	}

	key, err := p.key(h)
	if err != nil {
		return nil, err
	}

	plaintext, err := open(key, blob.Nonce, blob.Ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return plaintext, nil
}
