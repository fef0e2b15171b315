// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// keySize is the length of every generated key: AES-256.
const keySize = 32

// keyIDSalt domain-separates key identifiers from the key itself.
const keyIDSalt = "boot-mobile-secure/key-id"

// generateKey reads keySize random bytes from the OS CSPRNG.
func generateKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// keyID derives the public identifier of key under alias:
// alias ":" hex(SHA-256(keyIDSalt ‖ key))[:16].
func keyID(alias string, key []byte) string {
	h := sha256.New()
	h.Write([]byte(keyIDSalt))
	h.Write(key)
	return alias + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// seal encrypts plaintext with AES-GCM under a random 12-byte nonce.
func seal(key, plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nil, nonce, plaintext, aad), nonce, nil
}

// open verifies and decrypts ciphertext. A nonce of the wrong length is an
// authentication failure, not a panic.
func open(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return plaintext, nil
}

// wrap seals key under kek and returns nonce ‖ ciphertext.
func wrap(key, kek []byte) ([]byte, error) {
	ciphertext, nonce, err := seal(kek, key, nil)
	if err != nil {
		return nil, err
	}
	return append(nonce, ciphertext...), nil
}

// unwrap reverses wrap. Fails when kek is wrong or the blob is corrupted.
func unwrap(blob, kek []byte) ([]byte, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	return open(kek, blob[:nonceSize], blob[nonceSize:], nil)
}
