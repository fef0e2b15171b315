// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault is the single owner of the persisted bearer credential. It
// encrypts the secret through a crypto.KeyProvider and keeps the resulting
// blob in a store.SessionStore.
//
// State is derived, never cached: a credential is present exactly when the
// stored record decrypts. A record that fails authentication is purged.
package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/crypto"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/store"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// Vault implements save/get/clear/isPresent over the encrypted record.
// Save, Clear and purges hold the write lock; Get and IsPresent share the
// read lock.
type Vault struct {
	keys   crypto.KeyProvider
	store  store.SessionStore
	logger *logger.Logger

	mu sync.RWMutex
}

func New(keys crypto.KeyProvider, sessionStore store.SessionStore, logger *logger.Logger) *Vault {
	return &Vault{
		keys:   keys,
		store:  sessionStore,
		logger: logger,
	}
}

// Save encrypts cred and replaces the stored record. If encryption fails
// nothing is written and the returned error wraps crypto.ErrCrypto.
func (v *Vault) Save(ctx context.Context, cred models.Credential) error {
	if cred.IsZero() {
		return ErrEmptyCredential
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	handle, err := v.keys.EnsureKey()
	if err != nil {
		v.logger.Err(err).Str("func", "*Vault.Save").Msg("key unavailable")
		return fmt.Errorf("error ensuring vault key: %w", err)
	}

	blob, err := v.keys.Encrypt(handle, []byte(cred.Secret), []byte(cred.Scheme))
	if err != nil {
		v.logger.Err(err).Str("func", "*Vault.Save").Msg("error encrypting credential")
		return fmt.Errorf("error encrypting credential: %w", err)
	}

	rec := models.SessionRecord{
		EncryptedCredential: base64.StdEncoding.EncodeToString(blob.Ciphertext),
		Nonce:               base64.StdEncoding.EncodeToString(blob.Nonce),
		Scheme:              cred.Scheme,
	}
	if err := v.store.SaveSession(ctx, rec); err != nil {
		v.logger.Err(err).Str("func", "*Vault.Save").Msg("error saving session record")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	v.logger.Debug().Str("scheme", cred.Scheme).Msg("credential saved")
	return nil
}

// Get returns the stored credential. Absence and every decryption failure
// report false; the error never crosses this boundary.
func (v *Vault) Get(ctx context.Context) (models.Credential, bool) {
	v.mu.RLock()
	cred, rec, err := v.read(ctx)
	v.mu.RUnlock()

	if err == nil {
		return cred, true
	}

	if errors.Is(err, crypto.ErrDecrypt) {
		v.purge(ctx, rec)
	}
	return models.Credential{}, false
}

// IsPresent reports whether Get would return a credential. It decrypts.
func (v *Vault) IsPresent(ctx context.Context) bool {
	_, ok := v.Get(ctx)
	return ok
}

// Clear removes the record. Clearing an empty vault succeeds.
func (v *Vault) Clear(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.store.DeleteSession(ctx); err != nil {
		v.logger.Err(err).Str("func", "*Vault.Clear").Msg("error deleting session record")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	v.logger.Debug().Msg("credential cleared")
	return nil
}

// read loads and decrypts the record. The caller holds at least the read
// lock. rec is returned with the error so that a failed record can be purged.
func (v *Vault) read(ctx context.Context) (models.Credential, models.SessionRecord, error) {
	rec, err := v.store.LoadSession(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			v.logger.Err(err).Str("func", "*Vault.read").Msg("error loading session record")
		}
		return models.Credential{}, rec, err
	}

	ciphertext, errC := base64.StdEncoding.DecodeString(rec.EncryptedCredential)
	nonce, errN := base64.StdEncoding.DecodeString(rec.Nonce)
	if errC != nil || errN != nil {
		return models.Credential{}, rec, fmt.Errorf("%w: stored record is not base64", crypto.ErrDecrypt)
	}

	handle, err := v.keys.EnsureKey()
	if err != nil {
		v.logger.Warn().Err(err).Str("func", "*Vault.read").Msg("vault key unavailable")
		return models.Credential{}, rec, err
	}

	blob := models.EncryptedBlob{Ciphertext: ciphertext, Nonce: nonce, KeyID: handle.ID()}
	secret, err := v.keys.Decrypt(handle, blob, []byte(rec.Scheme))
	if err != nil {
		v.logger.Warn().Err(err).Str("func", "*Vault.read").Msg("stored credential failed to decrypt")
		return models.Credential{}, rec, err
	}

	cred := models.Credential{Secret: string(secret), Scheme: rec.Scheme}
	if cred.IsZero() {
		return models.Credential{}, rec, fmt.Errorf("%w: empty secret", crypto.ErrDecrypt)
	}
	return cred, rec, nil
}

// purge deletes rec if it is still the stored record. A concurrent Save may
// have replaced it between the read and the write lock.
func (v *Vault) purge(ctx context.Context, rec models.SessionRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()

	current, err := v.store.LoadSession(ctx)
	if err != nil || current != rec {
		return
	}

	if err := v.store.DeleteSession(ctx); err != nil {
		v.logger.Err(err).Str("func", "*Vault.purge").Msg("error purging undecryptable credential")
		return
	}
	v.logger.Warn().Msg("undecryptable credential purged")
}
