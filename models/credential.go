// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// DefaultScheme is the authorization scheme assumed when the backend does not
// report one.
const DefaultScheme = "Bearer"

// Credential is the bearer secret issued by the backend on login, register or
// refresh together with its authorization scheme.
//
// A Credential is immutable once issued: refresh and login replace it
// wholesale, it is never partially updated.
type Credential struct {
	// Secret is the opaque bearer token. It must never be logged.
	Secret string `json:"secret"`

	// Scheme is the authorization scheme (e.g. "Bearer") placed in front of
	// the secret in the Authorization header.
	Scheme string `json:"scheme"`
}

// NewCredential builds a Credential, falling back to [DefaultScheme] when
// scheme is blank.
func NewCredential(secret, scheme string) Credential {
	scheme = strings.TrimSpace(scheme)
	if scheme == "" {
		scheme = DefaultScheme
	}
	return Credential{Secret: strings.TrimSpace(secret), Scheme: scheme}
}

// IsZero reports whether the credential carries no secret.
func (c Credential) IsZero() bool {
	return c.Secret == ""
}

// AuthorizationHeader renders the value of the Authorization header:
// "{scheme} {secret}".
func (c Credential) AuthorizationHeader() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	return scheme + " " + c.Secret
}

// String hides the secret so credentials can be passed to fmt and loggers
// without leaking it.
func (c Credential) String() string {
	return c.Scheme + " <redacted>"
}

// EncryptedBlob is the output of an AEAD encryption under a key held by the
// key provider. Nonce is unique per encryption under a given key.
type EncryptedBlob struct {
	Ciphertext []byte
	Nonce      []byte

	// KeyID identifies the key handle the blob was sealed with. Decrypting
	// with a different handle fails.
	KeyID string
}

// SessionInfo is a display-only view of the stored credential.
type SessionInfo struct {
	Scheme string

	// Subject and ExpiresAt are read from the credential when it is a JWT.
	// They are not verified and must not drive control flow.
	Subject   string
	ExpiresAt time.Time
}

// HasExpiry reports whether an expiry claim was found in the credential.
func (s SessionInfo) HasExpiry() bool {
	return !s.ExpiresAt.IsZero()
}
