package crypto

import (
	"errors"
	"fmt"
)

// ErrCrypto is the root of every failure reported by a [KeyProvider].
var ErrCrypto = errors.New("crypto error")

var (
	// ErrKeyUnavailable means the key cannot be used right now: it is missing,
	// was invalidated by the platform, or the backing store is locked.
	// Callers treat it as "no credential".
	ErrKeyUnavailable = fmt.Errorf("%w: key unavailable", ErrCrypto)

	// ErrDecrypt means a blob failed authentication: wrong key, wrong nonce,
	// tampered ciphertext or associated data.
	ErrDecrypt = fmt.Errorf("%w: decryption failed", ErrCrypto)
)

// errKeyNotFound is returned by a keySource when nothing is stored under the
// alias yet.
var errKeyNotFound = errors.New("key not found")
