package vault

import "errors"

var (
	// ErrEmptyCredential is returned by Save for a credential without a
	// secret.
	ErrEmptyCredential = errors.New("empty credential")

	// ErrPersist wraps a store failure during Save or Clear. The previous
	// record, if any, is left intact.
	ErrPersist = errors.New("failed to persist credential")
)
