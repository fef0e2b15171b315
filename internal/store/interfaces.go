package store

import (
	"context"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_store_mock.go -package=mock

// SessionStore is the durable key-value layout behind the credential vault.
// It stores opaque strings and knows nothing about encryption.
type SessionStore interface {
	// LoadSession returns the persisted fields, or ErrSessionNotFound when
	// the encrypted credential field is absent.
	LoadSession(ctx context.Context) (models.SessionRecord, error)

	// SaveSession replaces all fields atomically: either every field of rec
	// is persisted or the previous record stays intact.
	SaveSession(ctx context.Context, rec models.SessionRecord) error

	// DeleteSession removes every field. Deleting an absent session is not
	// an error.
	DeleteSession(ctx context.Context) error
}
