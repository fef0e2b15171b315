package service

import "errors"

var (
	// ErrSaveCredential is returned when the backend issued a credential but
	// the vault could not store it. The session stays in its previous state.
	ErrSaveCredential = errors.New("failed to store credential")
)

// Messages of the typed failures the service raises itself.
const (
	msgNoCredentialInResponse = "response carried no credential"
	msgNoStoredCredential     = "no stored credential"
)
