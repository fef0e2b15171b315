package models

// SessionRecord is the persisted form of the credential: three string fields
// of a local key-value store. EncryptedCredential and Nonce are base64.
type SessionRecord struct {
	EncryptedCredential string
	Nonce               string
	Scheme              string
}

// IsZero reports whether no encrypted credential is present.
func (r SessionRecord) IsZero() bool {
	return r.EncryptedCredential == ""
}

// SessionState is derived from the vault on every read; it is never stored.
type SessionState int

const (
	StateLoggedOut SessionState = iota
	StateLoggedIn
)

func (s SessionState) String() string {
	if s == StateLoggedIn {
		return "logged in"
	}
	return "logged out"
}
