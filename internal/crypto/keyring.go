package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// keyringKeySource keeps the key in the OS keystore (Secret Service, macOS
// Keychain, Windows Credential Manager), base64-encoded under service/alias.
type keyringKeySource struct {
	service string
	alias   string
}

// NewKeyringProvider returns the production [KeyProvider] backed by the OS
// keystore.
func NewKeyringProvider(service, alias string) KeyProvider {
	return newAEADProvider(alias, &keyringKeySource{service: service, alias: alias})
}

func (s *keyringKeySource) load() ([]byte, error) {
	encoded, err := keyring.Get(s.service, s.alias)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, errKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) != keySize {
		return nil, fmt.Errorf("keyring entry %s/%s is not a key", s.service, s.alias)
	}
	return key, nil
}

func (s *keyringKeySource) store(key []byte) error {
	if err := keyring.Set(s.service, s.alias, base64.StdEncoding.EncodeToString(key)); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}
