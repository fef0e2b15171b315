package crypto

import (
	"fmt"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
)

// NewKeyProvider selects the backend named by cfg.Backend.
func NewKeyProvider(cfg config.ClientKeystore) (KeyProvider, error) {
	switch cfg.Backend {
	case config.KeystoreBackendKeyring:
		return NewKeyringProvider(cfg.Service, cfg.Alias), nil
	case config.KeystoreBackendFile:
		return NewFileProvider(cfg.KeyFile, cfg.Passphrase, cfg.Alias), nil
	case config.KeystoreBackendMemory:
		return NewMemoryProvider(cfg.Alias), nil
	default:
		return nil, fmt.Errorf("unknown keystore backend %q", cfg.Backend)
	}
}
