package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
)

func TestNewKeyProvider(t *testing.T) {
	p, err := NewKeyProvider(config.ClientKeystore{Backend: config.KeystoreBackendMemory, Alias: "a"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKeyProvider{}, p)

	p, err = NewKeyProvider(config.ClientKeystore{Backend: config.KeystoreBackendKeyring, Service: "s", Alias: "a"})
	require.NoError(t, err)
	assert.NotNil(t, p)

	p, err = NewKeyProvider(config.ClientKeystore{Backend: config.KeystoreBackendFile, KeyFile: "k", Passphrase: "p", Alias: "a"})
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = NewKeyProvider(config.ClientKeystore{Backend: "hsm"})
	assert.Error(t, err)
}
