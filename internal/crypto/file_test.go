package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cheap Argon2id parameters keep the tests fast.
func newTestFileProvider(path, passphrase string) KeyProvider {
	return newAEADProvider("alias", newFileKeySource(path, passphrase, 1, 8*1024, 1))
}

func TestFileProvider_CreatesKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "vault.key")
	p := newTestFileProvider(path, "correct horse")

	h, err := p.EnsureKey()
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	blob, err := p.Encrypt(h, []byte("secret"), nil)
	require.NoError(t, err)

	// A fresh provider unwraps the same key from disk.
	p2 := newTestFileProvider(path, "correct horse")
	h2, err := p2.EnsureKey()
	require.NoError(t, err)
	assert.Equal(t, h, h2)

	got, err := p2.Decrypt(h2, blob, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)
}

func TestFileProvider_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.key")
	_, err := newTestFileProvider(path, "right").EnsureKey()
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = newTestFileProvider(path, "wrong").EnsureKey()
	assert.ErrorIs(t, err, ErrKeyUnavailable)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a wrong passphrase must never overwrite the key file")
}

func TestFileProvider_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.key")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := newTestFileProvider(path, "pass").EnsureKey()

	assert.ErrorIs(t, err, ErrKeyUnavailable)
}

func TestWrapUnwrap(t *testing.T) {
	key, err := generateKey()
	require.NoError(t, err)
	kek, err := generateKey()
	require.NoError(t, err)

	wrapped, err := wrap(key, kek)
	require.NoError(t, err)

	got, err := unwrap(wrapped, kek)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	other, err := generateKey()
	require.NoError(t, err)
	_, err = unwrap(wrapped, other)
	assert.Error(t, err)

	_, err = unwrap(wrapped[:5], kek)
	assert.Error(t, err)
}
