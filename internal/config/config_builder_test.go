package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_Priority verifies defaults < json < env < flags for non-zero
// fields and that zero fields never erase a lower-priority value.
func TestBuild_Priority(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.json = &StructuredConfig{
		Adapter: Adapter{HTTPAddress: "http://json", RequestTimeout: 5 * time.Second},
		Log:     Log{Level: "warn"},
	}
	b.env = &StructuredConfig{
		Adapter: Adapter{HTTPAddress: "http://env"},
		Storage: Storage{DB: DB{DSN: "env.db"}},
	}
	b.flags = &StructuredConfig{
		Adapter: Adapter{HTTPAddress: "http://flags"},
	}

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "http://flags", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/api/auth/", cfg.Adapter.AuthPathPrefix)
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, KeystoreBackendKeyring, cfg.Keystore.Backend)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_ADDRESS": "http://from-env",
		"LOG_LEVEL":       "error",
	})

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.NotNil(t, b.env)
	assert.Equal(t, "http://from-env", b.env.Adapter.HTTPAddress)
	assert.Equal(t, "error", b.env.Log.Level)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "x"})

	b := newConfigBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Nil(t, b.env)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_KeepsRest(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-d", "f.db", "status"}))

	require.NoError(t, b.err)
	assert.Equal(t, "f.db", b.flags.Storage.DB.DSN)
	assert.Equal(t, []string{"status"}, b.rest)
}

func TestWithFlags_SetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"--bogus"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.env = &StructuredConfig{}
	b.withJSON()

	assert.Nil(t, b.json)
	assert.NoError(t, b.err)
}

func TestWithJSON_FlagPathWinsOverEnv(t *testing.T) {
	envPath := writeTempJSONConfig(t, `{"log":{"level":"debug"}}`)
	flagPath := writeTempJSONConfig(t, `{"log":{"level":"error"}}`)

	b := newConfigBuilder()
	b.env = &StructuredConfig{JSONFilePath: envPath}
	b.flags = &StructuredConfig{JSONFilePath: flagPath}
	b.withJSON()

	require.NoError(t, b.err)
	require.NotNil(t, b.json)
	assert.Equal(t, "error", b.json.Log.Level)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.flags = &StructuredConfig{JSONFilePath: "/nonexistent/config.json"}
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_KeepsEarlierError(t *testing.T) {
	path := writeTempJSONConfig(t, `{not json`)

	b := newConfigBuilder()
	b.err = assert.AnError
	b.env = &StructuredConfig{JSONFilePath: path}
	b.withJSON()

	assert.ErrorIs(t, b.err, assert.AnError)
}

// ── GetClientConfig ───────────────────────────────────────────────────────────

func TestGetClientConfig_DefaultsAreValid(t *testing.T) {
	setEnvVars(t, nil)

	cfg, rest, err := GetClientConfig([]string{"status"})

	require.NoError(t, err)
	assert.Equal(t, []string{"status"}, rest)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, KeystoreBackendKeyring, cfg.Keystore.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestGetClientConfig_AllSources(t *testing.T) {
	path := writeTempJSONConfig(t, `{
		"adapter": {"http_address": "http://json", "request_timeout": "10s"},
		"keystore": {"backend": "file", "key_file": "/tmp/k.bin"},
		"log": {"level": "debug"}
	}`)
	setEnvVars(t, map[string]string{
		"CONFIG":              path,
		"ADAPTER_ADDRESS":     "http://env",
		"KEYSTORE_PASSPHRASE": "pass",
	})

	cfg, rest, err := GetClientConfig([]string{"--log-level", "warn", "logout"})

	require.NoError(t, err)
	assert.Equal(t, []string{"logout"}, rest)
	assert.Equal(t, "http://env", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, KeystoreBackendFile, cfg.Keystore.Backend)
	assert.Equal(t, "/tmp/k.bin", cfg.Keystore.KeyFile)
	assert.Equal(t, "pass", cfg.Keystore.Passphrase)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestGetClientConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr error
	}{
		{
			name:    "empty auth prefix path",
			args:    []string{"--auth-prefix", "auth"},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "unknown keystore backend",
			args:    []string{"--keystore", "vault"},
			wantErr: ErrInvalidKeystoreConfigs,
		},
		{
			name:    "file backend without passphrase",
			args:    []string{"--keystore", "file", "--key-file", "/tmp/k"},
			wantErr: ErrInvalidKeystoreConfigs,
		},
		{
			name:    "unknown log level",
			args:    []string{"--log-level", "loud"},
			wantErr: ErrInvalidLogConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, tt.env)

			_, _, err := GetClientConfig(tt.args)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClientConfigValidate(t *testing.T) {
	valid := func() *ClientConfig {
		return &ClientConfig{
			Adapter:  ClientAdapter{HTTPAddress: "http://h", RequestTimeout: time.Second, AuthPathPrefix: "/api/auth/"},
			Storage:  ClientStorage{DB: ClientDB{DSN: ":memory:"}},
			Keystore: ClientKeystore{Backend: KeystoreBackendMemory, Alias: "a"},
			Log:      ClientLog{Level: "info"},
		}
	}

	require.NoError(t, valid().validate())

	noTimeout := valid()
	noTimeout.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidAdapterConfigs)

	noDSN := valid()
	noDSN.Storage.DB.DSN = " "
	assert.ErrorIs(t, noDSN.validate(), ErrInvalidStorageConfigs)

	noAlias := valid()
	noAlias.Keystore.Alias = ""
	assert.ErrorIs(t, noAlias.validate(), ErrInvalidKeystoreConfigs)

	noService := valid()
	noService.Keystore.Backend = KeystoreBackendKeyring
	assert.ErrorIs(t, noService.validate(), ErrInvalidKeystoreConfigs)
}
