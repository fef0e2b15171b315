package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend base URL.
	HTTPAddress string
	// RequestTimeout is the timeout of every outbound request.
	RequestTimeout time.Duration
	// AuthPathPrefix marks the endpoints sent without a credential.
	AuthPathPrefix string
}

// ClientDB contains the vault's SQLite connection settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientKeystore selects the cipher key provider backend.
type ClientKeystore struct {
	Backend    string
	Service    string
	Alias      string
	KeyFile    string
	Passphrase string
}

// ClientLog contains logger settings.
type ClientLog struct {
	Level string
	File  string
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter  ClientAdapter
	Storage  ClientStorage
	Keystore ClientKeystore
	Log      ClientLog
}

// GetClientConfig builds and validates the client config view from the merged
// structured configuration. It also returns the positional arguments left
// after flag parsing (the CLI command and its own flags).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			AuthPathPrefix: cfg.Adapter.AuthPathPrefix,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Keystore: ClientKeystore{
			Backend:    cfg.Keystore.Backend,
			Service:    cfg.Keystore.Service,
			Alias:      cfg.Keystore.Alias,
			KeyFile:    cfg.Keystore.KeyFile,
			Passphrase: cfg.Keystore.Passphrase,
		},
		Log: ClientLog{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		},
	}

	return clientCfg, rest, clientCfg.validate()
}
