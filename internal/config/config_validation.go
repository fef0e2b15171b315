// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate reports the first configuration group that cannot be used to
// start the client.
func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Adapter.HTTPAddress) == "" ||
		cfg.Adapter.RequestTimeout <= 0 ||
		!strings.HasPrefix(cfg.Adapter.AuthPathPrefix, "/") {
		return ErrInvalidAdapterConfigs
	}

	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Keystore.Backend {
	case KeystoreBackendKeyring:
		if cfg.Keystore.Service == "" {
			return ErrInvalidKeystoreConfigs
		}
	case KeystoreBackendFile:
		if cfg.Keystore.KeyFile == "" || cfg.Keystore.Passphrase == "" {
			return ErrInvalidKeystoreConfigs
		}
	case KeystoreBackendMemory:
	default:
		return ErrInvalidKeystoreConfigs
	}
	if cfg.Keystore.Alias == "" {
		return ErrInvalidKeystoreConfigs
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogConfigs
	}

	return nil
}
