// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Keystore backend names accepted by [Keystore.Backend].
const (
	KeystoreBackendKeyring = "keyring"
	KeystoreBackendFile    = "file"
	KeystoreBackendMemory  = "memory"
)

// StructuredConfig is the top-level configuration container for the client.
// It aggregates all sub-configurations and is populated by merging defaults,
// an optional JSON file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the backend address and transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the durable store used by the credential vault.
	Storage Storage `envPrefix:"STORAGE_"`

	// Keystore selects and configures the cipher key provider.
	Keystore Keystore `envPrefix:"KEYSTORE_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds the settings of the outbound HTTP transport.
type Adapter struct {
	// HTTPAddress is the backend base URL (e.g. "https://api.example.com").
	// A missing scheme defaults to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthPathPrefix is the path prefix of the authentication endpoints
	// (login/register/refresh) which are sent without a credential.
	// Env: ADAPTER_AUTH_PATH_PREFIX
	AuthPathPrefix string `env:"AUTH_PATH_PREFIX"`
}

// Storage groups the configuration of the vault's durable store.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings. ":memory:" selects a
// process-local store that is lost on exit.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Keystore configures where the vault's symmetric key lives.
type Keystore struct {
	// Backend is one of "keyring", "file" or "memory".
	// Env: KEYSTORE_BACKEND
	Backend string `env:"BACKEND"`

	// Service is the OS keyring service name.
	// Env: KEYSTORE_SERVICE
	Service string `env:"SERVICE"`

	// Alias is the fixed logical name the key is stored under.
	// Env: KEYSTORE_ALIAS
	Alias string `env:"ALIAS"`

	// KeyFile is the wrapped key file used by the "file" backend.
	// Env: KEYSTORE_KEY_FILE
	KeyFile string `env:"KEY_FILE"`

	// Passphrase unwraps KeyFile. It is read from the environment only.
	// Env: KEYSTORE_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`
}

// Log holds logger settings.
type Log struct {
	// Level is one of "debug", "info", "warn", "error".
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the path of the client log file.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// defaultConfig returns the lowest-priority configuration source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
			AuthPathPrefix: "/api/auth/",
		},
		Storage: Storage{
			DB: DB{DSN: "session.db"},
		},
		Keystore: Keystore{
			Backend: KeystoreBackendKeyring,
			Service: "boot-mobile-secure",
			Alias:   "auth_token_key",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources. Priority (last wins for non-zero fields):
//  1. Defaults
//  2. JSON file (path resolved from env and flags)
//  3. Environment variables
//  4. Command-line flags
//
// args are the command-line arguments without the program name. The
// positional arguments left after flag parsing are returned alongside.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON()

	cfg, err := b.build()
	return cfg, b.rest, err
}
