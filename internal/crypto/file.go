// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
)

// wrappedKeyFile is the on-disk layout of the file backend.
type wrappedKeyFile struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Key     []byte `json:"key"` // nonce ‖ AES-GCM(KEK, key)
}

// fileKeySource keeps the key in a file, wrapped by a key-encryption key
// derived from a passphrase with Argon2id. The unwrapped key is cached after
// the first successful load.
type fileKeySource struct {
	path       string
	passphrase string

	// Argon2id tuning parameters.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8

	mu     sync.Mutex
	cached []byte
}

// NewFileProvider returns a [KeyProvider] for hosts without an OS keystore.
// It uses the Argon2id parameters recommended by OWASP (2024): 1 iteration,
// 64 MiB, 4 threads.
func NewFileProvider(path, passphrase, alias string) KeyProvider {
	return newAEADProvider(alias, newFileKeySource(path, passphrase, 1, 64*1024, 4))
}

func newFileKeySource(path, passphrase string, argonTime, argonMemory uint32, argonThreads uint8) *fileKeySource {
	return &fileKeySource{
		path:         path,
		passphrase:   passphrase,
		argonTime:    argonTime,
		argonMemory:  argonMemory,
		argonThreads: argonThreads,
	}
}

func (s *fileKeySource) kek(salt []byte) []byte {
	return argon2.IDKey([]byte(s.passphrase), salt, s.argonTime, s.argonMemory, s.argonThreads, keySize)
}

func (s *fileKeySource) load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	var f wrappedKeyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}

	key, err := unwrap(f.Key, s.kek(f.Salt))
	if err != nil {
		return nil, fmt.Errorf("unwrap key (wrong passphrase?): %w", err)
	}

	s.cached = key
	return key, nil
}

func (s *fileKeySource) store(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return err
	}

	wrapped, err := wrap(key, s.kek(salt))
	if err != nil {
		return fmt.Errorf("wrap key: %w", err)
	}

	data, err := json.Marshal(wrappedKeyFile{Version: 1, Salt: salt, Key: wrapped})
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}

	s.cached = key
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory with
// mode 0600 and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create key dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".key-*")
	if err != nil {
		return fmt.Errorf("create temp key file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp key file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
