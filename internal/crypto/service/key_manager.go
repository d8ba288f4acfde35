package service

import (
	"context"
	"crypto/sha256"
	"sync"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
)

// KeyManagerService derives the field encryption key once and serves it for the lifetime
// of the process.
//
// Derivation runs PBKDF2-HMAC-SHA256 over the raw secret with the fixed salt and
// iteration count from the domain package. Concurrent first callers share one derivation.
// A failed derivation is not cached, so a later call reads the source again.
type KeyManagerService struct {
	source SecretSource
	group  singleflight.Group

	mu  sync.RWMutex
	key *cryptoDomain.EncryptionKey
}

// NewKeyManager creates a key manager over source.
func NewKeyManager(source SecretSource) *KeyManagerService {
	return &KeyManagerService{source: source}
}

// Key returns the derived key, deriving it on first use.
func (m *KeyManagerService) Key(ctx context.Context) (*cryptoDomain.EncryptionKey, error) {
	if key := m.cached(); key != nil {
		return key, nil
	}

	v, err, _ := m.group.Do("encryption-key", func() (any, error) {
		if key := m.cached(); key != nil {
			return key, nil
		}

		secret, err := m.source.Secret(ctx)
		if err != nil {
			return nil, err
		}
		defer cryptoDomain.Zero(secret)

		key, err := cryptoDomain.NewEncryptionKey(DeriveKey(secret))
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.key = key
		m.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cryptoDomain.EncryptionKey), nil
}

// Close zeroes the cached key. A later Key call derives it again.
func (m *KeyManagerService) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.key.Destroy()
	m.key = nil
	return nil
}

func (m *KeyManagerService) cached() *cryptoDomain.EncryptionKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key
}

// DeriveKey runs PBKDF2-HMAC-SHA256 over secret and returns KeySize bytes.
func DeriveKey(secret []byte) []byte {
	return pbkdf2.Key(
		secret,
		cryptoDomain.PBKDF2Salt(),
		cryptoDomain.PBKDF2Iterations,
		cryptoDomain.KeySize,
		sha256.New,
	)
}
