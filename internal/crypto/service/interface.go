// Package service provides the field encryption services: secret sources, the memoized
// key manager, the AES-256-GCM sealer and the schema driven field cipher.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
)

// Sealer encrypts and decrypts self-contained values (nonce prefixed).
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// SecretSource yields the raw secret the encryption key is derived from.
// Implementations return errors wrapping cryptoDomain.ErrConfiguration.
type SecretSource interface {
	Secret(ctx context.Context) ([]byte, error)
}

// KeyManager hands out the process encryption key.
type KeyManager interface {
	// Key returns the derived key, deriving it on first use.
	Key(ctx context.Context) (*cryptoDomain.EncryptionKey, error)
	// Close zeroes the cached key.
	Close() error
}
