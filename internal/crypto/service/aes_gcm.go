package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
)

// AESGCMCipher seals field values with AES-256-GCM.
//
// Sealed values are self-contained: a fresh 12-byte nonce is generated for every call and
// prefixed to the GCM output, so the stored layout is
//
//	nonce (12 bytes) ‖ ciphertext ‖ tag (16 bytes)
//
// Sealing the same plaintext twice yields different outputs. Opening verifies the tag
// before returning any plaintext, so tampered or foreign-key input fails closed.
//
// Thread safety:
//
//	The cipher is stateless after construction and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes. The expanded key schedule is copied by the AES block,
// so the caller may zero key afterwards.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce‖ciphertext‖tag.
func (a *AESGCMCipher) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, a.aead.NonceSize(), a.aead.NonceSize()+len(plaintext)+a.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends to the nonce slice, keeping the nonce as prefix.
	return a.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open splits the nonce prefix from sealed and decrypts the remainder.
//
// Returns ErrMalformedCiphertext when sealed cannot hold a nonce and a tag, and
// ErrDecryptionFailed when authentication fails.
func (a *AESGCMCipher) Open(sealed []byte) ([]byte, error) {
	nonceSize := a.aead.NonceSize()
	if len(sealed) < nonceSize+a.aead.Overhead() {
		return nil, cryptoDomain.ErrMalformedCiphertext
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
