package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
)

func newTestAESGCM(t *testing.T) *AESGCMCipher {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)
	return cipher
}

func TestNewAESGCM(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		cipher, err := NewAESGCM(make([]byte, 32))
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("invalid key size - too small", func(t *testing.T) {
		cipher, err := NewAESGCM(make([]byte, 16))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		assert.Nil(t, cipher)
	})

	t.Run("invalid key size - too large", func(t *testing.T) {
		cipher, err := NewAESGCM(make([]byte, 64))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
		assert.Nil(t, cipher)
	})
}

func TestAESGCMCipher_SealOpen(t *testing.T) {
	cipher := newTestAESGCM(t)

	t.Run("layout is nonce, ciphertext and tag", func(t *testing.T) {
		plaintext := []byte("1234.56")
		sealed, err := cipher.Seal(plaintext)
		require.NoError(t, err)
		assert.Len(t, sealed, cryptoDomain.NonceSize+len(plaintext)+cryptoDomain.TagSize)

		opened, err := cipher.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	})

	t.Run("empty plaintext", func(t *testing.T) {
		sealed, err := cipher.Seal(nil)
		require.NoError(t, err)

		opened, err := cipher.Open(sealed)
		require.NoError(t, err)
		assert.Empty(t, opened)
	})

	t.Run("same plaintext seals differently", func(t *testing.T) {
		a, err := cipher.Seal([]byte("rent"))
		require.NoError(t, err)
		b, err := cipher.Seal([]byte("rent"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("every flipped byte fails authentication", func(t *testing.T) {
		sealed, err := cipher.Seal([]byte("salary"))
		require.NoError(t, err)

		for i := range sealed {
			tampered := append([]byte(nil), sealed...)
			tampered[i] ^= 0x01

			opened, err := cipher.Open(tampered)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed, "byte %d", i)
			assert.Nil(t, opened)
		}
	})

	t.Run("foreign key fails authentication", func(t *testing.T) {
		sealed, err := cipher.Seal([]byte("salary"))
		require.NoError(t, err)

		_, err = newTestAESGCM(t).Open(sealed)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := cipher.Open(make([]byte, cryptoDomain.NonceSize+cryptoDomain.TagSize-1))
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedCiphertext)
	})
}
