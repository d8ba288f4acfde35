package service

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestFieldCipher(t *testing.T) *FieldCipher {
	t.Helper()
	source := NewEnvSecretSource(base64.StdEncoding.EncodeToString([]byte("field-cipher-test-secret")))
	return NewFieldCipher(NewKeyManager(source), discardLogger)
}

func TestFieldCipher_EncryptDecrypt(t *testing.T) {
	ctx := context.Background()
	cipher := newTestFieldCipher(t)

	t.Run("round trip", func(t *testing.T) {
		for _, plaintext := range []string{"", "Mercado", "Aluguel (1/3)", "çãé 漢字 🚀", strings.Repeat("x", 4096)} {
			sealed, err := cipher.Encrypt(ctx, plaintext)
			require.NoError(t, err)

			opened, err := cipher.Decrypt(ctx, sealed)
			require.NoError(t, err)
			assert.Equal(t, plaintext, opened)
		}
	})

	t.Run("non deterministic", func(t *testing.T) {
		a, err := cipher.Encrypt(ctx, "rent")
		require.NoError(t, err)
		b, err := cipher.Encrypt(ctx, "rent")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)

		for _, sealed := range []string{a, b} {
			opened, err := cipher.Decrypt(ctx, sealed)
			require.NoError(t, err)
			assert.Equal(t, "rent", opened)
		}
	})

	t.Run("value layout", func(t *testing.T) {
		sealed, err := cipher.Encrypt(ctx, "abc")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(sealed)
		require.NoError(t, err)
		assert.Len(t, raw, cryptoDomain.NonceSize+3+cryptoDomain.TagSize)
	})

	t.Run("tampered value fails with decryption error", func(t *testing.T) {
		sealed, err := cipher.Encrypt(ctx, "salary")
		require.NoError(t, err)
		raw, err := base64.StdEncoding.DecodeString(sealed)
		require.NoError(t, err)

		for i := range raw {
			tampered := append([]byte(nil), raw...)
			tampered[i] ^= 0x80
			_, err := cipher.Decrypt(ctx, base64.StdEncoding.EncodeToString(tampered))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		}
	})

	t.Run("plaintext input is malformed", func(t *testing.T) {
		_, err := cipher.Decrypt(ctx, "12.50")
		assert.True(t, cryptoDomain.IsValueError(err))
	})

	t.Run("value sealed under another secret", func(t *testing.T) {
		other := NewFieldCipher(NewKeyManager(NewEnvSecretSource("b3RoZXI=")), discardLogger)
		sealed, err := other.Encrypt(ctx, "rent")
		require.NoError(t, err)

		_, err = cipher.Decrypt(ctx, sealed)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestFieldCipher_Close(t *testing.T) {
	ctx := context.Background()
	manager := NewKeyManager(NewEnvSecretSource(base64.StdEncoding.EncodeToString([]byte("close-secret"))))
	cipher := NewFieldCipher(manager, discardLogger)

	sealed, err := cipher.Encrypt(ctx, "Aluguel")
	require.NoError(t, err)
	key, err := manager.Key(ctx)
	require.NoError(t, err)

	require.NoError(t, cipher.Close())
	require.NoError(t, manager.Close())

	assert.Nil(t, cipher.sealer)
	assert.Equal(t, make([]byte, cryptoDomain.KeySize), key.Bytes())

	opened, err := cipher.Decrypt(ctx, sealed)
	require.NoError(t, err)
	assert.Equal(t, "Aluguel", opened)
}

func TestFieldCipher_Numbers(t *testing.T) {
	ctx := context.Background()
	cipher := newTestFieldCipher(t)

	values := []string{"0", "0.01", "12.5", "100", "33.33", "-250.75", "999999999.99", "0.1", "1234567.89"}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			n := decimal.RequireFromString(v)
			sealed, err := cipher.EncryptNumber(ctx, n)
			require.NoError(t, err)

			got, err := cipher.DecryptNumber(ctx, sealed)
			require.NoError(t, err)
			assert.True(t, n.Equal(got), "want %s got %s", n, got)
		})
	}

	t.Run("sealed text that is not a number", func(t *testing.T) {
		sealed, err := cipher.Encrypt(ctx, "groceries")
		require.NoError(t, err)

		_, err = cipher.DecryptNumber(ctx, sealed)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedCiphertext)
	})
}

func TestFieldCipher_EncryptFields(t *testing.T) {
	ctx := context.Background()
	cipher := newTestFieldCipher(t)
	id := uuid.Must(uuid.NewV7())

	t.Run("encrypts schema fields only", func(t *testing.T) {
		rec := entity.Record{
			"id":          id,
			"amount":      decimal.RequireFromString("12.50"),
			"description": "Mercado",
			"notes":       nil,
			"status":      "planned",
		}

		out, err := cipher.EncryptFields(ctx, entity.Transactions, rec)
		require.NoError(t, err)

		assert.Equal(t, id, out["id"])
		assert.Equal(t, "planned", out["status"])
		assert.Nil(t, out["notes"])
		assert.IsType(t, "", out["amount"])
		assert.NotEqual(t, "Mercado", out["description"])

		amount, err := cipher.DecryptNumber(ctx, out["amount"].(string))
		require.NoError(t, err)
		assert.Equal(t, "12.5", amount.String())

		// input untouched
		assert.Equal(t, "Mercado", rec["description"])
	})

	t.Run("accepts plain numeric types", func(t *testing.T) {
		out, err := cipher.EncryptFields(ctx, entity.CreditCards, entity.Record{
			"credit_limit": 5000,
			"current_bill": 0.5,
		})
		require.NoError(t, err)

		back, err := cipher.DecryptFields(ctx, entity.CreditCards, out)
		require.NoError(t, err)
		assert.Equal(t, "5000", back["credit_limit"].(decimal.Decimal).String())
		assert.Equal(t, "0.5", back["current_bill"].(decimal.Decimal).String())
	})

	t.Run("unsupported numeric value", func(t *testing.T) {
		_, err := cipher.EncryptFields(ctx, entity.BankAccounts, entity.Record{"balance": true})
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedValue)
	})

	t.Run("type without schema is returned unchanged", func(t *testing.T) {
		rec := entity.Record{"amount": "1"}
		out, err := cipher.EncryptFields(ctx, entity.Type(0), rec)
		require.NoError(t, err)
		assert.Equal(t, rec, out)
	})
}

func TestFieldCipher_DecryptFields(t *testing.T) {
	ctx := context.Background()
	cipher := newTestFieldCipher(t)

	t.Run("round trip", func(t *testing.T) {
		plain := entity.Record{
			"amount":      decimal.RequireFromString("300"),
			"description": "Notebook (1/3)",
			"notes":       "parcelado",
		}
		sealed, err := cipher.EncryptFields(ctx, entity.Transactions, plain)
		require.NoError(t, err)

		out, err := cipher.DecryptFields(ctx, entity.Transactions, sealed)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("300").Equal(out["amount"].(decimal.Decimal)))
		assert.Equal(t, "Notebook (1/3)", out["description"])
		assert.Equal(t, "parcelado", out["notes"])
	})

	t.Run("fallback is field scoped", func(t *testing.T) {
		description, err := cipher.Encrypt(ctx, "Padaria")
		require.NoError(t, err)

		out, err := cipher.DecryptFields(ctx, entity.Transactions, entity.Record{
			"amount":      "12.50",
			"description": description,
		})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("12.50").Equal(out["amount"].(decimal.Decimal)))
		assert.Equal(t, "Padaria", out["description"])
	})

	t.Run("unparsable numeric plaintext becomes zero", func(t *testing.T) {
		out, err := cipher.DecryptFields(ctx, entity.BankAccounts, entity.Record{"balance": "n/a"})
		require.NoError(t, err)
		assert.True(t, decimal.Zero.Equal(out["balance"].(decimal.Decimal)))
	})

	t.Run("plaintext text passes through", func(t *testing.T) {
		out, err := cipher.DecryptFields(ctx, entity.Transactions, entity.Record{"description": "via webhook"})
		require.NoError(t, err)
		assert.Equal(t, "via webhook", out["description"])
	})

	t.Run("raw numbers are read as plaintext", func(t *testing.T) {
		out, err := cipher.DecryptFields(ctx, entity.Transactions, entity.Record{"amount": 42.5})
		require.NoError(t, err)
		assert.Equal(t, "42.5", out["amount"].(decimal.Decimal).String())
	})

	t.Run("key failure is not absorbed", func(t *testing.T) {
		broken := NewFieldCipher(NewKeyManager(NewEnvSecretSource("")), discardLogger)
		_, err := broken.DecryptFields(ctx, entity.Transactions, entity.Record{"amount": "12.50"})
		assert.ErrorIs(t, err, cryptoDomain.ErrConfiguration)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("type without schema is returned unchanged", func(t *testing.T) {
		rec := entity.Record{"amount": "x"}
		out, err := cipher.DecryptFields(ctx, entity.Type(42), rec)
		require.NoError(t, err)
		assert.Equal(t, rec, out)
	})
}

// failingSealer returns a non value error from Open.
type failingSealer struct{}

func (failingSealer) Seal(plaintext []byte) ([]byte, error) { return plaintext, nil }

func (failingSealer) Open(sealed []byte) ([]byte, error) { return nil, assert.AnError }

func TestFieldCipher_DecryptFields_UnexpectedError(t *testing.T) {
	cipher := newFieldCipherWithSealer(failingSealer{}, discardLogger)

	_, err := cipher.DecryptFields(context.Background(), entity.BankAccounts, entity.Record{
		"balance": base64.StdEncoding.EncodeToString(make([]byte, 40)),
	})
	assert.ErrorIs(t, err, assert.AnError)
}
