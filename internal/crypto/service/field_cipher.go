package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
	"github.com/allisson/finledger/internal/entity"
	apperrors "github.com/allisson/finledger/internal/errors"
)

// FieldCipher encrypts individual values and the sensitive fields of records.
//
// Encrypted values are base64(nonce ‖ ciphertext ‖ tag) strings. Numbers are sealed as
// their canonical decimal string, so amounts round-trip without float drift.
//
// DecryptFields is tolerant of rows written by systems that bypass the cipher: a field
// whose stored value fails authentication or is not a ciphertext at all is read as
// plaintext. The fallback applies per field and only to value errors; a key that cannot
// be loaded aborts the whole call.
type FieldCipher struct {
	keys   KeyManager
	logger *slog.Logger

	mu     sync.Mutex
	sealer Sealer
}

// NewFieldCipher creates a field cipher drawing its key from keys.
func NewFieldCipher(keys KeyManager, logger *slog.Logger) *FieldCipher {
	return &FieldCipher{keys: keys, logger: logger}
}

// newFieldCipherWithSealer is used by tests to bypass key derivation.
func newFieldCipherWithSealer(sealer Sealer, logger *slog.Logger) *FieldCipher {
	return &FieldCipher{sealer: sealer, logger: logger}
}

func (c *FieldCipher) getSealer(ctx context.Context) (Sealer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sealer != nil {
		return c.sealer, nil
	}

	key, err := c.keys.Key(ctx)
	if err != nil {
		return nil, err
	}

	sealer, err := NewAESGCM(key.Bytes())
	if err != nil {
		return nil, err
	}
	c.sealer = sealer
	return sealer, nil
}

// Close drops the cached sealer. A later call rebuilds it from the key manager.
func (c *FieldCipher) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sealer = nil
	return nil
}

// Encrypt seals plaintext under a fresh nonce.
func (c *FieldCipher) Encrypt(ctx context.Context, plaintext string) (string, error) {
	sealer, err := c.getSealer(ctx)
	if err != nil {
		return "", err
	}

	sealed, err := sealer.Seal([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
//
// Returns ErrMalformedCiphertext for values that are not base64 or too short, and
// ErrDecryptionFailed when authentication fails.
func (c *FieldCipher) Decrypt(ctx context.Context, value string) (string, error) {
	sealer, err := c.getSealer(ctx)
	if err != nil {
		return "", err
	}

	sealed, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", cryptoDomain.ErrMalformedCiphertext
	}

	plaintext, err := sealer.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptNumber seals the canonical decimal string of n.
func (c *FieldCipher) EncryptNumber(ctx context.Context, n decimal.Decimal) (string, error) {
	return c.Encrypt(ctx, n.String())
}

// DecryptNumber opens a value produced by EncryptNumber.
func (c *FieldCipher) DecryptNumber(ctx context.Context, value string) (decimal.Decimal, error) {
	plaintext, err := c.Decrypt(ctx, value)
	if err != nil {
		return decimal.Zero, err
	}

	n, err := decimal.NewFromString(plaintext)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(cryptoDomain.ErrMalformedCiphertext, "sealed value is not a number")
	}
	return n, nil
}

// EncryptFields returns a copy of rec with every sensitive field of t encrypted.
// Missing and nil fields are left alone; records of types without a schema are returned
// unchanged.
func (c *FieldCipher) EncryptFields(ctx context.Context, t entity.Type, rec entity.Record) (entity.Record, error) {
	schema, ok := cryptoDomain.SchemaFor(t)
	if !ok || rec == nil {
		return rec, nil
	}

	out := rec.Clone()
	for _, name := range schema.Fields() {
		if !out.Has(name) {
			continue
		}
		kind, _ := schema.Kind(name)

		var (
			sealed string
			err    error
		)
		switch kind {
		case cryptoDomain.FieldNumeric:
			n, convErr := entity.ToDecimal(out[name])
			if convErr != nil {
				return nil, apperrors.Wrap(cryptoDomain.ErrUnsupportedValue, fmt.Sprintf("%s.%s", t.Tag(), name))
			}
			sealed, err = c.EncryptNumber(ctx, n)
		default:
			text, textErr := out.Text(name)
			if textErr != nil {
				return nil, apperrors.Wrap(cryptoDomain.ErrUnsupportedValue, fmt.Sprintf("%s.%s", t.Tag(), name))
			}
			sealed, err = c.Encrypt(ctx, text)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt %s.%s: %w", t.Tag(), name, err)
		}
		out[name] = sealed
	}

	return out, nil
}

// DecryptFields returns a copy of rec with every sensitive field of t decrypted. Numeric
// fields become decimal.Decimal and text fields become string.
func (c *FieldCipher) DecryptFields(ctx context.Context, t entity.Type, rec entity.Record) (entity.Record, error) {
	schema, ok := cryptoDomain.SchemaFor(t)
	if !ok || rec == nil {
		return rec, nil
	}

	out := rec.Clone()
	for _, name := range schema.Fields() {
		if !out.Has(name) {
			continue
		}
		kind, _ := schema.Kind(name)

		raw, isText := rawText(out[name])
		if !isText {
			// Not a ciphertext at all, e.g. a number written by an external system.
			out[name] = plaintextValue(kind, out[name])
			continue
		}

		var (
			value any
			err   error
		)
		if kind == cryptoDomain.FieldNumeric {
			value, err = c.DecryptNumber(ctx, raw)
		} else {
			value, err = c.Decrypt(ctx, raw)
		}

		switch {
		case err == nil:
			out[name] = value
		case cryptoDomain.IsValueError(err):
			c.logger.Debug("field is not encrypted, reading as plaintext",
				slog.String("entity", t.Tag()),
				slog.String("field", name),
			)
			out[name] = plaintextValue(kind, raw)
		default:
			return nil, fmt.Errorf("failed to decrypt %s.%s: %w", t.Tag(), name, err)
		}
	}

	return out, nil
}

func rawText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// plaintextValue interprets a stored value that was never encrypted.
func plaintextValue(kind cryptoDomain.FieldKind, raw any) any {
	if kind != cryptoDomain.FieldNumeric {
		return raw
	}

	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	n, err := entity.ToDecimal(raw)
	if err != nil {
		return decimal.Zero
	}
	return n
}
