package domain

import (
	"github.com/allisson/finledger/internal/errors"
)

// Field encryption error definitions.
//
// The cipher separates failures about a single stored value from failures of the cipher
// itself. Only value errors may be absorbed by the plaintext fallback of DecryptFields;
// everything else must reach the caller.
var (
	// ErrConfiguration indicates the encryption secret is absent, not valid base64, or could
	// not be unwrapped by the configured KMS key.
	//
	// Fatal for every cipher operation. Retrying without fixing configuration cannot succeed.
	ErrConfiguration = errors.Wrap(errors.ErrConfiguration, "encryption key unavailable")

	// ErrInvalidKeySize indicates key material that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrConfiguration, "invalid key size")

	// ErrDecryptionFailed indicates the GCM authentication tag did not verify.
	//
	// Causes: the value was sealed under a different key, it was tampered with, or it was
	// never encrypted and only happens to decode as base64.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMalformedCiphertext indicates the value is not base64 or is too short to hold a
	// nonce and a tag.
	ErrMalformedCiphertext = errors.Wrap(errors.ErrInvalidInput, "malformed ciphertext")

	// ErrUnsupportedValue indicates a value of a schema field that cannot be encoded for its
	// kind (e.g. a boolean in a numeric field).
	ErrUnsupportedValue = errors.Wrap(errors.ErrInvalidInput, "unsupported field value")
)

// IsValueError reports whether err describes a problem with one stored value rather than
// with the cipher. These are the only errors the plaintext fallback may absorb.
func IsValueError(err error) bool {
	return errors.Is(err, ErrDecryptionFailed) || errors.Is(err, ErrMalformedCiphertext)
}
