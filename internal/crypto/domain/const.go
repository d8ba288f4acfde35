// Package domain defines the field encryption model: the derived encryption key, the
// per-entity field schema and the error taxonomy of the cipher.
package domain

// Key derivation and sealing parameters.
//
// Every stored ciphertext depends on these values. Changing any of them makes existing
// rows undecryptable (they would then surface through the plaintext fallback as garbage),
// so they are fixed for the lifetime of a deployment.
const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// NonceSize is the AES-GCM nonce length in bytes, prefixed to every ciphertext.
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length in bytes.
	TagSize = 16

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA256 iteration count.
	PBKDF2Iterations = 100_000
)

// pbkdf2Salt is the fixed derivation salt.
var pbkdf2Salt = [16]byte{147, 219, 90, 234, 12, 45, 189, 234, 78, 123, 45, 167, 234, 89, 12, 67}

// PBKDF2Salt returns a copy of the fixed derivation salt.
func PBKDF2Salt() []byte {
	salt := pbkdf2Salt
	return salt[:]
}
