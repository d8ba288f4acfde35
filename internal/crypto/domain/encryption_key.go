package domain

// EncryptionKey is the process-wide AES-256 key derived from the configured secret.
//
// The key bytes are unexported so the value cannot be marshalled, and String/GoString
// redact it so an accidental log line never carries key material.
type EncryptionKey struct {
	material []byte
}

// NewEncryptionKey takes ownership of material. The caller must not reuse the slice.
func NewEncryptionKey(material []byte) (*EncryptionKey, error) {
	if len(material) != KeySize {
		return nil, ErrInvalidKeySize
	}
	return &EncryptionKey{material: material}, nil
}

// Bytes returns the key material for cipher construction.
func (k *EncryptionKey) Bytes() []byte {
	return k.material
}

// Destroy zeroes the key material.
func (k *EncryptionKey) Destroy() {
	if k == nil {
		return
	}
	Zero(k.material)
}

// String implements fmt.Stringer without revealing the key.
func (k *EncryptionKey) String() string {
	return "EncryptionKey(redacted)"
}

// GoString implements fmt.GoStringer without revealing the key.
func (k *EncryptionKey) GoString() string {
	return k.String()
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
