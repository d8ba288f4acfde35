package app

import (
	"fmt"

	cryptoService "github.com/allisson/finledger/internal/crypto/service"
)

type cryptoComponents struct {
	kmsService  lazy[cryptoService.KMSService]
	keyManager  lazy[cryptoService.KeyManager]
	fieldCipher lazy[*cryptoService.FieldCipher]
}

// KMSService returns the KMS service used to wrap and unwrap the encryption secret.
func (c *Container) KMSService() cryptoService.KMSService {
	kms, _ := c.crypto.kmsService.get(func() (cryptoService.KMSService, error) {
		return cryptoService.NewKMSService(), nil
	})
	return kms
}

// SecretSource returns the source of the raw encryption secret. A configured KMS key
// means ENCRYPTION_SECRET holds KMS ciphertext.
func (c *Container) SecretSource() cryptoService.SecretSource {
	if c.config.KMSEnabled() {
		return cryptoService.NewKMSSecretSource(c.KMSService(), c.config.KMSKeyURI, c.config.EncryptionSecret)
	}
	return cryptoService.NewEnvSecretSource(c.config.EncryptionSecret)
}

// KeyManager returns the process wide key manager. The key is derived on first use.
func (c *Container) KeyManager() cryptoService.KeyManager {
	keys, _ := c.crypto.keyManager.get(func() (cryptoService.KeyManager, error) {
		return cryptoService.NewKeyManager(c.SecretSource()), nil
	})
	return keys
}

// FieldCipher returns the cipher applied to sensitive record fields.
func (c *Container) FieldCipher() (*cryptoService.FieldCipher, error) {
	return c.crypto.fieldCipher.get(func() (*cryptoService.FieldCipher, error) {
		if c.config.KMSProvider != "" && c.config.KMSKeyURI == "" {
			return nil, fmt.Errorf("KMS_KEY_URI is required when KMS_PROVIDER is %q", c.config.KMSProvider)
		}
		return cryptoService.NewFieldCipher(c.KeyManager(), c.Logger()), nil
	})
}
