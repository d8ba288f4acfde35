package service

import (
	"context"
	"encoding/base64"
	"strings"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
	apperrors "github.com/allisson/finledger/internal/errors"
)

// EnvSecretSource reads the secret from a base64 configuration value.
type EnvSecretSource struct {
	encoded string
}

// NewEnvSecretSource creates a source over the base64 value of ENCRYPTION_SECRET.
func NewEnvSecretSource(encoded string) *EnvSecretSource {
	return &EnvSecretSource{encoded: encoded}
}

// Secret decodes the configured value.
func (s *EnvSecretSource) Secret(ctx context.Context) ([]byte, error) {
	return decodeSecret(s.encoded)
}

// KMSSecretSource unwraps a KMS-encrypted secret. The configured value holds the base64
// encoding of the KMS ciphertext.
type KMSSecretSource struct {
	kms     KMSService
	keyURI  string
	wrapped string
}

// NewKMSSecretSource creates a source that unwraps wrapped with the KMS key at keyURI.
func NewKMSSecretSource(kms KMSService, keyURI, wrapped string) *KMSSecretSource {
	return &KMSSecretSource{kms: kms, keyURI: keyURI, wrapped: wrapped}
}

// Secret decodes and unwraps the configured value.
func (s *KMSSecretSource) Secret(ctx context.Context) ([]byte, error) {
	ciphertext, err := decodeSecret(s.wrapped)
	if err != nil {
		return nil, err
	}

	secret, err := s.kms.UnwrapSecret(ctx, s.keyURI, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrConfiguration, err.Error())
	}
	if len(secret) == 0 {
		return nil, apperrors.Wrap(cryptoDomain.ErrConfiguration, "unwrapped secret is empty")
	}
	return secret, nil
}

func decodeSecret(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, apperrors.Wrap(cryptoDomain.ErrConfiguration, "ENCRYPTION_SECRET is not set")
	}

	secret, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrConfiguration, "ENCRYPTION_SECRET is not valid base64")
	}
	if len(secret) == 0 {
		return nil, apperrors.Wrap(cryptoDomain.ErrConfiguration, "ENCRYPTION_SECRET decodes to no bytes")
	}
	return secret, nil
}
