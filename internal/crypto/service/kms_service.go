package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService wraps and unwraps the encryption secret with an external KMS key.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// WrapSecret encrypts secret with the KMS key at keyURI.
	WrapSecret(ctx context.Context, keyURI string, secret []byte) ([]byte, error)

	// UnwrapSecret decrypts a secret previously produced by WrapSecret.
	UnwrapSecret(ctx context.Context, keyURI string, wrapped []byte) ([]byte, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// WrapSecret opens a keeper, encrypts secret and closes the keeper.
func (k *kmsService) WrapSecret(ctx context.Context, keyURI string, secret []byte) (wrapped []byte, err error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	wrapped, err = keeper.Encrypt(ctx, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap secret with KMS: %w", err)
	}
	return wrapped, nil
}

// UnwrapSecret opens a keeper, decrypts wrapped and closes the keeper.
func (k *kmsService) UnwrapSecret(ctx context.Context, keyURI string, wrapped []byte) (secret []byte, err error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	secret, err = keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap secret with KMS: %w", err)
	}
	return secret, nil
}
