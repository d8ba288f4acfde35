package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/finledger/internal/crypto/domain"
	cryptoService "github.com/allisson/finledger/internal/crypto/service"
)

// encryptionSecretSize is the number of random bytes in a generated secret.
const encryptionSecretSize = 32

// RunCreateEncryptionSecret generates a random encryption secret and prints the
// environment variables that configure it.
//
// Without KMS parameters ENCRYPTION_SECRET is the base64 secret itself. With both
// kmsProvider and kmsKeyURI the secret is wrapped by the KMS key first and
// ENCRYPTION_SECRET holds the base64 KMS ciphertext. For local development use
// kmsProvider="localsecrets" with kmsKeyURI="base64key://...".
func RunCreateEncryptionSecret(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be given together")
	}

	secret := make([]byte, encryptionSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate encryption secret: %w", err)
	}
	defer cryptoDomain.Zero(secret)

	value := secret
	if kmsKeyURI != "" {
		logger.Info("wrapping encryption secret with KMS", slog.String("kms_provider", kmsProvider))

		wrapped, err := kmsService.WrapSecret(ctx, kmsKeyURI, secret)
		if err != nil {
			return fmt.Errorf("failed to wrap encryption secret with KMS: %w", err)
		}
		value = wrapped
	}

	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(value))

	return nil
}
