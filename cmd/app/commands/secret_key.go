package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/receiptvault/internal/crypto/domain"
)

// RunCreateSecretKey generates a cryptographically secure 32-byte secret key
// and prints it as environment variable assignments. Key material is zeroed
// from memory after encoding.
//
// Without KMS parameters the key is printed as 64 hex characters, suitable
// for SECRET_KEY directly. When both kmsProvider and kmsKeyURI are set the
// key is encrypted with the KMS first and SECRET_KEY holds the base64
// ciphertext instead.
//
// Security: never use the localsecrets provider in production. Use cloud KMS
// providers (gcpkms, awskms, azurekeyvault, hashivault).
func RunCreateSecretKey(
	ctx context.Context,
	kmsService cryptoDomain.KMSService,
	out io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf(
			"--kms-provider and --kms-key-uri must be set together\n\nFor local development, use:\n  --kms-provider=localsecrets --kms-key-uri=\"base64key://<32-byte-base64-key>\"\n\nFor production, use cloud KMS providers:\n  --kms-provider=gcpkms --kms-key-uri=\"gcpkms://projects/.../cryptoKeys/...\"\n  --kms-provider=awskms --kms-key-uri=\"awskms:///alias/...\"\n  --kms-provider=azurekeyvault --kms-key-uri=\"azurekeyvault://...\"",
		)
	}

	secretKey := make([]byte, 32)
	if _, err := rand.Read(secretKey); err != nil {
		return fmt.Errorf("failed to generate secret key: %w", err)
	}
	defer cryptoDomain.Zero(secretKey)

	if kmsProvider == "" {
		fmt.Fprintln(out, "# Secret Key Configuration")
		fmt.Fprintln(out, "# Copy this environment variable to your .env file or secrets manager")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "SECRET_KEY=\"%s\"\n", hex.EncodeToString(secretKey))
		return nil
	}

	keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeperInterface.Close(); closeErr != nil {
			fmt.Fprintf(out, "# Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	// The keeper interface only carries Decrypt; *secrets.Keeper also
	// implements Encrypt, which wrapping needs.
	keeper, ok := keeperInterface.(interface {
		Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	})
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	ciphertext, err := keeper.Encrypt(ctx, secretKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret key with KMS: %w", err)
	}

	fmt.Fprintln(out, "# Secret Key Configuration (KMS Mode)")
	fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	fmt.Fprintf(out, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(out, "SECRET_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}
