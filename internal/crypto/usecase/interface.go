package usecase

import (
	"context"

	"github.com/allisson/privacycore/internal/crypto/domain"
)

// EncryptionUseCase defines the boundary operations for encrypting personal
// data at rest.
type EncryptionUseCase interface {
	// Encrypt serializes and encrypts a payload under the category key
	// resolved from dataType, returning an immutable EncryptedRecord.
	Encrypt(ctx context.Context, payload any, dataType string) (domain.EncryptedRecord, error)

	// Decrypt reverses Encrypt, returning the reconstructed payload and the
	// original data type stored inside the envelope.
	Decrypt(ctx context.Context, record domain.EncryptedRecord) (any, string, error)

	// RotateKeys rotates every category key and returns the number of
	// rotated categories.
	RotateKeys(ctx context.Context) (int, error)

	// ValidateIntegrity runs an encrypt/decrypt self-test against a fixed
	// probe value and reports whether the round trip succeeded.
	ValidateIntegrity(ctx context.Context) bool
}
