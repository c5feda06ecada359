package domain

import (
	"github.com/allisson/privacycore/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so that callers can match on intent (errors.Is) while the error handling
// layer maps them to HTTP status codes.
var (
	// ErrKeyNotFound indicates no key exists for the requested identifier,
	// neither under the base category id nor among archived versions.
	//
	// HTTP Status: 404 Not Found
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "encryption key not found")

	// ErrInvalidKeySize indicates the key material is not exactly 32 bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Authentication tag mismatch (tampered or wrong-key ciphertext)
	//   - Invalid IV or truncated ciphertext
	//   - All archived key versions exhausted during rotation fallback
	//
	// For security reasons the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrNilPayload indicates encrypt was called without a payload.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrNilPayload = errors.Wrap(errors.ErrInvalidInput, "payload is required")

	// ErrEmptyDataType indicates encrypt was called with an empty or blank
	// data type.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrEmptyDataType = errors.Wrap(errors.ErrInvalidInput, "data type is required")

	// ErrInvalidRecord indicates an encrypted record is structurally invalid
	// (missing IV, tag, or key id).
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidRecord = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted record")
)
