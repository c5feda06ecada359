package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/allisson/privacycore/internal/crypto/domain"
)

// AESGCMCipher implements authenticated encryption using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// The cipher is configured with a 16-byte IV and produces a detached 16-byte
// authentication tag, matching the EncryptedRecord layout where ciphertext,
// IV and tag are stored as separate fields.
//
// Security properties:
//   - 256-bit key size
//   - 16-byte IV, randomly generated per encryption
//   - 16-byte authentication tag, verified before any plaintext is returned
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from
//	multiple goroutines. Each encryption generates an independent IV.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Keys should be generated with
// crypto/rand; the key store takes care of this for category keys.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != domain.KeySize {
		return nil, domain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, domain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns the ciphertext, the randomly
// generated IV, and the detached authentication tag.
//
// The AAD (additional authenticated data) is authenticated but not encrypted,
// binding the ciphertext to its context (the category key id for records).
// Pass nil when no context needs to be authenticated.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, iv, tag []byte, err error) {
	iv = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := a.aead.Seal(nil, iv, plaintext, aad)

	// Seal appends the tag to the ciphertext; split it off so the record can
	// carry it as a dedicated field.
	tagStart := len(sealed) - domain.TagSize
	return sealed[:tagStart], iv, sealed[tagStart:], nil
}

// Decrypt verifies the authentication tag and decrypts the ciphertext.
//
// The same AAD used during encryption must be provided. A tag mismatch,
// tampered ciphertext, or wrong key all surface as ErrDecryptionFailed
// without disclosing the specific cause.
func (a *AESGCMCipher) Decrypt(ciphertext, iv, tag, aad []byte) ([]byte, error) {
	if len(iv) != a.aead.NonceSize() || len(tag) != domain.TagSize {
		return nil, domain.ErrDecryptionFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	return plaintext, nil
}
