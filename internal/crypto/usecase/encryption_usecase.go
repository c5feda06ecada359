// Package usecase implements business logic orchestration for personal data
// encryption.
//
// The encryption use case coordinates the category key store and the
// AES-256-GCM cipher, applying the payload codec so date values survive the
// round trip. Every operation, successful or failed, appends an entry to the
// security event log so failures stay auditable even when the caller ignores
// them.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/privacycore/internal/audit/domain"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/crypto/domain"
	"github.com/allisson/privacycore/internal/crypto/service"
)

// integrityProbe is the fixed payload used by the ValidateIntegrity self-test.
var integrityProbe = map[string]any{"probe": "integrity-check", "sequence": float64(1)}

// encryptionUseCase implements EncryptionUseCase on top of a KeyStore.
type encryptionUseCase struct {
	keyStore service.KeyStore
	recorder auditService.Recorder
	logger   *slog.Logger
}

// NewEncryptionUseCase creates the encryption use case with its dependencies.
func NewEncryptionUseCase(
	keyStore service.KeyStore,
	recorder auditService.Recorder,
	logger *slog.Logger,
) EncryptionUseCase {
	return &encryptionUseCase{
		keyStore: keyStore,
		recorder: recorder,
		logger:   logger,
	}
}

// envelopeKeys are the field names of the plaintext envelope serialized
// inside the ciphertext. Carrying the original data type in the envelope
// avoids the lossy category-to-type reverse mapping.
const (
	envelopeDataTypeKey = "data_type"
	envelopePayloadKey  = "payload"
)

// Encrypt validates the input, resolves the current category key, and
// produces an EncryptedRecord carrying the unversioned category id.
func (u *encryptionUseCase) Encrypt(
	ctx context.Context,
	payload any,
	dataType string,
) (domain.EncryptedRecord, error) {
	if payload == nil {
		return domain.EncryptedRecord{}, u.failEncrypt(domain.ErrNilPayload, dataType)
	}
	if strings.TrimSpace(dataType) == "" {
		return domain.EncryptedRecord{}, u.failEncrypt(domain.ErrEmptyDataType, dataType)
	}

	category := domain.CategoryForDataType(dataType)

	// Always the base, non-archived key: rotation is transparent at encrypt
	// time.
	key, err := u.keyStore.Lookup(string(category))
	if err != nil {
		return domain.EncryptedRecord{}, u.failEncrypt(err, dataType)
	}

	plaintext, err := service.EncodePayload(map[string]any{
		envelopeDataTypeKey: dataType,
		envelopePayloadKey:  payload,
	})
	if err != nil {
		return domain.EncryptedRecord{}, u.failEncrypt(err, dataType)
	}

	cipher, err := service.NewAESGCM(key.Key)
	if err != nil {
		return domain.EncryptedRecord{}, u.failEncrypt(err, dataType)
	}

	ciphertext, iv, tag, err := cipher.Encrypt(plaintext, []byte(category))
	if err != nil {
		return domain.EncryptedRecord{}, u.failEncrypt(err, dataType)
	}

	record := domain.EncryptedRecord{
		RecordID:   uuid.Must(uuid.NewV7()),
		Ciphertext: ciphertext,
		IV:         iv,
		AuthTag:    tag,
		Method:     domain.MethodAESGCM,
		KeyID:      string(category),
		CreatedAt:  time.Now().UTC(),
	}

	u.recorder.Record(auditDomain.EventDataEncrypted, map[string]any{
		"record_id": record.RecordID.String(),
		"data_type": dataType,
		"category":  string(category),
	}, auditDomain.SeverityLow)

	u.logger.Debug("personal data encrypted",
		slog.String("record_id", record.RecordID.String()),
		slog.String("category", string(category)),
	)

	return record, nil
}

// Decrypt resolves the record's key, reverses the encryption, and
// reconstructs the payload. The current base key is tried first; on
// authentication failure every archived version of the category is tried
// newest first, so ciphertexts produced before a rotation stay readable.
func (u *encryptionUseCase) Decrypt(ctx context.Context, record domain.EncryptedRecord) (any, string, error) {
	if record.KeyID == "" || len(record.IV) == 0 || len(record.AuthTag) == 0 {
		return nil, "", u.failDecrypt(domain.ErrInvalidRecord, record)
	}

	key, err := u.keyStore.Lookup(record.KeyID)
	if err != nil {
		return nil, "", u.failDecrypt(err, record)
	}

	aad := []byte(record.KeyID)
	plaintext, err := decryptWithKey(key.Key, record, aad)
	if err != nil {
		plaintext, err = u.decryptWithArchivedKeys(record, aad)
	}
	if err != nil {
		return nil, "", u.failDecrypt(domain.ErrDecryptionFailed, record)
	}

	payload, dataType, err := openEnvelope(plaintext)
	if err != nil {
		return nil, "", u.failDecrypt(err, record)
	}

	u.recorder.Record(auditDomain.EventDataDecrypted, map[string]any{
		"record_id": record.RecordID.String(),
		"data_type": dataType,
		"key_id":    record.KeyID,
	}, auditDomain.SeverityLow)

	return payload, dataType, nil
}

// RotateKeys delegates to the key store and records the rotation.
func (u *encryptionUseCase) RotateKeys(ctx context.Context) (int, error) {
	rotated, err := u.keyStore.Rotate()
	if err != nil {
		u.recorder.Record(auditDomain.EventEncryptionFailed, map[string]any{
			"operation": "rotate_keys",
			"error":     err.Error(),
		}, auditDomain.SeverityHigh)
		return rotated, err
	}

	u.recorder.Record(auditDomain.EventKeysRotated, map[string]any{
		"rotated_categories": rotated,
	}, auditDomain.SeverityMedium)

	u.logger.Info("encryption keys rotated", slog.Int("categories", rotated))

	return rotated, nil
}

// ValidateIntegrity encrypts a fixed probe under the conversation category,
// decrypts it, and compares the round trip. The outcome is always logged.
func (u *encryptionUseCase) ValidateIntegrity(ctx context.Context) bool {
	record, err := u.Encrypt(ctx, integrityProbe, string(domain.CategoryConversation))
	if err != nil {
		u.recordIntegrity(false, err)
		return false
	}

	payload, _, err := u.Decrypt(ctx, record)
	if err != nil {
		u.recordIntegrity(false, err)
		return false
	}

	decoded, ok := payload.(map[string]any)
	valid := ok &&
		decoded["probe"] == integrityProbe["probe"] &&
		decoded["sequence"] == integrityProbe["sequence"]

	u.recordIntegrity(valid, nil)
	return valid
}

// decryptWithArchivedKeys walks archived key versions of the record's
// category, newest first, until one authenticates.
func (u *encryptionUseCase) decryptWithArchivedKeys(
	record domain.EncryptedRecord,
	aad []byte,
) ([]byte, error) {
	for _, key := range u.keyStore.ArchivedVersions(record.KeyID) {
		if plaintext, err := decryptWithKey(key.Key, record, aad); err == nil {
			return plaintext, nil
		}
	}
	return nil, domain.ErrDecryptionFailed
}

// decryptWithKey runs one decryption attempt with the given key material.
func decryptWithKey(keyMaterial []byte, record domain.EncryptedRecord, aad []byte) ([]byte, error) {
	cipher, err := service.NewAESGCM(keyMaterial)
	if err != nil {
		return nil, err
	}
	return cipher.Decrypt(record.Ciphertext, record.IV, record.AuthTag, aad)
}

// openEnvelope decodes the plaintext envelope and extracts the payload and
// original data type.
func openEnvelope(plaintext []byte) (any, string, error) {
	decoded, err := service.DecodePayload(plaintext)
	if err != nil {
		return nil, "", err
	}

	envelope, ok := decoded.(map[string]any)
	if !ok {
		return nil, "", domain.ErrInvalidRecord
	}

	dataType, _ := envelope[envelopeDataTypeKey].(string)
	return envelope[envelopePayloadKey], dataType, nil
}

// failEncrypt records a high-severity audit event for a failed encryption
// and returns the error unchanged.
func (u *encryptionUseCase) failEncrypt(err error, dataType string) error {
	u.recorder.Record(auditDomain.EventEncryptionFailed, map[string]any{
		"data_type": dataType,
		"error":     err.Error(),
	}, auditDomain.SeverityHigh)

	u.logger.Warn("encryption failed",
		slog.String("data_type", dataType),
		slog.Any("error", err),
	)

	return err
}

// failDecrypt records a high-severity audit event for a failed decryption
// and returns the error unchanged.
func (u *encryptionUseCase) failDecrypt(err error, record domain.EncryptedRecord) error {
	u.recorder.Record(auditDomain.EventDecryptionFailed, map[string]any{
		"record_id": record.RecordID.String(),
		"key_id":    record.KeyID,
		"error":     err.Error(),
	}, auditDomain.SeverityHigh)

	u.logger.Warn("decryption failed",
		slog.String("record_id", record.RecordID.String()),
		slog.Any("error", err),
	)

	return err
}

// recordIntegrity logs the self-test outcome.
func (u *encryptionUseCase) recordIntegrity(valid bool, err error) {
	if valid {
		u.recorder.Record(auditDomain.EventIntegrityValidated, nil, auditDomain.SeverityLow)
		return
	}

	details := map[string]any{}
	if err != nil {
		details["error"] = err.Error()
	}
	u.recorder.Record(auditDomain.EventIntegrityFailed, details, auditDomain.SeverityHigh)
}
