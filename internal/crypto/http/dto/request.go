// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/privacycore/internal/crypto/domain"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// EncryptRequest contains the parameters for encrypting personal data.
type EncryptRequest struct {
	Data     any    `json:"data"`
	DataType string `json:"data_type"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DataType,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// DecryptRequest carries an encrypted record back for decryption. Binary
// fields travel base64-encoded.
type DecryptRequest struct {
	RecordID   string `json:"record_id"`
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	AuthTag    string `json:"auth_tag"`
	Method     string `json:"method"`
	KeyID      string `json:"key_id"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RecordID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.IV,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.AuthTag,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.Method,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.KeyID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ToDomain converts the request into an EncryptedRecord.
func (r *DecryptRequest) ToDomain() (domain.EncryptedRecord, error) {
	recordID, err := uuid.Parse(r.RecordID)
	if err != nil {
		return domain.EncryptedRecord{}, fmt.Errorf("invalid record_id: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(r.Ciphertext)
	if err != nil {
		return domain.EncryptedRecord{}, fmt.Errorf("invalid base64 ciphertext: %w", err)
	}

	iv, err := base64.StdEncoding.DecodeString(r.IV)
	if err != nil {
		return domain.EncryptedRecord{}, fmt.Errorf("invalid base64 iv: %w", err)
	}

	authTag, err := base64.StdEncoding.DecodeString(r.AuthTag)
	if err != nil {
		return domain.EncryptedRecord{}, fmt.Errorf("invalid base64 auth_tag: %w", err)
	}

	record := domain.EncryptedRecord{
		RecordID:   recordID,
		Ciphertext: ciphertext,
		IV:         iv,
		AuthTag:    authTag,
		Method:     r.Method,
		KeyID:      r.KeyID,
	}

	if r.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return domain.EncryptedRecord{}, fmt.Errorf("invalid created_at: %w", err)
		}
		record.CreatedAt = createdAt
	}

	return record, nil
}
