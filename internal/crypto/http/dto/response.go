package dto

import (
	"encoding/base64"
	"time"

	"github.com/allisson/privacycore/internal/crypto/domain"
)

// EncryptedRecordResponse represents an encrypted record in API responses.
// Binary fields travel base64-encoded.
type EncryptedRecordResponse struct {
	RecordID   string    `json:"record_id"`
	Ciphertext string    `json:"ciphertext"`
	IV         string    `json:"iv"`
	AuthTag    string    `json:"auth_tag"`
	Method     string    `json:"method"`
	KeyID      string    `json:"key_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// MapRecordToResponse converts a domain encrypted record to a response.
func MapRecordToResponse(record domain.EncryptedRecord) EncryptedRecordResponse {
	return EncryptedRecordResponse{
		RecordID:   record.RecordID.String(),
		Ciphertext: base64.StdEncoding.EncodeToString(record.Ciphertext),
		IV:         base64.StdEncoding.EncodeToString(record.IV),
		AuthTag:    base64.StdEncoding.EncodeToString(record.AuthTag),
		Method:     record.Method,
		KeyID:      record.KeyID,
		CreatedAt:  record.CreatedAt,
	}
}

// DecryptResponse carries the decrypted payload and its original data type.
type DecryptResponse struct {
	Data     any    `json:"data"`
	DataType string `json:"data_type"`
}

// RotateKeysResponse reports how many categories were rotated.
type RotateKeysResponse struct {
	RotatedCategories int `json:"rotated_categories"`
}

// IntegrityResponse reports the outcome of the integrity self-test.
type IntegrityResponse struct {
	Valid bool `json:"valid"`
}
