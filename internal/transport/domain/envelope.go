package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// TransmissionEnvelope is the cleartext wrapper around an encrypted
// transmission. The destination endpoint travels in the clear so a mismatch
// is detectable before any cryptographic work, and the nonce and tag ride
// alongside the ciphertext.
type TransmissionEnvelope struct {
	Endpoint   string    `json:"endpoint"`
	Ciphertext []byte    `json:"ciphertext"`
	IV         []byte    `json:"iv"`
	AuthTag    []byte    `json:"auth_tag"`
	Timestamp  time.Time `json:"timestamp"`
}

// Encode serializes the envelope into a single base64 blob.
func (e TransmissionEnvelope) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeEnvelope parses a base64 blob back into an envelope.
func DecodeEnvelope(blob string) (TransmissionEnvelope, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return TransmissionEnvelope{}, ErrInvalidEnvelope
	}

	var envelope TransmissionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return TransmissionEnvelope{}, ErrInvalidEnvelope
	}
	return envelope, nil
}
