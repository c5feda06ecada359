package dto

import (
	"time"

	"github.com/allisson/privacycore/internal/transport/domain"
)

// ConnectionResponse represents a secure connection in API responses.
type ConnectionResponse struct {
	Endpoint             string    `json:"endpoint"`
	Protocol             string    `json:"protocol"`
	CertificateValidated bool      `json:"certificate_validated"`
	EncryptionStrength   int       `json:"encryption_strength"`
	LastVerified         time.Time `json:"last_verified"`
}

// MapConnectionToResponse converts a domain secure connection to a response.
func MapConnectionToResponse(connection domain.SecureConnection) ConnectionResponse {
	return ConnectionResponse{
		Endpoint:             connection.Endpoint,
		Protocol:             string(connection.Protocol),
		CertificateValidated: connection.CertificateValidated,
		EncryptionStrength:   connection.EncryptionStrength,
		LastVerified:         connection.LastVerified,
	}
}

// ValidateEndpointResponse reports the endpoint and certificate verdicts.
type ValidateEndpointResponse struct {
	EndpointValid    bool `json:"endpoint_valid"`
	CertificateValid bool `json:"certificate_valid"`
}

// EncryptTransmissionResponse carries the packaged transmission blob.
type EncryptTransmissionResponse struct {
	Blob string `json:"blob"`
}

// DecryptTransmissionResponse carries the recovered payload.
type DecryptTransmissionResponse struct {
	Data any `json:"data"`
}
