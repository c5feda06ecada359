// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/privacycore/internal/validation"
)

// ConnectionRequest contains the endpoint to establish a connection with.
type ConnectionRequest struct {
	Endpoint string `json:"endpoint"`
}

// Validate checks if the connection request is valid. Scheme enforcement is
// left to the transport manager so rejections surface as endpoint events.
func (r *ConnectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Endpoint,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 2048),
		),
	)
}

// ValidateEndpointRequest contains the endpoint to validate.
type ValidateEndpointRequest struct {
	Endpoint string `json:"endpoint"`
}

// Validate checks if the validation request is valid.
func (r *ValidateEndpointRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Endpoint,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 2048),
		),
	)
}

// EncryptTransmissionRequest contains the payload and destination for an
// outbound transmission.
type EncryptTransmissionRequest struct {
	Data     any    `json:"data"`
	Endpoint string `json:"endpoint"`
}

// Validate checks if the encrypt transmission request is valid.
func (r *EncryptTransmissionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Endpoint,
			validation.Required,
			customValidation.NotBlank,
			customValidation.SecureEndpoint,
		),
	)
}

// DecryptTransmissionRequest contains an inbound transmission blob and the
// endpoint it is expected to be bound to.
type DecryptTransmissionRequest struct {
	Blob     string `json:"blob"`
	Endpoint string `json:"endpoint"`
}

// Validate checks if the decrypt transmission request is valid.
func (r *DecryptTransmissionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Blob,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.Endpoint,
			validation.Required,
			customValidation.NotBlank,
			customValidation.SecureEndpoint,
		),
	)
}
