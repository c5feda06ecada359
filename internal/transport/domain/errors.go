package domain

import (
	"github.com/allisson/privacycore/internal/errors"
)

// Transport error definitions.
var (
	// ErrInvalidEndpoint indicates the endpoint failed validation, either
	// malformed or using a cleartext scheme.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidEndpoint = errors.Wrap(errors.ErrInvalidInput, "insecure endpoint rejected")

	// ErrEndpointMismatch indicates a transmission was presented for an
	// endpoint other than the one it was encrypted for. Raised before any
	// decryption attempt.
	//
	// HTTP Status: 403 Forbidden
	ErrEndpointMismatch = errors.Wrap(errors.ErrForbidden, "transmission endpoint mismatch")

	// ErrInvalidEnvelope indicates the transmission blob could not be decoded.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid transmission envelope")

	// ErrTransmissionFailed indicates authenticated decryption of a
	// transmission failed.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrTransmissionFailed = errors.Wrap(errors.ErrInvalidInput, "transmission decryption failed")
)
