// Package http provides HTTP handlers for secure transport operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacycore/internal/httputil"
	"github.com/allisson/privacycore/internal/transport/http/dto"
	transportService "github.com/allisson/privacycore/internal/transport/service"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// TransportHandler handles HTTP requests for secure transport operations.
type TransportHandler struct {
	transportManager *transportService.TransportManager
	logger           *slog.Logger
}

// NewTransportHandler creates a new transport handler with required dependencies.
func NewTransportHandler(
	transportManager *transportService.TransportManager,
	logger *slog.Logger,
) *TransportHandler {
	return &TransportHandler{
		transportManager: transportManager,
		logger:           logger,
	}
}

// EstablishConnectionHandler validates an endpoint and returns a connection
// descriptor.
// POST /v1/transport/connections
// Returns 201 Created with the connection; 422 for insecure endpoints.
func (h *TransportHandler) EstablishConnectionHandler(c *gin.Context) {
	var req dto.ConnectionRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	connection, err := h.transportManager.EstablishSecureConnection(c.Request.Context(), req.Endpoint)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapConnectionToResponse(connection))
}

// ValidateHandler reports the endpoint and certificate verdicts without
// establishing anything.
// POST /v1/transport/validate
// Returns 200 OK with both verdicts.
func (h *TransportHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateEndpointRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()
	response := dto.ValidateEndpointResponse{
		EndpointValid: h.transportManager.ValidateEndpoint(ctx, req.Endpoint),
	}
	if response.EndpointValid {
		response.CertificateValid = h.transportManager.ValidateCertificate(ctx, req.Endpoint)
	}

	c.JSON(http.StatusOK, response)
}

// EncryptTransmissionHandler packages a payload into an endpoint-bound blob.
// POST /v1/transport/encrypt
// Returns 200 OK with the blob.
func (h *TransportHandler) EncryptTransmissionHandler(c *gin.Context) {
	var req dto.EncryptTransmissionRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	blob, err := h.transportManager.EncryptTransmission(c.Request.Context(), req.Data, req.Endpoint)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptTransmissionResponse{Blob: blob})
}

// DecryptTransmissionHandler unpacks a transmission blob bound to the
// endpoint.
// POST /v1/transport/decrypt
// Returns 200 OK with the payload; 403 on an endpoint mismatch.
func (h *TransportHandler) DecryptTransmissionHandler(c *gin.Context) {
	var req dto.DecryptTransmissionRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, err := h.transportManager.DecryptTransmission(c.Request.Context(), req.Blob, req.Endpoint)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptTransmissionResponse{Data: data})
}
