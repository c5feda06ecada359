// Package http provides HTTP handlers for personal data encryption operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacycore/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/privacycore/internal/crypto/usecase"
	"github.com/allisson/privacycore/internal/httputil"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// CryptoHandler handles HTTP requests for encryption and decryption of
// personal data.
type CryptoHandler struct {
	encryptionUseCase cryptoUseCase.EncryptionUseCase
	logger            *slog.Logger
}

// NewCryptoHandler creates a new crypto handler with required dependencies.
func NewCryptoHandler(
	encryptionUseCase cryptoUseCase.EncryptionUseCase,
	logger *slog.Logger,
) *CryptoHandler {
	return &CryptoHandler{
		encryptionUseCase: encryptionUseCase,
		logger:            logger,
	}
}

// EncryptHandler encrypts a personal data payload under its category key.
// POST /v1/crypto/encrypt
// Returns 200 OK with the encrypted record.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

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

	// Call use case
	record, err := h.encryptionUseCase.Encrypt(c.Request.Context(), req.Data, req.DataType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// DecryptHandler decrypts a previously produced encrypted record.
// POST /v1/crypto/decrypt
// Returns 200 OK with the original payload and data type.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

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

	record, err := req.ToDomain()
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid encrypted record: %w", err), h.logger)
		return
	}

	// Call use case
	data, dataType, err := h.encryptionUseCase.Decrypt(c.Request.Context(), record)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Data: data, DataType: dataType})
}

// RotateKeysHandler rotates every category key, archiving the previous ones.
// POST /v1/crypto/rotate
// Returns 200 OK with the number of rotated categories.
func (h *CryptoHandler) RotateKeysHandler(c *gin.Context) {
	rotated, err := h.encryptionUseCase.RotateKeys(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RotateKeysResponse{RotatedCategories: rotated})
}

// ValidateIntegrityHandler runs the encrypt-decrypt self-test.
// POST /v1/crypto/validate-integrity
// Returns 200 OK with the self-test outcome.
func (h *CryptoHandler) ValidateIntegrityHandler(c *gin.Context) {
	valid := h.encryptionUseCase.ValidateIntegrity(c.Request.Context())
	c.JSON(http.StatusOK, dto.IntegrityResponse{Valid: valid})
}
