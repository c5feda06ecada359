// Package http provides HTTP handlers for the consent ledger and the data
// access workflow.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacycore/internal/consent/http/dto"
	consentUseCase "github.com/allisson/privacycore/internal/consent/usecase"
	"github.com/allisson/privacycore/internal/httputil"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// ConsentHandler handles HTTP requests for the consent ledger.
type ConsentHandler struct {
	consentUseCase consentUseCase.ConsentUseCase
	logger         *slog.Logger
}

// NewConsentHandler creates a new consent handler with required dependencies.
func NewConsentHandler(
	consentUseCase consentUseCase.ConsentUseCase,
	logger *slog.Logger,
) *ConsentHandler {
	return &ConsentHandler{
		consentUseCase: consentUseCase,
		logger:         logger,
	}
}

// RequestConsentHandler resolves a consent request and appends the outcome to
// the user's ledger.
// POST /v1/consents/request
// Returns 200 OK with the grant decision.
func (h *ConsentHandler) RequestConsentHandler(c *gin.Context) {
	var req dto.ConsentRequest

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

	granted, err := h.consentUseCase.RequestConsent(c.Request.Context(), req.UserID, req.DataType, req.Purpose)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ConsentDecisionResponse{Granted: granted})
}

// RevokeConsentHandler appends a revocation record for the most recent grant.
// POST /v1/consents/revoke
// Returns 204 No Content on success.
func (h *ConsentHandler) RevokeConsentHandler(c *gin.Context) {
	var req dto.RevokeConsentRequest

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

	if err := h.consentUseCase.RevokeConsent(c.Request.Context(), req.UserID, req.DataType); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ConsentStatusHandler returns the latest consent record for a user and data
// type pair.
// GET /v1/consents/:userId/:dataType
// Returns 200 OK with the record, or 200 OK with a null body when the pair
// has no history.
func (h *ConsentHandler) ConsentStatusHandler(c *gin.Context) {
	userID := c.Param("userId")
	dataType := c.Param("dataType")
	if userID == "" || dataType == "" {
		httputil.HandleBadRequestGin(
			c,
			fmt.Errorf("user id and data type cannot be empty"),
			h.logger,
		)
		return
	}

	status, err := h.consentUseCase.ConsentStatus(c.Request.Context(), userID, dataType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// A pair with no history is not an error: the status is simply null.
	if status == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, dto.MapConsentToResponse(*status))
}

// ListConsentsHandler returns a user's full consent history.
// GET /v1/consents/:userId
// Returns 200 OK with the history, empty for unknown users.
func (h *ConsentHandler) ListConsentsHandler(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		httputil.HandleBadRequestGin(c, fmt.Errorf("user id cannot be empty"), h.logger)
		return
	}

	history, err := h.consentUseCase.AllConsents(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConsentsToListResponse(history))
}
