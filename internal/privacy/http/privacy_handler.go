// Package http provides HTTP handlers for privacy mode control and local
// processing arbitration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacycore/internal/httputil"
	"github.com/allisson/privacycore/internal/privacy/domain"
	"github.com/allisson/privacycore/internal/privacy/http/dto"
	privacyUseCase "github.com/allisson/privacycore/internal/privacy/usecase"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// PrivacyHandler handles HTTP requests for privacy mode and arbitration.
type PrivacyHandler struct {
	modeUseCase    privacyUseCase.ModeUseCase
	arbiterUseCase privacyUseCase.ArbiterUseCase
	logger         *slog.Logger
}

// NewPrivacyHandler creates a new privacy handler with required dependencies.
func NewPrivacyHandler(
	modeUseCase privacyUseCase.ModeUseCase,
	arbiterUseCase privacyUseCase.ArbiterUseCase,
	logger *slog.Logger,
) *PrivacyHandler {
	return &PrivacyHandler{
		modeUseCase:    modeUseCase,
		arbiterUseCase: arbiterUseCase,
		logger:         logger,
	}
}

// EnableModeHandler enables privacy mode at the requested level.
// POST /v1/privacy/mode
// Returns 200 OK with the derived mode.
func (h *PrivacyHandler) EnableModeHandler(c *gin.Context) {
	var req dto.EnableModeRequest

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

	mode, err := h.modeUseCase.Enable(c.Request.Context(), domain.Level(req.Level))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapModeToResponse(mode))
}

// DisableModeHandler resets privacy mode to its defaults.
// DELETE /v1/privacy/mode
// Returns 200 OK with the disabled mode.
func (h *PrivacyHandler) DisableModeHandler(c *gin.Context) {
	mode := h.modeUseCase.Disable(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapModeToResponse(mode))
}

// ModeStatusHandler returns a snapshot of the active privacy mode.
// GET /v1/privacy/mode
// Returns 200 OK with the mode.
func (h *PrivacyHandler) ModeStatusHandler(c *gin.Context) {
	mode := h.modeUseCase.Status(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapModeToResponse(mode))
}

// DecideHandler resolves a local-vs-cloud processing decision.
// POST /v1/privacy/decisions
// Returns 200 OK with the verdict.
func (h *PrivacyHandler) DecideHandler(c *gin.Context) {
	var req dto.DecisionRequest

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

	decision, err := h.arbiterUseCase.Decide(c.Request.Context(), req.Data, req.DataType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecisionToResponse(decision))
}

// ListCapabilitiesHandler returns the capability catalog adjusted to the
// active privacy mode.
// GET /v1/privacy/capabilities
// Returns 200 OK with the catalog.
func (h *PrivacyHandler) ListCapabilitiesHandler(c *gin.Context) {
	capabilities := h.arbiterUseCase.Capabilities(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapCapabilitiesToListResponse(capabilities))
}

// SensitivityHandler checks a text against the sensitive vocabulary.
// POST /v1/privacy/sensitivity
// Returns 200 OK with the verdict.
func (h *PrivacyHandler) SensitivityHandler(c *gin.Context) {
	var req dto.SensitivityRequest

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

	c.JSON(http.StatusOK, dto.SensitivityResponse{
		Sensitive: h.arbiterUseCase.IsConversationSensitive(req.Text),
	})
}
