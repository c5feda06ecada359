package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/privacycore/internal/consent/domain"
	"github.com/allisson/privacycore/internal/consent/http/dto"
	consentUseCase "github.com/allisson/privacycore/internal/consent/usecase"
	"github.com/allisson/privacycore/internal/httputil"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// AccessHandler handles HTTP requests for the third-party data access
// workflow.
type AccessHandler struct {
	accessUseCase consentUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler with required dependencies.
func NewAccessHandler(
	accessUseCase consentUseCase.AccessUseCase,
	logger *slog.Logger,
) *AccessHandler {
	return &AccessHandler{
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// CreateHandler registers a pending data access request.
// POST /v1/access-requests
// Returns 201 Created with the pending request.
func (h *AccessHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateAccessRequest

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

	request, err := h.accessUseCase.Request(c.Request.Context(), req.Requester, req.DataTypes, req.Purpose)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccessRequestToResponse(request))
}

// ApproveHandler approves a pending access request.
// POST /v1/access-requests/:id/approve
// Returns 200 OK with the decided request; 409 Conflict on a second decision.
func (h *AccessHandler) ApproveHandler(c *gin.Context) {
	h.decide(c, h.accessUseCase.Approve)
}

// DenyHandler denies a pending access request.
// POST /v1/access-requests/:id/deny
// Returns 200 OK with the decided request; 409 Conflict on a second decision.
func (h *AccessHandler) DenyHandler(c *gin.Context) {
	h.decide(c, h.accessUseCase.Deny)
}

// ListPendingHandler returns all undecided access requests.
// GET /v1/access-requests/pending
// Returns 200 OK with the pending requests in creation order.
func (h *AccessHandler) ListPendingHandler(c *gin.Context) {
	pending, err := h.accessUseCase.Pending(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessRequestsToListResponse(pending))
}

// decide shares the parse-validate-call shape of approve and deny.
func (h *AccessHandler) decide(
	c *gin.Context,
	call func(ctx context.Context, id uuid.UUID, decidedBy string) (domain.DataAccessRequest, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid request id: %w", err), h.logger)
		return
	}

	var req dto.DecideAccessRequest

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

	decided, err := call(c.Request.Context(), id, req.DecidedBy)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessRequestToResponse(decided))
}
