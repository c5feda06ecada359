// Package http provides HTTP handlers for the security event log, threat
// detection, and privacy reporting.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/privacycore/internal/audit/domain"
	"github.com/allisson/privacycore/internal/audit/http/dto"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/httputil"
	customValidation "github.com/allisson/privacycore/internal/validation"
)

// AuditHandler handles HTTP requests for security events and reports.
type AuditHandler struct {
	eventLog        *auditService.EventLog
	threatDetector  *auditService.ThreatDetector
	reportGenerator *auditService.ReportGenerator
	logger          *slog.Logger
}

// NewAuditHandler creates a new audit handler with required dependencies.
func NewAuditHandler(
	eventLog *auditService.EventLog,
	threatDetector *auditService.ThreatDetector,
	reportGenerator *auditService.ReportGenerator,
	logger *slog.Logger,
) *AuditHandler {
	return &AuditHandler{
		eventLog:        eventLog,
		threatDetector:  threatDetector,
		reportGenerator: reportGenerator,
		logger:          logger,
	}
}

// LogEventHandler appends a collaborator-supplied security event.
// POST /v1/audit/events
// Returns 201 Created.
func (h *AuditHandler) LogEventHandler(c *gin.Context) {
	var req dto.LogEventRequest

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

	severity, ok := domain.ParseSeverity(req.Severity)
	if !ok {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid severity: %s", req.Severity), h.logger)
		return
	}

	h.eventLog.Record(req.Event, req.Details, severity)
	c.Status(http.StatusCreated)
}

// ListEventsHandler returns the most recent security events.
// GET /v1/audit/events?offset=&limit=
// Returns 200 OK with events newest first.
func (h *AuditHandler) ListEventsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events := h.eventLog.Recent(offset + limit)
	if offset >= len(events) {
		events = nil
	} else {
		events = events[offset:]
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// DetectThreatsHandler runs the threat heuristics over the last day.
// GET /v1/audit/threats
// Returns 200 OK with the findings.
func (h *AuditHandler) DetectThreatsHandler(c *gin.Context) {
	threats := h.threatDetector.Detect()
	c.JSON(http.StatusOK, dto.MapThreatsToListResponse(threats))
}

// PrivacyReportHandler computes the privacy report over the last day.
// GET /v1/audit/privacy-report
// Returns 200 OK with the report.
func (h *AuditHandler) PrivacyReportHandler(c *gin.Context) {
	report := h.reportGenerator.PrivacyReport()
	c.JSON(http.StatusOK, dto.MapReportToResponse(report))
}

// AuditDataAccessHandler lists classified data-access events in a timeframe.
// GET /v1/audit/access?start=&end= (RFC 3339; end defaults to now, start to
// 24 hours before end)
// Returns 200 OK with the audit rows.
func (h *AuditHandler) AuditDataAccessHandler(c *gin.Context) {
	end := time.Now()
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid end parameter: %w", err), h.logger)
			return
		}
		end = parsed
	}

	start := end.Add(-24 * time.Hour)
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid start parameter: %w", err), h.logger)
			return
		}
		start = parsed
	}

	if start.After(end) {
		httputil.HandleBadRequestGin(c, fmt.Errorf("start must not be after end"), h.logger)
		return
	}

	entries := h.reportGenerator.AuditDataAccess(start, end)
	c.JSON(http.StatusOK, dto.MapAuditEntriesToListResponse(entries))
}
